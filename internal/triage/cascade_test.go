package triage

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/linnemanlabs/voxa/internal/symptom"
)

func f(v float64) *float64 { return &v }

// baseline returns normal adult vitals with no symptoms.
func baseline() *Input {
	return &Input{Vitals: Vitals{Systolic: f(120), Diastolic: f(80), TempC: f(36.5)}}
}

func TestCascade_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		in          *Input
		wantTier    Tier
		wantReasons []string
	}{
		{
			name:        "chest pain from free text, no vitals",
			in:          &Input{FreeText: "dor no peito forte"},
			wantTier:    TierRed,
			wantReasons: []string{ReasonRedSymptomsPrefix + string(symptom.FlagChestPain)},
		},
		{
			name: "nausea maps to persistent vomiting",
			in: &Input{
				FreeText: "tontura, enjoo",
				Vitals:   Vitals{Systolic: f(120), Diastolic: f(80), TempC: f(36.5)},
				Pain:     3,
			},
			wantTier:    TierYellow,
			wantReasons: []string{ReasonYellowSymptomsPrefix + string(symptom.FlagVomiting)},
		},
		{
			name:        "nothing reported",
			in:          baseline(),
			wantTier:    TierGreen,
			wantReasons: []string{ReasonNoRisk},
		},
		{
			name:        "neck stiffness with fever",
			in:          &Input{FreeText: "rigidez no pescoço", Vitals: Vitals{TempC: f(39.0)}},
			wantTier:    TierRed,
			wantReasons: []string{ReasonRedSymptomsPrefix + string(symptom.FlagNeckStiffnessFever)},
		},
		{
			name:        "neck stiffness without temperature",
			in:          &Input{FreeText: "rigidez no pescoço"},
			wantTier:    TierYellow,
			wantReasons: []string{ReasonYellowSymptomsPrefix + string(symptom.FlagNeckStiffness)},
		},
		{
			name:        "very high systolic alone",
			in:          &Input{Vitals: Vitals{Systolic: f(185), Diastolic: f(80), TempC: f(36.5)}},
			wantTier:    TierRed,
			wantReasons: []string{ReasonSystolicVeryHigh},
		},
	}

	c := NewCascade(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := c.Classify(tt.in)
			if r.Tier != tt.wantTier {
				t.Errorf("tier = %s, want %s", r.Tier, tt.wantTier)
			}
			if !slices.Equal(r.Reasons, tt.wantReasons) {
				t.Errorf("reasons = %q, want %q", r.Reasons, tt.wantReasons)
			}
			if r.Strategy != StrategyCascade {
				t.Errorf("strategy = %q, want %q", r.Strategy, StrategyCascade)
			}
		})
	}
}

func TestCascade_StiffNeckNeedsRigidity(t *testing.T) {
	t.Parallel()

	c := NewCascade(nil, nil)

	r := c.Classify(&Input{FreeText: "pescoço duro"})
	if r.Tier != TierGreen || !slices.Equal(r.Reasons, []string{ReasonNoRisk}) {
		t.Errorf("no temperature: tier = %q reasons = %q, want GREEN default", r.Tier, r.Reasons)
	}

	r = c.Classify(&Input{FreeText: "pescoço duro", Vitals: Vitals{TempC: f(39.0)}})
	if r.Tier != TierYellow || !slices.Equal(r.Reasons, []string{ReasonFever}) {
		t.Errorf("febrile: tier = %q reasons = %q, want YELLOW [%q]", r.Tier, r.Reasons, ReasonFever)
	}
}

func TestCascade_VitalBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		vitals     Vitals
		wantTier   Tier
		wantReason string
	}{
		{"systolic 180", Vitals{Systolic: f(180)}, TierRed, ReasonSystolicVeryHigh},
		{"systolic 179.9", Vitals{Systolic: f(179.9)}, TierYellow, ReasonSystolicHigh},
		{"systolic 160", Vitals{Systolic: f(160)}, TierYellow, ReasonSystolicHigh},
		{"systolic 159", Vitals{Systolic: f(159)}, TierGreen, ReasonNoRisk},
		{"systolic 99", Vitals{Systolic: f(99)}, TierYellow, ReasonSystolicBorderline},
		{"systolic 90", Vitals{Systolic: f(90)}, TierYellow, ReasonSystolicBorderline},
		{"systolic 89.9", Vitals{Systolic: f(89.9)}, TierRed, ReasonSystolicVeryLow},
		{"systolic 100", Vitals{Systolic: f(100)}, TierGreen, ReasonNoRisk},
		{"diastolic 120", Vitals{Diastolic: f(120)}, TierRed, ReasonDiastolicVeryHigh},
		{"diastolic 119", Vitals{Diastolic: f(119)}, TierYellow, ReasonDiastolicHigh},
		{"diastolic 100", Vitals{Diastolic: f(100)}, TierYellow, ReasonDiastolicHigh},
		{"diastolic 99", Vitals{Diastolic: f(99)}, TierGreen, ReasonNoRisk},
		{"temp 39.5", Vitals{TempC: f(39.5)}, TierRed, ReasonFeverVeryHigh},
		{"temp 39.4", Vitals{TempC: f(39.4)}, TierYellow, ReasonFever},
		{"temp 38.0", Vitals{TempC: f(38.0)}, TierYellow, ReasonFever},
		{"temp 37.9", Vitals{TempC: f(37.9)}, TierGreen, ReasonNoRisk},
	}

	c := NewCascade(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := c.Classify(&Input{Vitals: tt.vitals})
			if r.Tier != tt.wantTier {
				t.Errorf("tier = %s, want %s", r.Tier, tt.wantTier)
			}
			if !slices.Equal(r.Reasons, []string{tt.wantReason}) {
				t.Errorf("reasons = %q, want [%q]", r.Reasons, tt.wantReason)
			}
		})
	}
}

func TestCascade_PainThreshold(t *testing.T) {
	t.Parallel()

	c := NewCascade(nil, nil)
	for pain := 0; pain <= 10; pain++ {
		r := c.Classify(&Input{Pain: pain})
		want := TierGreen
		if pain >= IntensePain {
			want = TierYellow
		}
		if r.Tier != want {
			t.Errorf("pain %d: tier = %s, want %s", pain, r.Tier, want)
		}
	}
}

func TestCascade_CollectsAllRedReasons(t *testing.T) {
	t.Parallel()

	in := &Input{
		Selected: []string{string(symptom.FlagSeizure), string(symptom.FlagFainting)},
		Vitals:   Vitals{Systolic: f(200), Diastolic: f(130), TempC: f(40)},
		Pain:     10,
	}
	r := NewCascade(nil, nil).Classify(in)

	want := []string{
		ReasonRedSymptomsPrefix + "Convulsão, Desmaio ou inconsciência",
		ReasonSystolicVeryHigh,
		ReasonDiastolicVeryHigh,
		ReasonFeverVeryHigh,
	}
	if r.Tier != TierRed {
		t.Fatalf("tier = %s, want RED", r.Tier)
	}
	if !slices.Equal(r.Reasons, want) {
		t.Errorf("reasons = %q, want %q", r.Reasons, want)
	}
}

func TestCascade_YellowReasonOrder(t *testing.T) {
	t.Parallel()

	in := &Input{
		FreeText: "enjoo",
		Vitals:   Vitals{Systolic: f(165), Diastolic: f(105), TempC: f(38.5)},
		Pain:     9,
	}
	r := NewCascade(nil, nil).Classify(in)

	want := []string{
		ReasonFever,
		ReasonSystolicHigh,
		ReasonDiastolicHigh,
		ReasonYellowSymptomsPrefix + string(symptom.FlagVomiting),
		ReasonIntensePain,
	}
	if !slices.Equal(r.Reasons, want) {
		t.Errorf("reasons = %q, want %q", r.Reasons, want)
	}
}

func TestCascade_RedStopsEvaluation(t *testing.T) {
	t.Parallel()

	in := &Input{
		Selected: []string{string(symptom.FlagHeadache)},
		FreeText: "dor no peito, enjoo, sangramento",
		Vitals:   Vitals{Systolic: f(170), Diastolic: f(110), TempC: f(38.5)},
		Pain:     9,
	}
	r := NewCascade(nil, nil).Classify(in)
	if r.Tier != TierRed {
		t.Fatalf("tier = %s, want RED", r.Tier)
	}
	for _, reason := range r.Reasons {
		if strings.HasPrefix(reason, ReasonYellowSymptomsPrefix) || reason == ReasonFever || reason == ReasonIntensePain {
			t.Errorf("yellow reason %q leaked into RED result", reason)
		}
	}
}

func TestCascade_SoftYellowFlags(t *testing.T) {
	t.Parallel()

	in := &Input{
		Selected: []string{string(symptom.FlagAbdominalPain)},
		FreeText: "sangramento leve",
	}
	r := NewCascade(nil, nil).Classify(in)

	want := []string{ReasonYellowSymptomsPrefix + "Dor abdominal forte, Sangramento (avaliar)"}
	if r.Tier != TierYellow {
		t.Fatalf("tier = %s, want YELLOW", r.Tier)
	}
	if !slices.Equal(r.Reasons, want) {
		t.Errorf("reasons = %q, want %q", r.Reasons, want)
	}
}

func TestCascade_SelectedSoftFlagIgnored(t *testing.T) {
	t.Parallel()

	// soft flags only count when they come from free text
	r := NewCascade(nil, nil).Classify(&Input{Selected: []string{string(symptom.FlagBleeding), "Tontura"}})
	if r.Tier != TierGreen {
		t.Errorf("tier = %s, want GREEN", r.Tier)
	}
}

func TestCascade_ReasonsSortedAndDeterministic(t *testing.T) {
	t.Parallel()

	in := &Input{
		Selected: []string{string(symptom.FlagBrokenLeg), string(symptom.FlagChestPain)},
		FreeText: "convulsão; desmaio, confusão",
	}
	c := NewCascade(nil, nil)
	first := c.Classify(in)
	for range 20 {
		again := c.Classify(in)
		if again.Tier != first.Tier || !slices.Equal(again.Reasons, first.Reasons) || !slices.Equal(again.FreeText, first.FreeText) {
			t.Fatalf("classification changed between calls: %+v vs %+v", first, again)
		}
	}

	listed := strings.Split(strings.TrimPrefix(first.Reasons[0], ReasonRedSymptomsPrefix), ", ")
	if !slices.IsSorted(listed) {
		t.Errorf("flags not sorted: %q", listed)
	}
	if len(listed) != 5 {
		t.Errorf("flags = %q, want 5", listed)
	}
}

func TestCascade_AddingRedFlagNeverLowersTier(t *testing.T) {
	t.Parallel()

	inputs := []*Input{
		baseline(),
		{FreeText: "enjoo", Pain: 9},
		{Vitals: Vitals{Systolic: f(190)}},
		{FreeText: "dor na barriga"},
	}
	c := NewCascade(nil, nil)
	for _, in := range inputs {
		before := c.Classify(in)
		for _, flag := range symptom.DefaultCatalog().Red().Sorted() {
			with := *in
			with.Selected = append(slices.Clone(in.Selected), string(flag))
			after := c.Classify(&with)
			if after.Tier.Rank() < before.Tier.Rank() {
				t.Errorf("adding %q lowered %s to %s", flag, before.Tier, after.Tier)
			}
			if after.Tier != TierRed {
				t.Errorf("adding %q gave %s, want RED", flag, after.Tier)
			}
		}
	}
}

func TestCascade_RemovingSoleTriggerDropsTier(t *testing.T) {
	t.Parallel()

	c := NewCascade(nil, nil)

	red := baseline()
	red.Systolic = f(185)
	if got := c.Classify(red).Tier; got != TierRed {
		t.Fatalf("tier = %s, want RED", got)
	}
	red.Systolic = f(120)
	if got := c.Classify(red).Tier; got != TierGreen {
		t.Errorf("after removing trigger tier = %s, want GREEN", got)
	}

	yellow := &Input{FreeText: "dor no peito", Vitals: Vitals{TempC: f(38.2)}}
	if got := c.Classify(yellow).Tier; got != TierRed {
		t.Fatalf("tier = %s, want RED", got)
	}
	yellow.FreeText = ""
	if got := c.Classify(yellow).Tier; got != TierYellow {
		t.Errorf("after removing chest pain tier = %s, want YELLOW", got)
	}
}

func TestCascade_EchoesFreeText(t *testing.T) {
	t.Parallel()

	r := NewCascade(nil, nil).Classify(&Input{FreeText: "tontura,\n enjoo ;"})
	if !slices.Equal(r.FreeText, []string{"tontura", "enjoo"}) {
		t.Errorf("free text = %q", r.FreeText)
	}
	if !slices.Equal(r.Rules, []string{"vomiting"}) {
		t.Errorf("rules = %q, want [vomiting]", r.Rules)
	}

	empty := NewCascade(nil, nil).Classify(&Input{})
	if empty.FreeText == nil || len(empty.FreeText) != 0 {
		t.Errorf("free text = %#v, want empty non-nil slice", empty.FreeText)
	}
}

func TestClassify_CallContract(t *testing.T) {
	t.Parallel()

	tier, reasons, items, err := Classify(nil, "tontura, enjoo", f(120), f(80), f(36.5), 3)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if tier != TierYellow {
		t.Errorf("tier = %s, want YELLOW", tier)
	}
	if len(reasons) == 0 {
		t.Error("reasons empty")
	}
	if !slices.Equal(items, []string{"tontura", "enjoo"}) {
		t.Errorf("items = %q", items)
	}
}

func TestClassify_RejectsPainBeforeMatching(t *testing.T) {
	t.Parallel()

	tier, reasons, items, err := Classify(nil, "dor no peito", nil, nil, nil, 11)
	if !errors.Is(err, ErrInvalidPain) {
		t.Fatalf("err = %v, want ErrInvalidPain", err)
	}
	if tier != "" || reasons != nil || items != nil {
		t.Errorf("got partial result %q %q %q on error", tier, reasons, items)
	}
}

func TestNewClassifier(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", StrategyCascade, StrategyScore} {
		c, err := NewClassifier(name)
		if err != nil {
			t.Errorf("NewClassifier(%q): %v", name, err)
			continue
		}
		want := name
		if want == "" {
			want = StrategyCascade
		}
		if c.Name() != want {
			t.Errorf("NewClassifier(%q).Name() = %q, want %q", name, c.Name(), want)
		}
	}
	if _, err := NewClassifier("llm"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}
