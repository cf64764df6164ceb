package triage

import "github.com/linnemanlabs/voxa/internal/symptom"

// Vital-sign thresholds used by the cascade.
const (
	SystolicVeryHigh   = 180.0
	SystolicHigh       = 160.0
	SystolicBorderline = 100.0
	SystolicVeryLow    = 90.0
	DiastolicVeryHigh  = 120.0
	DiastolicHigh      = 100.0
	FeverVeryHighC     = 39.5
	FeverC             = 38.0
	IntensePain        = 8
)

// Reason strings. Flag lists are appended after the prefixes.
const (
	ReasonRedSymptomsPrefix    = "Sintomas de alto risco: "
	ReasonSystolicVeryHigh     = "Pressão sistólica muito elevada (≥180)."
	ReasonDiastolicVeryHigh    = "Pressão diastólica muito elevada (≥120)."
	ReasonSystolicVeryLow      = "Pressão sistólica muito baixa (<90)."
	ReasonFeverVeryHigh        = "Febre muito alta (≥39,5 °C)."
	ReasonFever                = "Febre (≥38,0 °C)."
	ReasonSystolicHigh         = "Pressão sistólica elevada (160–179)."
	ReasonDiastolicHigh        = "Pressão diastólica elevada (100–119)."
	ReasonSystolicBorderline   = "Pressão sistólica baixa-limítrofe (90–99)."
	ReasonYellowSymptomsPrefix = "Sintomas com prioridade: "
	ReasonIntensePain          = "Dor intensa (≥8/10)."
	ReasonNoRisk               = "Sem sinais imediatos de alto risco detectados."
)

// Cascade is the canonical classifier: RED rules first, then YELLOW, then
// the GREEN default. Every fired rule contributes a reason.
type Cascade struct {
	catalog *symptom.Catalog
	mapper  *symptom.Mapper
}

var defaultCascade = NewCascade(nil, nil)

// NewCascade returns a Cascade. Nil arguments use the defaults.
func NewCascade(catalog *symptom.Catalog, mapper *symptom.Mapper) *Cascade {
	if catalog == nil {
		catalog = symptom.DefaultCatalog()
	}
	if mapper == nil {
		mapper = symptom.NewMapper(nil)
	}
	return &Cascade{catalog: catalog, mapper: mapper}
}

// Name implements Classifier.
func (c *Cascade) Name() string { return StrategyCascade }

// Classify implements Classifier.
func (c *Cascade) Classify(in *Input) *Result {
	mp := c.mapper.Map(in.FreeText, in.TempC)
	rules := firedRules(mp.Hits)

	// soft yellow flags stay out of the merged set
	merged := symptom.SetOf(in.Selected).Union(mp.Red, c.catalog.YellowIn(mp.Yellow))

	if reasons := c.redReasons(in, merged); len(reasons) > 0 {
		return newResult(c.Name(), TierRed, reasons, mp.Items, rules)
	}

	yellowFlags := c.catalog.YellowIn(merged).Union(c.catalog.NotYellow(mp.Yellow))
	if reasons := c.yellowReasons(in, yellowFlags); len(reasons) > 0 {
		return newResult(c.Name(), TierYellow, reasons, mp.Items, rules)
	}

	return newResult(c.Name(), TierGreen, []string{ReasonNoRisk}, mp.Items, rules)
}

func (c *Cascade) redReasons(in *Input, merged symptom.Set) []string {
	var reasons []string
	if hits := c.catalog.RedIn(merged); hits.Len() > 0 {
		reasons = append(reasons, ReasonRedSymptomsPrefix+hits.Join(", "))
	}
	if atLeast(in.Systolic, SystolicVeryHigh) {
		reasons = append(reasons, ReasonSystolicVeryHigh)
	}
	if atLeast(in.Diastolic, DiastolicVeryHigh) {
		reasons = append(reasons, ReasonDiastolicVeryHigh)
	}
	if below(in.Systolic, SystolicVeryLow) {
		reasons = append(reasons, ReasonSystolicVeryLow)
	}
	if atLeast(in.TempC, FeverVeryHighC) {
		reasons = append(reasons, ReasonFeverVeryHigh)
	}
	return reasons
}

func (c *Cascade) yellowReasons(in *Input, flags symptom.Set) []string {
	var reasons []string
	if atLeast(in.TempC, FeverC) {
		reasons = append(reasons, ReasonFever)
	}
	if within(in.Systolic, SystolicHigh, SystolicVeryHigh) {
		reasons = append(reasons, ReasonSystolicHigh)
	}
	if within(in.Diastolic, DiastolicHigh, DiastolicVeryHigh) {
		reasons = append(reasons, ReasonDiastolicHigh)
	}
	if within(in.Systolic, SystolicVeryLow, SystolicBorderline) {
		reasons = append(reasons, ReasonSystolicBorderline)
	}
	if flags.Len() > 0 {
		reasons = append(reasons, ReasonYellowSymptomsPrefix+flags.Join(", "))
	}
	if in.Pain >= IntensePain {
		reasons = append(reasons, ReasonIntensePain)
	}
	return reasons
}
