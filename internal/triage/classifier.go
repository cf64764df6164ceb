package triage

import (
	"fmt"

	"github.com/linnemanlabs/voxa/internal/symptom"
)

// Classifier assigns a tier to a validated Input. Implementations are pure:
// the same Input always yields the same tier, reasons and items.
type Classifier interface {
	Name() string
	Classify(in *Input) *Result
}

// Strategy names accepted by NewClassifier.
const (
	StrategyCascade = "cascade"
	StrategyScore   = "score"
)

// NewClassifier returns the classifier registered under name. Both share the
// default flag catalog and rule table.
func NewClassifier(name string) (Classifier, error) {
	switch name {
	case StrategyCascade, "":
		return NewCascade(nil, nil), nil
	case StrategyScore:
		return NewScorer(nil, nil), nil
	default:
		return nil, fmt.Errorf("unknown classification strategy %q (want %q or %q)", name, StrategyCascade, StrategyScore)
	}
}

// Classify runs the reason cascade over one submission. It validates first,
// so an out-of-range pain score fails before any matching happens.
func Classify(selected []string, freeText string, systolic, diastolic, tempC *float64, pain int) (Tier, []string, []string, error) {
	in, err := NewInput(selected, freeText, Vitals{Systolic: systolic, Diastolic: diastolic, TempC: tempC}, pain)
	if err != nil {
		return "", nil, nil, err
	}
	r := defaultCascade.Classify(in)
	return r.Tier, r.Reasons, r.FreeText, nil
}

// firedRules lists rule names in first-hit order without repeats.
func firedRules(hits []symptom.Hit) []string {
	if len(hits) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(hits))
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		if _, ok := seen[h.Rule]; ok {
			continue
		}
		seen[h.Rule] = struct{}{}
		out = append(out, h.Rule)
	}
	return out
}

func atLeast(v *float64, limit float64) bool { return v != nil && *v >= limit }
func below(v *float64, limit float64) bool   { return v != nil && *v < limit }
func within(v *float64, lo, hi float64) bool { return v != nil && *v >= lo && *v < hi }
