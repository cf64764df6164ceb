package triage

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Tier is the severity category assigned to a submission.
type Tier string

const (
	// TierRed means immediate risk
	TierRed Tier = "RED"

	// TierYellow means elevated priority
	TierYellow Tier = "YELLOW"

	// TierGreen means routine care
	TierGreen Tier = "GREEN"
)

// Rank orders tiers from GREEN (0) to RED (2). Unknown tiers rank -1.
func (t Tier) Rank() int {
	switch t {
	case TierRed:
		return 2
	case TierYellow:
		return 1
	case TierGreen:
		return 0
	default:
		return -1
	}
}

// Label is the wristband label shown to staff.
func (t Tier) Label() string {
	switch t {
	case TierRed:
		return "PULSEIRA VERMELHA"
	case TierYellow:
		return "PULSEIRA AMARELA"
	case TierGreen:
		return "PULSEIRA VERDE"
	default:
		return string(t)
	}
}

// ParseTier accepts a tier name in any case.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToUpper(strings.TrimSpace(s)))
	if t.Rank() < 0 {
		return "", fmt.Errorf("unknown tier %q", s)
	}
	return t, nil
}

var (
	// ErrInvalidPain is wrapped by validation errors for pain scores outside [0,10].
	ErrInvalidPain = errors.New("pain score must be between 0 and 10")

	// ErrInvalidVital is wrapped by validation errors for non-finite vitals.
	ErrInvalidVital = errors.New("vital sign must be a finite number")
)

// ValidationError names the offending field and value.
type ValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Vitals are optional measurements; nil skips the checks that use them.
type Vitals struct {
	Systolic  *float64 `json:"systolic,omitempty"`
	Diastolic *float64 `json:"diastolic,omitempty"`
	TempC     *float64 `json:"temperature_c,omitempty"`
}

// Input is one triage submission.
type Input struct {
	Selected []string `json:"symptoms"`
	FreeText string   `json:"free_text"`
	Vitals
	Pain int `json:"pain"`
}

// NewInput builds and validates an Input.
func NewInput(selected []string, freeText string, vitals Vitals, pain int) (*Input, error) {
	in := &Input{
		Selected: selected,
		FreeText: freeText,
		Vitals:   vitals,
		Pain:     pain,
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

// Validate checks the caller contract: pain in [0,10] and finite vitals.
func (in *Input) Validate() error {
	var errs []error
	if in.Pain < 0 || in.Pain > 10 {
		errs = append(errs, &ValidationError{Field: "pain", Value: in.Pain, Err: ErrInvalidPain})
	}
	for _, v := range []struct {
		name string
		val  *float64
	}{
		{"systolic", in.Systolic},
		{"diastolic", in.Diastolic},
		{"temperature_c", in.TempC},
	} {
		if v.val != nil && (math.IsNaN(*v.val) || math.IsInf(*v.val, 0)) {
			errs = append(errs, &ValidationError{Field: v.name, Value: *v.val, Err: ErrInvalidVital})
		}
	}
	return errors.Join(errs...)
}

// Result is the outcome of classifying one Input. Reasons is never empty.
type Result struct {
	ID           string    `json:"id,omitempty"`
	Tier         Tier      `json:"tier"`
	Label        string    `json:"label"`
	Reasons      []string  `json:"reasons"`
	FreeText     []string  `json:"free_text_items"`
	Rules        []string  `json:"rules,omitempty"`
	Strategy     string    `json:"strategy"`
	ClassifiedAt time.Time `json:"classified_at,omitzero"`
}

func newResult(strategy string, tier Tier, reasons, items, rules []string) *Result {
	if items == nil {
		items = []string{}
	}
	return &Result{
		Tier:     tier,
		Label:    tier.Label(),
		Reasons:  reasons,
		FreeText: items,
		Rules:    rules,
		Strategy: strategy,
	}
}
