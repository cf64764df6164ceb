package triage

import (
	"fmt"

	"github.com/linnemanlabs/voxa/internal/symptom"
)

// Scorer weights and tier cut-offs.
const (
	PointsRedFlag      = 5
	PointsYellowFlag   = 2
	PointsSoftFlag     = 1
	PointsCriticalVit  = 5
	PointsElevatedVit  = 2
	PointsIntensePain  = 2
	PointsModeratePain = 1

	ScoreRed    = 5
	ScoreYellow = 2
)

// Scorer is the additive strategy: points per matched flag and vital bucket,
// summed and cut into tiers. It has no per-rule trail; its single reason
// states the score. It reads the same catalog as the Cascade.
type Scorer struct {
	catalog *symptom.Catalog
	mapper  *symptom.Mapper
}

// NewScorer returns a Scorer. Nil arguments use the defaults.
func NewScorer(catalog *symptom.Catalog, mapper *symptom.Mapper) *Scorer {
	if catalog == nil {
		catalog = symptom.DefaultCatalog()
	}
	if mapper == nil {
		mapper = symptom.NewMapper(nil)
	}
	return &Scorer{catalog: catalog, mapper: mapper}
}

// Name implements Classifier.
func (s *Scorer) Name() string { return StrategyScore }

// Score returns the additive score for in along with the free-text mapping.
func (s *Scorer) Score(in *Input) (int, symptom.Mapping) {
	mp := s.mapper.Map(in.FreeText, in.TempC)
	merged := symptom.SetOf(in.Selected).Union(mp.Red, mp.Yellow)

	score := PointsRedFlag*s.catalog.RedIn(merged).Len() +
		PointsYellowFlag*s.catalog.YellowIn(merged).Len() +
		PointsSoftFlag*s.catalog.NotYellow(mp.Yellow).Len()

	switch {
	case atLeast(in.Systolic, SystolicVeryHigh), below(in.Systolic, SystolicVeryLow):
		score += PointsCriticalVit
	case within(in.Systolic, SystolicHigh, SystolicVeryHigh), within(in.Systolic, SystolicVeryLow, SystolicBorderline):
		score += PointsElevatedVit
	}
	switch {
	case atLeast(in.Diastolic, DiastolicVeryHigh):
		score += PointsCriticalVit
	case within(in.Diastolic, DiastolicHigh, DiastolicVeryHigh):
		score += PointsElevatedVit
	}
	switch {
	case atLeast(in.TempC, FeverVeryHighC):
		score += PointsCriticalVit
	case atLeast(in.TempC, FeverC):
		score += PointsElevatedVit
	}
	switch {
	case in.Pain >= IntensePain:
		score += PointsIntensePain
	case in.Pain >= 5:
		score += PointsModeratePain
	}
	return score, mp
}

// Classify implements Classifier.
func (s *Scorer) Classify(in *Input) *Result {
	score, mp := s.Score(in)

	tier := TierGreen
	switch {
	case score >= ScoreRed:
		tier = TierRed
	case score >= ScoreYellow:
		tier = TierYellow
	}
	reason := fmt.Sprintf("Pontuação de risco: %d (vermelha ≥%d, amarela ≥%d).", score, ScoreRed, ScoreYellow)
	return newResult(s.Name(), tier, []string{reason}, mp.Items, firedRules(mp.Hits))
}
