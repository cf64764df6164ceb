package symptom

import "strings"

// NeckStiffnessFeverC is the temperature at which neck stiffness escalates to RED.
const NeckStiffnessFeverC = 38.0

// Readings carries measurements a rule may condition on besides the phrase.
type Readings struct {
	TempC *float64
}

// Outcome is the flag a rule emits and the acuity it carries.
type Outcome struct {
	Flag     Flag
	Severity Severity
}

func red(f Flag) Outcome    { return Outcome{Flag: f, Severity: SeverityRed} }
func yellow(f Flag) Outcome { return Outcome{Flag: f, Severity: SeverityYellow} }

// Rule maps one root symptom to a flag. Escalate is optional; when it is nil
// or reports false the Otherwise outcome applies. An empty outcome flag means
// the rule emits nothing for that branch.
type Rule struct {
	Name      string
	Match     func(Phrase) bool
	Escalate  func(Phrase, Readings) bool
	Escalated Outcome
	Otherwise Outcome
}

// Apply evaluates r against p.
func (r Rule) Apply(p Phrase, rd Readings) (Outcome, bool) {
	if r.Match == nil || !r.Match(p) {
		return Outcome{}, false
	}
	out := r.Otherwise
	if r.Escalate != nil && r.Escalate(p, rd) {
		out = r.Escalated
	}
	return out, out.Flag != ""
}

// DefaultRules returns the keyword rule table in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:      "chest_pain",
			Match:     anyKeyword("dor no peito", "pressao no peito", "aperto no peito"),
			Otherwise: red(FlagChestPain),
		},
		{
			Name:      "shortness_of_breath",
			Match:     anyKeyword("falta de ar", "dispneia"),
			Escalate:  qualified("grave", "importante", "muita", "sufoc", "repouso", "piorando"),
			Escalated: red(FlagSevereBreathing),
			Otherwise: yellow(FlagMildBreathing),
		},
		{
			Name:      "fainting",
			Match:     anyKeyword("desmaio", "desmai", "inconscien", "apagao"),
			Otherwise: red(FlagFainting),
		},
		{
			Name:      "confusion",
			Match:     anyKeyword("confus", "desorient", "delirio"),
			Otherwise: red(FlagConfusion),
		},
		{
			Name:      "bleeding",
			Match:     anyKeyword("sangram", "hemorrag"),
			Escalate:  qualified("nao para", "muito", "excessiv", "abundant"),
			Escalated: red(FlagUncontrolledBleed),
			Otherwise: yellow(FlagBleeding),
		},
		{
			Name:      "neck_stiffness",
			Match:     allOf(anyKeyword("rigidez"), anyKeyword("nuca", "pescoco")),
			Escalate:  feverAtLeast(NeckStiffnessFeverC),
			Escalated: red(FlagNeckStiffnessFever),
			Otherwise: yellow(FlagNeckStiffness),
		},
		{
			Name:      "seizure",
			Match:     anyKeyword("convuls", "ataque epilept"),
			Otherwise: red(FlagSeizure),
		},
		{
			Name:      "abdominal_pain",
			Match:     anyOf(anyKeyword("dor abdominal"), allOf(anyKeyword("dor"), anyKeyword("barriga"))),
			Otherwise: yellow(FlagAbdominalPain),
		},
		{
			Name:      "vomiting",
			Match:     anyKeyword("vomit", "enjoo", "enjo"),
			Otherwise: yellow(FlagVomiting),
		},
		{
			Name:      "headache",
			Match:     anyOf(anyKeyword("dor de cabeca", "cefaleia"), rawKeyword("dor de cabeça")),
			Otherwise: yellow(FlagHeadache),
		},
		{
			Name:      "fall_with_pain",
			Match:     allOf(anyKeyword("queda"), anyKeyword("dor")),
			Otherwise: yellow(FlagFallWithPain),
		},
	}
}

// hasKeyword tests kw against the normalized phrase. Keywords must be
// accent-free; use rawKeyword to match accented spellings.
func hasKeyword(p Phrase, kw string) bool {
	return strings.Contains(p.Norm, kw)
}

// rawKeyword matches against the lower-cased phrase with accents kept.
func rawKeyword(kws ...string) func(Phrase) bool {
	return func(p Phrase) bool {
		for _, kw := range kws {
			if strings.Contains(p.Lower, kw) {
				return true
			}
		}
		return false
	}
}

func anyKeyword(kws ...string) func(Phrase) bool {
	return func(p Phrase) bool {
		for _, kw := range kws {
			if hasKeyword(p, kw) {
				return true
			}
		}
		return false
	}
}

func allOf(ms ...func(Phrase) bool) func(Phrase) bool {
	return func(p Phrase) bool {
		for _, m := range ms {
			if !m(p) {
				return false
			}
		}
		return true
	}
}

func anyOf(ms ...func(Phrase) bool) func(Phrase) bool {
	return func(p Phrase) bool {
		for _, m := range ms {
			if m(p) {
				return true
			}
		}
		return false
	}
}

func qualified(kws ...string) func(Phrase, Readings) bool {
	match := anyKeyword(kws...)
	return func(p Phrase, _ Readings) bool { return match(p) }
}

func feverAtLeast(c float64) func(Phrase, Readings) bool {
	return func(_ Phrase, rd Readings) bool {
		return rd.TempC != nil && *rd.TempC >= c
	}
}
