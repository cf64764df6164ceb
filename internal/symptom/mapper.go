package symptom

// Hit records one rule firing on one phrase.
type Hit struct {
	Rule    string
	Phrase  int
	Outcome Outcome
}

// Mapping is the result of mapping free text to flags.
type Mapping struct {
	Red    Set
	Yellow Set // may hold soft flags outside the YELLOW catalog
	Items  []string
	Hits   []Hit
}

// Mapper evaluates a rule table against free-text phrases. It holds no
// mutable state and may be shared between goroutines.
type Mapper struct {
	rules []Rule
}

// NewMapper returns a Mapper over rules. A nil or empty table uses DefaultRules.
func NewMapper(rules []Rule) *Mapper {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	cp := make([]Rule, len(rules))
	copy(cp, rules)
	return &Mapper{rules: cp}
}

var defaultMapper = NewMapper(nil)

// Map splits text and maps it with the default rule table.
func Map(text string, tempC *float64) Mapping {
	return defaultMapper.Map(text, tempC)
}

// Map splits text into phrases and maps them.
func (m *Mapper) Map(text string, tempC *float64) Mapping {
	return m.MapPhrases(Phrases(text), Readings{TempC: tempC})
}

// MapPhrases evaluates every rule against every phrase. Rules are
// independent: one phrase can raise several flags across both severities.
func (m *Mapper) MapPhrases(phrases []Phrase, rd Readings) Mapping {
	mp := Mapping{
		Red:    make(Set),
		Yellow: make(Set),
		Items:  make([]string, 0, len(phrases)),
	}
	for i, p := range phrases {
		mp.Items = append(mp.Items, p.Raw)
		for _, r := range m.rules {
			out, ok := r.Apply(p, rd)
			if !ok {
				continue
			}
			switch out.Severity {
			case SeverityRed:
				mp.Red.Add(out.Flag)
			case SeverityYellow:
				mp.Yellow.Add(out.Flag)
			}
			mp.Hits = append(mp.Hits, Hit{Rule: r.Name, Phrase: i, Outcome: out})
		}
	}
	return mp
}

// RuleNames lists the rule names in evaluation order.
func (m *Mapper) RuleNames() []string {
	names := make([]string, len(m.rules))
	for i, r := range m.rules {
		names[i] = r.Name
	}
	return names
}
