package symptom

import (
	"slices"
	"strings"
)

// Flag is a canonical symptom label. Flags compare by exact string identity.
type Flag string

// Severity is the acuity a flag carries.
type Severity string

const (
	SeverityRed    Severity = "red"
	SeverityYellow Severity = "yellow"
)

// High-acuity flags.
const (
	FlagChestPain          Flag = "Dor no peito forte/pressão no peito"
	FlagSevereBreathing    Flag = "Falta de ar importante"
	FlagFainting           Flag = "Desmaio ou inconsciência"
	FlagConfusion          Flag = "Confusão mental intensa"
	FlagUncontrolledBleed  Flag = "Sangramento intenso que não para"
	FlagNonBlanchingRash   Flag = "Erupção que não some ao pressionar com um copo (não-esbranquiçável)"
	FlagNeckStiffnessFever Flag = "Rigidez de nuca com febre"
	FlagSeizure            Flag = "Convulsão"
	FlagBrokenLeg          Flag = "Perna Quebrada"
	FlagBrokenArm          Flag = "Braço Quebrado"
)

// Moderate-acuity flags.
const (
	FlagMildBreathing Flag = "Falta de ar leve/moderada"
	FlagAbdominalPain Flag = "Dor abdominal forte"
	FlagVomiting      Flag = "Vômitos persistentes"
	FlagHeadache      Flag = "Dor de cabeça forte"
	FlagModeratePain  Flag = "Dor moderada (7–8/10)"
	FlagFallWithPain  Flag = "Queda recente com dor"
)

// Soft flags only produced from free text. They are outside both catalogs
// and surface as YELLOW reasons without taking part in catalog matching.
const (
	FlagBleeding      Flag = "Sangramento (avaliar)"
	FlagNeckStiffness Flag = "Rigidez de nuca (sem febre informada)"
)

// Set is an unordered collection of flags.
type Set map[Flag]struct{}

// NewSet builds a set from flags.
func NewSet(flags ...Flag) Set {
	s := make(Set, len(flags))
	for _, f := range flags {
		s[f] = struct{}{}
	}
	return s
}

// SetOf builds a set from plain strings, as submitted by a form.
func SetOf(labels []string) Set {
	s := make(Set, len(labels))
	for _, l := range labels {
		s[Flag(l)] = struct{}{}
	}
	return s
}

// Has reports whether f is in s.
func (s Set) Has(f Flag) bool {
	_, ok := s[f]
	return ok
}

// Add inserts f into s.
func (s Set) Add(f Flag) { s[f] = struct{}{} }

// Len returns the number of flags in s.
func (s Set) Len() int { return len(s) }

// Union returns a new set with the flags of s and every other set.
func (s Set) Union(others ...Set) Set {
	out := make(Set, len(s))
	for f := range s {
		out[f] = struct{}{}
	}
	for _, o := range others {
		for f := range o {
			out[f] = struct{}{}
		}
	}
	return out
}

// Intersect returns the flags present in both s and o.
func (s Set) Intersect(o Set) Set {
	out := make(Set)
	for f := range s {
		if o.Has(f) {
			out[f] = struct{}{}
		}
	}
	return out
}

// Minus returns the flags of s that are not in o.
func (s Set) Minus(o Set) Set {
	out := make(Set)
	for f := range s {
		if !o.Has(f) {
			out[f] = struct{}{}
		}
	}
	return out
}

// Sorted returns the flags in byte-wise lexical order.
func (s Set) Sorted() []Flag {
	out := make([]Flag, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Join renders the sorted flags separated by sep.
func (s Set) Join(sep string) string {
	sorted := s.Sorted()
	parts := make([]string, len(sorted))
	for i, f := range sorted {
		parts[i] = string(f)
	}
	return strings.Join(parts, sep)
}

// Catalog holds the closed RED and YELLOW flag sets. It is built once and
// only read afterwards, so it is safe to share between goroutines.
type Catalog struct {
	red    Set
	yellow Set
}

var defaultCatalog = &Catalog{
	red: NewSet(
		FlagChestPain,
		FlagSevereBreathing,
		FlagFainting,
		FlagConfusion,
		FlagUncontrolledBleed,
		FlagNonBlanchingRash,
		FlagNeckStiffnessFever,
		FlagSeizure,
		FlagBrokenLeg,
		FlagBrokenArm,
	),
	yellow: NewSet(
		FlagMildBreathing,
		FlagAbdominalPain,
		FlagVomiting,
		FlagHeadache,
		FlagModeratePain,
		FlagFallWithPain,
	),
}

// DefaultCatalog returns the process-wide catalog.
func DefaultCatalog() *Catalog { return defaultCatalog }

// IsRed reports whether f is a RED catalog flag.
func (c *Catalog) IsRed(f Flag) bool { return c.red.Has(f) }

// IsYellow reports whether f is a YELLOW catalog flag.
func (c *Catalog) IsYellow(f Flag) bool { return c.yellow.Has(f) }

// Red returns a copy of the RED set.
func (c *Catalog) Red() Set { return c.red.Union() }

// Yellow returns a copy of the YELLOW set.
func (c *Catalog) Yellow() Set { return c.yellow.Union() }

// RedIn returns the RED catalog flags present in s.
func (c *Catalog) RedIn(s Set) Set { return s.Intersect(c.red) }

// YellowIn returns the YELLOW catalog flags present in s.
func (c *Catalog) YellowIn(s Set) Set { return s.Intersect(c.yellow) }

// NotYellow returns the flags of s outside the YELLOW catalog.
func (c *Catalog) NotYellow(s Set) Set { return s.Minus(c.yellow) }
