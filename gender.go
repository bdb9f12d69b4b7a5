package namepop

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Gender is one of the two fixed birth-record categories. The zero value is
// Male.
type Gender int

const (
	Male Gender = iota
	Female
)

// Genders lists both tags in canonical enumeration order: male, then female.
func Genders() [2]Gender {
	return [2]Gender{Male, Female}
}

func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	}
	return fmt.Sprintf("Gender(%d)", int(g))
}

// Short returns the single-letter tag used by the raw yearly count files.
func (g Gender) Short() string {
	switch g {
	case Male:
		return "m"
	case Female:
		return "f"
	}
	return "?"
}

// ParseGender maps a raw file tag ("M" or "F", either case) to a Gender.
func ParseGender(tag string) (Gender, error) {
	switch tag {
	case "M", "m":
		return Male, nil
	case "F", "f":
		return Female, nil
	}
	return 0, fmt.Errorf("unknown gender tag %q", tag)
}

// GenderMap pairs one value per gender so male/female code paths are not
// duplicated. The two slots are plain struct fields, which makes the key set
// closed at compile time; Get and Set exist for callers that hold a Gender
// value rather than a field name.
type GenderMap[T any] struct {
	Male   T
	Female T
}

// NewGenderMap builds a GenderMap from one value per gender.
func NewGenderMap[T any](male, female T) GenderMap[T] {
	return GenderMap[T]{Male: male, Female: female}
}

// Get returns the slot for g. A Gender outside the two declared constants is
// a programming error and panics.
func (m GenderMap[T]) Get(g Gender) T {
	switch g {
	case Male:
		return m.Male
	case Female:
		return m.Female
	}
	panic(fmt.Sprintf("namepop: invalid gender %d", int(g)))
}

// Set stores v in the slot for g.
func (m *GenderMap[T]) Set(g Gender, v T) {
	switch g {
	case Male:
		m.Male = v
	case Female:
		m.Female = v
	default:
		panic(fmt.Sprintf("namepop: invalid gender %d", int(g)))
	}
}

// MapValues applies f to each slot independently, producing a new map of the
// result type. It is a package function because Go methods cannot introduce
// type parameters.
func MapValues[T, U any](m GenderMap[T], f func(T) U) GenderMap[U] {
	return MapItems(m, func(_ Gender, v T) U { return f(v) })
}

// MapItems is MapValues with the gender tag passed alongside each value,
// applied in enumeration order (male, then female).
func MapItems[T, U any](m GenderMap[T], f func(Gender, T) U) GenderMap[U] {
	return GenderMap[U]{
		Male:   f(Male, m.Male),
		Female: f(Female, m.Female),
	}
}

// Number covers the value types a GenderMap can sum over.
type Number interface {
	~int | ~int64 | ~float64
}

// Sum adds the two slots together.
func Sum[T Number](m GenderMap[T]) T {
	return m.Male + m.Female
}

// NormalizeName canonicalizes a name for storage and lookup: first rune
// upper-cased, remainder lower-cased. All names in the store are in this
// form, so callers normalize before querying.
func NormalizeName(name string) string {
	if name == "" {
		return name
	}
	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first)) + strings.ToLower(name[size:])
}
