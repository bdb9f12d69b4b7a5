package namepop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGender(t *testing.T) {
	t.Parallel()

	for tag, want := range map[string]Gender{"M": Male, "m": Male, "F": Female, "f": Female} {
		got, err := ParseGender(tag)
		require.NoError(t, err, "tag %q", tag)
		assert.Equal(t, want, got, "tag %q", tag)
	}

	_, err := ParseGender("X")
	assert.Error(t, err)
	_, err = ParseGender("")
	assert.Error(t, err)
}

func TestGenders_Order(t *testing.T) {
	t.Parallel()
	assert.Equal(t, [2]Gender{Male, Female}, Genders())
}

func TestGender_Strings(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "male", Male.String())
	assert.Equal(t, "female", Female.String())
	assert.Equal(t, "m", Male.Short())
	assert.Equal(t, "f", Female.Short())
}

func TestGenderMap_GetSet(t *testing.T) {
	t.Parallel()

	m := NewGenderMap(10, 20)
	assert.Equal(t, 10, m.Get(Male))
	assert.Equal(t, 20, m.Get(Female))

	m.Set(Male, 11)
	m.Set(Female, 21)
	assert.Equal(t, 11, m.Male)
	assert.Equal(t, 21, m.Female)
}

func TestGenderMap_InvalidTagPanics(t *testing.T) {
	t.Parallel()

	m := NewGenderMap(1, 2)
	assert.Panics(t, func() { m.Get(Gender(7)) })
	assert.Panics(t, func() { m.Set(Gender(7), 3) })
}

func TestGenderMap_Sum(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 30, Sum(NewGenderMap(10, 20)))
	assert.Equal(t, 1.5, Sum(NewGenderMap(1.0, 0.5)))
}

func TestGenderMap_MapValues(t *testing.T) {
	t.Parallel()

	m := MapValues(NewGenderMap(2, 3), func(v int) int { return v * v })
	assert.Equal(t, NewGenderMap(4, 9), m)
}

func TestGenderMap_MapItemsOrderAndTags(t *testing.T) {
	t.Parallel()

	var order []Gender
	m := MapItems(NewGenderMap("a", "b"), func(g Gender, v string) string {
		order = append(order, g)
		return g.Short() + v
	})
	assert.Equal(t, []Gender{Male, Female}, order)
	assert.Equal(t, NewGenderMap("ma", "fb"), m)
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"alex", "Alex"},
		{"ALEX", "Alex"},
		{"mary-anne", "Mary-anne"},
		{"éloise", "Éloise"},
		{"a", "A"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in), "input %q", tt.in)
	}
}
