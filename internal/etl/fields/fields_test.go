package fields

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(t *testing.T, items []Item) []string {
	t.Helper()
	out := make([]string, 0, len(items))
	for _, it := range items {
		require.False(t, it.IsRecord())
		out = append(out, it.Name)
	}
	return out
}

func TestGenres(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"Science Fiction Action", []string{"Science Fiction", "Action"}},
		{"Action Adventure", []string{"Action", "Adventure"}},
		{"Drama TV Movie", []string{"Drama", "TV Movie"}},
		{"Action Science", []string{"Action", "Science"}},
		{"  Comedy   Romance ", []string{"Comedy", "Romance"}},
		{"", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, names(t, slices.Collect(Genres(tc.raw))))
		})
	}
}

func TestGenreParser_CustomTableAndRestart(t *testing.T) {
	p := NewGenreParser(map[Pair]string{{"Space", "Opera"}: "Space Opera"})
	seq := p.Parse("Space Opera Science Fiction")
	want := []string{"Space Opera", "Science", "Fiction"}
	assert.Equal(t, want, names(t, slices.Collect(seq)))
	assert.Equal(t, want, names(t, slices.Collect(seq)), "sequence can be iterated again")
}

func TestGenres_EarlyStop(t *testing.T) {
	var got []string
	for it := range Genres("Action Adventure Drama") {
		got = append(got, it.Name)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"Action", "Adventure"}, got)
}

func TestKeywords(t *testing.T) {
	assert.Equal(t, []string{"culture", "clash", "future"}, names(t, slices.Collect(Keywords(" culture clash\tfuture "))))
	assert.Empty(t, slices.Collect(Keywords("   ")))
}

type fakeRecognizer struct{ people []string }

func (f fakeRecognizer) People(string) []string { return f.people }

func TestCastParser(t *testing.T) {
	p := CastParser{Recognizer: fakeRecognizer{people: []string{"Sam Worthington", " Zoe Saldana ", "Sam Worthington", "", "Sigourney Weaver"}}}
	got := names(t, slices.Collect(p.Parse("Sam Worthington Zoe Saldana Sigourney Weaver")))
	assert.Equal(t, []string{"Sam Worthington", "Zoe Saldana", "Sigourney Weaver"}, got)

	assert.Empty(t, slices.Collect(p.Parse("  ")))
	assert.Empty(t, slices.Collect(CastParser{}.Parse("Someone")))
}

func TestStructured(t *testing.T) {
	items := slices.Collect(Structured("[{'id': 1, 'name': 'A'}]"))
	require.Len(t, items, 1)
	id, ok := items[0].Int64("id")
	require.True(t, ok)
	assert.EqualValues(t, 1, id)
	name, ok := items[0].String("name")
	require.True(t, ok)
	assert.Equal(t, "A", name)

	assert.Empty(t, slices.Collect(Structured("not json")))
	assert.Empty(t, slices.Collect(Structured("")))
	assert.Empty(t, slices.Collect(Structured("   ")))
}

func TestStructured_Shapes(t *testing.T) {
	single := slices.Collect(Structured(`{"iso_3166_1": "US", "name": "United States of America"}`))
	require.Len(t, single, 1)
	iso, _ := single[0].String("iso_3166_1")
	assert.Equal(t, "US", iso)

	mixed := slices.Collect(Structured(`[{"id": 2}, 3, "x", {"id": 4}]`))
	require.Len(t, mixed, 2)

	// apostrophes inside values break the quote repair
	assert.Empty(t, slices.Collect(Structured(`[{'name': "Ocean's Eleven"}]`)))
	assert.Empty(t, slices.Collect(Structured(`[1, 2]`)))
}

func TestItemAccessors(t *testing.T) {
	items := slices.Collect(Structured(`[{"id": 7.0, "gender": 2, "big": 12345678901234, "job": "Director", "frac": 1.5}]`))
	require.Len(t, items, 1)
	it := items[0]

	n, ok := it.Int64("id")
	assert.True(t, ok)
	assert.EqualValues(t, 7, n)

	g, ok := it.Int("gender")
	assert.True(t, ok)
	assert.Equal(t, 2, g)

	big, ok := it.Int64("big")
	assert.True(t, ok)
	assert.EqualValues(t, 12345678901234, big)

	_, ok = it.Int64("frac")
	assert.False(t, ok)

	_, ok = it.String("missing")
	assert.False(t, ok)

	s, ok := it.String("gender")
	assert.True(t, ok)
	assert.Equal(t, "2", s)

	_, ok = NameItem("Drama").Value("name")
	assert.False(t, ok)
}

func TestInt64(t *testing.T) {
	n, err := Int64(" 237000000 ")
	require.NoError(t, err)
	assert.EqualValues(t, 237000000, *n)

	n, err = Int64("1500.0")
	require.NoError(t, err)
	assert.EqualValues(t, 1500, *n)

	n, err = Int64("")
	require.NoError(t, err)
	assert.Nil(t, n)

	_, err = Int64("12.5")
	assert.Error(t, err)
	_, err = Int64("abc")
	assert.Error(t, err)
	_, err = Int64("NaN")
	assert.Error(t, err)
}

func TestFloat64(t *testing.T) {
	f, err := Float64("7.2")
	require.NoError(t, err)
	assert.InDelta(t, 7.2, *f, 1e-9)

	f, err = Float64("  ")
	require.NoError(t, err)
	assert.Nil(t, f)

	_, err = Float64("seven")
	assert.Error(t, err)
}
