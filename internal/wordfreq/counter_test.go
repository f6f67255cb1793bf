package wordfreq

import (
	"encoding/json"
	"regexp"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount_Examples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Table
	}{
		{
			name:  "repeated word first, ties in first-seen order",
			input: "El perro corre y el perro salta",
			want:  Table{{"perro", 2}, {"corre", 1}, {"salta", 1}},
		},
		{name: "empty", input: "", want: Table{}},
		{name: "only stop words", input: "de la y el", want: Table{}},
		{name: "whitespace only", input: " \t\n ", want: Table{}},
		{
			name:  "case folding and punctuation",
			input: "Gato, GATO; gato! perro.",
			want:  Table{{"gato", 3}, {"perro", 1}},
		},
		{
			name:  "short tokens dropped",
			input: "yo tu mi sol sol",
			want:  Table{{"sol", 2}},
		},
		{
			name:  "accented letters are word characters",
			input: "canción corazón canción",
			want:  Table{{"canción", 2}, {"corazón", 1}},
		},
		{
			name:  "digits and underscores",
			input: "año 2024 snake_case 2024",
			want:  Table{{"2024", 2}, {"año", 1}, {"snake_case", 1}},
		},
		{
			name:  "final sigma folds like the lowercase form",
			input: "ΟΔΟΣ οδος",
			want:  Table{{"οδος", 2}},
		},
		{
			name:  "dotted capital I splits at the combining dot",
			input: "İSTANBUL istanbul",
			want:  Table{{"stanbul", 1}, {"istanbul", 1}},
		},
		{
			name:  "later word overtakes earlier",
			input: "uno dos dos tres tres tres",
			want:  Table{{"tres", 3}, {"dos", 2}, {"uno", 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Count(tt.input))
		})
	}
}

var propertyInputs = []string{
	"",
	"El perro corre y el perro salta",
	"de la y el",
	"Me encanta aprender sobre inteligencia artificial. ¡Me encanta!",
	"La casa de la abuela es la casa más bonita del pueblo, y la abuela lo sabe.",
	"I love learning about artificial intelligence, love it, LOVE IT.",
	"a, b, c; ab-cd_ef 12 123 1234 ñandú ÑANDÚ",
	"línea\nnueva\tcon\r\ntabuladores    y espacios",
}

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

func qualifyingTokens(text string) int {
	n := 0
	for _, tok := range tokenPattern.FindAllString(lower(text), -1) {
		if utf8.RuneCountInString(tok) > 2 && !IsStopWord(tok) {
			n++
		}
	}
	return n
}

func TestCount_Properties(t *testing.T) {
	t.Parallel()

	for _, input := range propertyInputs {
		table := Count(input)

		for _, e := range table {
			assert.Greater(t, utf8.RuneCountInString(e.Word), 2, "short word %q in %q", e.Word, input)
			assert.False(t, IsStopWord(e.Word), "stop word %q in %q", e.Word, input)
			assert.Positive(t, e.Count)
		}

		assert.Equal(t, qualifyingTokens(input), table.Total(), "total for %q", input)

		for i := 1; i < len(table); i++ {
			assert.GreaterOrEqual(t, table[i-1].Count, table[i].Count, "order for %q", input)
		}

		assert.Equal(t, table, Count(input), "idempotence for %q", input)
		assert.Len(t, table.Map(), len(table), "duplicate words for %q", input)
	}
}

func TestIsStopWord(t *testing.T) {
	t.Parallel()

	for _, w := range []string{"de", "la", "y", "el", "en", "que", "a", "los", "se", "del",
		"por", "las", "un", "una", "con", "no", "es", "para", "su", "al"} {
		assert.True(t, IsStopWord(w), w)
	}
	for _, w := range []string{"perro", "De", "", "the"} {
		assert.False(t, IsStopWord(w), w)
	}
}

func TestTable_Top(t *testing.T) {
	t.Parallel()

	table := Count("uno dos dos tres tres tres")

	assert.Equal(t, Table{{"tres", 3}, {"dos", 2}}, table.Top(2))
	assert.Equal(t, table, table.Top(10))
	assert.Equal(t, table, table.Top(0))
	assert.Empty(t, Table{}.Top(10))
}

func TestTable_MarshalJSON_KeepsOrder(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Count("El perro corre y el perro salta"))
	require.NoError(t, err)
	assert.Equal(t, `{"perro":2,"corre":1,"salta":1}`, string(data))

	data, err = json.Marshal(Count(""))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))

	data, err = json.Marshal(Table{{`comillas"raras`, 1}})
	require.NoError(t, err)
	assert.Equal(t, `{"comillas\"raras":1}`, string(data))
}

func TestTable_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var table Table
	require.NoError(t, json.Unmarshal([]byte(`{"tres":3,"dos":2,"uno":1}`), &table))
	assert.Equal(t, Table{{"tres", 3}, {"dos", 2}, {"uno", 1}}, table)

	require.NoError(t, json.Unmarshal([]byte(`{}`), &table))
	assert.Equal(t, Table{}, table)

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &table))
}
