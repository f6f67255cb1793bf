// Package wordfreq counts topical words in free text.
package wordfreq

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MinWordLength is the shortest token, in runes, that is counted.
const MinWordLength = 3

// A word is a maximal run of Unicode letters, digits and underscores.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Entry is a single word and the number of times it occurred.
type Entry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Table is a frequency table ordered by descending count. Words with equal
// counts keep the order in which they first appeared in the text.
type Table []Entry

// Count lowercases text, extracts its words, drops stop words and words
// shorter than MinWordLength, and returns the frequency of the rest.
func Count(text string) Table {
	tokens := wordPattern.FindAllString(lower(text), -1)

	index := make(map[string]int, len(tokens))
	table := make(Table, 0, len(tokens))
	for _, token := range tokens {
		if !qualifies(token) {
			continue
		}
		if i, ok := index[token]; ok {
			table[i].Count++
			continue
		}
		index[token] = len(table)
		table = append(table, Entry{Word: token, Count: 1})
	}

	slices.SortStableFunc(table, func(a, b Entry) int {
		return b.Count - a.Count
	})
	return table
}

// lower applies full Unicode case mapping, so a word-final capital sigma
// becomes ς and İ expands to i plus a combining dot.
func lower(text string) string {
	return cases.Lower(language.Und).String(text)
}

func qualifies(token string) bool {
	return utf8.RuneCountInString(token) >= MinWordLength && !IsStopWord(token)
}

// Top returns the n most frequent entries. A non-positive n returns the
// whole table.
func (t Table) Top(n int) Table {
	if n <= 0 || n >= len(t) {
		return t
	}
	return t[:n]
}

// Total is the number of counted tokens.
func (t Table) Total() int {
	total := 0
	for _, e := range t {
		total += e.Count
	}
	return total
}

func (t Table) Map() map[string]int {
	m := make(map[string]int, len(t))
	for _, e := range t {
		m[e.Word] = e.Count
	}
	return m
}

// MarshalJSON encodes the table as a JSON object whose keys keep table order.
func (t Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Word)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(e.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object produced by MarshalJSON, preserving key order.
func (t *Table) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*t = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("wordfreq: expected JSON object, got %v", tok)
	}

	table := Table{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		word, _ := keyTok.(string)
		var count int
		if err := dec.Decode(&count); err != nil {
			return err
		}
		table = append(table, Entry{Word: word, Count: count})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*t = table
	return nil
}
