package latin

import "strings"

// Change records one character rewrite: where it happened, what was
// replaced, and which rule decided it. Every transformation in this
// package preserves length, so positions always refer to the input text.
type Change struct {
	Pos     int    `json:"pos"`
	From    string `json:"from"`
	To      string `json:"to"`
	Rule    string `json:"rule"`
	Context string `json:"context,omitempty"`
}

// Result pairs an input with its normalized form and the full change
// trail. An untouched input has an empty Changes list.
type Result struct {
	Original   string   `json:"original"`
	Normalized string   `json:"normalized"`
	Changes    []Change `json:"changes"`
}

const contextRunes = 3

// contextWindow renders up to three runes of context on each side of idx,
// with the rune at idx bracketed: "ser[u]us".
func contextWindow(word []rune, idx int) string {
	start := idx - contextRunes
	if start < 0 {
		start = 0
	}
	end := idx + contextRunes + 1
	if end > len(word) {
		end = len(word)
	}
	var b strings.Builder
	b.WriteString(string(word[start:idx]))
	b.WriteByte('[')
	b.WriteRune(word[idx])
	b.WriteByte(']')
	b.WriteString(string(word[idx+1 : end]))
	return b.String()
}
