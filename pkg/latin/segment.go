package latin

import (
	"strings"
	"unicode"
)

// Segment is one run of input text: either a maximal run of letters (a
// word) or the separator bytes between two words. Splitting a text and
// joining the segments back reproduces the input byte for byte, so
// punctuation, digits and whitespace survive normalization untouched.
type Segment struct {
	Text string
	Word bool
}

// SplitSegments cuts text into alternating word and separator segments.
func SplitSegments(text string) []Segment {
	if text == "" {
		return nil
	}
	var segs []Segment
	start := 0
	word := false
	for i, r := range text {
		w := unicode.IsLetter(r)
		if i == 0 {
			word = w
			continue
		}
		if w != word {
			segs = append(segs, Segment{Text: text[start:i], Word: word})
			start = i
			word = w
		}
	}
	return append(segs, Segment{Text: text[start:], Word: word})
}

// JoinSegments concatenates segment texts in order.
func JoinSegments(segs []Segment) string {
	n := 0
	for _, s := range segs {
		n += len(s.Text)
	}
	var b strings.Builder
	b.Grow(n)
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}
