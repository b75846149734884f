package ruleset

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// UVRules holds the data-driven side of the u/v classifier: the vowel
// alphabet, morphological exception lists, and the word-initial onset
// clusters that never produce a consonantal v. The positional cascade
// itself lives in code; these tables parameterize it.
type UVRules struct {
	Vowels            string   `yaml:"vowels"`
	PerfectConsonants string   `yaml:"perfect_consonants"`
	VocalicWords      []string `yaml:"vocalic_words"`
	VocalicStems      []string `yaml:"vocalic_stems"`
	OnsetExceptions   []string `yaml:"onset_exceptions"`

	vowelSet   map[rune]bool
	perfectSet map[rune]bool
	wordSet    map[string]bool
	onsetSet   map[string]bool
}

func (u *UVRules) compile() error {
	if u.Vowels == "" {
		return fmt.Errorf("uv rules: empty vowels")
	}
	if u.PerfectConsonants == "" {
		return fmt.Errorf("uv rules: empty perfect_consonants")
	}
	if len(u.VocalicWords) == 0 {
		return fmt.Errorf("uv rules: empty vocalic_words")
	}
	u.vowelSet = make(map[rune]bool, len(u.Vowels)*2)
	for _, r := range u.Vowels {
		u.vowelSet[unicode.ToLower(r)] = true
		u.vowelSet[unicode.ToUpper(r)] = true
	}
	u.perfectSet = make(map[rune]bool, len(u.PerfectConsonants))
	for _, r := range u.PerfectConsonants {
		u.perfectSet[unicode.ToLower(r)] = true
	}
	u.wordSet = make(map[string]bool, len(u.VocalicWords))
	for _, w := range u.VocalicWords {
		u.wordSet[strings.ToLower(w)] = true
	}
	u.onsetSet = make(map[string]bool, len(u.OnsetExceptions))
	for _, o := range u.OnsetExceptions {
		o = strings.ToLower(o)
		if utf8.RuneCountInString(o) != 2 || !strings.HasSuffix(o, "u") {
			return fmt.Errorf("uv rules: onset %q must be a consonant followed by u", o)
		}
		u.onsetSet[o] = true
	}
	for _, s := range u.VocalicStems {
		if s == "" {
			return fmt.Errorf("uv rules: empty vocalic stem")
		}
	}
	return nil
}

// IsVowel reports whether r is a Latin vowel (macron forms included).
func (u *UVRules) IsVowel(r rune) bool { return u.vowelSet[r] }

// IsPerfectConsonant reports whether r precedes u-perfect endings
// (fuit, potuit, habuit...).
func (u *UVRules) IsPerfectConsonant(r rune) bool {
	return u.perfectSet[unicode.ToLower(r)]
}

// IsVocalicWord reports whether the lowercased word is pinned to vocalic u.
func (u *UVRules) IsVocalicWord(word string) bool { return u.wordSet[word] }

// HasVocalicStem reports whether the lowercased word contains a stem whose
// u stays vocalic before a vowel (suav-, statu-, ardu-...).
func (u *UVRules) HasVocalicStem(word string) bool {
	for _, stem := range u.VocalicStems {
		if strings.Contains(word, stem) {
			return true
		}
	}
	return false
}

// IsOnsetException reports whether a word-initial consonant+u cluster is a
// known non-v-producing onset (pu-, cu-, du-...). Cluster is lowercase.
func (u *UVRules) IsOnsetException(cluster string) bool {
	return u.onsetSet[cluster]
}
