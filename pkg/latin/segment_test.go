package latin

import "testing"

func TestSplitSegmentsRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"rex",
		"arma uirumque cano",
		"rex   dominus",
		"Veni, uidi, uici!",
		"  leading and trailing  ",
		"line one\r\nline two\n",
		"tab\tseparated\twords",
		"123 456",
		"...",
		"Gallia eft omnis diuisa in partes tres.",
		"sērus in caelum redeās",
		"mixed — punctuation; y: quotes \"here\"",
	}
	for _, input := range tests {
		segs := SplitSegments(input)
		if got := JoinSegments(segs); got != input {
			t.Errorf("JoinSegments(SplitSegments(%q)) = %q, want identical", input, got)
		}
	}
}

func TestSplitSegmentsBoundaries(t *testing.T) {
	segs := SplitSegments("Veni, uidi!")
	want := []Segment{
		{Text: "Veni", Word: true},
		{Text: ", ", Word: false},
		{Text: "uidi", Word: true},
		{Text: "!", Word: false},
	}
	if len(segs) != len(want) {
		t.Fatalf("got %d segments %v, want %d", len(segs), segs, len(want))
	}
	for i, s := range segs {
		if s != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, s, want[i])
		}
	}
}

func TestSplitSegmentsDigitsAreSeparators(t *testing.T) {
	segs := SplitSegments("liber2caput")
	if len(segs) != 3 || !segs[0].Word || segs[1].Word || !segs[2].Word {
		t.Fatalf("got %v, want word/sep/word", segs)
	}
	if segs[1].Text != "2" {
		t.Errorf("separator = %q, want \"2\"", segs[1].Text)
	}
}

func TestSplitSegmentsMacronsStayInWord(t *testing.T) {
	segs := SplitSegments("nāuis longa")
	if len(segs) != 3 {
		t.Fatalf("got %d segments %v, want 3", len(segs), segs)
	}
	if segs[0].Text != "nāuis" || !segs[0].Word {
		t.Errorf("first segment = %+v, want word nāuis", segs[0])
	}
}

func TestSplitSegmentsEmpty(t *testing.T) {
	if segs := SplitSegments(""); len(segs) != 0 {
		t.Errorf("SplitSegments(\"\") = %v, want empty", segs)
	}
}
