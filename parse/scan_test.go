package parse

import "testing"

func collectHits(s *Scanner) []Hit {
	var hits []Hit
	for s.Next() {
		hits = append(hits, s.Hit())
	}
	return hits
}

func TestScannerFindsDelimiters(t *testing.T) {
	s := NewScanner("a;b;c", []string{";"}, `\`, 0)
	hits := collectHits(s)

	want := []Hit{
		{Start: 0, End: 2, Delim: ";"},
		{Start: 2, End: 4, Delim: ";"},
		{Start: 4, End: 5, Delim: ""},
	}
	if len(hits) != len(want) {
		t.Fatalf("got %d hits, want %d: %v", len(hits), len(want), hits)
	}
	for i := range want {
		if hits[i] != want[i] {
			t.Errorf("hit[%d] = %+v, want %+v", i, hits[i], want[i])
		}
	}
}

func TestScannerSkipsEscapedDelimiter(t *testing.T) {
	s := NewScanner(`a\;b;c`, []string{";"}, `\`, 0)
	hits := collectHits(s)

	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2: %v", len(hits), hits)
	}
	if hits[0].Delim != ";" || hits[0].End != 5 {
		t.Errorf("hit[0] = %+v, want the unescaped semicolon at 4", hits[0])
	}
	if hits[1].Delim != "" || hits[1].Start != 5 || hits[1].End != 6 {
		t.Errorf("hit[1] = %+v, want trailing fragment", hits[1])
	}
}

func TestScannerEscapedThenUnescapedInSameWindow(t *testing.T) {
	// Both occurrences fit in one window; the search must resume past the
	// escaped one instead of giving up on the window.
	s := NewScanner(`\;;x`, []string{";"}, `\`, 0)
	hits := collectHits(s)

	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2: %v", len(hits), hits)
	}
	if hits[0] != (Hit{Start: 0, End: 3, Delim: ";"}) {
		t.Errorf("hit[0] = %+v, want the second semicolon", hits[0])
	}
}

func TestScannerEarliestDelimiterWins(t *testing.T) {
	s := NewScanner("a{b;c", []string{";", "{"}, `\`, 0)
	s.Next()
	if got := s.Hit(); got.Delim != "{" || got.End != 2 {
		t.Errorf("first hit = %+v, want the brace at 1", got)
	}
}

func TestScannerTrailingFragmentOnly(t *testing.T) {
	s := NewScanner("no delimiters here", []string{";"}, `\`, 0)
	hits := collectHits(s)

	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1: %v", len(hits), hits)
	}
	if hits[0] != (Hit{Start: 0, End: 18, Delim: ""}) {
		t.Errorf("hit = %+v", hits[0])
	}
}

func TestScannerEmptyInput(t *testing.T) {
	s := NewScanner("", []string{";"}, `\`, 0)
	if s.Next() {
		t.Errorf("Next on empty input returned true")
	}
}

func TestScannerGapFolding(t *testing.T) {
	// The delimiter sits past the first window. The gap is folded into the
	// span rather than emitted on its own.
	text := "aaaaaaaaaa;b"
	s := NewScanner(text, []string{";"}, `\`, 4)
	hits := collectHits(s)

	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2: %v", len(hits), hits)
	}
	if hits[0] != (Hit{Start: 0, End: 11, Delim: ";"}) {
		t.Errorf("hit[0] = %+v, want the whole gap plus delimiter", hits[0])
	}
	if hits[1] != (Hit{Start: 11, End: 12, Delim: ""}) {
		t.Errorf("hit[1] = %+v", hits[1])
	}
}

func TestScannerDelimiterBeyondWindowInvisibleThatStep(t *testing.T) {
	// With lookahead 2 the semicolon at offset 4 is found on a later step;
	// no hit is lost, only delayed.
	s := NewScanner("abcd;e", []string{";"}, `\`, 2)
	hits := collectHits(s)

	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2: %v", len(hits), hits)
	}
	if hits[0].Delim != ";" || hits[0].Start != 0 || hits[0].End != 5 {
		t.Errorf("hit[0] = %+v", hits[0])
	}
}

func TestScannerMultiByteDelimiter(t *testing.T) {
	s := NewScanner("x/*y*/z", []string{"/*", "*/"}, `\`, 0)
	hits := collectHits(s)

	want := []Hit{
		{Start: 0, End: 3, Delim: "/*"},
		{Start: 3, End: 6, Delim: "*/"},
		{Start: 6, End: 7, Delim: ""},
	}
	if len(hits) != len(want) {
		t.Fatalf("got %d hits, want %d: %v", len(hits), len(want), hits)
	}
	for i := range want {
		if hits[i] != want[i] {
			t.Errorf("hit[%d] = %+v, want %+v", i, hits[i], want[i])
		}
	}
}

func TestScannerNoEscape(t *testing.T) {
	s := NewScanner(`\;`, []string{";"}, "", 0)
	s.Next()
	if got := s.Hit(); got.Delim != ";" {
		t.Errorf("hit = %+v, want the semicolon (no escape configured)", got)
	}
}
