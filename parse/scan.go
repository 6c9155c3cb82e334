package parse

import "strings"

// DefaultLookahead bounds how far ahead of the current offset the scanner
// searches for delimiters. Delimiters that start beyond the window are
// invisible to that scan step; this is a documented, tunable limitation
// that keeps per-position cost proportional to delimiters × lookahead.
const DefaultLookahead = 320

// Hit is one scanner result: the span since the previous hit followed by
// the delimiter that ended it. A trailing fragment has Delim == "".
type Hit struct {
	Start int
	End   int
	Delim string
}

// Scanner finds delimiter occurrences in source text, skipping escaped
// ones. It is a finite, single-pass sequence: iterate with Next and read
// the current triple with Hit. A scanner must not be reused after
// exhaustion; make a new one per pass.
type Scanner struct {
	text       string
	delimiters []string
	escape     string
	lookahead  int

	start  int // start of the span being accumulated
	search int // next position to search from
	hit    Hit
	done   bool
}

// NewScanner returns a scanner over text for the given delimiter literals.
// A lookahead of zero or less selects DefaultLookahead.
func NewScanner(text string, delimiters []string, escape string, lookahead int) *Scanner {
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	return &Scanner{
		text:       text,
		delimiters: delimiters,
		escape:     escape,
		lookahead:  lookahead,
	}
}

// Next advances to the next delimiter hit or trailing fragment. It
// returns false once the text is exhausted.
func (s *Scanner) Next() bool {
	if s.done {
		return false
	}
	n := len(s.text)
	for s.search < n {
		best := n
		bestDelim := ""
		limit := min(s.search+s.lookahead, n)
		for _, d := range s.delimiters {
			if j := s.find(d, s.search, limit); j >= 0 && j < best {
				best = j
				bestDelim = d
			}
		}
		if bestDelim == "" {
			// Nothing inside the window: skip ahead without emitting.
			// The gap stays part of the span being accumulated.
			s.search += s.lookahead
			continue
		}
		end := best + len(bestDelim)
		s.hit = Hit{Start: s.start, End: end, Delim: bestDelim}
		s.start = end
		s.search = end
		return true
	}
	if s.start < n {
		s.hit = Hit{Start: s.start, End: n}
		s.start = n
		s.done = true
		return true
	}
	s.done = true
	return false
}

// Hit returns the current triple. Valid only after Next reported true.
func (s *Scanner) Hit() Hit { return s.hit }

// find locates the first unescaped occurrence of delim in [from, limit).
// A candidate whose preceding character is the escape literal is
// invisible; the search resumes after it. The escape check happens per
// candidate, not globally.
func (s *Scanner) find(delim string, from, limit int) int {
	for from < limit {
		j := strings.Index(s.text[from:limit], delim)
		if j < 0 {
			return -1
		}
		j += from
		if s.escaped(j) {
			from = j + 1
			continue
		}
		return j
	}
	return -1
}

func (s *Scanner) escaped(pos int) bool {
	if s.escape == "" || pos < len(s.escape) {
		return false
	}
	return s.text[pos-len(s.escape):pos] == s.escape
}
