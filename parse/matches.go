package parse

import (
	"regexp"
	"sort"
)

// matchSpan is one segment of a text split against a pattern set: either
// a pattern occurrence (pattern >= 0) or the plain text between two
// occurrences (pattern == -1).
type matchSpan struct {
	start   int
	end     int
	pattern int
	// value carries the pattern's named "value" group when it has one.
	value string
}

// matchSpans splits text against the given patterns, closest occurrence
// first; at equal positions the longest occurrence wins. Overlapping
// later occurrences are dropped. The unmatched gaps are returned as plain
// spans so the caller sees the whole text partitioned in order.
func matchSpans(text string, patterns []*regexp.Regexp) []matchSpan {
	var found []matchSpan
	for pi, p := range patterns {
		valueGroup := p.SubexpIndex("value")
		for _, m := range p.FindAllStringSubmatchIndex(text, -1) {
			s := matchSpan{start: m[0], end: m[1], pattern: pi}
			if valueGroup > 0 && m[2*valueGroup] >= 0 {
				s.value = text[m[2*valueGroup]:m[2*valueGroup+1]]
			}
			found = append(found, s)
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].start != found[j].start {
			return found[i].start < found[j].start
		}
		return found[i].end > found[j].end
	})

	var spans []matchSpan
	offset := 0
	for _, m := range found {
		if m.start < offset {
			continue
		}
		if m.start > offset {
			spans = append(spans, matchSpan{start: offset, end: m.start, pattern: -1})
		}
		spans = append(spans, m)
		offset = m.end
	}
	if offset < len(text) {
		spans = append(spans, matchSpan{start: offset, end: len(text), pattern: -1})
	}
	return spans
}
