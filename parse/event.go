// Package parse turns raw source text into a generic concrete tree,
// driven entirely by a declarative table of delimiters instead of a fixed
// grammar. Text flows one way: scanner → classifier → event stream →
// extractor → tree, with normalization passes applied afterwards.
package parse

// EventKind classifies a delimiter occurrence or text span.
type EventKind int

const (
	EventText EventKind = iota
	EventComment
	EventQuote
	EventLineEnd
	EventStatementEnd
	EventBlockStart
	EventBlockEnd
	EventSeparator
	EventKeyword
	EventOpInfix
	EventOpPrefix
	EventOpSuffix
)

var eventKindNames = map[EventKind]string{
	EventText:         "text",
	EventComment:      "comment",
	EventQuote:        "quote",
	EventLineEnd:      "line-end",
	EventStatementEnd: "statement-end",
	EventBlockStart:   "block-start",
	EventBlockEnd:     "block-end",
	EventSeparator:    "separator",
	EventKeyword:      "keyword",
	EventOpInfix:      "op-inf",
	EventOpPrefix:     "op-pre",
	EventOpSuffix:     "op-suf",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is a classified, positioned occurrence of text or a delimiter.
// It references the source text rather than copying it; the span is
// sliced lazily and cached on first read. Events are created by a
// classifier and consumed once by the extractor.
type Event struct {
	Kind  EventKind
	Start int
	End   int
	// Value holds the delimiter literal for delimiter events, "" for text.
	Value string

	source  string
	text    string
	hasText bool
}

// Text returns the source span covered by the event.
func (e *Event) Text() string {
	if !e.hasText {
		e.text = e.source[e.Start:e.End]
		e.hasText = true
	}
	return e.text
}

func (e *Event) String() string {
	s := "(event " + e.Kind.String() + " " + e.Text()
	if e.Value != "" {
		s += " " + e.Value
	}
	return s + ")"
}
