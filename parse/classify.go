package parse

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDelimiter reports a delimiter literal with no classification.
// It indicates the delimiter table itself is inconsistent, not a property
// of the input text, and aborts the pass.
var ErrUnknownDelimiter = errors.New("delimiter has no classification")

// Classifier consumes scanner output and emits typed events. It follows
// the bufio.Scanner shape: Next advances, Event reads the current event,
// Err reports the fatal error that stopped the pass, if any. Like the
// scanner it is single-pass and must not be reused.
//
// The block-oriented variant maintains quote state: between a quote's
// opening literal and its matching close, every other delimiter is
// swallowed. The expression-oriented variant has no quote state and
// consumes separators silently.
type Classifier struct {
	text    string
	table   *Table
	scanner *Scanner
	quotes  bool

	quoteDelim string
	quoteStart int
	pending    []*Event
	cur        *Event
	err        error
	done       bool
}

// Option adjusts classifier construction.
type Option func(*options)

type options struct {
	lookahead int
}

// WithLookahead overrides the scanner's lookahead window.
func WithLookahead(n int) Option {
	return func(o *options) { o.lookahead = n }
}

// NewBlockClassifier returns the block-oriented classifier: comments,
// quotes, blocks, line and statement terminators, with quote swallowing.
func NewBlockClassifier(text string, table *Table, opts ...Option) *Classifier {
	return newClassifier(text, table, true, opts)
}

// NewExpressionClassifier returns the expression-oriented classifier:
// keywords, operators and silent separators, without quote state.
func NewExpressionClassifier(text string, table *Table, opts ...Option) *Classifier {
	return newClassifier(text, table, false, opts)
}

func newClassifier(text string, table *Table, quotes bool, opts []Option) *Classifier {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Classifier{
		text:    text,
		table:   table,
		quotes:  quotes,
		scanner: NewScanner(text, table.Delimiters(), table.Escape(), o.lookahead),
	}
}

// Next advances to the next event. It returns false at end of input or on
// a fatal error; check Err afterwards.
func (c *Classifier) Next() bool {
	if c.err != nil || c.done {
		return false
	}
	for {
		if len(c.pending) > 0 {
			c.cur = c.pending[0]
			c.pending = c.pending[1:]
			return true
		}
		if !c.scanner.Next() {
			c.done = true
			return false
		}
		if err := c.classify(c.scanner.Hit()); err != nil {
			c.err = err
			return false
		}
	}
}

// Event returns the current event. Valid only after Next reported true.
func (c *Classifier) Event() *Event { return c.cur }

// Err returns the fatal error that stopped the pass, or nil.
func (c *Classifier) Err() error { return c.err }

func (c *Classifier) classify(hit Hit) error {
	if hit.Delim == "" {
		// Trailing fragment. Inside an unterminated quote it is swallowed
		// like everything else.
		if c.quoteDelim == "" {
			c.emitText(hit.Start, hit.End)
		}
		return nil
	}

	if c.quoteDelim != "" {
		// Only the matching closing quote literal is visible in here.
		if hit.Delim == c.quoteDelim {
			c.emit(&Event{
				Kind:   EventQuote,
				Start:  c.quoteStart,
				End:    hit.End,
				Value:  hit.Delim,
				source: c.text,
			})
			c.quoteDelim = ""
		}
		return nil
	}

	delimStart := hit.End - len(hit.Delim)
	if hit.Start < delimStart {
		c.emitText(hit.Start, delimStart)
	}

	kind, ok := c.table.KindOf(hit.Delim)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDelimiter, hit.Delim)
	}
	switch kind {
	case EventQuote:
		if c.quotes {
			// The quote starts swallowing every other delimiter until its
			// matching close.
			c.quoteDelim = hit.Delim
			c.quoteStart = delimStart
			return nil
		}
		fallthrough
	case EventComment, EventLineEnd, EventStatementEnd, EventBlockStart,
		EventBlockEnd, EventKeyword, EventOpInfix, EventOpPrefix, EventOpSuffix:
		c.emit(&Event{
			Kind:   kind,
			Start:  delimStart,
			End:    hit.End,
			Value:  hit.Delim,
			source: c.text,
		})
	case EventSeparator:
		// Consumed silently.
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDelimiter, hit.Delim)
	}
	return nil
}

// emitText queues a text event for the non-empty, trimmed span.
func (c *Classifier) emitText(start, end int) {
	start, end = trim(c.text, c.table.Trim(), start, end)
	if start < end {
		c.emit(&Event{Kind: EventText, Start: start, End: end, source: c.text})
	}
}

func (c *Classifier) emit(ev *Event) {
	c.pending = append(c.pending, ev)
}

// trim narrows [start, end) past characters of the trim set on both ends.
func trim(text, set string, start, end int) (int, int) {
	for start < end && strings.IndexByte(set, text[start]) >= 0 {
		start++
	}
	for start < end && strings.IndexByte(set, text[end-1]) >= 0 {
		end--
	}
	return start, end
}
