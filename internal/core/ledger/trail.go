package ledger

import "fmt"

// Trail collects the human-readable lines an operation produces.
// A nil *Trail discards everything.
type Trail struct {
	lines []string
}

// Addf appends a formatted line.
func (t *Trail) Addf(format string, args ...any) {
	if t == nil {
		return
	}
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

// Lines returns the collected lines in the order they were added.
func (t *Trail) Lines() []string {
	if t == nil {
		return nil
	}
	return t.lines
}

// Len reports how many lines were recorded.
func (t *Trail) Len() int {
	if t == nil {
		return 0
	}
	return len(t.lines)
}
