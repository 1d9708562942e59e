package command

import "strings"

// DefaultHistoryLimit is the number of lines kept for recall.
const DefaultHistoryLimit = 50

// History is the bounded log of submitted lines. Index 0 of At is the
// newest entry, which is the order term.History expects.
type History struct {
	limit   int
	entries []string
}

// NewHistory returns a history holding at most limit lines, seeded with
// lines (oldest first).
func NewHistory(limit int, lines ...string) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	h := &History{limit: limit}
	for _, l := range lines {
		h.Add(l)
	}
	return h
}

// Add records line. Blank lines are skipped.
func (h *History) Add(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	h.entries = append(h.entries, line)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append(h.entries[:0], h.entries[over:]...)
	}
}

func (h *History) Len() int { return len(h.entries) }

// At returns the i-th most recent line.
func (h *History) At(i int) string {
	return h.entries[len(h.entries)-1-i]
}

// Entries returns the lines oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

func (h *History) Clear() { h.entries = nil }
