package tui

import "strings"

// History keeps the most recent commands typed at the prompt in a fixed-size
// ring. Arrow-key moves never reach it; only submitted lines do.
type History struct {
	ring  []string
	head  int // slot the next Push writes
	count int
	age   int // 0 = not navigating, n = n-th newest entry
}

// NewHistory creates a history holding at most size commands.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{ring: make([]string, size)}
}

// Push records a submitted command. A repeat of the newest entry and the
// repeat verbs themselves are not recorded, so "again" never recalls
// "again".
func (h *History) Push(cmd string) {
	if isRepeat(cmd) {
		return
	}
	if h.count > 0 && h.entry(1) == cmd {
		return
	}
	h.ring[h.head] = cmd
	h.head = (h.head + 1) % len(h.ring)
	if h.count < len(h.ring) {
		h.count++
	}
}

// Len returns the number of stored commands.
func (h *History) Len() int { return h.count }

// Prev steps one entry back in time and returns it. It stays on the oldest
// entry once reached. Returns ("", false) on an empty history.
func (h *History) Prev() (string, bool) {
	if h.count == 0 {
		return "", false
	}
	if h.age < h.count {
		h.age++
	}
	return h.entry(h.age), true
}

// Next steps one entry forward. Stepping past the newest entry returns
// ("", false) and leaves navigation, so the prompt can be cleared.
func (h *History) Next() (string, bool) {
	if h.age == 0 {
		return "", false
	}
	h.age--
	if h.age == 0 {
		return "", false
	}
	return h.entry(h.age), true
}

// ResetCursor leaves navigation; the next Prev returns the newest entry.
func (h *History) ResetCursor() { h.age = 0 }

// entry returns the n-th newest command, n >= 1.
func (h *History) entry(n int) string {
	i := (h.head - n + len(h.ring)) % len(h.ring)
	return h.ring[i]
}

func isRepeat(cmd string) bool {
	switch strings.ToLower(strings.TrimSpace(cmd)) {
	case "again", "g":
		return true
	}
	return false
}
