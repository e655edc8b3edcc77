package order

import (
	"errors"
	"time"
)

// HistoryEntry records one accepted status change. Entries are immutable.
type HistoryEntry struct {
	previous Status
	next     Status
	reason   string
	actor    string
	at       time.Time
	notes    string
}

// RestoreHistoryEntry rebuilds a persisted entry. NewStatus must be valid;
// PreviousStatus is also checked because every entry records a real change.
func RestoreHistoryEntry(previous, next Status, reason, actor string, at time.Time, notes string) (HistoryEntry, error) {
	if err := errors.Join(
		previous.Validate(),
		next.Validate(),
		requireText("reason", reason),
		requireText("modified_by", actor),
	); err != nil {
		return HistoryEntry{}, err
	}
	return HistoryEntry{
		previous: previous,
		next:     next,
		reason:   reason,
		actor:    actor,
		at:       at,
		notes:    notes,
	}, nil
}

func (e HistoryEntry) PreviousStatus() Status { return e.previous }
func (e HistoryEntry) NewStatus() Status      { return e.next }
func (e HistoryEntry) Reason() string         { return e.reason }
func (e HistoryEntry) ModifiedBy() string     { return e.actor }
func (e HistoryEntry) ModifiedAt() time.Time  { return e.at }
func (e HistoryEntry) Notes() string          { return e.notes }

// History is a read-only view over an order's entries, oldest first.
type History struct {
	entries []HistoryEntry
}

func newHistory(entries []HistoryEntry) History {
	cp := make([]HistoryEntry, len(entries))
	copy(cp, entries)
	return History{entries: cp}
}

// All returns a copy of every entry in insertion order.
func (h History) All() []HistoryEntry {
	cp := make([]HistoryEntry, len(h.entries))
	copy(cp, h.entries)
	return cp
}

func (h History) Count() int {
	return len(h.entries)
}

// Between keeps entries with start <= ModifiedAt <= end.
func (h History) Between(start, end time.Time) History {
	return h.filter(func(e HistoryEntry) bool {
		return !e.at.Before(start) && !e.at.After(end)
	})
}

// ByActor keeps entries made by actor. Matching is exact.
func (h History) ByActor(actor string) History {
	return h.filter(func(e HistoryEntry) bool {
		return e.actor == actor
	})
}

// Last returns the entry with the latest timestamp. When timestamps tie the
// later insertion wins.
func (h History) Last() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	last := h.entries[0]
	for _, e := range h.entries[1:] {
		if !e.at.Before(last.at) {
			last = e
		}
	}
	return last, true
}

// ModifiedWithin reports whether the latest entry is newer than now - window.
func (h History) ModifiedWithin(window time.Duration, now time.Time) bool {
	last, ok := h.Last()
	if !ok {
		return false
	}
	return last.at.After(now.Add(-window))
}

func (h History) filter(keep func(HistoryEntry) bool) History {
	out := make([]HistoryEntry, 0, len(h.entries))
	for _, e := range h.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return History{entries: out}
}
