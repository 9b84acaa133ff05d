package vcs

import (
	"cmp"
	"slices"
	"time"
)

// MaxRankedAuthors bounds both author rankings of a snapshot.
const MaxRankedAuthors = 5

type tallyEntry struct {
	count     int
	firstSeen time.Time
}

// Tally counts commits per identity while a history is walked. Commits are
// expected newest first, so the first-seen time of an identity is the time of
// its most recent commit in the walk.
type Tally struct {
	order   []User
	entries map[User]*tallyEntry
}

func NewTally() *Tally {
	return &Tally{entries: map[User]*tallyEntry{}}
}

// Observe records one commit by u at when.
func (t *Tally) Observe(u User, when time.Time) {
	if entry, ok := t.entries[u]; ok {
		entry.count++
		return
	}
	t.entries[u] = &tallyEntry{firstSeen: when}
	t.order = append(t.order, u)
}

// Len returns the number of distinct identities seen so far.
func (t *Tally) Len() int {
	return len(t.order)
}

// Active returns at most limit identities ordered by commit count, highest
// first. Ties keep first-seen order.
func (t *Tally) Active(limit int) []User {
	return t.ranked(limit, func(a, b *tallyEntry) int {
		return cmp.Compare(b.count, a.count)
	})
}

// Oldest returns at most limit identities ordered by first-seen time,
// earliest first. Ties keep first-seen order.
func (t *Tally) Oldest(limit int) []User {
	return t.ranked(limit, func(a, b *tallyEntry) int {
		return a.firstSeen.Compare(b.firstSeen)
	})
}

func (t *Tally) ranked(limit int, compare func(a, b *tallyEntry) int) []User {
	users := slices.Clone(t.order)
	slices.SortStableFunc(users, func(a, b User) int {
		return compare(t.entries[a], t.entries[b])
	})
	if limit >= 0 && len(users) > limit {
		users = users[:limit]
	}
	if len(users) == 0 {
		return nil
	}
	return users
}
