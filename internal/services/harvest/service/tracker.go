package service

// tracker is the single-pass seen-id set plus the running yield counter of
// one invocation. Ids live in one namespace keyed on the emitted external-id
// string, which is what keeps emitted ids pairwise distinct. Owned by the
// producer goroutine, no locking needed
type tracker struct {
	seen  map[string]struct{}
	count int
	max   int
}

func newTracker(maxItems int) *tracker {
	return &tracker{seen: make(map[string]struct{}), max: maxItems}
}

// shouldEmit reports whether id is unseen and the budget still has room.
// Checked immediately before each candidate emission, never batched
func (t *tracker) shouldEmit(id string) bool {
	if t.exhausted() {
		return false
	}
	_, dup := t.seen[id]
	return !dup
}

// record marks id seen and spends one unit of budget
func (t *tracker) record(id string) {
	t.seen[id] = struct{}{}
	t.count++
}

// seenID reports whether id was already emitted
func (t *tracker) seenID(id string) bool {
	_, ok := t.seen[id]
	return ok
}

// exhausted reports whether the budget is spent
func (t *tracker) exhausted() bool { return t.count >= t.max }

// emitted returns the spend so far
func (t *tracker) emitted() int { return t.count }
