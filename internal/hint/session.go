package hint

// Ticket identifies one hint request against the generation it was issued
// for.
type Ticket struct {
	gen uint64
}

// Session tracks the hint shown for one board. At most one request is in
// flight; results for an older generation are discarded.
//
// Session is owned by a single writer (the UI update loop) and is not safe
// for concurrent use.
type Session struct {
	gen     uint64
	loading bool
	current *Hint
}

// Begin starts a request. It returns false while another request is in
// flight.
func (s *Session) Begin() (Ticket, bool) {
	if s.loading {
		return Ticket{}, false
	}
	s.loading = true
	return Ticket{gen: s.gen}, true
}

// Invalidate marks the position as changed: the shown hint is cleared and
// any in-flight result will be discarded.
func (s *Session) Invalidate() {
	s.gen++
	s.current = nil
}

// Resolve finishes the in-flight request. The hint (nil on failure) replaces
// the shown one only when t is still current; the result is reported.
func (s *Session) Resolve(t Ticket, h *Hint) bool {
	s.loading = false
	if t.gen != s.gen {
		return false
	}
	s.current = h
	return true
}

// Loading reports whether a request is in flight.
func (s *Session) Loading() bool { return s.loading }

// Current returns the shown hint, or nil.
func (s *Session) Current() *Hint { return s.current }
