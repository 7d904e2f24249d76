package container

// Emitter is a single-slot delta signal: at most one subscriber is active and
// a new subscription replaces the old one.
type Emitter struct {
	fn    func(delta float64)
	token uint64
}

// Subscribe installs fn and returns a function that removes it. Removing a
// subscriber that has since been replaced does nothing.
func (e *Emitter) Subscribe(fn func(delta float64)) (cancel func()) {
	e.token++
	e.fn = fn
	token := e.token
	return func() {
		if e.token == token {
			e.fn = nil
		}
	}
}

// Emit delivers delta to the subscriber and reports whether there was one.
func (e *Emitter) Emit(delta float64) bool {
	if e.fn == nil {
		return false
	}
	e.fn(delta)
	return true
}

// Subscribed reports whether a subscriber is installed.
func (e *Emitter) Subscribed() bool { return e.fn != nil }
