// Package confirm implements the two-phase request/confirm pattern used
// for destructive actions: abandon session, reset timer, unace.
package confirm

// Machine is a tiny state machine: Idle until an action is requested,
// Pending until the request is confirmed or cancelled. Requesting while
// another action is pending replaces it.
type Machine struct {
	pending string
}

// Request marks the named action as pending confirmation.
func (m *Machine) Request(action string) {
	m.pending = action
}

// Pending returns the action awaiting confirmation, or "".
func (m *Machine) Pending() string {
	return m.pending
}

// Confirm resolves the pending request. It returns the pending action
// and whether the caller should execute it; either way the machine
// returns to Idle. Confirming with nothing pending reports false.
func (m *Machine) Confirm(accept bool) (string, bool) {
	action := m.pending
	m.pending = ""
	if action == "" {
		return "", false
	}
	return action, accept
}

// Cancel discards any pending request.
func (m *Machine) Cancel() {
	m.pending = ""
}
