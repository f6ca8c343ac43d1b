// Package session implements the submission state machine shared by the
// price and image forms: Idle, then Pending while the single request is in
// flight, then Idle again with the result state populated. The pending phase
// is an explicit single-slot gate, so a second Submit while one is
// outstanding returns ErrBusy and issues nothing. Input may change while a
// request is pending; the late response is then dropped with ErrStale instead
// of overwriting the newer input's result.
package session
