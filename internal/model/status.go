package model

// Clock states reported by GET /u/status.
const (
	StateIn  = "I"
	StateOut = "O"
)

// Status is the current user's clock state. Since is the epoch second of the
// last state change; the deltas are seconds ahead (positive) or behind
// (negative) the expected working time.
type Status struct {
	State         string `json:"state"`
	Since         int64  `json:"since"`
	Online        int    `json:"online"`
	DeltaForMonth int64  `json:"deltaForMonth"`
	DeltaForDay   int64  `json:"deltaForDay"`
}

// ClockedIn reports whether the user is currently clocked in.
func (s Status) ClockedIn() bool {
	return s.State == StateIn
}

// OnlineUser is a clocked-in user as listed by the admin endpoint.
type OnlineUser struct {
	UID   int64 `json:"uid"`
	Since int64 `json:"since"`
}
