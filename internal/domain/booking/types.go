package booking

import "fmt"

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// StateFilter selects a temporal/status bucket when listing bookings.
// String tokens exist only at the transport boundary; everything past
// ParseStateFilter works with this closed enum.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

// UnsupportedStateError carries the offending token so the transport
// layer can render "Unknown state: <token>".
type UnsupportedStateError struct {
	Token string
}

func (e *UnsupportedStateError) Error() string {
	return fmt.Sprintf("Unknown state: %s", e.Token)
}

func ParseStateFilter(token string) (StateFilter, error) {
	switch StateFilter(token) {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return StateFilter(token), nil
	default:
		return "", &UnsupportedStateError{Token: token}
	}
}

func (f StateFilter) String() string {
	return string(f)
}
