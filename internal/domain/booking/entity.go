package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotWaiting signals an attempt to resolve a booking whose status
	// has already been decided. The transition is one-shot, not a no-op.
	ErrNotWaiting = errors.New("booking is not waiting for approval")
)

type Booking struct {
	id       uuid.UUID
	itemID   uuid.UUID
	bookerID uuid.UUID
	period   Period
	status   Status
}

// NewBooking creates a booking in the WAITING state. Authorization
// (item availability, booker != owner) is the caller's concern; the
// entity only owns the period and the status lifecycle.
func NewBooking(itemID, bookerID uuid.UUID, period Period) *Booking {
	return &Booking{
		id:       uuid.New(),
		itemID:   itemID,
		bookerID: bookerID,
		period:   period,
		status:   StatusWaiting,
	}
}

func ReconstructBooking(id, itemID, bookerID uuid.UUID, period Period, status Status) *Booking {
	return &Booking{
		id:       id,
		itemID:   itemID,
		bookerID: bookerID,
		period:   period,
		status:   status,
	}
}

// Resolve applies the single permitted transition:
// WAITING -> APPROVED (approved) or WAITING -> REJECTED.
func (b *Booking) Resolve(approved bool) error {
	if b.status != StatusWaiting {
		return ErrNotWaiting
	}
	if approved {
		b.status = StatusApproved
	} else {
		b.status = StatusRejected
	}
	return nil
}

// Matches is the reference predicate behind the six-way state filter.
// The SQL query axes must agree with it; the in-memory fakes use it
// directly.
func (b *Booking) Matches(filter StateFilter, now time.Time) bool {
	switch filter {
	case FilterAll:
		return true
	case FilterCurrent:
		return b.period.IsCurrent(now)
	case FilterPast:
		return b.period.IsPast(now)
	case FilterFuture:
		return b.period.IsFuture(now)
	case FilterWaiting:
		return b.status == StatusWaiting
	case FilterRejected:
		return b.status == StatusRejected
	default:
		return false
	}
}

func (b *Booking) ID() uuid.UUID       { return b.id }
func (b *Booking) ItemID() uuid.UUID   { return b.itemID }
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }
func (b *Booking) Period() Period      { return b.period }
func (b *Booking) Status() Status      { return b.status }
