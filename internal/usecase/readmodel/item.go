package readmodel

import "github.com/google/uuid"

// ItemView carries the base item fields as stored; NextBooking,
// LastBooking and Comments are filled by the aggregation usecase and
// stay nil/empty on plain reads.
type ItemView struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Available   bool           `json:"available"`
	OwnerID     uuid.UUID      `json:"owner_id"`
	RequestID   *uuid.UUID     `json:"request_id,omitempty"`
	NextBooking *BookingRef    `json:"next_booking,omitempty"`
	LastBooking *BookingRef    `json:"last_booking,omitempty"`
	Comments    []*CommentView `json:"comments,omitempty"`
}
