package response

import (
	"time"

	"lendshare/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ItemResponse struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Available   bool               `json:"available"`
	OwnerID     uuid.UUID          `json:"ownerId"`
	RequestID   *uuid.UUID         `json:"requestId,omitempty"`
	NextBooking *BookingRefBody    `json:"nextBooking,omitempty"`
	LastBooking *BookingRefBody    `json:"lastBooking,omitempty"`
	Comments    []*CommentResponse `json:"comments,omitempty"`
}

type BookingRefBody struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func FromItemView(view *readmodel.ItemView) *ItemResponse {
	resp := &ItemResponse{}
	_ = copier.Copy(resp, view)
	return resp
}

func FromItemViews(views []*readmodel.ItemView) []*ItemResponse {
	resp := make([]*ItemResponse, len(views))
	for i, v := range views {
		resp[i] = FromItemView(v)
	}
	return resp
}
