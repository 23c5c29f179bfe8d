package response

import (
	"time"

	"lendshare/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID     uuid.UUID   `json:"id"`
	Start  time.Time   `json:"start"`
	End    time.Time   `json:"end"`
	Status string      `json:"status"`
	Booker UserRefBody `json:"booker"`
	Item   ItemRefBody `json:"item"`
}

type UserRefBody struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ItemRefBody struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	OwnerID uuid.UUID `json:"ownerId"`
}

func FromBookingView(view *readmodel.BookingView) *BookingResponse {
	resp := &BookingResponse{}
	_ = copier.Copy(resp, view)
	return resp
}

func FromBookingViews(views []*readmodel.BookingView) []*BookingResponse {
	resp := make([]*BookingResponse, len(views))
	for i, v := range views {
		resp[i] = FromBookingView(v)
	}
	return resp
}
