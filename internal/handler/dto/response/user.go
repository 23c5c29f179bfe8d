package response

import (
	"lendshare/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func FromUserView(view *readmodel.UserView) *UserResponse {
	return &UserResponse{
		ID:    view.ID,
		Name:  view.Name,
		Email: view.Email,
	}
}

func FromUserViews(views []*readmodel.UserView) []*UserResponse {
	resp := make([]*UserResponse, len(views))
	for i, v := range views {
		resp[i] = FromUserView(v)
	}
	return resp
}
