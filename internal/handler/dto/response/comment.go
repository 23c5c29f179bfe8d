package response

import (
	"time"

	"lendshare/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func FromCommentView(view *readmodel.CommentView) *CommentResponse {
	return &CommentResponse{
		ID:         view.ID,
		Text:       view.Text,
		AuthorName: view.AuthorName,
		Created:    view.Created,
	}
}
