package readmodel

import (
	"time"

	"github.com/google/uuid"
)

type CommentView struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	ItemID     uuid.UUID `json:"item_id"`
	AuthorName string    `json:"author_name"`
	Created    time.Time `json:"created"`
}
