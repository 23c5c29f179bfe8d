package comment

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyText = errors.New("comment text cannot be empty")

// Comment is feedback left by a renter after a completed, approved
// rental. Eligibility is checked by the comment usecase against the
// booking history; the entity only validates its own content.
type Comment struct {
	id       uuid.UUID
	text     string
	itemID   uuid.UUID
	authorID uuid.UUID
	created  time.Time
}

func NewComment(itemID, authorID uuid.UUID, text string, created time.Time) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	return &Comment{
		id:       uuid.New(),
		text:     text,
		itemID:   itemID,
		authorID: authorID,
		created:  created,
	}, nil
}

func ReconstructComment(id, itemID, authorID uuid.UUID, text string, created time.Time) *Comment {
	return &Comment{id: id, text: text, itemID: itemID, authorID: authorID, created: created}
}

func (c *Comment) ID() uuid.UUID       { return c.id }
func (c *Comment) Text() string        { return c.text }
func (c *Comment) ItemID() uuid.UUID   { return c.itemID }
func (c *Comment) AuthorID() uuid.UUID { return c.authorID }
func (c *Comment) Created() time.Time  { return c.created }
