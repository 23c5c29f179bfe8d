package usecase

import "errors"

var ErrInvalidPage = errors.New("invalid pagination parameters")

// Page is a zero-based offset window over an already-ordered result
// set. A nil *Page means the full, unpaginated sequence.
type Page struct {
	From int
	Size int
}

// NewPage validates the offset/limit pair: from must be >= 0 and size
// strictly positive.
func NewPage(from, size int) (*Page, error) {
	if from < 0 || size <= 0 {
		return nil, ErrInvalidPage
	}
	return &Page{From: from, Size: size}, nil
}

// Slice applies the window to an ordered slice. Out-of-range offsets
// yield an empty page, never an error.
func Slice[T any](s []T, page *Page) []T {
	if page == nil {
		return s
	}
	if page.From >= len(s) {
		return []T{}
	}
	end := page.From + page.Size
	if end > len(s) {
		end = len(s)
	}
	return s[page.From:end]
}
