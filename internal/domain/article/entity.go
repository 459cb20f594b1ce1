package article

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates an article could not be located.
	ErrNotFound = errors.New("article not found")
)

// Article is a blog entry published on the portal.
type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	ImageURLs []string  `json:"imageUrls"`
	CreatedAt time.Time `json:"createdAt"`
}
