package models

import "time"

// Blog lifecycle event types.
const (
	EventBlogCreated = "blog.created"
	EventBlogUpdated = "blog.updated"
	EventBlogDeleted = "blog.deleted"
)

// BlogEvent is published whenever a blog changes.
type BlogEvent struct {
	Type       string    `json:"type"`
	BlogID     string    `json:"blog_id"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
