package models

import "time"

// Blog represents a blog record owned by a user.
type Blog struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Author    string    `json:"author" gorm:"type:varchar(255)"`
	URL       string    `json:"url" gorm:"type:varchar(2048);not null"`
	Likes     int       `json:"likes" gorm:"not null;default:0"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);index;not null"`
	User      *Owner    `json:"user,omitempty" gorm:"-"`
	Seq       int64     `json:"-" gorm:"index;not null;default:0"` // Insertion order
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Owner is the public projection of a User attached to a Blog.
type Owner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// BlogSummary is the projection of a Blog listed under its owner.
type BlogSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	UserID string `json:"-"`
}

// BlogDraft is the unvalidated input for creating a blog.
type BlogDraft struct {
	Title  string     `json:"title" validate:"required"`
	Author string     `json:"author"`
	URL    string     `json:"url" validate:"required"`
	Likes  *LikeCount `json:"likes" validate:"omitempty,gte=0"`
}

// BlogPatch carries the fields supplied to an update. Nil means "leave unchanged".
type BlogPatch struct {
	Title  *string    `json:"title"`
	Author *string    `json:"author"`
	URL    *string    `json:"url"`
	Likes  *LikeCount `json:"likes" validate:"omitempty,gte=0"`
}

// Empty reports whether the patch changes nothing.
func (p BlogPatch) Empty() bool {
	return p.Title == nil && p.Author == nil && p.URL == nil && p.Likes == nil
}

// Apply copies the supplied fields onto b.
func (p BlogPatch) Apply(b *Blog) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.URL != nil {
		b.URL = *p.URL
	}
	if p.Likes != nil {
		b.Likes = int(*p.Likes)
	}
}

// Columns returns the patch as a column map for partial updates.
func (p BlogPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Author != nil {
		cols["author"] = *p.Author
	}
	if p.URL != nil {
		cols["url"] = *p.URL
	}
	if p.Likes != nil {
		cols["likes"] = int(*p.Likes)
	}
	return cols
}
