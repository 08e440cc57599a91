package models

import "time"

// Content is one generated unit of learning material. Content holds markdown
// for lessons and a JSON document for quizzes, exercises and projects.
type Content struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	ContentType  string     `gorm:"not null;index" json:"contentType"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	CurriculumID uint       `gorm:"not null;index" json:"curriculumId"`
	CreatedAt    time.Time  `gorm:"not null;index;autoCreateTime:false" json:"createdAt"`
	UpdatedAt    *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

// ContentPatch is a shallow update: nil fields are left untouched.
type ContentPatch struct {
	Title        *string
	ContentType  *string
	Content      *string
	CurriculumID *uint
}

// Apply copies the non-nil fields of p onto c.
func (p ContentPatch) Apply(c *Content) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.ContentType != nil {
		c.ContentType = *p.ContentType
	}
	if p.Content != nil {
		c.Content = *p.Content
	}
	if p.CurriculumID != nil {
		c.CurriculumID = *p.CurriculumID
	}
}

// NextUpdatedAt returns now, nudged forward so it is strictly after the
// record's previous modification time. Microsecond resolution survives a
// round trip through postgres.
func (c *Content) NextUpdatedAt(now time.Time) time.Time {
	now = now.Truncate(time.Microsecond)
	last := c.CreatedAt
	if c.UpdatedAt != nil && c.UpdatedAt.After(last) {
		last = *c.UpdatedAt
	}
	if !now.After(last) {
		return last.Add(time.Microsecond)
	}
	return now
}
