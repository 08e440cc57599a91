package models

import "time"

type Curriculum struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `gorm:"not null" json:"description"`
	Difficulty    string    `gorm:"not null" json:"difficulty"` // Beginner, Intermediate, Advanced
	Lessons       int       `gorm:"not null" json:"lessons"`
	Quizzes       int       `gorm:"not null" json:"quizzes"`
	Exercises     int       `gorm:"not null" json:"exercises"`
	Projects      int       `gorm:"not null" json:"projects"`
	IsRecommended bool      `gorm:"default:false" json:"isRecommended"`
	CreatedAt     time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"not null" json:"updatedAt"`
}

// DefaultCurriculum is the record every store starts with.
func DefaultCurriculum(now time.Time) Curriculum {
	return Curriculum{
		Title:         "Web Development Fundamentals",
		Description:   "Learn the basics of web development with HTML, CSS, and JavaScript",
		Difficulty:    "Beginner",
		Lessons:       10,
		Quizzes:       5,
		Exercises:     8,
		Projects:      2,
		IsRecommended: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
