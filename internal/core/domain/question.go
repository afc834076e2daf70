package domain

import "time"

// Question is a broker question submitted through the platform.
type Question struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"` // email of the submitting user, empty for anonymous submissions
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
