package handler

import "time"

// --- Request / Response types ---

type createQuestionRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body"  validate:"required"`
}

type questionResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author,omitempty"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type listQuestionsResponse struct {
	Data []questionResponse `json:"data"`
}
