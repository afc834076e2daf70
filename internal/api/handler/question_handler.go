package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/questionsapp/questions-api/internal/core/domain"
	"github.com/questionsapp/questions-api/internal/core/ports"
)

// QuestionHandler handles HTTP requests for the questions resource.
type QuestionHandler struct {
	service ports.QuestionService
}

func NewQuestionHandler(service ports.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// List handles GET /questions.
//
// @Summary      List questions
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listQuestionsResponse
// @Failure      401  {object}  messageResponse
// @Router       /questions [get]
func (h *QuestionHandler) List(c echo.Context) error {
	questions, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	items := make([]questionResponse, len(questions))
	for i, q := range questions {
		items[i] = toQuestionResponse(&q)
	}
	return c.JSON(http.StatusOK, listQuestionsResponse{Data: items})
}

// Create handles POST /questions. Submission is open: an access token is
// not required, but when one is present the question is attributed to it.
//
// @Summary      Submit a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        body  body      createQuestionRequest  true  "Question details"
// @Success      200   {object}  questionResponse
// @Failure      400   {object}  messageResponse
// @Router       /questions [post]
func (h *QuestionHandler) Create(c echo.Context) error {
	var req createQuestionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	question, err := h.service.Create(c.Request().Context(), ports.CreateQuestionInput{
		Author: ctxIdentity(c),
		Title:  req.Title,
		Body:   req.Body,
	})
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: ve.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, toQuestionResponse(question))
}

// Get handles GET /questions/:id.
//
// @Summary      Get a question
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Question ID"
// @Success      200  {object}  questionResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /questions/{id} [get]
func (h *QuestionHandler) Get(c echo.Context) error {
	question, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "question not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toQuestionResponse(question))
}

// Delete handles DELETE /questions/:id. Admin only.
//
// @Summary      Delete a question
// @Tags         questions
// @Security     BearerAuth
// @Param        id  path  string  true  "Question ID"
// @Success      200
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /questions/{id} [delete]
func (h *QuestionHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "question not found"})
		}
		return err
	}
	return c.NoContent(http.StatusOK)
}

func toQuestionResponse(q *domain.Question) questionResponse {
	return questionResponse{
		ID:        q.ID,
		Author:    q.Author,
		Title:     q.Title,
		Body:      q.Body,
		CreatedAt: q.CreatedAt,
	}
}
