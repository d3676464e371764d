package handler

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mulakatpro/interview-analyzer/internal/dto"
	"github.com/mulakatpro/interview-analyzer/internal/middleware"
	"github.com/mulakatpro/interview-analyzer/internal/model"
	"github.com/mulakatpro/interview-analyzer/internal/response"
	"github.com/mulakatpro/interview-analyzer/internal/usecase"
	"github.com/mulakatpro/interview-analyzer/internal/util"
)

type InterviewHandler struct {
	uc *usecase.AnalysisUsecase
}

func NewInterviewHandler(uc *usecase.AnalysisUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/interviews", h.Create)
	app.Post("/interviews/:id/analyze", middleware.RateLimiter(1, 4*time.Second), h.Analyze)
	app.Get("/interviews/:id", h.Get)
	app.Get("/interviews", h.List)
}

func (h *InterviewHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.Title == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "title is required",
		}, nil)
	}

	session := model.InterviewSession{
		Title:         req.Title,
		MediaURL:      req.MediaURL,
		Transcript:    req.Transcript,
		Questions:     rawOrNull(req.Questions),
		QuestionOrder: rawOrNull(req.QuestionOrder),
	}
	if err := h.uc.CreateSession(&session); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create interview session",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create interview session",
		Data:    fiber.Map{"id": session.ID, "status": session.Status},
	})
}

func (h *InterviewHandler) Analyze(c *fiber.Ctx) error {
	session, err := h.uc.GetSession(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "interview session not found",
		}, nil)
	}

	if err := h.uc.Submit(session); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to submit analysis",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success submit analysis",
		Data:    fiber.Map{"id": session.ID, "status": session.Status},
	})
}

func (h *InterviewHandler) Get(c *fiber.Ctx) error {
	session, err := h.uc.GetSession(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "interview session not found",
		}, nil)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get interview session",
		Data:    sessionDTO(session),
	})
}

func (h *InterviewHandler) List(c *fiber.Ctx) error {
	// The repository clamps too, but the pagination math below divides by
	// pageSize, so the raw query values must never reach it.
	page, pageSize := normalizePagination(c.QueryInt("page", 1), c.QueryInt("page_size", 20))

	sessions, total, err := h.uc.ListSessions(page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list interview sessions",
		}, err)
	}

	data := make([]dto.InterviewSessionDTO, 0, len(sessions))
	for i := range sessions {
		data = append(data, sessionDTO(&sessions[i]))
	}

	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success list interview sessions",
		Data:    data,
		Pagination: &response.Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
			TotalItems: total,
			HasMore:    int64(page) < totalPages,
			From:       (page-1)*pageSize + 1,
			To:         (page-1)*pageSize + len(data),
		},
	})
}

func sessionDTO(session *model.InterviewSession) dto.InterviewSessionDTO {
	return dto.InterviewSessionDTO{
		ID:                  session.ID,
		Title:               session.Title,
		Status:              session.Status,
		Score:               session.Score,
		Transcript:          session.Transcript,
		Feedback:            rawMessage(session.Feedback),
		QuestionScores:      rawMessage(session.QuestionScores),
		QuestionFeedback:    rawMessage(session.QuestionFeedback),
		QuestionCorrectness: rawMessage(session.QuestionCorrectness),
		LastAnalyzedAt:      session.LastAnalyzedAt,
		CreatedAt:           session.CreatedAt,
		UpdatedAt:           session.UpdatedAt,
	}
}

func rawMessage(value string) json.RawMessage {
	if value == "" || value == "null" {
		return nil
	}
	return json.RawMessage(value)
}

func rawOrNull(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	return string(raw)
}

func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
