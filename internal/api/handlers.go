package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/engine"
	"github.com/skillpulse/skillpulse/internal/logger"
	"github.com/skillpulse/skillpulse/internal/profile"
	"github.com/skillpulse/skillpulse/internal/store"
)

// Handler serves the engine over HTTP.
type Handler struct {
	eng *engine.Engine
	log *logger.Logger
}

// NewHandler creates a handler.
func NewHandler(eng *engine.Engine, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{eng: eng, log: log.With("component", "api")}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.FullPath(), "user_id", c.Param("user"), "error", err)
		RespondError(c, status, code, errors.New("internal error"))
		return
	}
	RespondError(c, status, code, err)
}

type answerRequest struct {
	QuizID        string              `json:"quiz_id"`
	Category      category.Category   `json:"category"`
	Difficulty    category.Difficulty `json:"difficulty"`
	SelectedIndex *int                `json:"selected_index"`
	CorrectIndex  *int                `json:"correct_index"`
}

// POST /v1/users/:user/answers
func (h *Handler) RecordAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalid, err)
		return
	}
	if req.SelectedIndex == nil || req.CorrectIndex == nil {
		h.fail(c, &engine.ValidationError{Field: "selected_index", Reason: "selected_index and correct_index are required"})
		return
	}

	res, err := h.eng.RecordAnswer(c.Request.Context(), engine.AnswerInput{
		UserID:        c.Param("user"),
		QuizID:        req.QuizID,
		Category:      req.Category,
		Difficulty:    req.Difficulty,
		SelectedIndex: *req.SelectedIndex,
		CorrectIndex:  *req.CorrectIndex,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /v1/users/:user/stats
func (h *Handler) Stats(c *gin.Context) {
	st, err := h.eng.Stats(c.Request.Context(), c.Param("user"))
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, st)
}

// GET /v1/users/:user/profile
func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.eng.Profile(c.Request.Context(), c.Param("user"))
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, p)
}

// PATCH /v1/users/:user/profile
// Body is a partial profile; omitted fields keep their value.
func (h *Handler) UpdateProfile(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalid, err)
		return
	}
	u, err := profile.DecodeUpdate(raw)
	if err != nil {
		h.fail(c, err)
		return
	}
	p, err := h.eng.UpdateProfile(c.Request.Context(), c.Param("user"), u)
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, p)
}

type commandRequest struct {
	Args []string `json:"args"`
}

// POST /v1/users/:user/profile/command
// Applies already-tokenized key=value arguments.
func (h *Handler) ProfileCommand(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalid, err)
		return
	}
	p, res, err := h.eng.ApplyProfileCommand(c.Request.Context(), c.Param("user"), req.Args)
	if err != nil {
		status, code := statusFor(err)
		if status != http.StatusBadRequest {
			h.fail(c, err)
			return
		}
		c.JSON(status, gin.H{
			"error":  APIError{Message: err.Error(), Code: code},
			"result": res,
		})
		return
	}
	RespondOK(c, gin.H{"profile": p, "result": res})
}

// GET /v1/users/:user/next
func (h *Handler) NextQuiz(c *gin.Context) {
	pick, err := h.eng.NextQuiz(c.Request.Context(), c.Param("user"))
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, pick)
}

// GET /v1/users/:user/recommendations
func (h *Handler) Recommendations(c *gin.Context) {
	sum, err := h.eng.Recommend(c.Request.Context(), c.Param("user"))
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, sum)
}

// GET /v1/users/:user/milestones
func (h *Handler) Milestones(c *gin.Context) {
	ms, err := h.eng.Milestones(c.Request.Context(), c.Param("user"))
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, gin.H{"milestones": ms})
}

// POST /v1/team/aggregates
func (h *Handler) ComputeAggregate(c *gin.Context) {
	var key store.AggregateKey
	if err := c.ShouldBindJSON(&key); err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalid, err)
		return
	}
	agg, err := h.eng.Aggregate(c.Request.Context(), key)
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, agg)
}

// GET /v1/team/aggregates?period=&level=&category=
func (h *Handler) GetAggregate(c *gin.Context) {
	key := store.AggregateKey{
		Period:   c.Query("period"),
		Level:    category.Level(c.Query("level")),
		Category: category.Category(c.Query("category")),
	}
	agg, err := h.eng.TeamAggregate(c.Request.Context(), key)
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, agg)
}

// GET /healthz
func (h *Handler) Health(c *gin.Context) {
	RespondOK(c, gin.H{"status": "ok"})
}
