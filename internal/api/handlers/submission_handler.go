package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/domain/submission"
	"github.com/linskybing/formflow/pkg/response"
	"github.com/linskybing/formflow/pkg/utils"
)

type SubmissionHandler struct {
	service *application.SubmissionService
}

func NewSubmissionHandler(service *application.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// Submit godoc
// @Summary Submit answers to a form version
// @Description Guests may submit to public forms. Signed-in callers are recorded as the submitter.
// @Tags submissions
// @Accept json
// @Produce json
// @Param id path int true "Form ID"
// @Param input body submission.SubmitDTO true "Answers"
// @Success 201 {object} submission.Submission
// @Failure 400 {object} response.ErrorResponse "Outside the submission window or invalid answers"
// @Failure 401 {object} response.ErrorResponse "Form is not public"
// @Failure 409 {object} response.ErrorResponse "Already submitted"
// @Failure 429 {object} response.ErrorResponse "Rate limited"
// @Router /forms/{id}/submit [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid form id"})
		return
	}
	var input submission.SubmitDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	sub, err := h.service.Submit(c.Request.Context(), id, utils.GetOptionalUserID(c), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// ListSubmissions godoc
// @Summary List the submissions of a form version
// @Tags submissions
// @Security BearerAuth
// @Produce json
// @Param id path int true "Form ID"
// @Success 200 {array} submission.Submission
// @Router /forms/{id}/submissions [get]
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid form id"})
		return
	}

	subs, err := h.service.ListSubmissions(c.Request.Context(), v, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// GetStats godoc
// @Summary Answer distribution of a form version
// @Tags submissions
// @Security BearerAuth
// @Produce json
// @Param id path int true "Form ID"
// @Success 200 {object} submission.Stats
// @Router /forms/{id}/stats [get]
func (h *SubmissionHandler) GetStats(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid form id"})
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), v, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
