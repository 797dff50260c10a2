package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/pkg/response"
)

type AuditHandler struct {
	svc *application.AuditService
}

func NewAuditHandler(svc *application.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// GetAuditLogs godoc
// @Summary Query the tenant's audit trail
// @Tags audit
// @Security BearerAuth
// @Produce json
// @Param user_id query int false "Acting user"
// @Param resource_type query string false "form, user or tenant"
// @Param resource_id query string false "Resource ID"
// @Param action query string false "Action"
// @Param start_time query string false "RFC3339 lower bound"
// @Param end_time query string false "RFC3339 upper bound"
// @Param limit query int false "Max rows (default 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} audit.AuditLog
// @Router /audit/logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}

	var params repository.AuditQueryParams
	if s := c.Query("user_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid user_id"})
			return
		}
		uid := uint(id)
		params.UserID = &uid
	}
	if s := c.Query("resource_type"); s != "" {
		params.ResourceType = &s
	}
	if s := c.Query("resource_id"); s != "" {
		params.ResourceID = &s
	}
	if s := c.Query("action"); s != "" {
		params.Action = &s
	}
	for key, dst := range map[string]**time.Time{"start_time": &params.StartTime, "end_time": &params.EndTime} {
		if s := c.Query(key); s != "" {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid " + key})
				return
			}
			*dst = &t
		}
	}
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	params.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, err := h.svc.QueryAuditLogs(c.Request.Context(), v, params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
