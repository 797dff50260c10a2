package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/pkg/response"
	"github.com/linskybing/formflow/pkg/utils"
	"go.uber.org/zap"
)

var fieldLabels = map[string]string{
	"Name":            "name",
	"Email":           "email",
	"Password":        "password",
	"PhoneNumber":     "phone number",
	"Title":           "title",
	"Label":           "question label",
	"Type":            "question type",
	"QuestionID":      "question id",
	"ExpectedVersion": "expected version",
}

// bindError answers 400 with friendly validation messages when err comes
// from the validator.
func bindError(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input: " + err.Error()})
		return
	}

	msgs := make([]string, 0, len(verr))
	for _, fe := range verr {
		field := fe.StructField()
		lbl, ok := fieldLabels[field]
		if !ok {
			lbl = strings.ToLower(field)
		}

		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", lbl)
		case "min":
			msg = fmt.Sprintf("%s must be at least %s characters", lbl, fe.Param())
		case "max":
			msg = fmt.Sprintf("%s must be at most %s characters", lbl, fe.Param())
		case "email":
			msg = fmt.Sprintf("%s must be a valid email address", lbl)
		case "oneof":
			msg = fmt.Sprintf("%s must be one of [%s]", lbl, fe.Param())
		case "gte":
			msg = fmt.Sprintf("%s must be at least %s", lbl, fe.Param())
		default:
			msg = fmt.Sprintf("%s is invalid", lbl)
		}
		msgs = append(msgs, msg)
	}
	c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: strings.Join(msgs, "; ")})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, form.ErrNotFound),
		errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrTenantNotFound):
		return http.StatusNotFound
	case errors.Is(err, form.ErrVersionDeleted),
		errors.Is(err, form.ErrAlreadyDeleted),
		errors.Is(err, form.ErrNotDeleted),
		errors.Is(err, form.ErrConcurrencyConflict),
		errors.Is(err, form.ErrDuplicateSubmission),
		errors.Is(err, application.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, form.ErrWindowNotOpen),
		errors.Is(err, form.ErrWindowClosed),
		errors.Is(err, form.ErrInvalidWindow),
		errors.Is(err, form.ErrInvalidQuestion),
		errors.Is(err, form.ErrInvalidAnswer),
		errors.Is(err, form.ErrMissingRequiredAnswer),
		errors.Is(err, application.ErrUnsupportedLogo),
		errors.Is(err, application.ErrCannotDeleteSelf):
		return http.StatusBadRequest
	case errors.Is(err, form.ErrUnauthorized),
		errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, form.ErrForbidden),
		errors.Is(err, application.ErrForeignTenantEdit):
		return http.StatusForbidden
	case errors.Is(err, application.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err. Internal errors are logged and hidden from the
// client.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		_ = c.Error(err)
		c.JSON(status, response.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(status, response.ErrorResponse{Error: err.Error()})
}

// viewer reads the caller from the token claims and answers 401 when they
// are missing.
func viewer(c *gin.Context) (form.Viewer, bool) {
	v, err := utils.GetViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return form.Viewer{}, false
	}
	return v, true
}
