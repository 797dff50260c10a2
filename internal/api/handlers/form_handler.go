package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/pkg/response"
	"github.com/linskybing/formflow/pkg/utils"
)

type FormHandler struct {
	service *application.FormService
}

func NewFormHandler(service *application.FormService) *FormHandler {
	return &FormHandler{service: service}
}

// CreateForm godoc
// @Summary Create a form (version 1 of a new lineage)
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body form.CreateFormDTO true "Form content"
// @Success 201 {object} form.Form
// @Failure 400 {object} response.ErrorResponse
// @Router /forms [post]
func (h *FormHandler) CreateForm(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	var input form.CreateFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	f, err := h.service.CreateLineage(c.Request.Context(), v, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// ListForms godoc
// @Summary List the caller's visible forms
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Success 200 {array} form.Form
// @Router /forms [get]
func (h *FormHandler) ListForms(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	forms, err := h.service.ListVisible(c.Request.Context(), v)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, forms)
}

// ListTrash godoc
// @Summary List soft-deleted forms of the tenant
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Success 200 {array} form.Form
// @Router /forms/trash [get]
func (h *FormHandler) ListTrash(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	forms, err := h.service.ListTrash(c.Request.Context(), v)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, forms)
}

// GetForm godoc
// @Summary Get a form version with its questions
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path int true "Form ID"
// @Success 200 {object} form.Form
// @Failure 404 {object} response.ErrorResponse
// @Router /forms/{id} [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid form id"})
		return
	}

	f, err := h.service.Get(c.Request.Context(), v, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// EditForm godoc
// @Summary Edit a form version
// @Description Updates in place while the version has no submissions, otherwise forks a new version.
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Form ID"
// @Param input body form.EditFormDTO true "New content"
// @Success 200 {object} form.EditResult
// @Failure 409 {object} response.ErrorResponse "Deleted version or concurrent edit"
// @Router /forms/{id} [put]
func (h *FormHandler) EditForm(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid form id"})
		return
	}
	var input form.EditFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.service.Edit(c.Request.Context(), v, id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListVersions godoc
// @Summary List every version of the form's lineage
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path int true "Any version ID of the lineage"
// @Success 200 {object} form.LineageVersions
// @Router /forms/{id}/versions [get]
func (h *FormHandler) ListVersions(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid form id"})
		return
	}

	versions, err := h.service.ListLineageVersions(c.Request.Context(), v, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, versions)
}

// SoftDeleteForm godoc
// @Summary Move a form version to the trash
// @Tags forms
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Success 204 "No Content"
// @Failure 409 {object} response.ErrorResponse "Already deleted"
// @Router /forms/{id} [delete]
func (h *FormHandler) SoftDeleteForm(c *gin.Context) {
	h.lifecycle(c, h.service.SoftDelete)
}

// RestoreForm godoc
// @Summary Restore a form version from the trash
// @Tags forms
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Success 204 "No Content"
// @Failure 409 {object} response.ErrorResponse "Not deleted"
// @Router /forms/{id}/restore [post]
func (h *FormHandler) RestoreForm(c *gin.Context) {
	h.lifecycle(c, h.service.Restore)
}

// PermanentDeleteForm godoc
// @Summary Permanently delete a form version with its submissions
// @Tags forms
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Success 204 "No Content"
// @Router /forms/{id}/permanent [delete]
func (h *FormHandler) PermanentDeleteForm(c *gin.Context) {
	h.lifecycle(c, h.service.PermanentDelete)
}

func (h *FormHandler) lifecycle(c *gin.Context, op func(ctx context.Context, v form.Viewer, id uint) error) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid form id"})
		return
	}
	if err := op(c.Request.Context(), v, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
