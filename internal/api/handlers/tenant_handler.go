package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/domain/tenant"
	"github.com/linskybing/formflow/pkg/response"
	"github.com/linskybing/formflow/pkg/utils"
)

const maxLogoBytes = 2 << 20

type TenantHandler struct {
	svc *application.TenantService
}

func NewTenantHandler(svc *application.TenantService) *TenantHandler {
	return &TenantHandler{svc: svc}
}

// ListTenants godoc
// @Summary List organizations
// @Tags tenants
// @Security BearerAuth
// @Produce json
// @Success 200 {array} tenant.Tenant
// @Router /tenants [get]
func (h *TenantHandler) ListTenants(c *gin.Context) {
	tenants, err := h.svc.ListTenants(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenants)
}

// UpdateTenant godoc
// @Summary Rename the caller's organization
// @Tags tenants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Tenant ID"
// @Param input body tenant.UpdateTenantDTO true "New name"
// @Success 200 {object} tenant.Tenant
// @Router /tenants/{id} [put]
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid tenant id"})
		return
	}
	var input tenant.UpdateTenantDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	t, err := h.svc.UpdateTenant(c.Request.Context(), v, id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// UploadLogo godoc
// @Summary Replace the organization logo
// @Tags tenants
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Tenant ID"
// @Param logo formData file true "Image file (max 2 MiB)"
// @Success 200 {object} tenant.Tenant
// @Failure 503 {object} response.ErrorResponse "Object storage not configured"
// @Router /tenants/{id}/logo [put]
func (h *TenantHandler) UploadLogo(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid tenant id"})
		return
	}

	fh, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "logo file is required"})
		return
	}
	if fh.Size > maxLogoBytes {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "logo must be at most 2 MiB"})
		return
	}
	file, err := fh.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Close()

	t, err := h.svc.UploadLogo(c.Request.Context(), v, id, file, fh.Size, fh.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
