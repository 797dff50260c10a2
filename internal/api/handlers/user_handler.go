package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/pkg/response"
	"github.com/linskybing/formflow/pkg/utils"
)

type UserHandler struct {
	svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", token, maxAge, "/", "", config.IsProduction, true)
}

// Register godoc
// @Summary Register a new organization and its first user
// @Tags auth
// @Accept json
// @Produce json
// @Param input body user.RegisterInput true "Registration info"
// @Success 201 {object} user.Session
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 409 {object} response.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input user.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	sess, err := h.svc.RegisterUser(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	setTokenCookie(c, sess.Token, int(config.TokenTTL.Seconds()))
	c.JSON(http.StatusCreated, sess)
}

// Login godoc
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body user.LoginInput true "Credentials"
// @Success 200 {object} user.Session
// @Failure 401 {object} response.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input user.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	sess, err := h.svc.LoginUser(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	setTokenCookie(c, sess.Token, int(config.TokenTTL.Seconds()))
	c.JSON(http.StatusOK, sess)
}

// Logout godoc
// @Summary User logout
// @Tags auth
// @Produce json
// @Success 200 {object} response.MessageResponse "Logout successful"
// @Router /auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	setTokenCookie(c, "", -1)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Logout successful"})
}

// AuthStatus godoc
// @Summary Token status
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} types.Claims
// @Router /auth/status [get]
func (h *UserHandler) AuthStatus(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, claims)
}

// GetUsers godoc
// @Summary List the users of the caller's tenant
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} user.User
// @Router /users [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	users, err := h.svc.ListUsers(c.Request.Context(), v)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUserByID godoc
// @Summary Get user by ID
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} user.User
// @Failure 404 {object} response.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid user id"})
		return
	}

	usr, err := h.svc.FindUserByID(c.Request.Context(), v, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// CreateUser godoc
// @Summary Add a user to the caller's tenant
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body user.CreateUserInput true "User"
// @Success 201 {object} user.User
// @Failure 409 {object} response.ErrorResponse "Email already registered"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	var input user.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	usr, err := h.svc.CreateUser(c.Request.Context(), v, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usr)
}

// UpdateUser godoc
// @Summary Update user
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param input body user.UpdateUserInput true "Fields to change"
// @Success 200 {object} user.User
// @Failure 404 {object} response.ErrorResponse "User not found"
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid user id"})
		return
	}
	var input user.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	usr, err := h.svc.UpdateUser(c.Request.Context(), v, id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// DeleteUser godoc
// @Summary Delete user by ID
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204 "No Content"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid user id"})
		return
	}

	if err := h.svc.RemoveUser(c.Request.Context(), v, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
