package handlers

import (
	"errors"
	"net/http"

	"clinicportal/models"
	"clinicportal/services/user"
	"clinicportal/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves account, token, and admin-management endpoints.
type UserHandler struct {
	Users user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Users: svc}
}

// SaveUser stores an account at signup. POST /users
func (h *UserHandler) SaveUser(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid user payload")
		return
	}

	if _, err := h.Users.SaveUser(c.Request.Context(), input.Name, input.Email, input.Password); err != nil {
		if errors.Is(err, user.ErrEmailRequired) {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{Success: true, Message: "User saved"})
}

// Login authenticates a password account. POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid login payload")
		return
	}

	u, token, err := h.Users.Authenticate(c.Request.Context(), input.Email, input.Password)
	if errors.Is(err, user.ErrUnknownUser) || errors.Is(err, user.ErrBadCredentials) {
		utils.JSONError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: gin.H{"user": u, "token": token}})
}

// IssueToken signs a JWT for an existing account. GET /jwt?email=<e>
func (h *UserHandler) IssueToken(c *gin.Context) {
	email := c.Query("email")

	token, err := h.Users.IssueToken(c.Request.Context(), email)
	if errors.Is(err, user.ErrUnknownUser) {
		utils.JSONError(c, http.StatusUnauthorized, "forbidden")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: token})
}

// GetAllUsers lists every account. GET /users (admin)
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.Users.GetAllUsers(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: users})
}

// DeleteUser removes an account. DELETE /users/:id (admin)
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.Users.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Message: "user deleted"})
}

// MakeAdmin promotes an account. PUT /users/admin/:id (admin)
func (h *UserHandler) MakeAdmin(c *gin.Context) {
	if err := h.Users.GrantAdmin(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Message: "Admin added"})
}

// CheckAdmin reports whether an email has the admin role, for UI gating.
// GET /users/admin/:email
func (h *UserHandler) CheckAdmin(c *gin.Context) {
	isAdmin, err := h.Users.IsAdmin(c.Request.Context(), c.Param("email"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"isAdmin": isAdmin})
}
