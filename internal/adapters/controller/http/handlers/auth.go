package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/planloop/planloop/internal/domain/entity"
	"github.com/planloop/planloop/internal/domain/service"
	"github.com/planloop/planloop/internal/domain/utils/validator"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func newUserResponse(user *entity.User) userResponse {
	return userResponse{ID: user.ID, Email: user.Email, Name: user.Name}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}
	if !validator.Email(req.Email) {
		abortWithValidation(c, "invalid email")
		return
	}
	if !validator.Name(req.Name) {
		abortWithValidation(c, "invalid name")
		return
	}
	if !validator.Password(req.Password) {
		abortWithValidation(c, "password must be 8-72 characters")
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{Token: token, User: newUserResponse(user)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token, User: newUserResponse(user)})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
