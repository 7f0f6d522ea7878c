package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planloop/planloop/internal/adapters/controller/http/middlewares"
	"github.com/planloop/planloop/internal/domain/entity"
	"github.com/planloop/planloop/internal/domain/service"
	"github.com/planloop/planloop/internal/domain/utils/validator"
)

type OrganizationHandler struct {
	organizations *service.OrganizationService
}

func NewOrganizationHandler(organizations *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{organizations: organizations}
}

type organizationRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	var req organizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}
	if !validator.Name(req.Name) {
		abortWithValidation(c, "invalid organization name")
		return
	}

	organization, err := h.organizations.Create(c.Request.Context(), &entity.Organization{
		Name:    req.Name,
		OwnerID: middlewares.UserID(c),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, organization)
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	organization, err := h.organizations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, organization)
}

func (h *OrganizationHandler) GetMine(c *gin.Context) {
	organizations, err := h.organizations.GetByUserID(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, organizations)
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	var req organizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}

	organization, err := h.organizations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	organization.Name = req.Name

	updated, err := h.organizations.Update(c.Request.Context(), organization)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
	if err := h.organizations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type inviteRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h *OrganizationHandler) Invite(c *gin.Context) {
	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}
	if !validator.Email(req.Email) {
		abortWithValidation(c, "invalid email")
		return
	}

	code, err := h.organizations.Invite(c.Request.Context(), c.Param("id"), req.Email)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code})
}

type acceptInviteRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *OrganizationHandler) AcceptInvite(c *gin.Context) {
	var req acceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}

	member, err := h.organizations.AcceptInvite(c.Request.Context(), req.Code, middlewares.UserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *OrganizationHandler) RemoveMember(c *gin.Context) {
	var req struct {
		UserID uint `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}

	if err := h.organizations.RemoveMember(c.Request.Context(), c.Param("id"), req.UserID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
