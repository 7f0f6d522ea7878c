package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planloop/planloop/internal/adapters/controller/http/middlewares"
	"github.com/planloop/planloop/internal/domain/entity"
	"github.com/planloop/planloop/internal/domain/service"
	"github.com/planloop/planloop/internal/domain/utils/validator"
)

type WorkspaceHandler struct {
	workspaces *service.WorkspaceService
	plans      *service.PlanService
	posts      *service.PostService
}

func NewWorkspaceHandler(workspaces *service.WorkspaceService, plans *service.PlanService, posts *service.PostService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces, plans: plans, posts: posts}
}

type workspaceRequest struct {
	Name           string `json:"name" binding:"required"`
	OrganizationID string `json:"organizationId" binding:"required,uuid"`
}

func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req workspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}
	if !validator.Name(req.Name) {
		abortWithValidation(c, "invalid workspace name")
		return
	}

	workspace, err := h.workspaces.Create(c.Request.Context(), &entity.Workspace{
		Name:           req.Name,
		OrganizationID: req.OrganizationID,
	}, middlewares.UserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workspace)
}

func (h *WorkspaceHandler) Get(c *gin.Context) {
	workspace, err := h.workspaces.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, workspace)
}

func (h *WorkspaceHandler) GetByOrganization(c *gin.Context) {
	workspaces, err := h.workspaces.GetByOrganizationID(c.Request.Context(), c.Query("organizationId"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, workspaces)
}

func (h *WorkspaceHandler) Update(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}

	workspace, err := h.workspaces.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	workspace.Name = req.Name

	updated, err := h.workspaces.Update(c.Request.Context(), workspace)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *WorkspaceHandler) Delete(c *gin.Context) {
	if err := h.workspaces.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkspaceHandler) GetMembers(c *gin.Context) {
	members, err := h.workspaces.GetMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *WorkspaceHandler) AddMember(c *gin.Context) {
	var req struct {
		UserID uint `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}

	member, err := h.workspaces.AddMember(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	var req struct {
		UserID uint `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}

	if err := h.workspaces.RemoveMember(c.Request.Context(), c.Param("id"), req.UserID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkspaceHandler) GetPlans(c *gin.Context) {
	plans, err := h.plans.GetByWorkspaceID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *WorkspaceHandler) GetPosts(c *gin.Context) {
	posts, err := h.posts.GetByWorkspaceID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
