package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"github.com/planloop/planloop/internal/adapters/controller/http/middlewares"
	"github.com/planloop/planloop/internal/domain/entity"
	"github.com/planloop/planloop/internal/domain/service"
	"github.com/planloop/planloop/internal/domain/utils/validator"
	"github.com/planloop/planloop/pkg/qrcode"
)

type PlanHandler struct {
	plans *service.PlanService
}

func NewPlanHandler(plans *service.PlanService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

type planRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	WorkspaceID *string   `json:"workspaceId"`
	Tags        []string  `json:"tags"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

func (h *PlanHandler) Create(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}
	if !validator.PlanName(req.Name) {
		abortWithValidation(c, "plan name must be 3-100 characters")
		return
	}
	if !validator.PlanDescription(req.Description) {
		abortWithValidation(c, "plan description is too long")
		return
	}

	plan, err := h.plans.Create(c.Request.Context(), &entity.Plan{
		OwnerID:     middlewares.UserID(c),
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Tags:        req.Tags,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) Get(c *gin.Context) {
	plan, err := h.plans.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) GetMine(c *gin.Context) {
	plans, err := h.plans.GetByOwnerID(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlanHandler) Update(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}
	if !validator.PlanName(req.Name) {
		abortWithValidation(c, "plan name must be 3-100 characters")
		return
	}
	if !validator.PlanDescription(req.Description) {
		abortWithValidation(c, "plan description is too long")
		return
	}

	plan, err := h.plans.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	plan.Name = req.Name
	plan.Description = req.Description
	plan.Location = req.Location
	plan.WorkspaceID = req.WorkspaceID
	plan.Tags = req.Tags
	plan.StartTime = req.StartTime
	plan.EndTime = req.EndTime

	updated, err := h.plans.Update(c.Request.Context(), plan, middlewares.UserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *PlanHandler) Delete(c *gin.Context) {
	if err := h.plans.Delete(c.Request.Context(), c.Param("id"), middlewares.UserID(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetQR renders a QR code pointing at the plan's share link.
func (h *PlanHandler) GetQR(c *gin.Context) {
	plan, err := h.plans.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	png, err := qrcode.Generate(plan.ShareLink(viper.GetString("settings.base-url")), 0)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
