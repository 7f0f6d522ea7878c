package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/planloop/planloop/internal/adapters/controller/http/middlewares"
	"github.com/planloop/planloop/internal/domain/service"
)

type ActivityHandler struct {
	activities *service.ActivityService
}

func NewActivityHandler(activities *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// GetActivities returns the merged plan/post feed for the requested scope.
// Scope narrows top-down: no organizationId means the caller's own entities,
// organizationId alone covers all its workspaces, workspaceId narrows further.
func (h *ActivityHandler) GetActivities(c *gin.Context) {
	var workspaceID, organizationID *string
	if v := c.Query("workspaceId"); v != "" {
		workspaceID = &v
	}
	if v := c.Query("organizationId"); v != "" {
		organizationID = &v
	}

	var from *time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			abortWithValidation(c, "from must be RFC3339")
			return
		}
		from = &parsed
	}

	activities, err := h.activities.GetActivitiesFor(
		c.Request.Context(),
		middlewares.UserID(c),
		workspaceID,
		organizationID,
		from,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}
