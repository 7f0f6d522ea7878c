package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planloop/planloop/internal/adapters/controller/http/middlewares"
	"github.com/planloop/planloop/internal/domain/service"
)

type SessionHandler struct {
	sessions *service.SessionService
}

func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// GetSession returns the caller's session context, creating the default
// organization and workspace on first use.
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessions.GetSession(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
