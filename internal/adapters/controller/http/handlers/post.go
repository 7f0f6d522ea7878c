package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planloop/planloop/internal/adapters/controller/http/middlewares"
	"github.com/planloop/planloop/internal/domain/entity"
	"github.com/planloop/planloop/internal/domain/service"
	"github.com/planloop/planloop/internal/domain/utils/validator"
)

type PostHandler struct {
	posts *service.PostService
}

func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

type postRequest struct {
	Title       string  `json:"title" binding:"required"`
	Body        string  `json:"body"`
	WorkspaceID *string `json:"workspaceId"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}
	if !validator.PostTitle(req.Title) {
		abortWithValidation(c, "post title must be 1-200 characters")
		return
	}
	if !validator.PostBody(req.Body) {
		abortWithValidation(c, "post body is too long")
		return
	}

	post, err := h.posts.Create(c.Request.Context(), &entity.Post{
		AuthorID:    middlewares.UserID(c),
		WorkspaceID: req.WorkspaceID,
		Title:       req.Title,
		Body:        req.Body,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) GetMine(c *gin.Context) {
	posts, err := h.posts.GetByAuthorID(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Update(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}
	if !validator.PostTitle(req.Title) {
		abortWithValidation(c, "post title must be 1-200 characters")
		return
	}
	if !validator.PostBody(req.Body) {
		abortWithValidation(c, "post body is too long")
		return
	}

	post, err := h.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	post.Title = req.Title
	post.Body = req.Body
	post.WorkspaceID = req.WorkspaceID

	updated, err := h.posts.Update(c.Request.Context(), post, middlewares.UserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), c.Param("id"), middlewares.UserID(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
