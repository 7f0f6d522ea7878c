package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planloop/planloop/internal/adapters/controller/http/middlewares"
	"github.com/planloop/planloop/internal/domain/entity"
	"github.com/planloop/planloop/internal/domain/service"
)

type CommentHandler struct {
	comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type commentRequest struct {
	ParentType string `json:"parentType" binding:"required,oneof=plan post"`
	ParentID   string `json:"parentId" binding:"required,uuid"`
	Body       string `json:"body" binding:"required,max=2000"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), &entity.Comment{
		AuthorID:   middlewares.UserID(c),
		ParentType: entity.CommentParent(req.ParentType),
		ParentID:   req.ParentID,
		Body:       req.Body,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) GetByParent(c *gin.Context) {
	comments, err := h.comments.GetByParent(
		c.Request.Context(),
		entity.CommentParent(c.Query("parentType")),
		c.Query("parentId"),
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req struct {
		Body string `json:"body" binding:"required,max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithValidation(c, err.Error())
		return
	}

	comment, err := h.comments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	comment.Body = req.Body

	updated, err := h.comments.Update(c.Request.Context(), comment)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.comments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
