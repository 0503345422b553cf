package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"stockfolio/models"
	"stockfolio/repository"
)

type CommentHandler struct {
	comments repository.CommentRepository
	stocks   repository.StockRepository
	users    UserResolver
	log      logrus.FieldLogger
}

func NewCommentHandler(comments repository.CommentRepository, stocks repository.StockRepository,
	users UserResolver, log logrus.FieldLogger) *CommentHandler {
	return &CommentHandler{comments: comments, stocks: stocks, users: users, log: log}
}

func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.comments.List(c.Request.Context())
	if err != nil {
		internalError(c, h.log, "ListComments", err)
		return
	}
	SuccessResponse(c, http.StatusOK, msgLoaded, toCommentDtos(comments))
}

func (h *CommentHandler) Get(c *gin.Context) {
	var p idParam
	if err := c.ShouldBindUri(&p); err != nil {
		badRequest(c, err)
		return
	}

	comment, err := h.comments.GetByID(c.Request.Context(), p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, msgNotFound, nil)
			return
		}
		internalError(c, h.log, "GetComment", err)
		return
	}
	SuccessResponse(c, http.StatusOK, msgLoaded, toCommentDto(comment))
}

// Create attaches a comment by the caller to an existing stock.
func (h *CommentHandler) Create(c *gin.Context) {
	var p stockIDParam
	if err := c.ShouldBindUri(&p); err != nil {
		badRequest(c, err)
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	exists, err := h.stocks.Exists(ctx, p.StockID)
	if err != nil {
		internalError(c, h.log, "CreateComment", err)
		return
	}
	if !exists {
		ErrorResponse(c, http.StatusBadRequest, "Stock does not exist", nil)
		return
	}

	user, ok := currentUser(c, h.users, h.log)
	if !ok {
		return
	}

	comment := &models.Comment{Title: req.Title, Content: req.Content, StockID: p.StockID, UserID: user.ID}
	if err := h.comments.Create(ctx, comment); err != nil {
		internalError(c, h.log, "CreateComment", err)
		return
	}
	SuccessResponse(c, http.StatusOK, msgAdded, toCommentDto(comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	var p idParam
	if err := c.ShouldBindUri(&p); err != nil {
		badRequest(c, err)
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), p.ID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Comment not found", nil)
			return
		}
		internalError(c, h.log, "UpdateComment", err)
		return
	}
	SuccessResponse(c, http.StatusOK, msgUpdated, toCommentDto(comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	var p idParam
	if err := c.ShouldBindUri(&p); err != nil {
		badRequest(c, err)
		return
	}

	comment, err := h.comments.Delete(c.Request.Context(), p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, "Comment does not exist", nil)
			return
		}
		internalError(c, h.log, "DeleteComment", err)
		return
	}
	SuccessResponse(c, http.StatusOK, msgDeleted, toCommentDto(comment))
}
