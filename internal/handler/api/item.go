package api

import (
	"errors"
	"net/http"

	"lendshare/internal/domain/comment"
	"lendshare/internal/domain/item"
	reqdto "lendshare/internal/handler/dto/request"
	resdto "lendshare/internal/handler/dto/response"
	"lendshare/internal/handler/middleware"
	"lendshare/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemHandler struct {
	itemUseCase    usecase.ItemUseCase
	commentUseCase usecase.CommentUseCase
}

func NewItemHandler(itemUseCase usecase.ItemUseCase, commentUseCase usecase.CommentUseCase) *ItemHandler {
	return &ItemHandler{
		itemUseCase:    itemUseCase,
		commentUseCase: commentUseCase,
	}
}

// @Summary Create item
// @Description Register a new item owned by the acting user
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param request body reqdto.CreateItemRequest true "Item data"
// @Success 201 {object} resdto.ItemResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params := usecase.CreateItemParams{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	}

	view, err := h.itemUseCase.Create(c.Request.Context(), params, userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, item.ErrEmptyName), errors.Is(err, item.ErrEmptyDescription):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromItemView(view))
}

// @Summary Update item
// @Description Patch item fields; omitted fields keep their stored values
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param itemId path string true "Item ID"
// @Param request body reqdto.UpdateItemRequest true "Fields to update"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{itemId} [patch]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID format",
		})
		return
	}

	var req reqdto.UpdateItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params := usecase.UpdateItemParams{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	}

	view, err := h.itemUseCase.Update(c.Request.Context(), itemID, params, userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		case errors.Is(err, usecase.ErrNotItemOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Item can only be edited by its owner",
			})
		case errors.Is(err, usecase.ErrRequestImmutable):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Originating request cannot be changed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemView(view))
}

// @Summary Get item
// @Description Get item with comments; booking details appear for the owner only
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{itemId} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID format",
		})
		return
	}

	view, err := h.itemUseCase.Get(c.Request.Context(), itemID, userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemView(view))
}

// @Summary List own items
// @Description List every item owned by the acting user with booking details
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param from query int false "Zero-based offset"
// @Param size query int false "Page size"
// @Success 200 {array} resdto.ItemResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items [get]
func (h *ItemHandler) GetOwnerItems(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	page, err := parsePage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid pagination parameters",
		})
		return
	}

	views, err := h.itemUseCase.ListByOwner(c.Request.Context(), userID, page)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemViews(views))
}

// @Summary Search items
// @Description Case-insensitive substring search over available items
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param text query string true "Search text; blank yields an empty list"
// @Success 200 {array} resdto.ItemResponse
// @Router /items/search [get]
func (h *ItemHandler) SearchItems(c *gin.Context) {
	views, err := h.itemUseCase.Search(c.Request.Context(), c.Query("text"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemViews(views))
}

// @Summary Add comment
// @Description Comment on an item; requires a completed approved booking
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param itemId path string true "Item ID"
// @Param request body reqdto.CreateCommentRequest true "Comment text"
// @Success 200 {object} resdto.CommentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{itemId}/comment [post]
func (h *ItemHandler) AddComment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID format",
		})
		return
	}

	var req reqdto.CreateCommentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.commentUseCase.Add(c.Request.Context(), itemID, req.Text, userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, usecase.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		case errors.Is(err, usecase.ErrNoCompletedBooking):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "No completed approved booking for this item",
			})
		case errors.Is(err, comment.ErrEmptyText):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Comment text cannot be empty",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCommentView(view))
}
