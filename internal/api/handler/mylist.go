package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hszk-dev/mylist/internal/api/middleware"
	"github.com/hszk-dev/mylist/internal/domain/model"
	"github.com/hszk-dev/mylist/internal/domain/repository"
	"github.com/hszk-dev/mylist/internal/usecase"
)

// Request/Response types

type AddItemRequest struct {
	ContentID   string `json:"contentId"`
	ContentType string `json:"contentType"`
}

type ListItemResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	ContentID   string `json:"contentId"`
	ContentType string `json:"contentType"`
	AddedAt     string `json:"addedAt"`
}

type ListItemsResponse struct {
	Data       []model.ListEntry `json:"data"`
	Pagination model.Pagination  `json:"pagination"`
	Cached     bool              `json:"cached"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// MyListHandler handles My List HTTP requests. All routes require the auth
// middleware to have resolved a user ID into the request context.
type MyListHandler struct {
	svc usecase.MyListService
}

// NewMyListHandler creates a new MyListHandler.
func NewMyListHandler(svc usecase.MyListService) *MyListHandler {
	return &MyListHandler{svc: svc}
}

// Add handles POST /api/mylist/add
func (h *MyListHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if req.ContentID == "" || req.ContentType == "" {
		Error(w, http.StatusBadRequest, "invalid_request", "contentId and contentType are required")
		return
	}

	contentType := model.ContentType(req.ContentType)
	if !contentType.IsValid() {
		Error(w, http.StatusBadRequest, "invalid_content_type", "contentType must be movie or tvshow")
		return
	}

	item, err := h.svc.AddItem(r.Context(), usecase.AddItemInput{
		UserID:      middleware.GetUserID(r.Context()),
		ContentID:   req.ContentID,
		ContentType: contentType,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toListItemResponse(item))
}

// Remove handles DELETE /api/mylist/remove/{contentID}
func (h *MyListHandler) Remove(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentID")
	if contentID == "" {
		Error(w, http.StatusBadRequest, "invalid_request", "contentId is required")
		return
	}

	if err := h.svc.RemoveItem(r.Context(), middleware.GetUserID(r.Context()), contentID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, MessageResponse{Message: "Item removed from My List"})
}

// Items handles GET /api/mylist/items
func (h *MyListHandler) Items(w http.ResponseWriter, r *http.Request) {
	// Unparseable or missing paging values fall back to defaults downstream.
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	out, err := h.svc.GetItems(r.Context(), usecase.GetItemsInput{
		UserID: middleware.GetUserID(r.Context()),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, ListItemsResponse{
		Data:       out.Page.Entries,
		Pagination: out.Page.Pagination,
		Cached:     out.Cached,
	})
}

func (h *MyListHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidUserID),
		errors.Is(err, model.ErrInvalidContentID),
		errors.Is(err, model.ErrInvalidContentType):
		Error(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, repository.ErrContentNotFound):
		Error(w, http.StatusNotFound, "content_not_found", "Content not found")
	case errors.Is(err, repository.ErrItemNotFound):
		Error(w, http.StatusNotFound, "item_not_found", "Item not found in My List")
	case errors.Is(err, repository.ErrAlreadyInList):
		Error(w, http.StatusConflict, "already_in_list", "Item already in My List")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func toListItemResponse(item *model.ListItem) ListItemResponse {
	return ListItemResponse{
		ID:          item.ID.String(),
		UserID:      item.UserID,
		ContentID:   item.ContentID,
		ContentType: item.ContentType.String(),
		AddedAt:     item.AddedAt.Format(time.RFC3339),
	}
}
