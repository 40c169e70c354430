package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/devconnect/backend/internal/middleware"
	"github.com/devconnect/backend/internal/models"
	"github.com/devconnect/backend/internal/services"
)

type PostHandler struct {
	posts  services.PostService
	logger *zap.Logger
}

func NewPostHandler(posts services.PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		posts:  posts,
		logger: logger,
	}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewMessageResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	post, err := h.posts.Create(r.Context(), middleware.GetUserID(r.Context()), req.Text)
	if err != nil {
		serverError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		serverError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if err == services.ErrPostNotFound {
			writeJSON(w, http.StatusNotFound, models.NewMessageResponse("Post not found"))
			return
		}
		serverError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.posts.Delete(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		switch err {
		case services.ErrPostNotFound:
			writeJSON(w, http.StatusNotFound, models.NewMessageResponse("Post not found"))
		case services.ErrNotPostAuthor:
			writeJSON(w, http.StatusUnauthorized, models.NewMessageResponse("User not authorized"))
		default:
			serverError(h.logger, w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, models.NewMessageResponse("Post removed"))
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	likes, err := h.posts.Like(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		switch err {
		case services.ErrPostNotFound:
			writeJSON(w, http.StatusNotFound, models.NewMessageResponse("Post not found"))
		case services.ErrAlreadyLiked:
			writeJSON(w, http.StatusBadRequest, models.NewMessageResponse("Post already liked"))
		default:
			serverError(h.logger, w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, likes)
}

func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	likes, err := h.posts.Unlike(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		switch err {
		case services.ErrPostNotFound:
			writeJSON(w, http.StatusNotFound, models.NewMessageResponse("Post not found"))
		case services.ErrNotLiked:
			writeJSON(w, http.StatusBadRequest, models.NewMessageResponse("Post has not been yet liked"))
		default:
			serverError(h.logger, w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, likes)
}

func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req models.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewMessageResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	comments, err := h.posts.AddComment(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()), req.Text)
	if err != nil {
		if err == services.ErrPostNotFound {
			writeJSON(w, http.StatusNotFound, models.NewMessageResponse("Post not found"))
			return
		}
		serverError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

func (h *PostHandler) RemoveComment(w http.ResponseWriter, r *http.Request) {
	comments, err := h.posts.RemoveComment(
		r.Context(),
		chi.URLParam(r, "id"),
		chi.URLParam(r, "comment_id"),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		switch err {
		case services.ErrPostNotFound:
			writeJSON(w, http.StatusNotFound, models.NewMessageResponse("Post not found"))
		case services.ErrCommentNotFound:
			writeJSON(w, http.StatusNotFound, models.NewMessageResponse("Comment does not exist"))
		case services.ErrNotCommentAuthor:
			writeJSON(w, http.StatusUnauthorized, models.NewMessageResponse("User not authorized"))
		default:
			serverError(h.logger, w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, comments)
}
