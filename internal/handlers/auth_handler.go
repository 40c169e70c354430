package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/devconnect/backend/internal/middleware"
	"github.com/devconnect/backend/internal/models"
	"github.com/devconnect/backend/internal/services"
)

type AuthHandler struct {
	users  services.UserService
	tokens *services.TokenService
	logger *zap.Logger
}

func NewAuthHandler(users services.UserService, tokens *services.TokenService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a user and responds with a token, so the client is logged
// in straight away.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewMessageResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	user, err := h.users.Register(r.Context(), &req)
	if err != nil {
		if err == services.ErrEmailExists {
			writeJSON(w, http.StatusBadRequest, models.ValidationErrorResponse{
				Errors: []models.FieldError{{Msg: "User already exists", Param: "email"}},
			})
			return
		}
		serverError(h.logger, w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		serverError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}

// Login verifies credentials and responds with a token. Unknown email and
// wrong password produce the same body so accounts cannot be enumerated.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewMessageResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if err == services.ErrUserNotFound || err == services.ErrInvalidPassword {
			writeJSON(w, http.StatusBadRequest, models.ValidationErrorResponse{
				Errors: []models.FieldError{{Msg: "No user found"}},
			})
			return
		}
		serverError(h.logger, w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		serverError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}

// CurrentUser returns the caller's user record. The password hash is never
// serialized.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		if err == services.ErrUserNotFound {
			writeJSON(w, http.StatusNotFound, models.NewMessageResponse("User not found"))
			return
		}
		serverError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
