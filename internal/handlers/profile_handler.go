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

type ProfileHandler struct {
	profiles services.ProfileService
	accounts services.AccountService
	logger   *zap.Logger
}

func NewProfileHandler(profiles services.ProfileService, accounts services.AccountService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		accounts: accounts,
		logger:   logger,
	}
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	prof, err := h.profiles.GetByUserID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusBadRequest, models.NewMessageResponse("There is no profile for this user"))
			return
		}
		serverError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, prof)
}

// Upsert creates the caller's profile on first submission, otherwise patches
// the recognized fields in place.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewMessageResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	prof, err := h.profiles.Upsert(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		serverError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, prof)
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		serverError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

func (h *ProfileHandler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	prof, err := h.profiles.GetByUserID(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusBadRequest, models.NewMessageResponse("No such profile"))
			return
		}
		serverError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, prof)
}

// DeleteAccount removes the caller's profile, user record, and posts.
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.DeleteAccount(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		serverError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewMessageResponse("User deleted"))
}

func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	var req models.ExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewMessageResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	prof, err := h.profiles.AddExperience(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusBadRequest, models.NewMessageResponse("There is no profile for this user"))
			return
		}
		serverError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, prof)
}

func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	prof, err := h.profiles.RemoveExperience(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "exp_id"))
	if err != nil {
		switch err {
		case services.ErrProfileNotFound:
			writeJSON(w, http.StatusBadRequest, models.NewMessageResponse("There is no profile for this user"))
		case services.ErrExperienceNotFound:
			writeJSON(w, http.StatusNotFound, models.NewMessageResponse("Experience not found"))
		default:
			serverError(h.logger, w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, prof)
}

func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	var req models.EducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewMessageResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	prof, err := h.profiles.AddEducation(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusBadRequest, models.NewMessageResponse("There is no profile for this user"))
			return
		}
		serverError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, prof)
}

func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	prof, err := h.profiles.RemoveEducation(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "ed_id"))
	if err != nil {
		switch err {
		case services.ErrProfileNotFound:
			writeJSON(w, http.StatusBadRequest, models.NewMessageResponse("There is no profile for this user"))
		case services.ErrEducationNotFound:
			writeJSON(w, http.StatusNotFound, models.NewMessageResponse("Education not found"))
		default:
			serverError(h.logger, w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, prof)
}
