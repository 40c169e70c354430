package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/devconnect/backend/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// serverError logs the underlying failure and answers with a generic 500.
// Internal detail never reaches the client.
func serverError(logger *zap.Logger, w http.ResponseWriter, err error) {
	logger.Error("request failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, models.NewMessageResponse("Server error"))
}
