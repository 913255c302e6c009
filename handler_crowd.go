package trainjatri

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type confirmRequest struct {
	UserID      string             `json:"user_id"`
	StationName string             `json:"station_name"`
	Coordinates map[string]float64 `json:"coordinates"`
}

func (a *App) handleConfirm(w http.ResponseWriter, r *http.Request) {
	trainNumber := chi.URLParam(r, "trainNumber")

	var req confirmRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	result, err := a.Crowd.Confirm(trainNumber, req.UserID, req.StationName, req.Coordinates)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Metrics.Confirmations.Inc()
	a.Events.PublishConfirmation(trainNumber, req.UserID, req.StationName)

	respond(w, http.StatusOK, envelope{
		"message":       result.Message,
		"train_number":  trainNumber,
		"user_id":       req.UserID,
		"confirmed_at":  result.Timestamp,
		"crowd_metrics": result.Metrics,
	})
}

func (a *App) handleCrowdData(w http.ResponseWriter, r *http.Request) {
	trainNumber := chi.URLParam(r, "trainNumber")
	respond(w, http.StatusOK, envelope{
		"crowd_data": a.Crowd.CrowdData(trainNumber),
	})
}
