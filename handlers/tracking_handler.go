package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"corpfinityAPI/internal/tracking"
	"corpfinityAPI/services"
)

type TrackingHandler struct {
	trackingService *services.TrackingService
}

func NewTrackingHandler(trackingService *services.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
	}
}

func (h *TrackingHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	d, err := h.trackingService.GetToday(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Unable to load today's tracking")
		return
	}

	respondWithJSON(w, http.StatusOK, d)
}

func (h *TrackingHandler) UpdateToday(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req tracking.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.trackingService.UpdateToday(ctx, userID, &req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, d)
}

func (h *TrackingHandler) AddWater(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var body struct {
		Amount int `json:"amount"`
	}
	if r.Body != nil {
		// An empty body means one default glass.
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	d, err := h.trackingService.IncrementWater(ctx, userID, body.Amount)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, d)
}

func (h *TrackingHandler) SetMood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var body struct {
		Mood string `json:"mood"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.trackingService.SetMood(ctx, userID, body.Mood)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, d)
}

func (h *TrackingHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	history, err := h.trackingService.History(ctx, userID, days)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Unable to load tracking history")
		return
	}

	respondWithJSON(w, http.StatusOK, history)
}
