package handlers

import (
	"context"
	"net/http"
	"time"

	"corpfinityAPI/services"
)

type StreakHandler struct {
	streakService *services.StreakService
}

func NewStreakHandler(streakService *services.StreakService) *StreakHandler {
	return &StreakHandler{
		streakService: streakService,
	}
}

func (h *StreakHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	s, err := h.streakService.Get(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Unable to load streak")
		return
	}

	respondWithJSON(w, http.StatusOK, s)
}

func (h *StreakHandler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	result, err := h.streakService.Validate(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Unable to validate streak")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (h *StreakHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	s, err := h.streakService.Reset(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Unable to reset streak")
		return
	}

	respondWithJSON(w, http.StatusOK, s)
}
