package handlers

import (
	"context"
	"net/http"
	"time"

	"corpfinityAPI/services"
)

type AchievementHandler struct {
	achievementService *services.AchievementService
}

func NewAchievementHandler(achievementService *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{
		achievementService: achievementService,
	}
}

func (h *AchievementHandler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	list, err := h.achievementService.GetAchievements(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Unable to load achievements")
		return
	}

	respondWithJSON(w, http.StatusOK, list)
}

// Check runs the unlock sweep and returns only the achievements unlocked by
// this call.
func (h *AchievementHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	unlocked, err := h.achievementService.Check(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Unable to check achievements")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"newly_unlocked": unlocked,
		"count":          len(unlocked),
	})
}
