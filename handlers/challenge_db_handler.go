package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"corpfinityAPI/services"
)

type ChallengeDBHandler struct {
	challengeDBService *services.ChallengeDBService
}

func NewChallengeDBHandler(challengeDBService *services.ChallengeDBService) *ChallengeDBHandler {
	return &ChallengeDBHandler{
		challengeDBService: challengeDBService,
	}
}

func (h *ChallengeDBHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	categories, err := h.challengeDBService.Categories(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Unable to load challenge categories")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string][]string{"categories": categories})
}

func (h *ChallengeDBHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	items, err := h.challengeDBService.List(ctx, q.Get("pillar"), q.Get("energy_level"), limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Unable to load challenges")
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}

func (h *ChallengeDBHandler) Random(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()
	item, err := h.challengeDBService.Random(ctx, q.Get("pillar"), q.Get("energy_level"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "No challenges match the given filters")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Unable to pick a challenge")
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}

func (h *ChallengeDBHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stats, err := h.challengeDBService.Stats(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Unable to load challenge stats")
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
