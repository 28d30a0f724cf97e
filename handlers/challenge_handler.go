package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"corpfinityAPI/internal/challenge"
	"corpfinityAPI/services"
)

type ChallengeHandler struct {
	challengeService *services.ChallengeService
}

func NewChallengeHandler(challengeService *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
	}
}

func (h *ChallengeHandler) Complete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req challenge.CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	entry, err := h.challengeService.Complete(ctx, userID, &req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Unable to log challenge")
		return
	}

	respondWithJSON(w, http.StatusCreated, entry)
}

func (h *ChallengeHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	var startDate, endDate *time.Time
	if raw := q.Get("start_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
		startDate = &t
	}
	if raw := q.Get("end_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
			return
		}
		// Include the whole end day.
		t = t.Add(24*time.Hour - time.Nanosecond)
		endDate = &t
	}

	history, err := h.challengeService.History(ctx, userID, page, pageSize, startDate, endDate)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Unable to load challenge history")
		return
	}

	respondWithJSON(w, http.StatusOK, history)
}

func (h *ChallengeHandler) Today(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	items, err := h.challengeService.Today(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Unable to load today's challenges")
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}

func (h *ChallengeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	challengeID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		return
	}

	entry, err := h.challengeService.GetByID(ctx, userID, challengeID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Challenge not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Unable to load challenge")
		return
	}

	respondWithJSON(w, http.StatusOK, entry)
}
