package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"corpfinityAPI/internal/reminder"
	"corpfinityAPI/services"
)

type ReminderHandler struct {
	reminderService *services.ReminderService
}

func NewReminderHandler(reminderService *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
	}
}

func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req reminder.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.reminderService.Create(ctx, userID, &req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	list, err := h.reminderService.List(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Unable to load reminders")
		return
	}

	respondWithJSON(w, http.StatusOK, list)
}

func (h *ReminderHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	reminderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid reminder id")
		return
	}

	rem, err := h.reminderService.Get(ctx, userID, reminderID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Reminder not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Unable to load reminder")
		return
	}

	respondWithJSON(w, http.StatusOK, rem)
}

func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	reminderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid reminder id")
		return
	}

	var req reminder.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.reminderService.Update(ctx, userID, reminderID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Reminder not found")
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *ReminderHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	reminderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid reminder id")
		return
	}

	toggled, err := h.reminderService.Toggle(ctx, userID, reminderID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Reminder not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Unable to toggle reminder")
		return
	}

	respondWithJSON(w, http.StatusOK, toggled)
}

func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	reminderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid reminder id")
		return
	}

	if err := h.reminderService.Delete(ctx, userID, reminderID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Reminder not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Unable to delete reminder")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Reminder deleted"})
}
