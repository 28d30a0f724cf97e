package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"corpfinityAPI/internal/notification"
	"corpfinityAPI/services"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req notification.RegisterTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" {
		respondWithError(w, http.StatusBadRequest, "token is required")
		return
	}

	device, err := h.notificationService.RegisterToken(ctx, userID, &req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Unable to register device")
		return
	}

	respondWithJSON(w, http.StatusCreated, device)
}

func (h *NotificationHandler) UnregisterDevice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req notification.UnregisterTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		respondWithError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.notificationService.UnregisterToken(ctx, userID, req.Token); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Device token not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Unable to unregister device")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Device unregistered"})
}

// TestSend pushes a canned notification to the caller's own devices.
func (h *NotificationHandler) TestSend(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	result, err := h.notificationService.Send(ctx, userID, "Test notification", "Push notifications are working!", map[string]string{"type": "test"})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Unable to send test notification")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
