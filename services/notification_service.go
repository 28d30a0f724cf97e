package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"corpfinityAPI/internal/cache"
	"corpfinityAPI/internal/notification"
)

// PushProvider is the external push transport. The FCM implementation lives
// in internal/notification; tests inject fakes.
type PushProvider interface {
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (*notification.PushResult, error)
}

// tokenStore is the device-token persistence the service depends on. The
// pgx-backed store below is the production implementation; tests swap in
// fakes so Send can be exercised without a database.
type tokenStore interface {
	Register(ctx context.Context, userID uuid.UUID, req *notification.RegisterTokenRequest) (*notification.DeviceToken, error)
	Unregister(ctx context.Context, userID uuid.UUID, token string) error
	TokensForUser(ctx context.Context, userID uuid.UUID) ([]string, error)
	Delete(ctx context.Context, userID uuid.UUID, token string) error
}

// hourlyPushCap bounds pushes per user per hour so a burst of unlocks cannot
// spam a device.
const hourlyPushCap = 30

type NotificationService struct {
	tokens     tokenStore
	cache      *cache.Client
	provider   PushProvider
	dispatcher *NotificationDispatcher
}

func NewNotificationService(db *pgxpool.Pool, cacheClient *cache.Client) *NotificationService {
	service := &NotificationService{
		tokens: &pgxTokenStore{db: db},
		cache:  cacheClient,
	}

	service.dispatcher = NewNotificationDispatcher(service)

	return service
}

// SetPushProvider injects the real FCM provider from main.go. Without one,
// every send degrades to a logged no-op.
func (s *NotificationService) SetPushProvider(provider PushProvider) {
	s.provider = provider
}

func (s *NotificationService) Stop() {
	s.dispatcher.Stop()
}

// RegisterToken stores a device token for the user. Registering the same
// token twice is a no-op returning the existing row.
func (s *NotificationService) RegisterToken(ctx context.Context, userID uuid.UUID, req *notification.RegisterTokenRequest) (*notification.DeviceToken, error) {
	return s.tokens.Register(ctx, userID, req)
}

func (s *NotificationService) UnregisterToken(ctx context.Context, userID uuid.UUID, token string) error {
	return s.tokens.Unregister(ctx, userID, token)
}

// pruneTokens drops tokens the transport reported dead so they are never
// retried. Best-effort: a failed prune just means one more doomed send later.
func (s *NotificationService) pruneTokens(ctx context.Context, userID uuid.UUID, tokens []string) {
	for _, t := range tokens {
		if err := s.tokens.Delete(ctx, userID, t); err != nil {
			log.Printf("Notification: failed to prune token for user %s: %v", userID, err)
		}
	}
	if len(tokens) > 0 {
		log.Printf("Notification: pruned %d invalid tokens for user %s", len(tokens), userID)
	}
}

// Send pushes one notification to every device the user has registered.
// Transport trouble is absorbed here: no provider, no tokens, rate cap hit or
// a dead transport all come back as a result, never an error the business
// operation has to care about.
func (s *NotificationService) Send(ctx context.Context, userID uuid.UUID, title, body string, data map[string]string) (*notification.SendResult, error) {
	tokens, err := s.tokens.TokensForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return &notification.SendResult{}, nil
	}

	if s.provider == nil {
		log.Printf("Notification: no push provider configured, skipping send to user %s", userID)
		return &notification.SendResult{}, nil
	}

	if count := s.cache.IncrWindow(ctx, "notifrate", userID.String(), time.Hour); count > hourlyPushCap {
		log.Printf("Notification: hourly cap reached for user %s, dropping push", userID)
		return &notification.SendResult{}, nil
	}

	result, err := s.provider.SendMulticast(ctx, tokens, title, body, data)
	if err != nil {
		// Transport outage. Log and report everything failed.
		log.Printf("Notification: push transport failed for user %s: %v", userID, err)
		return &notification.SendResult{Failure: len(tokens)}, nil
	}

	s.pruneTokens(ctx, userID, result.InvalidTokens)

	return &notification.SendResult{Success: result.Success, Failure: result.Failure}, nil
}

// EnqueueAchievement hands an achievement-unlocked push to the worker pool.
// Fire-and-forget: the triggering request never waits on delivery.
func (s *NotificationService) EnqueueAchievement(userID uuid.UUID, title, emoji string) {
	s.dispatcher.Enqueue(&DispatchJob{
		UserID: userID,
		Title:  fmt.Sprintf("Achievement Unlocked! %s", emoji),
		Body:   fmt.Sprintf("You earned \"%s\"!", title),
		Data:   map[string]string{"type": "achievement"},
	})
}

// EnqueueStreakMilestone queues a celebration push for milestone streak
// lengths; other lengths are silently skipped.
func (s *NotificationService) EnqueueStreakMilestone(userID uuid.UUID, count int) {
	s.dispatcher.Enqueue(&DispatchJob{
		UserID: userID,
		Title:  "Streak Milestone! 🔥",
		Body:   fmt.Sprintf("You're on a %d-day streak. Keep it going!", count),
		Data:   map[string]string{"type": "streak_milestone", "days": fmt.Sprintf("%d", count)},
	})
}

// SendReminder delivers one reminder push synchronously; the scheduler awaits
// every dispatch in a tick before sleeping.
func (s *NotificationService) SendReminder(ctx context.Context, userID uuid.UUID, title, message string) (*notification.SendResult, error) {
	body := message
	if body == "" {
		body = "Time for your wellness break!"
	}
	return s.Send(ctx, userID, title, body, map[string]string{"type": "reminder"})
}

// pgxTokenStore keeps device tokens in the push_tokens table.
type pgxTokenStore struct {
	db *pgxpool.Pool
}

func (s *pgxTokenStore) Register(ctx context.Context, userID uuid.UUID, req *notification.RegisterTokenRequest) (*notification.DeviceToken, error) {
	existing := &notification.DeviceToken{}
	err := s.db.QueryRow(ctx, `
	SELECT id, user_id, token, platform, created_at
	FROM push_tokens
	WHERE user_id = $1 AND token = $2
	`, userID, req.Token).Scan(&existing.ID, &existing.UserID, &existing.Token, &existing.Platform, &existing.CreatedAt)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up push token: %w", err)
	}

	token := &notification.DeviceToken{}
	err = s.db.QueryRow(ctx, `
	INSERT INTO push_tokens (id, user_id, token, platform, created_at)
	VALUES ($1, $2, $3, $4, NOW())
	RETURNING id, user_id, token, platform, created_at
	`, uuid.New(), userID, req.Token, req.Platform).Scan(
		&token.ID, &token.UserID, &token.Token, &token.Platform, &token.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register push token: %w", err)
	}

	return token, nil
}

func (s *pgxTokenStore) Unregister(ctx context.Context, userID uuid.UUID, token string) error {
	result, err := s.db.Exec(ctx, `
	DELETE FROM push_tokens WHERE user_id = $1 AND token = $2
	`, userID, token)
	if err != nil {
		return fmt.Errorf("failed to unregister push token: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgxTokenStore) TokensForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT token FROM push_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch push tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan push token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (s *pgxTokenStore) Delete(ctx context.Context, userID uuid.UUID, token string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM push_tokens WHERE user_id = $1 AND token = $2`, userID, token)
	return err
}
