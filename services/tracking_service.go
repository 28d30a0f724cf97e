package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"corpfinityAPI/internal/cache"
	"corpfinityAPI/internal/tracking"
)

const trackingColumns = `id, user_id, date, water_intake, mood, breathing_sessions, posture_checks, screen_breaks, morning_stretch, evening_reflection, created_at, updated_at`

const defaultWaterIncrement = 250

type TrackingService struct {
	db    *pgxpool.Pool
	cache *cache.Client
}

func NewTrackingService(db *pgxpool.Pool, cacheClient *cache.Client) *TrackingService {
	return &TrackingService{db: db, cache: cacheClient}
}

func scanDaily(row pgx.Row) (*tracking.Daily, error) {
	d := &tracking.Daily{}
	err := row.Scan(
		&d.ID, &d.UserID, &d.Date, &d.WaterIntake, &d.Mood,
		&d.BreathingSessions, &d.PostureChecks, &d.ScreenBreaks,
		&d.MorningStretch, &d.EveningReflection, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

// GetToday returns today's tracking row, creating an empty one on first
// touch. The upsert makes concurrent first requests converge on one row.
func (s *TrackingService) GetToday(ctx context.Context, userID uuid.UUID) (*tracking.Daily, error) {
	if raw, ok := s.cache.Get(ctx, "tracking", userID.String()); ok {
		d := &tracking.Daily{}
		if err := json.Unmarshal([]byte(raw), d); err == nil {
			return d, nil
		}
	}

	d, err := scanDaily(s.db.QueryRow(ctx, `
	INSERT INTO daily_tracking (id, user_id, date)
	VALUES ($1, $2, CURRENT_DATE)
	ON CONFLICT (user_id, date) DO UPDATE SET user_id = EXCLUDED.user_id
	RETURNING `+trackingColumns, uuid.New(), userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get today's tracking: %w", err)
	}

	s.cacheToday(ctx, d)
	return d, nil
}

// UpdateToday applies only the fields present in the request.
func (s *TrackingService) UpdateToday(ctx context.Context, userID uuid.UUID, req *tracking.UpdateRequest) (*tracking.Daily, error) {
	d, err := s.GetToday(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.WaterIntake != nil {
		if *req.WaterIntake < 0 {
			return nil, fmt.Errorf("water_intake cannot be negative")
		}
		d.WaterIntake = *req.WaterIntake
	}
	if req.Mood != nil {
		d.Mood = req.Mood
	}
	if req.BreathingSessions != nil {
		d.BreathingSessions = *req.BreathingSessions
	}
	if req.PostureChecks != nil {
		d.PostureChecks = *req.PostureChecks
	}
	if req.ScreenBreaks != nil {
		d.ScreenBreaks = *req.ScreenBreaks
	}
	if req.MorningStretch != nil {
		d.MorningStretch = *req.MorningStretch
	}
	if req.EveningReflection != nil {
		d.EveningReflection = *req.EveningReflection
	}

	updated, err := scanDaily(s.db.QueryRow(ctx, `
	UPDATE daily_tracking
	SET water_intake = $1, mood = $2, breathing_sessions = $3, posture_checks = $4,
	    screen_breaks = $5, morning_stretch = $6, evening_reflection = $7, updated_at = NOW()
	WHERE user_id = $8 AND date = CURRENT_DATE
	RETURNING `+trackingColumns,
		d.WaterIntake, d.Mood, d.BreathingSessions, d.PostureChecks,
		d.ScreenBreaks, d.MorningStretch, d.EveningReflection, userID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update tracking: %w", err)
	}

	s.cacheToday(ctx, updated)
	return updated, nil
}

// IncrementWater bumps today's water intake. Amount of zero falls back to one
// glass worth of milliliters.
func (s *TrackingService) IncrementWater(ctx context.Context, userID uuid.UUID, amount int) (*tracking.Daily, error) {
	if amount < 0 {
		return nil, fmt.Errorf("amount cannot be negative")
	}
	if amount == 0 {
		amount = defaultWaterIncrement
	}

	if _, err := s.GetToday(ctx, userID); err != nil {
		return nil, err
	}

	d, err := scanDaily(s.db.QueryRow(ctx, `
	UPDATE daily_tracking
	SET water_intake = water_intake + $1, updated_at = NOW()
	WHERE user_id = $2 AND date = CURRENT_DATE
	RETURNING `+trackingColumns, amount, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to increment water intake: %w", err)
	}

	s.cacheToday(ctx, d)
	return d, nil
}

func (s *TrackingService) SetMood(ctx context.Context, userID uuid.UUID, mood string) (*tracking.Daily, error) {
	if mood == "" {
		return nil, fmt.Errorf("mood is required")
	}
	return s.UpdateToday(ctx, userID, &tracking.UpdateRequest{Mood: &mood})
}

// History returns tracking rows for the past N days, newest first.
func (s *TrackingService) History(ctx context.Context, userID uuid.UUID, days int) (*tracking.HistoryResponse, error) {
	if days < 1 || days > 365 {
		days = 30
	}

	rows, err := s.db.Query(ctx, `
	SELECT `+trackingColumns+`
	FROM daily_tracking
	WHERE user_id = $1 AND date >= CURRENT_DATE - $2::int
	ORDER BY date DESC
	`, userID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tracking history: %w", err)
	}
	defer rows.Close()

	items := []*tracking.Daily{}
	for rows.Next() {
		d, err := scanDaily(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tracking row: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &tracking.HistoryResponse{Items: items, Total: len(items)}, nil
}

func (s *TrackingService) cacheToday(ctx context.Context, d *tracking.Daily) {
	if raw, err := json.Marshal(d); err == nil {
		s.cache.Set(ctx, "tracking", d.UserID.String(), string(raw), cache.TrackingTTL)
	}
}
