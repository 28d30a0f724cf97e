package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"corpfinityAPI/internal/cache"
	"corpfinityAPI/internal/streak"
)

type StreakService struct {
	db    *pgxpool.Pool
	cache *cache.Client
}

func NewStreakService(db *pgxpool.Pool, cache *cache.Client) *StreakService {
	return &StreakService{db: db, cache: cache}
}

// Get returns the user's streak, serving from cache when possible. A user
// with no streak row gets a zero-value response rather than an error.
func (s *StreakService) Get(ctx context.Context, userID uuid.UUID) (*streak.Streak, error) {
	if cached, ok := s.cache.Get(ctx, "streak", userID.String()); ok {
		st := &streak.Streak{}
		if err := json.Unmarshal([]byte(cached), st); err == nil {
			return st, nil
		}
		// Bad cache entry, fall through to the database.
	}

	st := &streak.Streak{UserID: userID}
	query := `
	SELECT id, user_id, current_streak, longest_streak, last_completed_date, updated_at
	FROM user_streaks
	WHERE user_id = $1
	`
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&st.ID,
		&st.UserID,
		&st.CurrentStreak,
		&st.LongestStreak,
		&st.LastCompletedDate,
		&st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &streak.Streak{UserID: userID, UpdatedAt: time.Now()}, nil
		}
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}

	if data, err := json.Marshal(st); err == nil {
		s.cache.Set(ctx, "streak", userID.String(), string(data), cache.StreakTTL)
	}

	return st, nil
}

// Update applies a completion on "today" to the user's streak row. It runs
// inside the caller's transaction, which also holds the history insert, so
// the two commit or roll back together. The row is locked for the duration
// so two simultaneous completions cannot both read the stale date.
func (s *StreakService) Update(ctx context.Context, tx pgx.Tx, userID uuid.UUID, today time.Time) (streak.Result, error) {
	var (
		id      uuid.UUID
		current int
		longest int
		last    *time.Time
	)

	err := tx.QueryRow(ctx, `
	SELECT id, current_streak, longest_streak, last_completed_date
	FROM user_streaks
	WHERE user_id = $1
	FOR UPDATE
	`, userID).Scan(&id, &current, &longest, &last)

	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return streak.Result{}, fmt.Errorf("failed to lock streak row: %w", err)
		}

		// First ever completion: create the row.
		res := streak.Apply(0, 0, nil, today)
		_, err = tx.Exec(ctx, `
		INSERT INTO user_streaks (id, user_id, current_streak, longest_streak, last_completed_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		`, uuid.New(), userID, res.CurrentStreak, res.LongestStreak, today)
		if err != nil {
			return streak.Result{}, fmt.Errorf("failed to create streak: %w", err)
		}
		s.cache.Delete(ctx, "streak", userID.String())
		return res, nil
	}

	res := streak.Apply(current, longest, last, today)
	if !res.Changed {
		return res, nil
	}

	_, err = tx.Exec(ctx, `
	UPDATE user_streaks
	SET current_streak = $2, longest_streak = $3, last_completed_date = $4, updated_at = NOW()
	WHERE id = $1
	`, id, res.CurrentStreak, res.LongestStreak, today)
	if err != nil {
		return streak.Result{}, fmt.Errorf("failed to update streak: %w", err)
	}

	s.cache.Delete(ctx, "streak", userID.String())
	return res, nil
}

// Validate re-runs the same transition table against today without logging a
// completion, persisting the result. Used by the app on launch to show the
// user whether their streak survived the night.
func (s *StreakService) Validate(ctx context.Context, userID uuid.UUID) (*streak.ValidateResponse, error) {
	st, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := time.Now()

	if st.LastCompletedDate == nil {
		return &streak.ValidateResponse{
			StreakUpdated: false,
			CurrentStreak: st.CurrentStreak,
			LongestStreak: st.LongestStreak,
			Message:       "Start your streak by completing a challenge today!",
		}, nil
	}

	res := streak.Apply(st.CurrentStreak, st.LongestStreak, st.LastCompletedDate, today)

	var message string
	switch {
	case !res.Changed:
		message = "You've already completed a challenge today. Keep up the momentum!"
	case res.CurrentStreak > st.CurrentStreak:
		message = fmt.Sprintf("Streak updated! You're on a %d-day streak!", res.CurrentStreak)
	default:
		message = "Streak reset! Start a new streak today!"
	}

	if res.Changed {
		_, err = s.db.Exec(ctx, `
		UPDATE user_streaks
		SET current_streak = $2, longest_streak = $3, last_completed_date = $4, updated_at = NOW()
		WHERE user_id = $1
		`, userID, res.CurrentStreak, res.LongestStreak, today)
		if err != nil {
			return nil, fmt.Errorf("failed to persist validated streak: %w", err)
		}
		s.cache.Delete(ctx, "streak", userID.String())
	}

	return &streak.ValidateResponse{
		StreakUpdated: res.Changed,
		CurrentStreak: res.CurrentStreak,
		LongestStreak: res.LongestStreak,
		Message:       message,
	}, nil
}

// Reset zeroes the current streak and clears the last-completed date. The
// longest streak stays: it is a historical record, and streak achievements
// earned through it remain earned.
func (s *StreakService) Reset(ctx context.Context, userID uuid.UUID) (*streak.Streak, error) {
	_, err := s.db.Exec(ctx, `
	UPDATE user_streaks
	SET current_streak = 0, last_completed_date = NULL, updated_at = NOW()
	WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reset streak: %w", err)
	}

	s.cache.Delete(ctx, "streak", userID.String())
	return s.Get(ctx, userID)
}
