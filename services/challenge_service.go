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
	"corpfinityAPI/internal/challenge"
	"corpfinityAPI/internal/streak"
)

type ChallengeService struct {
	db           *pgxpool.Pool
	cache        *cache.Client
	streaks      *StreakService
	achievements *AchievementService
	notifier     *NotificationService
}

func NewChallengeService(db *pgxpool.Pool, cacheClient *cache.Client, streaks *StreakService, achievements *AchievementService, notifier *NotificationService) *ChallengeService {
	return &ChallengeService{
		db:           db,
		cache:        cacheClient,
		streaks:      streaks,
		achievements: achievements,
		notifier:     notifier,
	}
}

// Complete records a finished challenge. The history insert and the streak
// update share one transaction so a crash can never leave one without the
// other. The achievement check runs after commit in its own transaction, and
// any pushes go through the dispatcher queue; the response never waits on
// them.
func (s *ChallengeService) Complete(ctx context.Context, userID uuid.UUID, req *challenge.CompleteRequest) (*challenge.History, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	entry := &challenge.History{}
	err = tx.QueryRow(ctx, `
	INSERT INTO challenge_history (id, user_id, title, description, duration, emoji, fun_fact, goal_category, energy_level, completed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	RETURNING id, user_id, title, description, duration, emoji, fun_fact, goal_category, energy_level, completed_at
	`, uuid.New(), userID, req.Title, req.Description, req.Duration, req.Emoji, req.FunFact, req.GoalCategory, req.EnergyLevel).Scan(
		&entry.ID, &entry.UserID, &entry.Title, &entry.Description, &entry.Duration,
		&entry.Emoji, &entry.FunFact, &entry.GoalCategory, &entry.EnergyLevel, &entry.CompletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to log challenge: %w", err)
	}

	res, err := s.streaks.Update(ctx, tx, userID, time.Now())
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit challenge: %w", err)
	}

	s.cache.Delete(ctx, "streak", userID.String())

	// Advisory follow-ups. An error here must not fail the completion.
	if _, err := s.achievements.Check(ctx, userID); err != nil {
		log.Printf("Complete: achievement check failed for user %s: %v", userID, err)
	}

	if res.Changed && streak.IsMilestone(res.CurrentStreak) {
		s.notifier.EnqueueStreakMilestone(userID, res.CurrentStreak)
	}

	return entry, nil
}

// History returns the user's completion log, newest first, with optional date
// bounds.
func (s *ChallengeService) History(ctx context.Context, userID uuid.UUID, page, pageSize int, startDate, endDate *time.Time) (*challenge.HistoryListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	where := `WHERE user_id = $1`
	args := []any{userID}
	if startDate != nil {
		args = append(args, *startDate)
		where += fmt.Sprintf(" AND completed_at >= $%d", len(args))
	}
	if endDate != nil {
		args = append(args, *endDate)
		where += fmt.Sprintf(" AND completed_at <= $%d", len(args))
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM challenge_history `+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count challenge history: %w", err)
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`
	SELECT id, user_id, title, description, duration, emoji, fun_fact, goal_category, energy_level, completed_at
	FROM challenge_history
	%s
	ORDER BY completed_at DESC
	LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch challenge history: %w", err)
	}
	defer rows.Close()

	items := []*challenge.History{}
	for rows.Next() {
		h := &challenge.History{}
		err := rows.Scan(
			&h.ID, &h.UserID, &h.Title, &h.Description, &h.Duration,
			&h.Emoji, &h.FunFact, &h.GoalCategory, &h.EnergyLevel, &h.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		items = append(items, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &challenge.HistoryListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Today lists completions logged on the current calendar date.
func (s *ChallengeService) Today(ctx context.Context, userID uuid.UUID) ([]*challenge.History, error) {
	rows, err := s.db.Query(ctx, `
	SELECT id, user_id, title, description, duration, emoji, fun_fact, goal_category, energy_level, completed_at
	FROM challenge_history
	WHERE user_id = $1 AND completed_at::date = CURRENT_DATE
	ORDER BY completed_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch today's challenges: %w", err)
	}
	defer rows.Close()

	items := []*challenge.History{}
	for rows.Next() {
		h := &challenge.History{}
		err := rows.Scan(
			&h.ID, &h.UserID, &h.Title, &h.Description, &h.Duration,
			&h.Emoji, &h.FunFact, &h.GoalCategory, &h.EnergyLevel, &h.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		items = append(items, h)
	}
	return items, rows.Err()
}

func (s *ChallengeService) GetByID(ctx context.Context, userID, challengeID uuid.UUID) (*challenge.History, error) {
	h := &challenge.History{}
	err := s.db.QueryRow(ctx, `
	SELECT id, user_id, title, description, duration, emoji, fun_fact, goal_category, energy_level, completed_at
	FROM challenge_history
	WHERE id = $1 AND user_id = $2
	`, challengeID, userID).Scan(
		&h.ID, &h.UserID, &h.Title, &h.Description, &h.Duration,
		&h.Emoji, &h.FunFact, &h.GoalCategory, &h.EnergyLevel, &h.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	return h, nil
}
