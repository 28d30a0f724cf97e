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

	"corpfinityAPI/internal/achievement"
)

type AchievementService struct {
	db       *pgxpool.Pool
	notifier *NotificationService
}

func NewAchievementService(db *pgxpool.Pool, notifier *NotificationService) *AchievementService {
	return &AchievementService{db: db, notifier: notifier}
}

// SeedDefinitions upserts the static catalog into achievement_definitions.
// Runs once at startup; request traffic never mutates the catalog.
func (s *AchievementService) SeedDefinitions(ctx context.Context) error {
	for _, d := range achievement.Catalog {
		_, err := s.db.Exec(ctx, `
		INSERT INTO achievement_definitions (id, title, description, emoji, category, requirement)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = $2, description = $3, emoji = $4, category = $5, requirement = $6
		`, d.ID, d.Title, d.Description, d.Emoji, d.Category, d.Requirement)
		if err != nil {
			return fmt.Errorf("failed to seed achievement %s: %w", d.ID, err)
		}
	}
	log.Printf("Seeded %d achievement definitions", len(achievement.Catalog))
	return nil
}

// stats loads the numbers achievements are judged against: the longest-streak
// high-water mark and the total completion count.
func (s *AchievementService) stats(ctx context.Context, userID uuid.UUID) (achievement.Stats, error) {
	var st achievement.Stats
	err := s.db.QueryRow(ctx, `
	SELECT
		COALESCE((SELECT longest_streak FROM user_streaks WHERE user_id = $1), 0),
		(SELECT COUNT(*) FROM challenge_history WHERE user_id = $1)
	`, userID).Scan(&st.LongestStreak, &st.TotalChallenges)
	if err != nil {
		return st, fmt.Errorf("failed to load achievement stats: %w", err)
	}
	return st, nil
}

func (s *AchievementService) unlockedSet(ctx context.Context, userID uuid.UUID) (map[string]bool, map[string]time.Time, error) {
	rows, err := s.db.Query(ctx, `
	SELECT achievement_id, unlocked_at
	FROM user_achievements
	WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch unlocked achievements: %w", err)
	}
	defer rows.Close()

	unlocked := make(map[string]bool)
	at := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var ts time.Time
		if err := rows.Scan(&id, &ts); err != nil {
			return nil, nil, fmt.Errorf("failed to scan unlocked achievement: %w", err)
		}
		unlocked[id] = true
		at[id] = ts
	}
	return unlocked, at, rows.Err()
}

// lostUnlockRace reports whether an unlock insert came back without a row,
// which only happens when a concurrent request recorded the achievement
// first. Any other error is a real database failure.
func lostUnlockRace(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// Check records every newly satisfied achievement and returns only those.
// The unique (user_id, achievement_id) constraint plus ON CONFLICT DO NOTHING
// makes a concurrent double-check harmless: whichever insert loses the race
// simply drops out of the "newly unlocked" result.
func (s *AchievementService) Check(ctx context.Context, userID uuid.UUID) ([]*achievement.WithStatus, error) {
	stats, err := s.stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlocked, _, err := s.unlockedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	var newly []*achievement.WithStatus
	for _, d := range achievement.NewlySatisfied(stats, unlocked) {
		var unlockedAt time.Time
		err := s.db.QueryRow(ctx, `
		INSERT INTO user_achievements (id, user_id, achievement_id, unlocked_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, achievement_id) DO NOTHING
		RETURNING unlocked_at
		`, uuid.New(), userID, d.ID).Scan(&unlockedAt)
		if lostUnlockRace(err) {
			// Another request unlocked it first.
			continue
		}
		if err != nil {
			log.Printf("Achievement: failed to unlock %s for user %s: %v", d.ID, userID, err)
			continue
		}

		at := unlockedAt
		newly = append(newly, &achievement.WithStatus{
			Definition: d,
			Unlocked:   true,
			UnlockedAt: &at,
		})
	}

	for _, a := range newly {
		s.notifier.EnqueueAchievement(userID, a.Title, a.Emoji)
	}

	return newly, nil
}

// GetAchievements returns the whole catalog annotated with unlock status.
// Anything satisfied but not yet recorded gets unlocked on the way out, so a
// plain list call always reflects newly crossed thresholds.
func (s *AchievementService) GetAchievements(ctx context.Context, userID uuid.UUID) (*achievement.ListResponse, error) {
	if _, err := s.Check(ctx, userID); err != nil {
		return nil, err
	}

	_, unlockedAt, err := s.unlockedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &achievement.ListResponse{TotalCount: len(achievement.Catalog)}
	for _, d := range achievement.Catalog {
		ws := &achievement.WithStatus{Definition: d}
		if at, ok := unlockedAt[d.ID]; ok {
			ws.Unlocked = true
			t := at
			ws.UnlockedAt = &t
			resp.UnlockedCount++
		}
		resp.Achievements = append(resp.Achievements, ws)
	}

	return resp, nil
}
