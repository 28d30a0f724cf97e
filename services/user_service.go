package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"corpfinityAPI/internal/achievement"
	"corpfinityAPI/internal/cache"
	"corpfinityAPI/internal/user"
)

type UserService struct {
	db    *pgxpool.Pool
	cache *cache.Client
}

func NewUserService(db *pgxpool.Pool, cacheClient *cache.Client) *UserService {
	return &UserService{db: db, cache: cacheClient}
}

func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	if raw, ok := s.cache.Get(ctx, "user", userID.String()); ok {
		u := &user.User{}
		if err := json.Unmarshal([]byte(raw), u); err == nil {
			return u, nil
		}
	}

	u := &user.User{}
	err := s.db.QueryRow(ctx, `
	SELECT id, email, name, avatar_seed, is_active, created_at, updated_at
	FROM users
	WHERE id = $1 AND is_active = TRUE
	`, userID).Scan(
		&u.ID, &u.Email, &u.Name, &u.AvatarSeed, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if raw, err := json.Marshal(u); err == nil {
		s.cache.Set(ctx, "user", userID.String(), string(raw), cache.UserTTL)
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	var avatarSeed *string
	if req.Avatar != "" {
		avatarSeed = &req.Avatar
	}

	u := &user.User{}
	err := s.db.QueryRow(ctx, `
	UPDATE users
	SET name = $1, avatar_seed = COALESCE($2, avatar_seed), updated_at = NOW()
	WHERE id = $3 AND is_active = TRUE
	RETURNING id, email, name, avatar_seed, is_active, created_at, updated_at
	`, name, avatarSeed, userID).Scan(
		&u.ID, &u.Email, &u.Name, &u.AvatarSeed, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.cache.Delete(ctx, "user", userID.String())
	return u, nil
}

// Stats aggregates the profile numbers in one round trip per source table.
// Water intake comes from today's daily_tracking row.
func (s *UserService) Stats(ctx context.Context, userID uuid.UUID) (*user.Stats, error) {
	st := &user.Stats{TotalAchievements: len(achievement.Catalog)}

	err := s.db.QueryRow(ctx, `
	SELECT
		u.created_at,
		(SELECT COUNT(*) FROM challenge_history ch WHERE ch.user_id = u.id),
		COALESCE((SELECT us.current_streak FROM user_streaks us WHERE us.user_id = u.id), 0),
		COALESCE((SELECT us.longest_streak FROM user_streaks us WHERE us.user_id = u.id), 0),
		(SELECT COUNT(*) FROM user_achievements ua WHERE ua.user_id = u.id),
		COALESCE((SELECT dt.water_intake FROM daily_tracking dt WHERE dt.user_id = u.id AND dt.date = CURRENT_DATE), 0)
	FROM users u
	WHERE u.id = $1 AND u.is_active = TRUE
	`, userID).Scan(
		&st.JoinDate, &st.TotalChallenges, &st.CurrentStreak,
		&st.LongestStreak, &st.AchievementsUnlocked, &st.CurrentWaterIntake,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user stats: %w", err)
	}
	return st, nil
}

// Delete deactivates the account and revokes its sessions. Rows in dependent
// tables stay behind the is_active flag until a retention job hard-deletes
// them.
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM push_tokens WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to remove push tokens: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit deletion: %w", err)
	}

	s.cache.Delete(ctx, "user", userID.String())
	s.cache.Delete(ctx, "streak", userID.String())
	s.cache.Delete(ctx, "reminders", userID.String())
	s.cache.Delete(ctx, "tracking", userID.String())
	return nil
}
