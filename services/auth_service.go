package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"corpfinityAPI/internal/cache"
	"corpfinityAPI/internal/user"
)

const (
	accessTokenTTL  = 30 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type AuthService struct {
	db     *pgxpool.Pool
	cache  *cache.Client
	secret []byte
}

func NewAuthService(db *pgxpool.Pool, cacheClient *cache.Client, jwtSecret string) *AuthService {
	return &AuthService{db: db, cache: cacheClient, secret: []byte(jwtSecret)}
}

// Register creates an account and signs the user in. A duplicate email maps
// to ErrConflict.
func (s *AuthService) Register(ctx context.Context, req *user.RegisterRequest) (*user.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{}
	err = s.db.QueryRow(ctx, `
	INSERT INTO users (id, email, password_hash, name)
	VALUES ($1, $2, $3, $4)
	RETURNING id, email, name, avatar_seed, is_active, created_at, updated_at
	`, uuid.New(), email, string(hash), strings.TrimSpace(req.Name)).Scan(
		&u.ID, &u.Email, &u.Name, &u.AvatarSeed, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(ctx, u)
}

// Login verifies credentials. Unknown email and wrong password both map to
// ErrInvalidCredentials so the response cannot confirm which one failed.
func (s *AuthService) Login(ctx context.Context, req *user.LoginRequest) (*user.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u := &user.User{}
	var passwordHash string
	err := s.db.QueryRow(ctx, `
	SELECT id, email, password_hash, name, avatar_seed, is_active, created_at, updated_at
	FROM users
	WHERE email = $1
	`, email).Scan(
		&u.ID, &u.Email, &passwordHash, &u.Name, &u.AvatarSeed, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, u)
}

// Refresh rotates a refresh token: the presented token is revoked and a fresh
// pair is issued. A revoked, expired, or unknown token maps to
// ErrInvalidCredentials.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*user.TokenResponse, error) {
	hash := hashRefreshToken(refreshToken)

	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `
	UPDATE refresh_tokens
	SET revoked = TRUE
	WHERE token_hash = $1 AND revoked = FALSE AND expires_at > NOW()
	RETURNING user_id
	`, hash).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	u := &user.User{}
	err = s.db.QueryRow(ctx, `
	SELECT id, email, name, avatar_seed, is_active, created_at, updated_at
	FROM users
	WHERE id = $1 AND is_active = TRUE
	`, userID).Scan(
		&u.ID, &u.Email, &u.Name, &u.AvatarSeed, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return s.issueTokens(ctx, u)
}

// Logout revokes the refresh token and blacklists the access token for the
// remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID, accessToken, refreshToken string) error {
	if refreshToken != "" {
		_, err := s.db.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked = TRUE
		WHERE token_hash = $1 AND user_id = $2
		`, hashRefreshToken(refreshToken), userID)
		if err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
	}

	if accessToken != "" {
		s.cache.BlacklistToken(ctx, accessToken, accessTokenTTL)
	}
	s.cache.Delete(ctx, "user", userID.String())
	return nil
}

// LogoutAll revokes every refresh token the user holds.
func (s *AuthService) LogoutAll(ctx context.Context, userID uuid.UUID, accessToken string) error {
	_, err := s.db.Exec(ctx, `
	UPDATE refresh_tokens
	SET revoked = TRUE
	WHERE user_id = $1 AND revoked = FALSE
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	if accessToken != "" {
		s.cache.BlacklistToken(ctx, accessToken, accessTokenTTL)
	}
	s.cache.Delete(ctx, "user", userID.String())
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, u *user.User) (*user.TokenResponse, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": u.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(accessTokenTTL).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(ctx, `
	INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at)
	VALUES ($1, $2, $3, $4)
	`, uuid.New(), u.ID, hashRefreshToken(refresh), now.Add(refreshTokenTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	if raw, err := json.Marshal(u); err == nil {
		s.cache.Set(ctx, "user", u.ID.String(), string(raw), cache.UserTTL)
	}

	return &user.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         u,
	}, nil
}

func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// hashRefreshToken produces the deterministic digest stored in place of the
// raw token, so a database leak does not leak usable credentials.
func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
