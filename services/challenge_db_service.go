package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"corpfinityAPI/internal/challenge"
)

const challengeDefColumns = `id, pillar, energy_level, challenge_number, title, duration, description, steps, emoji`

// ChallengeDBService serves the built-in challenge library the app picks
// challenges from. The library is read-only at request time; it only changes
// by reseeding at startup.
type ChallengeDBService struct {
	db *pgxpool.Pool
}

func NewChallengeDBService(db *pgxpool.Pool) *ChallengeDBService {
	return &ChallengeDBService{db: db}
}

// SeedDefinitions upserts the catalog, keyed by (pillar, challenge_number)
// so text edits between releases update rows in place.
func (s *ChallengeDBService) SeedDefinitions(ctx context.Context) error {
	for _, d := range challenge.Catalog {
		_, err := s.db.Exec(ctx, `
		INSERT INTO challenge_definitions (id, pillar, energy_level, challenge_number, title, duration, description, steps, emoji)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (pillar, challenge_number) DO UPDATE SET
			energy_level = $3, title = $5, duration = $6, description = $7, steps = $8, emoji = $9
		`, uuid.New(), d.Pillar, d.EnergyLevel, d.ChallengeNumber, d.Title, d.Duration, d.Description, d.Steps, d.Emoji)
		if err != nil {
			return fmt.Errorf("failed to seed challenge %s/%d: %w", d.Pillar, d.ChallengeNumber, err)
		}
	}
	log.Printf("Seeded %d challenge definitions", len(challenge.Catalog))
	return nil
}

// Categories lists the distinct pillars in the library.
func (s *ChallengeDBService) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT DISTINCT pillar FROM challenge_definitions ORDER BY pillar`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch challenge categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, p)
	}
	return categories, rows.Err()
}

func scanChallengeDef(row pgx.Row) (*challenge.Definition, error) {
	d := &challenge.Definition{}
	err := row.Scan(
		&d.ID, &d.Pillar, &d.EnergyLevel, &d.ChallengeNumber,
		&d.Title, &d.Duration, &d.Description, &d.Steps, &d.Emoji,
	)
	return d, err
}

// List returns library entries, optionally filtered by pillar and energy
// level. Energy level matching is case-insensitive; stored values are upper
// case.
func (s *ChallengeDBService) List(ctx context.Context, pillar, energyLevel string, limit int) ([]*challenge.Definition, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	where, args := challengeDefFilter(pillar, energyLevel)
	args = append(args, limit)
	query := fmt.Sprintf(`
	SELECT `+challengeDefColumns+`
	FROM challenge_definitions
	%s
	ORDER BY pillar, challenge_number
	LIMIT $%d
	`, where, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch challenges: %w", err)
	}
	defer rows.Close()

	items := []*challenge.Definition{}
	for rows.Next() {
		d, err := scanChallengeDef(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan challenge definition: %w", err)
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// Random picks one library entry matching the filters. No match maps to
// ErrNotFound.
func (s *ChallengeDBService) Random(ctx context.Context, pillar, energyLevel string) (*challenge.Definition, error) {
	where, args := challengeDefFilter(pillar, energyLevel)
	query := `
	SELECT ` + challengeDefColumns + `
	FROM challenge_definitions
	` + where + `
	ORDER BY random()
	LIMIT 1
	`

	d, err := scanChallengeDef(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to pick random challenge: %w", err)
	}
	return d, nil
}

// Stats counts the library by pillar and by energy level.
func (s *ChallengeDBService) Stats(ctx context.Context) (*challenge.CatalogStats, error) {
	stats := &challenge.CatalogStats{
		ByPillar:      map[string]int{},
		ByEnergyLevel: map[string]int{},
	}

	rows, err := s.db.Query(ctx, `
	SELECT pillar, energy_level, COUNT(*)
	FROM challenge_definitions
	GROUP BY pillar, energy_level
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch challenge stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pillar, energy string
		var count int
		if err := rows.Scan(&pillar, &energy, &count); err != nil {
			return nil, fmt.Errorf("failed to scan challenge stats: %w", err)
		}
		stats.TotalChallenges += count
		stats.ByPillar[pillar] += count
		stats.ByEnergyLevel[energy] += count
	}
	return stats, rows.Err()
}

func challengeDefFilter(pillar, energyLevel string) (string, []any) {
	clauses := []string{}
	args := []any{}
	if pillar != "" {
		args = append(args, pillar)
		clauses = append(clauses, fmt.Sprintf("pillar = $%d", len(args)))
	}
	if energyLevel != "" {
		args = append(args, strings.ToUpper(energyLevel))
		clauses = append(clauses, fmt.Sprintf("energy_level = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}
