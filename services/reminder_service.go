package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"corpfinityAPI/internal/cache"
	"corpfinityAPI/internal/reminder"
)

const reminderColumns = `id, user_id, type, title, message, time_hour, time_minute, frequency, custom_days, is_enabled, created_at, updated_at`

type ReminderService struct {
	db    *pgxpool.Pool
	cache *cache.Client
}

func NewReminderService(db *pgxpool.Pool, cacheClient *cache.Client) *ReminderService {
	return &ReminderService{db: db, cache: cacheClient}
}

func scanReminder(row pgx.Row) (*reminder.Reminder, error) {
	r := &reminder.Reminder{}
	err := row.Scan(
		&r.ID, &r.UserID, &r.Type, &r.Title, &r.Message,
		&r.TimeHour, &r.TimeMinute, &r.Frequency, &r.CustomDays,
		&r.IsEnabled, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func validateSchedule(hour, minute int, freq reminder.Frequency, customDays []int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("time_hour must be between 0 and 23")
	}
	if minute < 0 || minute > 59 {
		return fmt.Errorf("time_minute must be between 0 and 59")
	}
	switch freq {
	case reminder.FrequencyDaily, reminder.FrequencyWeekdays:
	case reminder.FrequencyCustom:
		if len(customDays) == 0 {
			return fmt.Errorf("custom frequency requires at least one day")
		}
		for _, d := range customDays {
			if d < 0 || d > 6 {
				return fmt.Errorf("custom_days values must be between 0 and 6")
			}
		}
	default:
		return fmt.Errorf("frequency must be daily, weekdays, or custom")
	}
	return nil
}

func (s *ReminderService) Create(ctx context.Context, userID uuid.UUID, req *reminder.CreateRequest) (*reminder.Reminder, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if err := validateSchedule(req.TimeHour, req.TimeMinute, req.Frequency, req.CustomDays); err != nil {
		return nil, err
	}

	enabled := true
	if req.IsEnabled != nil {
		enabled = *req.IsEnabled
	}
	customDays := req.CustomDays
	if customDays == nil {
		customDays = []int{}
	}

	r, err := scanReminder(s.db.QueryRow(ctx, `
	INSERT INTO reminders (id, user_id, type, title, message, time_hour, time_minute, frequency, custom_days, is_enabled)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING `+reminderColumns,
		uuid.New(), userID, req.Type, req.Title, req.Message,
		req.TimeHour, req.TimeMinute, req.Frequency, customDays, enabled,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	s.cache.Delete(ctx, "reminders", userID.String())
	return r, nil
}

func (s *ReminderService) List(ctx context.Context, userID uuid.UUID) (*reminder.ListResponse, error) {
	rows, err := s.db.Query(ctx, `
	SELECT `+reminderColumns+`
	FROM reminders
	WHERE user_id = $1
	ORDER BY time_hour, time_minute
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reminders: %w", err)
	}
	defer rows.Close()

	items := []*reminder.Reminder{}
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &reminder.ListResponse{Reminders: items, Total: len(items)}, nil
}

func (s *ReminderService) Get(ctx context.Context, userID, reminderID uuid.UUID) (*reminder.Reminder, error) {
	r, err := scanReminder(s.db.QueryRow(ctx, `
	SELECT `+reminderColumns+`
	FROM reminders
	WHERE id = $1 AND user_id = $2
	`, reminderID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	return r, nil
}

// Update applies only the fields present in the request.
func (s *ReminderService) Update(ctx context.Context, userID, reminderID uuid.UUID, req *reminder.UpdateRequest) (*reminder.Reminder, error) {
	r, err := s.Get(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		r.Type = *req.Type
	}
	if req.Title != nil {
		r.Title = *req.Title
	}
	if req.Message != nil {
		r.Message = req.Message
	}
	if req.TimeHour != nil {
		r.TimeHour = *req.TimeHour
	}
	if req.TimeMinute != nil {
		r.TimeMinute = *req.TimeMinute
	}
	if req.Frequency != nil {
		r.Frequency = *req.Frequency
	}
	if req.CustomDays != nil {
		r.CustomDays = req.CustomDays
	}
	if req.IsEnabled != nil {
		r.IsEnabled = *req.IsEnabled
	}

	if err := validateSchedule(r.TimeHour, r.TimeMinute, r.Frequency, r.CustomDays); err != nil {
		return nil, err
	}

	updated, err := scanReminder(s.db.QueryRow(ctx, `
	UPDATE reminders
	SET type = $1, title = $2, message = $3, time_hour = $4, time_minute = $5,
	    frequency = $6, custom_days = $7, is_enabled = $8, updated_at = NOW()
	WHERE id = $9 AND user_id = $10
	RETURNING `+reminderColumns,
		r.Type, r.Title, r.Message, r.TimeHour, r.TimeMinute,
		r.Frequency, r.CustomDays, r.IsEnabled, reminderID, userID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}

	s.cache.Delete(ctx, "reminders", userID.String())
	return updated, nil
}

func (s *ReminderService) Toggle(ctx context.Context, userID, reminderID uuid.UUID) (*reminder.Reminder, error) {
	r, err := scanReminder(s.db.QueryRow(ctx, `
	UPDATE reminders
	SET is_enabled = NOT is_enabled, updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING `+reminderColumns, reminderID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to toggle reminder: %w", err)
	}

	s.cache.Delete(ctx, "reminders", userID.String())
	return r, nil
}

func (s *ReminderService) Delete(ctx context.Context, userID, reminderID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM reminders WHERE id = $1 AND user_id = $2`, reminderID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	s.cache.Delete(ctx, "reminders", userID.String())
	return nil
}

// AllEnabled returns every enabled reminder across all users. The scheduler
// calls this once per tick.
func (s *ReminderService) AllEnabled(ctx context.Context) ([]*reminder.Reminder, error) {
	rows, err := s.db.Query(ctx, `
	SELECT `+reminderColumns+`
	FROM reminders
	WHERE is_enabled = TRUE
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch enabled reminders: %w", err)
	}
	defer rows.Close()

	items := []*reminder.Reminder{}
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		items = append(items, r)
	}
	return items, rows.Err()
}
