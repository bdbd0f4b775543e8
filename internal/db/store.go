package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixmycity/backend/internal/models"
)

// ErrNotFound is returned when a complaint id does not exist.
var ErrNotFound = errors.New("not found")

type Store struct {
	Pool *pgxpool.Pool
}

// ComplaintFilter narrows ListComplaints. Zero values mean no filter.
type ComplaintFilter struct {
	Category string
	Severity string
	Status   string
	From     *time.Time
	To       *time.Time
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const complaintColumns = `id, category, severity, description, latitude, longitude,
	COALESCE(area_name, ''), submitted_at, status, area_importance`

func scanComplaint(row pgx.Row) (models.Complaint, error) {
	var (
		c           models.Complaint
		submittedAt time.Time
	)
	if err := row.Scan(&c.ID, &c.Category, &c.Severity, &c.Description, &c.Latitude, &c.Longitude,
		&c.AreaName, &submittedAt, &c.Status, &c.AreaImportance); err != nil {
		return models.Complaint{}, err
	}
	c.Timestamp = FormatTimestamp(submittedAt)
	return c, nil
}

// FormatTimestamp renders t the way complaint timestamps travel over the API.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func (s *Store) InsertComplaint(ctx context.Context, c models.Complaint, submittedAt time.Time) (int64, error) {
	var areaName *string
	if c.AreaName != "" {
		areaName = &c.AreaName
	}
	var id int64
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO complaints (category, severity, description, latitude, longitude, area_name, submitted_at, status, area_importance)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`, c.Category, c.Severity, c.Description, c.Latitude, c.Longitude, areaName, submittedAt, c.Status, c.AreaImportance).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert complaint: %w", err)
	}
	return id, nil
}

func (s *Store) GetComplaint(ctx context.Context, id int64) (models.Complaint, error) {
	c, err := scanComplaint(s.Pool.QueryRow(ctx, `SELECT `+complaintColumns+` FROM complaints WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Complaint{}, ErrNotFound
	}
	return c, err
}

// ListComplaints returns complaints matching f, newest first.
func (s *Store) ListComplaints(ctx context.Context, f ComplaintFilter) ([]models.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints`
	var args []any
	var wheres []string
	if f.Category != "" {
		args = append(args, f.Category)
		wheres = append(wheres, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Severity != "" {
		args = append(args, f.Severity)
		wheres = append(wheres, fmt.Sprintf("severity = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		wheres = append(wheres, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		wheres = append(wheres, fmt.Sprintf("submitted_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		wheres = append(wheres, fmt.Sprintf("submitted_at <= $%d", len(args)))
	}
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += " ORDER BY submitted_at DESC, id DESC"

	return s.queryComplaints(ctx, query, args...)
}

// ListGeolocatedComplaints returns every complaint that carries coordinates.
// This is the snapshot the hotspot engine works on.
func (s *Store) ListGeolocatedComplaints(ctx context.Context) ([]models.Complaint, error) {
	return s.queryComplaints(ctx, `SELECT `+complaintColumns+` FROM complaints
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY id ASC`)
}

func (s *Store) queryComplaints(ctx context.Context, query string, args ...any) ([]models.Complaint, error) {
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Complaint{}
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SetComplaintStatus changes the status of a complaint and records the
// officer action in the same transaction.
func (s *Store) SetComplaintStatus(ctx context.Context, complaintID int64, status string, officerID, notes string) (models.OfficerAction, error) {
	action := models.OfficerAction{
		OfficerID:   officerID,
		ComplaintID: complaintID,
		Action:      status,
		Notes:       notes,
	}
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE complaints SET status = $1 WHERE id = $2`, status, complaintID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return tx.QueryRow(ctx, `
			INSERT INTO officer_actions (officer_id, complaint_id, action, notes, created_at)
			VALUES ($1,$2,$3,$4,NOW())
			RETURNING id, created_at
		`, officerID, complaintID, status, notes).Scan(&action.ID, &action.CreatedAt)
	})
	if err != nil {
		return models.OfficerAction{}, err
	}
	return action, nil
}

func (s *Store) ListOfficerActions(ctx context.Context, officerID string) ([]models.OfficerAction, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, officer_id, complaint_id, action, COALESCE(notes, ''), created_at
		FROM officer_actions
		WHERE officer_id = $1
		ORDER BY created_at DESC, id DESC
	`, officerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.OfficerAction{}
	for rows.Next() {
		var a models.OfficerAction
		if err := rows.Scan(&a.ID, &a.OfficerID, &a.ComplaintID, &a.Action, &a.Notes, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Analytics returns dashboard totals. Severities are ordered critical to low
// and the trend covers the last 30 days, one entry per day with complaints.
func (s *Store) Analytics(ctx context.Context) (models.Analytics, error) {
	var out models.Analytics
	if err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM complaints`).Scan(&out.TotalComplaints); err != nil {
		return models.Analytics{}, err
	}

	var err error
	if out.ByCategory, err = s.countBy(ctx, `
		SELECT category, COUNT(*) FROM complaints
		GROUP BY category ORDER BY COUNT(*) DESC, category ASC`); err != nil {
		return models.Analytics{}, err
	}
	if out.ByStatus, err = s.countBy(ctx, `
		SELECT status, COUNT(*) FROM complaints
		GROUP BY status ORDER BY status ASC`); err != nil {
		return models.Analytics{}, err
	}
	if out.BySeverity, err = s.countBy(ctx, `
		SELECT severity, COUNT(*) FROM complaints
		GROUP BY severity ORDER BY
			CASE severity
				WHEN 'critical' THEN 1
				WHEN 'high' THEN 2
				WHEN 'medium' THEN 3
				WHEN 'low' THEN 4
				ELSE 5
			END, severity`); err != nil {
		return models.Analytics{}, err
	}
	if out.RecentTrends, err = s.countBy(ctx, `
		SELECT to_char(submitted_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
		FROM complaints
		WHERE submitted_at >= NOW() - INTERVAL '30 days'
		GROUP BY day ORDER BY day`); err != nil {
		return models.Analytics{}, err
	}
	return out, nil
}

func (s *Store) countBy(ctx context.Context, query string) ([]models.CountByKey, error) {
	rows, err := s.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.CountByKey{}
	for rows.Next() {
		var kc models.CountByKey
		if err := rows.Scan(&kc.Key, &kc.Count); err != nil {
			return nil, err
		}
		out = append(out, kc)
	}
	return out, rows.Err()
}
