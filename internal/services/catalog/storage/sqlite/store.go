// Package sqlite provides a SQLite-backed catalog storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/lastro/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/lastro/internal/services/catalog/storage"
	"github.com/louisbranch/lastro/internal/services/catalog/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const projectColumns = `id, link, title, author, category, date,
        direction, sound, production, support, assistance, research,
        location, instruments, keywords, info_pool,
        created_at, updated_at`

// Store persists catalog state in SQLite.
type Store struct {
	sqlDB *sql.DB
	clock func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite catalog store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, clock: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutProject inserts a project or replaces the stored fields of an existing
// one. CreatedAt is kept from the first insert.
func (s *Store) PutProject(ctx context.Context, project storage.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if project.ID <= 0 {
		return fmt.Errorf("project id must be greater than zero")
	}
	link := strings.TrimSpace(project.Link)
	if link == "" {
		return fmt.Errorf("project link is required")
	}

	now := s.clock().UTC()
	createdAt := project.CreatedAt.UTC()
	if project.CreatedAt.IsZero() {
		createdAt = now
	}
	updatedAt := project.UpdatedAt.UTC()
	if project.UpdatedAt.IsZero() {
		updatedAt = now
	}

	lists, err := encodeLists(project)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO projects (`+projectColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   link = excluded.link,
		   title = excluded.title,
		   author = excluded.author,
		   category = excluded.category,
		   date = excluded.date,
		   direction = excluded.direction,
		   sound = excluded.sound,
		   production = excluded.production,
		   support = excluded.support,
		   assistance = excluded.assistance,
		   research = excluded.research,
		   location = excluded.location,
		   instruments = excluded.instruments,
		   keywords = excluded.keywords,
		   info_pool = excluded.info_pool,
		   updated_at = excluded.updated_at`,
		project.ID,
		link,
		strings.TrimSpace(project.Title),
		strings.TrimSpace(project.Author),
		lists[0],
		strings.TrimSpace(project.Date),
		lists[1],
		lists[2],
		lists[3],
		lists[4],
		lists[5],
		lists[6],
		strings.TrimSpace(project.Location),
		lists[7],
		lists[8],
		strings.TrimSpace(project.InfoPool),
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		if isLinkUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put project: %w", err)
	}
	return nil
}

// GetProject returns one project by id.
func (s *Store) GetProject(ctx context.Context, id int64) (storage.Project, error) {
	if err := ctx.Err(); err != nil {
		return storage.Project{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Project{}, fmt.Errorf("storage is not configured")
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Project{}, storage.ErrNotFound
		}
		return storage.Project{}, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

// ListProjects returns every project ordered by id.
func (s *Store) ListProjects(ctx context.Context) ([]storage.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return collectProjects(rows, "list projects")
}

// SampleProjects returns up to query.Count projects in random order. Each
// call samples independently, so repeated calls may return the same project.
func (s *Store) SampleProjects(ctx context.Context, query storage.SampleQuery) ([]storage.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if query.Count <= 0 {
		return nil, fmt.Errorf("sample count must be greater than zero")
	}

	statement := `SELECT ` + projectColumns + ` FROM projects`
	args := make([]any, 0, len(query.Args)+1)
	if where := strings.TrimSpace(query.Where); where != "" {
		statement += ` WHERE ` + where
		args = append(args, query.Args...)
	}
	statement += ` ORDER BY RANDOM() LIMIT ?`
	args = append(args, query.Count)

	rows, err := s.sqlDB.QueryContext(ctx, statement, args...)
	if err != nil {
		return nil, fmt.Errorf("sample projects: %w", err)
	}
	return collectProjects(rows, "sample projects")
}

// CountProjects returns the number of stored projects.
func (s *Store) CountProjects(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (storage.Project, error) {
	var (
		project   storage.Project
		lists     [9]string
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(
		&project.ID,
		&project.Link,
		&project.Title,
		&project.Author,
		&lists[0],
		&project.Date,
		&lists[1],
		&lists[2],
		&lists[3],
		&lists[4],
		&lists[5],
		&lists[6],
		&project.Location,
		&lists[7],
		&lists[8],
		&project.InfoPool,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return storage.Project{}, err
	}
	targets := listTargets(&project)
	for i, raw := range lists {
		if err := decodeList(raw, targets[i]); err != nil {
			return storage.Project{}, fmt.Errorf("decode project %d lists: %w", project.ID, err)
		}
	}
	project.CreatedAt = fromMillis(createdAt)
	project.UpdatedAt = fromMillis(updatedAt)
	return project, nil
}

func collectProjects(rows *sql.Rows, op string) ([]storage.Project, error) {
	defer rows.Close()
	projects := make([]storage.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return projects, nil
}

// listTargets returns the list fields in column order.
func listTargets(project *storage.Project) [9]*[]string {
	return [9]*[]string{
		&project.Category,
		&project.Direction,
		&project.Sound,
		&project.Production,
		&project.Support,
		&project.Assistance,
		&project.Research,
		&project.Instruments,
		&project.Keywords,
	}
}

func encodeLists(project storage.Project) ([9]string, error) {
	var out [9]string
	for i, target := range listTargets(&project) {
		values := *target
		if values == nil {
			values = []string{}
		}
		data, err := json.Marshal(values)
		if err != nil {
			return out, fmt.Errorf("encode project lists: %w", err)
		}
		out[i] = string(data)
	}
	return out, nil
}

func decodeList(raw string, target *[]string) error {
	values := []string{}
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &values); err != nil {
			return err
		}
	}
	if values == nil {
		values = []string{}
	}
	*target = values
	return nil
}

func isLinkUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE {
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "projects.link")
}

var _ storage.ProjectStore = (*Store)(nil)
