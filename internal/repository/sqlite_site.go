package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/pages/internal/db"
	"github.com/alexanderramin/pages/internal/domain"
)

const siteColumns = `site_id, code, name, domain, created_at, updated_at`

// SQLiteSiteRepo implements SiteRepo using a SQLite database.
type SQLiteSiteRepo struct {
	db db.DBTX
}

// NewSQLiteSiteRepo creates a new SQLiteSiteRepo. conn may be the pool or a
// transaction handed out by a UnitOfWork.
func NewSQLiteSiteRepo(conn db.DBTX) *SQLiteSiteRepo {
	return &SQLiteSiteRepo{db: conn}
}

func (r *SQLiteSiteRepo) Create(ctx context.Context, s *domain.Site) error {
	query := `INSERT INTO sites (code, name, domain, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		s.Code,
		s.Name,
		s.Domain, // *string: nil becomes SQL NULL
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("site code %q: %w", s.Code, ErrConflict)
		}
		return fmt.Errorf("inserting site: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading site id: %w", err)
	}
	s.ID = id
	return nil
}

func (r *SQLiteSiteRepo) GetByID(ctx context.Context, id int64) (*domain.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites WHERE site_id = ?`
	return r.scanSite(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSiteRepo) GetByCode(ctx context.Context, code string) (*domain.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites WHERE code = ?`
	return r.scanSite(r.db.QueryRowContext(ctx, query, code))
}

func (r *SQLiteSiteRepo) List(ctx context.Context) ([]*domain.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites ORDER BY code`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing sites: %w", err)
	}
	defer rows.Close()

	sites := []*domain.Site{}
	for rows.Next() {
		s, err := r.scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sites: %w", err)
	}
	return sites, nil
}

func (r *SQLiteSiteRepo) ListCodes(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT code FROM sites ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("listing site codes: %w", err)
	}
	defer rows.Close()

	codes := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scanning site code: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating site codes: %w", err)
	}
	return codes, nil
}

func (r *SQLiteSiteRepo) Update(ctx context.Context, s *domain.Site) error {
	query := `UPDATE sites SET code = ?, name = ?, domain = ?, updated_at = ? WHERE site_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Code,
		s.Name,
		s.Domain,
		formatTime(s.UpdatedAt),
		s.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("site code %q: %w", s.Code, ErrConflict)
		}
		return fmt.Errorf("updating site: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("site %d", s.ID))
}

func (r *SQLiteSiteRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sites WHERE site_id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting site: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("site %d", id))
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteSiteRepo) scanSite(row scanner) (*domain.Site, error) {
	var s domain.Site
	var domainName sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&s.ID, &s.Code, &s.Name, &domainName, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("site: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning site: %w", err)
	}

	s.Domain = nullableString(domainName)
	if s.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
