package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/pages/internal/db"
	"github.com/alexanderramin/pages/internal/domain"
)

const groupColumns = `group_id, site_id, name, description, created_at, updated_at`

// SQLiteGroupRepo implements GroupRepo using a SQLite database.
type SQLiteGroupRepo struct {
	db db.DBTX
}

// NewSQLiteGroupRepo creates a new SQLiteGroupRepo.
func NewSQLiteGroupRepo(conn db.DBTX) *SQLiteGroupRepo {
	return &SQLiteGroupRepo{db: conn}
}

func (r *SQLiteGroupRepo) Create(ctx context.Context, g *domain.PageGroup) error {
	query := `INSERT INTO page_groups (site_id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		g.SiteID,
		g.Name,
		g.Description,
		formatTime(g.CreatedAt),
		formatTime(g.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting page group: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading page group id: %w", err)
	}
	g.ID = id
	return nil
}

func (r *SQLiteGroupRepo) GetByID(ctx context.Context, id int64) (*domain.PageGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM page_groups WHERE group_id = ?`
	return r.scanGroup(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteGroupRepo) ListBySite(ctx context.Context, siteID int64) ([]*domain.PageGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM page_groups WHERE site_id = ? ORDER BY name, group_id`
	rows, err := r.db.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("listing page groups: %w", err)
	}
	defer rows.Close()

	groups := []*domain.PageGroup{}
	for rows.Next() {
		g, err := r.scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating page groups: %w", err)
	}
	return groups, nil
}

func (r *SQLiteGroupRepo) Update(ctx context.Context, g *domain.PageGroup) error {
	query := `UPDATE page_groups SET name = ?, description = ?, updated_at = ? WHERE group_id = ?`
	res, err := r.db.ExecContext(ctx, query, g.Name, g.Description, formatTime(g.UpdatedAt), g.ID)
	if err != nil {
		return fmt.Errorf("updating page group: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("page group %d", g.ID))
}

func (r *SQLiteGroupRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM page_groups WHERE group_id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting page group: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("page group %d", id))
}

func (r *SQLiteGroupRepo) scanGroup(row scanner) (*domain.PageGroup, error) {
	var g domain.PageGroup
	var description sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&g.ID, &g.SiteID, &g.Name, &description, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("page group: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning page group: %w", err)
	}

	g.Description = nullableString(description)
	if g.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if g.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}
