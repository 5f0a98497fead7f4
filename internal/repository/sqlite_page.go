package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pages/internal/db"
	"github.com/alexanderramin/pages/internal/domain"
)

// pageColumns is the canonical SELECT column list for pages.
const pageColumns = `page_id, site_id, group_id, title, slug, parent_id, depth, menu_order,
		content, is_published, created_at, updated_at`

// SQLitePageRepo implements PageRepo using a SQLite database.
type SQLitePageRepo struct {
	db db.DBTX
}

// NewSQLitePageRepo creates a new SQLitePageRepo.
func NewSQLitePageRepo(conn db.DBTX) *SQLitePageRepo {
	return &SQLitePageRepo{db: conn}
}

func (r *SQLitePageRepo) Create(ctx context.Context, p *domain.Page) error {
	query := `INSERT INTO pages (site_id, group_id, title, slug, parent_id, depth, menu_order,
		content, is_published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		p.SiteID,
		p.GroupID, // *int64: nil becomes SQL NULL
		p.Title,
		p.Slug,
		p.ParentID, // *int64: nil becomes SQL NULL
		p.Depth,
		p.MenuOrder,
		p.Content,
		boolToInt(p.IsPublished),
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting page: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading page id: %w", err)
	}
	p.ID = id
	return nil
}

func (r *SQLitePageRepo) GetByID(ctx context.Context, id int64) (*domain.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE page_id = ?`
	return r.scanPage(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePageRepo) ListBySite(ctx context.Context, siteID int64) ([]*domain.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE site_id = ?
		ORDER BY depth, menu_order, page_id`
	rows, err := r.db.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("listing pages by site: %w", err)
	}
	defer rows.Close()
	return r.scanPages(rows)
}

// ListByGroup orders by depth then menu_order. page_id only settles ties so
// equal menu_order siblings come back in insert order on every call.
func (r *SQLitePageRepo) ListByGroup(ctx context.Context, siteID, groupID int64) ([]*domain.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE site_id = ? AND group_id = ?
		ORDER BY depth, menu_order, page_id`
	rows, err := r.db.QueryContext(ctx, query, siteID, groupID)
	if err != nil {
		return nil, fmt.Errorf("listing pages by group %d: %w", groupID, err)
	}
	defer rows.Close()
	return r.scanPages(rows)
}

func (r *SQLitePageRepo) NextMenuOrder(ctx context.Context, siteID int64, groupID, parentID *int64) (int, error) {
	query := `SELECT COALESCE(MAX(menu_order), -1) + 1 FROM pages
		WHERE site_id = ? AND group_id IS ? AND parent_id IS ?`
	var next int
	if err := r.db.QueryRowContext(ctx, query, siteID, groupID, parentID).Scan(&next); err != nil {
		return 0, fmt.Errorf("computing next menu order: %w", err)
	}
	return next, nil
}

// Update writes the editable page fields. parent_id and depth are fixed at
// creation and are not touched here.
func (r *SQLitePageRepo) Update(ctx context.Context, p *domain.Page) error {
	query := `UPDATE pages SET group_id = ?, title = ?, slug = ?, menu_order = ?, content = ?,
		is_published = ?, updated_at = ?
		WHERE page_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.GroupID,
		p.Title,
		p.Slug,
		p.MenuOrder,
		p.Content,
		boolToInt(p.IsPublished),
		formatTime(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating page: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("page %d", p.ID))
}

func (r *SQLitePageRepo) SetSubtreeGroup(ctx context.Context, rootID int64, groupID *int64) (int64, error) {
	query := `WITH RECURSIVE subtree(id) AS (
			SELECT page_id FROM pages WHERE page_id = ?
			UNION
			SELECT p.page_id FROM pages p JOIN subtree s ON p.parent_id = s.id
		)
		UPDATE pages SET group_id = ?, updated_at = ? WHERE page_id IN (SELECT id FROM subtree)`
	res, err := r.db.ExecContext(ctx, query, rootID, groupID, formatTime(time.Now()))
	if err != nil {
		return 0, fmt.Errorf("moving page %d subtree: %w", rootID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking moved rows: %w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("page %d: %w", rootID, ErrNotFound)
	}
	return n, nil
}

// Delete removes a page. Descendants go with it through ON DELETE CASCADE.
func (r *SQLitePageRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pages WHERE page_id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting page: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("page %d", id))
}

func (r *SQLitePageRepo) scanPages(rows *sql.Rows) ([]*domain.Page, error) {
	pages := []*domain.Page{}
	for rows.Next() {
		p, err := r.scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}
	return pages, nil
}

func (r *SQLitePageRepo) scanPage(row scanner) (*domain.Page, error) {
	var p domain.Page
	var groupID, parentID sql.NullInt64
	var content sql.NullString
	var published int
	var createdAt, updatedAt string

	err := row.Scan(
		&p.ID, &p.SiteID, &groupID, &p.Title, &p.Slug,
		&parentID, &p.Depth, &p.MenuOrder,
		&content, &published, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("page: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning page: %w", err)
	}

	p.GroupID = nullableInt64(groupID)
	p.ParentID = nullableInt64(parentID)
	p.Content = nullableString(content)
	p.IsPublished = intToBool(published)
	if p.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
