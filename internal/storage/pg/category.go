package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/isodigm/blogcms/internal/domain"
	internal_errors "github.com/isodigm/blogcms/internal/errors"
)

const categoryColumns = `id, name, slug, description, color, meta_description, created_at`

// =========================================================================
// Public Methods (satisfy the service.CategoryStorage interface)
// =========================================================================

func (s *Storage) SaveCategory(category domain.Category) (int64, error) {
	ctx, cancel := opContext()
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveCategory(tx, category)
		return err
	})
	return id, err
}

func (s *Storage) Category(id int64) (domain.Category, error) {
	return s.scanCategory(s.db.QueryRow("SELECT "+categoryColumns+" FROM blog_categories WHERE id = $1", id))
}

func (s *Storage) UpdateCategory(category domain.Category) error {
	result, err := s.db.Exec(`
        UPDATE blog_categories SET name = $1, slug = $2, description = $3,
            color = $4, meta_description = $5
        WHERE id = $6`,
		category.Name, category.Slug, category.Description,
		category.Color, category.MetaDescription, category.Id,
	)
	if err != nil {
		return conflictOr(err, "Category name or slug already exists", "failed to update category")
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for category update: %w", err)
	}
	if rowsAffected == 0 {
		return internal_errors.NotFound("Category not found")
	}
	return nil
}

func (s *Storage) DeleteCategory(id int64) error {
	result, err := s.db.Exec("DELETE FROM blog_categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for category delete: %w", err)
	}
	if rowsAffected == 0 {
		return internal_errors.NotFound("Category not found")
	}
	return nil
}

func (s *Storage) Categories() ([]domain.Category, error) {
	rows, err := s.db.Query("SELECT " + categoryColumns + " FROM blog_categories ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.Id, &category.Name, &category.Slug, &category.Description,
			&category.Color, &category.MetaDescription, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// CategorySlugTaken reports whether a slug is used by a category other than
// excludeId. Pass excludeId == 0 when creating.
func (s *Storage) CategorySlugTaken(slug string, excludeId int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM blog_categories WHERE slug = $1 AND id <> $2)",
		slug, excludeId,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category slug: %w", err)
	}
	return exists, nil
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) saveCategory(q Querier, category domain.Category) (int64, error) {
	var id int64
	err := q.QueryRow(`
        INSERT INTO blog_categories(name, slug, description, color, meta_description)
        VALUES($1, $2, $3, $4, $5) RETURNING id`,
		category.Name, category.Slug, category.Description, category.Color, category.MetaDescription,
	).Scan(&id)
	if err != nil {
		return -1, conflictOr(err, "Category name or slug already exists", "failed to insert category")
	}
	return id, nil
}

func (s *Storage) scanCategory(row *sql.Row) (domain.Category, error) {
	var category domain.Category
	err := row.Scan(&category.Id, &category.Name, &category.Slug, &category.Description,
		&category.Color, &category.MetaDescription, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Category{}, internal_errors.NotFound("Category not found")
		}
		return domain.Category{}, fmt.Errorf("failed to query category: %w", err)
	}
	return category, nil
}
