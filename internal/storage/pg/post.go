package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/isodigm/blogcms/internal/domain"
	internal_errors "github.com/isodigm/blogcms/internal/errors"
)

const postColumns = `p.id, p.title, p.slug, p.content, p.excerpt, p.author_id,
	COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username),
	p.meta_description, p.featured_image, p.status, p.published_at,
	p.category, p.tags, p.view_count, p.created_at, p.updated_at`

const postFrom = ` FROM blog_posts p JOIN users u ON u.id = p.author_id `

// =========================================================================
// Public Methods (satisfy the service.PostStorage interface)
// =========================================================================

func (s *Storage) SavePost(post domain.Post) (domain.PostId, error) {
	ctx, cancel := opContext()
	defer cancel()

	var id domain.PostId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.savePost(tx, post)
		return err
	})
	return id, err
}

func (s *Storage) Post(id domain.PostId) (domain.Post, error) {
	return s.scanPost(s.db.QueryRow("SELECT "+postColumns+postFrom+"WHERE p.id = $1", id))
}

func (s *Storage) PostBySlug(slug string) (domain.Post, error) {
	return s.scanPost(s.db.QueryRow("SELECT "+postColumns+postFrom+"WHERE p.slug = $1", slug))
}

func (s *Storage) UpdatePost(post domain.Post) error {
	ctx, cancel := opContext()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updatePost(tx, post)
	})
}

func (s *Storage) DeletePost(id domain.PostId) error {
	result, err := s.db.Exec("DELETE FROM blog_posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for post delete: %w", err)
	}
	if rowsAffected == 0 {
		return internal_errors.NotFound("Post not found")
	}
	return nil
}

// Posts lists posts newest-first according to the filter. Zero-valued filter
// fields are ignored; Limit == 0 means no limit.
func (s *Storage) Posts(filter domain.PostFilter) ([]domain.Post, error) {
	query := "SELECT " + postColumns + postFrom
	var conditions []string
	var args []any

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("p.category = $%d", len(args)))
	}
	if filter.AuthorId != 0 {
		args = append(args, filter.AuthorId)
		conditions = append(conditions, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += "WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := s.scanPostRows(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// SlugTaken reports whether a slug is already used by a post other than
// excludeId. Pass excludeId == 0 when creating.
func (s *Storage) SlugTaken(slug string, excludeId domain.PostId) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = $1 AND id <> $2)",
		slug, excludeId,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func (s *Storage) IncrementViewCount(id domain.PostId) error {
	_, err := s.db.Exec("UPDATE blog_posts SET view_count = view_count + 1 WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) savePost(q Querier, post domain.Post) (domain.PostId, error) {
	var id domain.PostId
	err := q.QueryRow(`
        INSERT INTO blog_posts(title, slug, content, excerpt, author_id, meta_description,
                               featured_image, status, published_at, category, tags)
        VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`,
		post.Title, post.Slug, post.Content, post.Excerpt, post.AuthorId, post.MetaDescription,
		post.FeaturedImage, post.Status, post.PublishedAt, post.Category, post.Tags,
	).Scan(&id)
	if err != nil {
		return -1, conflictOr(err, "Post slug already exists", "failed to insert post")
	}
	return id, nil
}

func (s *Storage) updatePost(q Querier, post domain.Post) error {
	result, err := q.Exec(`
        UPDATE blog_posts SET title = $1, slug = $2, content = $3, excerpt = $4,
            meta_description = $5, featured_image = $6, status = $7, published_at = $8,
            category = $9, tags = $10, updated_at = NOW()
        WHERE id = $11`,
		post.Title, post.Slug, post.Content, post.Excerpt,
		post.MetaDescription, post.FeaturedImage, post.Status, post.PublishedAt,
		post.Category, post.Tags, post.Id,
	)
	if err != nil {
		return conflictOr(err, "Post slug already exists", "failed to update post")
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for post update: %w", err)
	}
	if rowsAffected == 0 {
		return internal_errors.NotFound("Post not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostFields(row rowScanner) (domain.Post, error) {
	var post domain.Post
	err := row.Scan(&post.Id, &post.Title, &post.Slug, &post.Content, &post.Excerpt,
		&post.AuthorId, &post.AuthorName, &post.MetaDescription, &post.FeaturedImage,
		&post.Status, &post.PublishedAt, &post.Category, &post.Tags, &post.ViewCount,
		&post.CreatedAt, &post.UpdatedAt)
	return post, err
}

func (s *Storage) scanPost(row *sql.Row) (domain.Post, error) {
	post, err := scanPostFields(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, internal_errors.NotFound("Post not found")
		}
		return domain.Post{}, fmt.Errorf("failed to query post: %w", err)
	}
	return post, nil
}

func (s *Storage) scanPostRows(rows *sql.Rows) (domain.Post, error) {
	post, err := scanPostFields(rows)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to scan post row: %w", err)
	}
	return post, nil
}
