package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/isodigm/blogcms/internal/domain"
	internal_errors "github.com/isodigm/blogcms/internal/errors"
)

const commentColumns = `id, post_id, content, author_name, author_email, author_website,
	status, ip_address, parent_id, created_at`

// =========================================================================
// Public Methods (satisfy the service.CommentStorage interface)
// =========================================================================

func (s *Storage) SaveComment(comment domain.Comment) (domain.CommentId, error) {
	ctx, cancel := opContext()
	defer cancel()

	var id domain.CommentId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveComment(tx, comment)
		return err
	})
	return id, err
}

func (s *Storage) Comment(id domain.CommentId) (domain.Comment, error) {
	return s.scanComment(s.db.QueryRow("SELECT "+commentColumns+" FROM blog_comments WHERE id = $1", id))
}

func (s *Storage) UpdateCommentStatus(id domain.CommentId, status string) error {
	result, err := s.db.Exec("UPDATE blog_comments SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("failed to update comment status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for comment update: %w", err)
	}
	if rowsAffected == 0 {
		return internal_errors.NotFound("Comment not found")
	}
	return nil
}

func (s *Storage) DeleteComment(id domain.CommentId) error {
	result, err := s.db.Exec("DELETE FROM blog_comments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for comment delete: %w", err)
	}
	if rowsAffected == 0 {
		return internal_errors.NotFound("Comment not found")
	}
	return nil
}

// CommentsByPost lists a post's comments oldest-first. Empty status means
// all moderation states.
func (s *Storage) CommentsByPost(postId domain.PostId, status string) ([]domain.Comment, error) {
	query := "SELECT " + commentColumns + " FROM blog_comments WHERE post_id = $1"
	args := []any{postId}
	if status != "" {
		args = append(args, status)
		query += " AND status = $2"
	}
	query += " ORDER BY created_at ASC"
	return s.queryComments(query, args...)
}

func (s *Storage) PendingComments() ([]domain.Comment, error) {
	return s.queryComments(
		"SELECT "+commentColumns+" FROM blog_comments WHERE status = $1 ORDER BY created_at ASC",
		domain.CommentPending,
	)
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) saveComment(q Querier, comment domain.Comment) (domain.CommentId, error) {
	var id domain.CommentId
	err := q.QueryRow(`
        INSERT INTO blog_comments(post_id, content, author_name, author_email, author_website,
                                  status, ip_address, parent_id)
        VALUES($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		comment.PostId, comment.Content, comment.AuthorName, comment.AuthorEmail,
		comment.AuthorWebsite, comment.Status, comment.IpAddress, comment.ParentId,
	).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("failed to insert comment: %w", err)
	}
	return id, nil
}

func (s *Storage) queryComments(query string, args ...any) ([]domain.Comment, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(&comment.Id, &comment.PostId, &comment.Content,
			&comment.AuthorName, &comment.AuthorEmail, &comment.AuthorWebsite,
			&comment.Status, &comment.IpAddress, &comment.ParentId, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (s *Storage) scanComment(row *sql.Row) (domain.Comment, error) {
	var comment domain.Comment
	err := row.Scan(&comment.Id, &comment.PostId, &comment.Content,
		&comment.AuthorName, &comment.AuthorEmail, &comment.AuthorWebsite,
		&comment.Status, &comment.IpAddress, &comment.ParentId, &comment.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Comment{}, internal_errors.NotFound("Comment not found")
		}
		return domain.Comment{}, fmt.Errorf("failed to query comment: %w", err)
	}
	return comment, nil
}
