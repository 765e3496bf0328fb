package sqlite

import (
	"context"
	"fmt"
	"strings"

	"todolists/internal/todo"
)

// validateListTitle applies the create/update rules for list titles. exceptID
// is ignored by the uniqueness check so a list may keep its own title.
func (s *Store) validateListTitle(ctx context.Context, title string, exceptID int64) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return todo.NewValidationError("Title", "Title is required.")
	}
	if len(title) > maxTitleLength {
		return todo.NewValidationError("Title", fmt.Sprintf("Title must not exceed %d characters.", maxTitleLength))
	}

	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lists WHERE title = ? AND deleted_at IS NULL AND id <> ?`, title, exceptID).Scan(&n)
	if err != nil {
		return fmt.Errorf("check list title: %w", err)
	}
	if n > 0 {
		return todo.NewValidationError("Title", "The specified title already exists.")
	}
	return nil
}

// CreateList persists a new list and returns its identifier.
func (s *Store) CreateList(ctx context.Context, title string) (int64, error) {
	if err := s.validateListTitle(ctx, title, 0); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO lists(title) VALUES(?)`, strings.TrimSpace(title))
	if err != nil {
		return 0, fmt.Errorf("insert list: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("list id: %w", err)
	}
	s.logger.Debug("list created", "id", id)
	return id, nil
}

// UpdateList renames a live list.
func (s *Store) UpdateList(ctx context.Context, id int64, title string) error {
	if err := s.validateListTitle(ctx, title, id); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `UPDATE lists SET title = ? WHERE id = ? AND deleted_at IS NULL`, strings.TrimSpace(title), id)
	if err != nil {
		return fmt.Errorf("update list: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound("list", id)
	}
	return nil
}

// DeleteList soft-deletes a list; the row and its items are kept but hidden.
func (s *Store) DeleteList(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE lists SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound("list", id)
	}
	return nil
}

func (s *Store) listLive(ctx context.Context, id int64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lists WHERE id = ? AND deleted_at IS NULL`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("lookup list: %w", err)
	}
	return n > 0, nil
}
