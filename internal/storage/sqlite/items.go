package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"todolists/internal/models"
	"todolists/internal/todo"
)

func validateItemTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return todo.NewValidationError("Title", "Title is required.")
	}
	if len(title) > maxTitleLength {
		return todo.NewValidationError("Title", fmt.Sprintf("Title must not exceed %d characters.", maxTitleLength))
	}
	return nil
}

func validatePriority(priority int) error {
	if !models.ValidPriority(priority) {
		return todo.NewValidationError("Priority", "Priority is not a known level.")
	}
	return nil
}

// CreateItem appends an item to a live list and returns its identifier.
func (s *Store) CreateItem(ctx context.Context, item models.Item) (int64, error) {
	if err := validateItemTitle(item.Title); err != nil {
		return 0, err
	}
	if err := validatePriority(item.Priority); err != nil {
		return 0, err
	}
	live, err := s.listLive(ctx, item.ListID)
	if err != nil {
		return 0, err
	}
	if !live {
		return 0, notFound("list", item.ListID)
	}

	pos, err := s.nextPosition(ctx, item.ListID)
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO items(list_id, title, done, priority, note, color, tag, position)
        VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ListID, strings.TrimSpace(item.Title), item.Done, item.Priority, item.Note, item.Color, item.Tag, pos)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("item id: %w", err)
	}
	return id, nil
}

// GetItem retrieves an item by id.
func (s *Store) GetItem(ctx context.Context, id int64) (models.Item, error) {
	var it models.Item
	err := s.db.QueryRowContext(ctx, `SELECT id, list_id, title, done, priority, note, color, tag FROM items WHERE id = ?`, id).
		Scan(&it.ID, &it.ListID, &it.Title, &it.Done, &it.Priority, &it.Note, &it.Color, &it.Tag)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, notFound("item", id)
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// UpdateItem changes an item's title and done flag.
func (s *Store) UpdateItem(ctx context.Context, id int64, item models.Item) error {
	if err := validateItemTitle(item.Title); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `UPDATE items SET title = ?, done = ? WHERE id = ?`, strings.TrimSpace(item.Title), item.Done, id)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound("item", id)
	}
	return nil
}

// UpdateItemDetail changes priority, note, color and tag, moving the item to
// the end of another list when detail names one.
func (s *Store) UpdateItemDetail(ctx context.Context, id int64, detail models.ItemDetail) error {
	if err := validatePriority(detail.Priority); err != nil {
		return err
	}

	current, err := s.GetItem(ctx, id)
	if err != nil {
		return err
	}

	listID := current.ListID
	position := sql.NullInt64{}
	if detail.ListID != 0 && detail.ListID != current.ListID {
		live, err := s.listLive(ctx, detail.ListID)
		if err != nil {
			return err
		}
		if !live {
			return notFound("list", detail.ListID)
		}
		pos, err := s.nextPosition(ctx, detail.ListID)
		if err != nil {
			return err
		}
		listID = detail.ListID
		position = sql.NullInt64{Int64: pos, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `UPDATE items SET list_id = ?, priority = ?, note = ?, color = ?, tag = ?,
        position = COALESCE(?, position) WHERE id = ?`,
		listID, detail.Priority, detail.Note, detail.Color, detail.Tag, position, id)
	if err != nil {
		return fmt.Errorf("update item detail: %w", err)
	}
	if listID != current.ListID {
		s.logger.Debug("item moved", "id", id, "from", current.ListID, "to", listID)
	}
	return nil
}

// DeleteItem removes an item by id.
func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound("item", id)
	}
	return nil
}

func (s *Store) nextPosition(ctx context.Context, listID int64) (int64, error) {
	var position sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(position) FROM items WHERE list_id = ?`, listID).Scan(&position)
	if err != nil {
		return 0, fmt.Errorf("select position: %w", err)
	}
	if position.Valid {
		return position.Int64 + 1, nil
	}
	return 0, nil
}
