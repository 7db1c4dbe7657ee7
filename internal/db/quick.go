package db

import (
	"context"
	"fmt"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
)

// CreateQuickMessage appends a message to the quick-command log.
func (db *DB) CreateQuickMessage(ctx context.Context, msg *models.QuickMessage) error {
	query := `
		INSERT INTO quick_messages (id, user_id, role, content,
			related_entity_id, related_entity_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var relatedID *string
	if msg.RelatedEntityID != nil {
		s := msg.RelatedEntityID.String()
		relatedID = &s
	}

	_, err := db.Exec(ctx, query,
		msg.ID.String(),
		msg.UserID.String(),
		msg.Role,
		msg.Content,
		relatedID,
		msg.RelatedEntityType,
		msg.CreatedAt,
	)
	return err
}

// ListQuickMessages retrieves the oldest-first quick-command log,
// capped at limit entries.
func (db *DB) ListQuickMessages(ctx context.Context, userID uuid.UUID, limit int) ([]*models.QuickMessage, error) {
	query := `
		SELECT id, user_id, role, content, related_entity_id,
			related_entity_type, created_at
		FROM quick_messages
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT $2`

	rows, err := db.Query(ctx, query, userID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("error listing quick messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.QuickMessage
	for rows.Next() {
		msg := &models.QuickMessage{}
		err := rows.Scan(
			&msg.ID,
			&msg.UserID,
			&msg.Role,
			&msg.Content,
			&msg.RelatedEntityID,
			&msg.RelatedEntityType,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
