package database

import (
	"context"
	"fmt"

	"forum/models"
)

// CreateMessage inserts the message and sets its generated id.
// The topic is not checked for existence here.
func (s *Store) CreateMessage(ctx context.Context, message *models.Message) error {
	query := s.rebind(`INSERT INTO message (author, topic, text) VALUES (?, ?, ?) RETURNING id`)
	err := s.db.QueryRowxContext(ctx, query, message.Author, message.Topic, message.Text).Scan(&message.ID)
	return translateError("message", err)
}

// ListMessagesByTopic returns the topic's messages in id order
func (s *Store) ListMessagesByTopic(ctx context.Context, topicID int64) ([]models.Message, error) {
	messages := []models.Message{}
	query := s.rebind(`SELECT id, author, topic, text FROM message WHERE topic = ? ORDER BY id`)
	if err := s.db.SelectContext(ctx, &messages, query, topicID); err != nil {
		return nil, translateError("message", err)
	}
	return messages, nil
}

func (s *Store) CountMessagesByTopic(ctx context.Context, topicID int64) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, s.rebind(`SELECT COUNT(*) FROM message WHERE topic = ?`), topicID)
	return count, err
}

// DeleteMessage removes the message by id; a missing id is a no-op
func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM message WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete message %d: %w", id, err)
	}
	return nil
}
