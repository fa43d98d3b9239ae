package database

import (
	"context"
	"fmt"

	"forum/models"
)

// CreateTopic inserts the topic and sets its generated id
func (s *Store) CreateTopic(ctx context.Context, topic *models.Topic) error {
	query := s.rebind(`INSERT INTO topic (name, description, author) VALUES (?, ?, ?) RETURNING id`)
	err := s.db.QueryRowxContext(ctx, query, topic.Name, topic.Description, topic.Author).Scan(&topic.ID)
	return translateError("topic", err)
}

// ListTopics returns every topic in id order
func (s *Store) ListTopics(ctx context.Context) ([]models.Topic, error) {
	topics := []models.Topic{}
	err := s.db.SelectContext(ctx, &topics, `SELECT id, name, description, author FROM topic ORDER BY id`)
	if err != nil {
		return nil, translateError("topic", err)
	}
	return topics, nil
}

func (s *Store) FindTopicByID(ctx context.Context, id int64) (*models.Topic, error) {
	var topic models.Topic
	query := s.rebind(`SELECT id, name, description, author FROM topic WHERE id = ?`)
	if err := s.db.GetContext(ctx, &topic, query, id); err != nil {
		return nil, translateError("topic", err)
	}
	return &topic, nil
}

// DeleteTopic removes the topic's messages and then the topic in one
// transaction. A missing topic is not an error.
func (s *Store) DeleteTopic(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM message WHERE topic = ?`), id); err != nil {
		return fmt.Errorf("failed to delete messages of topic %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM topic WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete topic %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit topic deletion: %w", err)
	}
	return nil
}
