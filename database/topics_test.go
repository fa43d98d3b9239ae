package database

import (
	"context"
	"errors"
	"testing"

	"forum/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTopic(t *testing.T, s *Store, name string, author int64) *models.Topic {
	t.Helper()
	topic := &models.Topic{Name: name, Description: "desc", Author: author}
	require.NoError(t, s.CreateTopic(context.Background(), topic))
	return topic
}

func TestCreateTopic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	topic := createTestTopic(t, s, "T1", 7)
	assert.NotZero(t, topic.ID)

	topics, err := s.ListTopics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, models.Topic{ID: topic.ID, Name: "T1", Description: "desc", Author: 7}, topics[0])
}

func TestCreateTopic_DuplicateName(t *testing.T) {
	s := createTestStore(t)
	createTestTopic(t, s, "T1", 7)

	err := s.CreateTopic(context.Background(), &models.Topic{Name: "T1", Description: "again", Author: 8})
	var uv *UniqueViolationError
	require.True(t, errors.As(err, &uv))
	assert.Equal(t, "topic", uv.Table)
	assert.Equal(t, "name", uv.Field)
}

func TestListTopics_Empty(t *testing.T) {
	s := createTestStore(t)
	topics, err := s.ListTopics(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, topics)
	assert.Empty(t, topics)
}

func TestListTopics_InsertionOrder(t *testing.T) {
	s := createTestStore(t)
	for _, name := range []string{"b", "a", "c"} {
		createTestTopic(t, s, name, 1)
	}

	topics, err := s.ListTopics(context.Background())
	require.NoError(t, err)
	require.Len(t, topics, 3)
	assert.Equal(t, "b", topics[0].Name)
	assert.Equal(t, "a", topics[1].Name)
	assert.Equal(t, "c", topics[2].Name)
}

func TestFindTopicByID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	topic := createTestTopic(t, s, "T1", 7)

	found, err := s.FindTopicByID(ctx, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, *topic, *found)

	_, err = s.FindTopicByID(ctx, topic.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTopic_CascadesMessages(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	topic := createTestTopic(t, s, "T1", 7)
	other := createTestTopic(t, s, "T2", 7)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.CreateMessage(ctx, &models.Message{Author: 7, Topic: topic.ID, Text: "hi"}))
	}
	require.NoError(t, s.CreateMessage(ctx, &models.Message{Author: 7, Topic: other.ID, Text: "keep"}))

	require.NoError(t, s.DeleteTopic(ctx, topic.ID))

	count, err := s.CountMessagesByTopic(ctx, topic.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
	_, err = s.FindTopicByID(ctx, topic.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	count, err = s.CountMessagesByTopic(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDeleteTopic_MissingIsNoop(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	topic := createTestTopic(t, s, "T1", 7)

	require.NoError(t, s.DeleteTopic(ctx, 999))

	topics, err := s.ListTopics(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Topic{*topic}, topics)
}

func TestDeleteTopic_Twice(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	topic := createTestTopic(t, s, "T1", 7)

	require.NoError(t, s.DeleteTopic(ctx, topic.ID))
	require.NoError(t, s.DeleteTopic(ctx, topic.ID))
}

func TestDeleteTopic_OrphanMessagesWithoutTopicRow(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// messages may reference a topic id that has no row
	require.NoError(t, s.CreateMessage(ctx, &models.Message{Author: 1, Topic: 55, Text: "orphan"}))
	require.NoError(t, s.DeleteTopic(ctx, 55))

	count, err := s.CountMessagesByTopic(ctx, 55)
	require.NoError(t, err)
	assert.Zero(t, count)
}
