package database

import (
	"context"
	"testing"

	"forum/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMessage(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	topic := createTestTopic(t, s, "T1", 7)

	before, err := s.ListMessagesByTopic(ctx, topic.ID)
	require.NoError(t, err)

	message := &models.Message{Author: 3, Topic: topic.ID, Text: "hello"}
	require.NoError(t, s.CreateMessage(ctx, message))
	assert.NotZero(t, message.ID)

	after, err := s.ListMessagesByTopic(ctx, topic.ID)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, models.Message{ID: message.ID, Author: 3, Topic: topic.ID, Text: "hello"}, after[len(after)-1])
}

func TestListMessagesByTopic_OnlyThatTopic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	t1 := createTestTopic(t, s, "T1", 7)
	t2 := createTestTopic(t, s, "T2", 7)

	require.NoError(t, s.CreateMessage(ctx, &models.Message{Author: 1, Topic: t1.ID, Text: "one"}))
	require.NoError(t, s.CreateMessage(ctx, &models.Message{Author: 1, Topic: t2.ID, Text: "two"}))
	require.NoError(t, s.CreateMessage(ctx, &models.Message{Author: 2, Topic: t1.ID, Text: "three"}))

	messages, err := s.ListMessagesByTopic(ctx, t1.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "one", messages[0].Text)
	assert.Equal(t, "three", messages[1].Text)
}

func TestDeleteMessage(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	topic := createTestTopic(t, s, "T1", 7)

	keep := &models.Message{Author: 1, Topic: topic.ID, Text: "keep"}
	drop := &models.Message{Author: 1, Topic: topic.ID, Text: "drop"}
	require.NoError(t, s.CreateMessage(ctx, keep))
	require.NoError(t, s.CreateMessage(ctx, drop))

	require.NoError(t, s.DeleteMessage(ctx, drop.ID))
	// second delete of the same id is a no-op
	require.NoError(t, s.DeleteMessage(ctx, drop.ID))

	messages, err := s.ListMessagesByTopic(ctx, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Message{*keep}, messages)
}

func TestDeleteMessage_Missing(t *testing.T) {
	s := createTestStore(t)
	assert.NoError(t, s.DeleteMessage(context.Background(), 12345))
}
