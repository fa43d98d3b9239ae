package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"forum/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umakantv/go-utils/cache"
)

// jsonCache stores values the way go-utils RedisCache does: JSON encoded on
// Set, decoded into an interface{} on Get
type jsonCache struct {
	items map[string][]byte
}

func newJSONCache() *jsonCache {
	return &jsonCache{items: map[string][]byte{}}
}

func (c *jsonCache) Set(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = data
	return nil
}

func (c *jsonCache) Get(key string) (interface{}, error) {
	data, ok := c.items[key]
	if !ok {
		return nil, cache.ErrKeyNotFound
	}
	var result interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		return string(data), nil
	}
	return result, nil
}

func (c *jsonCache) Delete(key string) error {
	delete(c.items, key)
	return nil
}

func (c *jsonCache) Exists(key string) bool {
	_, ok := c.items[key]
	return ok
}

func (c *jsonCache) Close() error {
	return nil
}

func topicCaches(t *testing.T) map[string]func() cache.Cache {
	return map[string]func() cache.Cache{
		"redis encoding": func() cache.Cache { return newJSONCache() },
		"memory": func() cache.Cache {
			c, err := cache.New(cache.Config{Type: "memory"})
			require.NoError(t, err)
			t.Cleanup(func() { c.Close() })
			return c
		},
	}
}

func index(t *testing.T, h *ForumHandler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Index(rec, authed(http.MethodGet, "/index", nil, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestIndex_ServesTopicsFromCache(t *testing.T) {
	for name, newCache := range topicCaches(t) {
		t.Run(name, func(t *testing.T) {
			store := newFakeStore()
			store.topics[1] = models.Topic{ID: 1, Name: "Go", Description: "gophers", Author: 7}
			h := newCachedTestHandler(t, store, newCache())

			for i := 0; i < 3; i++ {
				assert.Contains(t, index(t, h), `<a href="/topic/1">Go</a>`)
			}
			assert.Equal(t, 1, store.listCalls)
		})
	}
}

func TestIndex_CacheMissReadsStore(t *testing.T) {
	store := newFakeStore()
	topicCache := newJSONCache()
	require.NoError(t, topicCache.Set(topicsCacheKey, 42, time.Minute))
	h := newCachedTestHandler(t, store, topicCache)

	index(t, h)
	assert.Equal(t, 1, store.listCalls)

	// the unreadable entry was replaced
	index(t, h)
	assert.Equal(t, 1, store.listCalls)
}

func TestAddTopic_InvalidatesCache(t *testing.T) {
	for name, newCache := range topicCaches(t) {
		t.Run(name, func(t *testing.T) {
			store := newFakeStore()
			h := newCachedTestHandler(t, store, newCache())

			assert.Contains(t, index(t, h), "No topics yet.")

			rec := httptest.NewRecorder()
			h.AddTopic(rec, authed(http.MethodPost, "/add_topic", url.Values{"title": {"T1"}, "content": {"desc"}}, nil))
			require.Equal(t, http.StatusSeeOther, rec.Code)

			assert.Contains(t, index(t, h), `<a href="/topic/1">T1</a>`)
			assert.Equal(t, 2, store.listCalls)
		})
	}
}

func TestDeleteTopic_InvalidatesCache(t *testing.T) {
	for name, newCache := range topicCaches(t) {
		t.Run(name, func(t *testing.T) {
			store := newFakeStore()
			store.topics[1] = models.Topic{ID: 1, Name: "Go", Author: 7}
			h := newCachedTestHandler(t, store, newCache())

			assert.Contains(t, index(t, h), `<a href="/topic/1">Go</a>`)

			rec := httptest.NewRecorder()
			h.DeleteTopic(rec, authed(http.MethodGet, "/delete_topic/1", nil, map[string]string{"topic_id": "1"}))
			require.Equal(t, http.StatusSeeOther, rec.Code)

			assert.Contains(t, index(t, h), "No topics yet.")
			assert.Equal(t, 2, store.listCalls)
		})
	}
}
