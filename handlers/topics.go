package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"forum/database"
	"forum/models"
	"forum/session"

	"go.uber.org/zap"
)

const (
	topicsCacheKey = "topics:list"
	topicsCacheTTL = 5 * time.Minute
)

// Index handles GET /index - list all topics
func (h *ForumHandler) Index(w http.ResponseWriter, r *http.Request) {
	topics, err := h.listTopics(r)
	if err != nil {
		h.serverError(w, r, "Failed to list topics", err)
		return
	}

	logRequest(r, "debug", "Topics retrieved", zap.Int("count", len(topics)))

	data := newViewData("Topics")
	data.Topics = topics
	h.render(w, r, http.StatusOK, viewIndex, data)
}

// listTopics reads through the topic cache when one is configured
func (h *ForumHandler) listTopics(r *http.Request) ([]models.Topic, error) {
	if h.cache != nil {
		if cached, err := h.cache.Get(topicsCacheKey); err == nil {
			if topics, ok := decodeTopics(cached); ok {
				logRequest(r, "debug", "Serving topics from cache")
				return topics, nil
			}
		}
	}

	topics, err := h.store.ListTopics(r.Context())
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		// stored as a JSON string: redis wraps it in one more JSON layer on
		// Set and unwraps it on Get, memory hands it back untouched
		if raw, err := json.Marshal(topics); err == nil {
			if err := h.cache.Set(topicsCacheKey, string(raw), topicsCacheTTL); err != nil {
				logRequest(r, "error", "Failed to cache topics", zap.Error(err))
			}
		}
	}
	return topics, nil
}

func decodeTopics(cached interface{}) ([]models.Topic, bool) {
	raw, ok := cached.(string)
	if !ok {
		return nil, false
	}
	var topics []models.Topic
	if err := json.Unmarshal([]byte(raw), &topics); err != nil {
		return nil, false
	}
	return topics, true
}

func (h *ForumHandler) invalidateTopics(r *http.Request) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Delete(topicsCacheKey); err != nil {
		logRequest(r, "error", "Failed to invalidate topic cache", zap.Error(err))
	}
}

// AddTopic handles GET and POST /add_topic
func (h *ForumHandler) AddTopic(w http.ResponseWriter, r *http.Request) {
	data := newViewData("New topic")
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, viewAddTopic, data)
		return
	}

	var form models.AddTopicForm
	err := h.forms.Decode(r, &form)
	data.Form = formValues(r, "title", "content")
	var verr ValidationError
	if errors.As(err, &verr) {
		data.Errors = verr
		h.render(w, r, http.StatusOK, viewAddTopic, data)
		return
	}
	if err != nil {
		logRequest(r, "error", "Invalid topic form", zap.Error(err))
		h.render(w, r, http.StatusBadRequest, viewAddTopic, data)
		return
	}

	id, _ := session.IdentityFrom(r.Context())
	topic := &models.Topic{Name: form.Title, Description: form.Content, Author: id.UserID}
	err = h.store.CreateTopic(r.Context(), topic)
	if errors.Is(err, database.ErrDuplicate) {
		data.Errors["title"] = "A topic with this name already exists."
		h.render(w, r, http.StatusOK, viewAddTopic, data)
		return
	}
	if err != nil {
		h.serverError(w, r, "Failed to create topic", err)
		return
	}

	h.invalidateTopics(r)
	logRequest(r, "info", "Topic created", zap.Int64("topic_id", topic.ID))
	http.Redirect(w, r, "/index", http.StatusSeeOther)
}

// DeleteTopic handles GET /delete_topic/{topic_id}. Any logged in user may
// delete any topic; deleting a missing topic still redirects to the list.
func (h *ForumHandler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	topicID, ok := pathID(r, "topic_id")
	if !ok {
		// too large for any stored id, so there is nothing to delete
		http.Redirect(w, r, "/index", http.StatusSeeOther)
		return
	}

	if err := h.store.DeleteTopic(r.Context(), topicID); err != nil {
		h.serverError(w, r, "Failed to delete topic", err)
		return
	}

	h.invalidateTopics(r)
	logRequest(r, "info", "Topic deleted", zap.Int64("topic_id", topicID))
	http.Redirect(w, r, "/index", http.StatusSeeOther)
}
