package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"forum/database"
	"forum/models"
	"forum/session"

	"go.uber.org/zap"
)

// Topic handles GET and POST /topic/{topic_id}: the topic with its messages,
// and posting a new message to it. A successful post redirects back to the
// topic page; a missing topic is a 404 and nothing is inserted.
func (h *ForumHandler) Topic(w http.ResponseWriter, r *http.Request) {
	topicID, ok := pathID(r, "topic_id")
	if !ok {
		h.notFound(w, r, "Topic not found")
		return
	}

	topic, err := h.store.FindTopicByID(r.Context(), topicID)
	if errors.Is(err, database.ErrNotFound) {
		h.notFound(w, r, "Topic not found")
		return
	}
	if err != nil {
		h.serverError(w, r, "Failed to load topic", err)
		return
	}

	data := newViewData(topic.Name)
	data.Topic = topic

	if r.Method == http.MethodPost {
		var form models.AddMessageForm
		err := h.forms.Decode(r, &form)
		var verr ValidationError
		switch {
		case errors.As(err, &verr):
			data.Errors = verr
			data.Form = formValues(r, "text")
		case err != nil:
			logRequest(r, "error", "Invalid message form", zap.Error(err))
			data.Form = formValues(r, "text")
		default:
			id, _ := session.IdentityFrom(r.Context())
			message := &models.Message{Author: id.UserID, Topic: topicID, Text: form.Text}
			if err := h.store.CreateMessage(r.Context(), message); err != nil {
				h.serverError(w, r, "Failed to create message", err)
				return
			}
			logRequest(r, "info", "Message created", zap.Int64("topic_id", topicID), zap.Int64("message_id", message.ID))
			http.Redirect(w, r, topicPath(topicID), http.StatusSeeOther)
			return
		}
	}

	messages, err := h.store.ListMessagesByTopic(r.Context(), topicID)
	if err != nil {
		h.serverError(w, r, "Failed to list messages", err)
		return
	}
	data.Messages = messages

	h.render(w, r, http.StatusOK, viewTopic, data)
}

// DeleteMessage handles GET /delete_message/{topic_id}/{message_id}.
// The message is removed by id alone; the topic id only picks the redirect.
func (h *ForumHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	// ids too large to be stored match nothing, so they skip straight to the redirect
	topicID, ok := pathID(r, "topic_id")
	if !ok {
		http.Redirect(w, r, "/index", http.StatusSeeOther)
		return
	}
	messageID, ok := pathID(r, "message_id")
	if !ok {
		http.Redirect(w, r, topicPath(topicID), http.StatusSeeOther)
		return
	}

	if err := h.store.DeleteMessage(r.Context(), messageID); err != nil {
		h.serverError(w, r, "Failed to delete message", err)
		return
	}

	logRequest(r, "info", "Message deleted", zap.Int64("message_id", messageID))
	http.Redirect(w, r, topicPath(topicID), http.StatusSeeOther)
}

func topicPath(id int64) string {
	return "/topic/" + strconv.FormatInt(id, 10)
}
