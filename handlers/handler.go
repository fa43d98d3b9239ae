package handlers

import (
	"context"
	"net/http"
	"strconv"

	"forum/models"
	"forum/session"

	"github.com/gorilla/mux"
	"github.com/umakantv/go-utils/cache"
	"github.com/umakantv/go-utils/errs"
	"go.uber.org/zap"
)

// Store is the persistence the forum handlers need
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByCredentials(ctx context.Context, username, password string) (*models.User, error)
	CreateTopic(ctx context.Context, topic *models.Topic) error
	ListTopics(ctx context.Context) ([]models.Topic, error)
	FindTopicByID(ctx context.Context, id int64) (*models.Topic, error)
	DeleteTopic(ctx context.Context, id int64) error
	CreateMessage(ctx context.Context, message *models.Message) error
	ListMessagesByTopic(ctx context.Context, topicID int64) ([]models.Message, error)
	DeleteMessage(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// ForumHandler serves every forum page
type ForumHandler struct {
	store    Store
	sessions *session.Manager
	views    *Renderer
	forms    *FormDecoder
	cache    cache.Cache
}

// NewForumHandler creates the forum handler. topicCache may be nil, in which
// case the topic list is always read from the store.
func NewForumHandler(store Store, sessions *session.Manager, views *Renderer, topicCache cache.Cache) *ForumHandler {
	return &ForumHandler{
		store:    store,
		sessions: sessions,
		views:    views,
		forms:    NewFormDecoder(),
		cache:    topicCache,
	}
}

// render writes the page, logging instead of failing when the template breaks
func (h *ForumHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data *ViewData) {
	if id, ok := session.IdentityFrom(r.Context()); ok {
		data.Username = id.Username
	}
	if err := h.views.Render(w, status, name, data); err != nil {
		logRequest(r, "error", "Failed to render view", zap.String("view", name), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Failed to render page"))
	}
}

func (h *ForumHandler) serverError(w http.ResponseWriter, r *http.Request, message string, err error) {
	logRequest(r, "error", message, zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError(message))
}

func (h *ForumHandler) notFound(w http.ResponseWriter, r *http.Request, message string) {
	logRequest(r, "info", message)
	writeJSON(w, http.StatusNotFound, errs.NewNotFoundError(message))
}

// pathID reads an integer path variable; ok is false when it does not fit an int64
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Home sends visitors to the topic list
func (h *ForumHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/index", http.StatusSeeOther)
}

// Health handles GET /health
func (h *ForumHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		logRequest(r, "error", "Database ping failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errs.NewInternalServerError("Database unavailable"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "forum"})
}
