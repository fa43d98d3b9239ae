package server

import (
	"net/http"

	"forum/handlers"
	"forum/middleware"
	"forum/session"

	"github.com/gorilla/mux"
)

// Route describes one endpoint of the forum
type Route struct {
	Name    string
	Methods []string
	Path    string
	// Auth marks routes that need a logged in session
	Auth    bool
	Handler http.HandlerFunc
}

func forumRoutes(h *handlers.ForumHandler) []Route {
	return []Route{
		{Name: "HealthCheck", Methods: []string{http.MethodGet}, Path: "/health", Handler: h.Health},
		{Name: "Home", Methods: []string{http.MethodGet}, Path: "/", Handler: h.Home},
		{Name: "Login", Methods: []string{http.MethodGet, http.MethodPost}, Path: "/login", Handler: h.Login},
		{Name: "Register", Methods: []string{http.MethodGet, http.MethodPost}, Path: "/register", Handler: h.Register},
		{Name: "Logout", Methods: []string{http.MethodGet}, Path: "/logout", Handler: h.Logout},
		{Name: "ListTopics", Methods: []string{http.MethodGet}, Path: "/index", Auth: true, Handler: h.Index},
		{Name: "AddTopic", Methods: []string{http.MethodGet, http.MethodPost}, Path: "/add_topic", Auth: true, Handler: h.AddTopic},
		{Name: "DeleteTopic", Methods: []string{http.MethodGet}, Path: "/delete_topic/{topic_id:[0-9]+}", Auth: true, Handler: h.DeleteTopic},
		{Name: "ViewTopic", Methods: []string{http.MethodGet, http.MethodPost}, Path: "/topic/{topic_id:[0-9]+}", Auth: true, Handler: h.Topic},
		{Name: "DeleteMessage", Methods: []string{http.MethodGet}, Path: "/delete_message/{topic_id:[0-9]+}/{message_id:[0-9]+}", Auth: true, Handler: h.DeleteMessage},
	}
}

// NewRouter wires the forum routes and the middleware chain:
// recover, request id, access log, session load/save, then the auth gate
// on protected routes
func NewRouter(h *handlers.ForumHandler, sessions *session.Manager) http.Handler {
	r := mux.NewRouter()
	for _, route := range forumRoutes(h) {
		var handler http.Handler = route.Handler
		if route.Auth {
			handler = sessions.RequireAuth(handler)
		}
		r.Handle(route.Path, handler).Methods(route.Methods...).Name(route.Name)
	}

	var chain http.Handler = sessions.LoadAndSave(r)
	chain = middleware.AccessLog(chain)
	chain = middleware.RequestID(chain)
	chain = middleware.Recover(chain)
	return chain
}
