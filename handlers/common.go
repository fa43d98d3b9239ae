package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"forum/middleware"
	"forum/session"

	"github.com/gorilla/mux"
	logger "github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// logRequest logs with the route context of r prepended.
// Message format: timestamp - route - method - path [- user:name] - message
func logRequest(r *http.Request, level string, message string, fields ...zap.Field) {
	routeName, path := "", r.URL.Path
	if route := mux.CurrentRoute(r); route != nil {
		routeName = route.GetName()
		if tpl, err := route.GetPathTemplate(); err == nil {
			path = tpl
		}
	}

	logMsg := time.Now().Format("2006-01-02 15:04:05") + " - " + routeName + " - " + r.Method + " - " + path
	if id, ok := session.IdentityFrom(r.Context()); ok {
		logMsg += " - user:" + id.Username
	}
	if message != "" {
		logMsg += " - " + message
	}

	allFields := append([]zap.Field{
		zap.String("route", routeName),
		zap.String("method", r.Method),
		zap.String("path", path),
		zap.String("request_id", middleware.RequestIDFrom(r.Context())),
	}, fields...)

	switch level {
	case "info":
		logger.Info(logMsg, allFields...)
	case "error":
		logger.Error(logMsg, allFields...)
	case "debug":
		logger.Debug(logMsg, allFields...)
	}
}

// writeJSON encodes body as the response with the given status
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
