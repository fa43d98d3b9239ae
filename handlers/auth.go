package handlers

import (
	"errors"
	"net/http"

	"forum/database"
	"forum/models"

	"go.uber.org/zap"
)

// Login handles GET and POST /login.
// A failed login shows the form again without saying why.
func (h *ForumHandler) Login(w http.ResponseWriter, r *http.Request) {
	data := newViewData("Login")
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, viewLogin, data)
		return
	}

	var form models.LoginForm
	err := h.forms.Decode(r, &form)
	data.Form = formValues(r, "username")
	var verr ValidationError
	if errors.As(err, &verr) {
		data.Errors = verr
		h.render(w, r, http.StatusOK, viewLogin, data)
		return
	}
	if err != nil {
		logRequest(r, "error", "Invalid login form", zap.Error(err))
		h.render(w, r, http.StatusBadRequest, viewLogin, data)
		return
	}

	user, err := h.store.FindUserByCredentials(r.Context(), form.Username, form.Password)
	if errors.Is(err, database.ErrNotFound) {
		logRequest(r, "info", "Login rejected", zap.String("username", form.Username))
		h.render(w, r, http.StatusOK, viewLogin, data)
		return
	}
	if err != nil {
		h.serverError(w, r, "Failed to look up user", err)
		return
	}

	if err := h.sessions.Login(r.Context(), user, form.RememberMe); err != nil {
		h.serverError(w, r, "Failed to start session", err)
		return
	}

	logRequest(r, "info", "Login successful", zap.Int64("user_id", user.ID))
	http.Redirect(w, r, "/index", http.StatusSeeOther)
}

// Register handles GET and POST /register. The user row is inserted as
// submitted and the new user is logged in right away.
func (h *ForumHandler) Register(w http.ResponseWriter, r *http.Request) {
	data := newViewData("Register")
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, viewRegister, data)
		return
	}

	var form models.RegisterForm
	err := h.forms.Decode(r, &form)
	data.Form = formValues(r, "username", "email")
	var verr ValidationError
	if errors.As(err, &verr) {
		data.Errors = verr
		h.render(w, r, http.StatusOK, viewRegister, data)
		return
	}
	if err != nil {
		logRequest(r, "error", "Invalid registration form", zap.Error(err))
		h.render(w, r, http.StatusBadRequest, viewRegister, data)
		return
	}

	user := &models.User{Username: form.Username, Password: form.Password, Email: form.Email}
	err = h.store.CreateUser(r.Context(), user)
	var dup *database.UniqueViolationError
	if errors.As(err, &dup) {
		logRequest(r, "info", "Registration rejected", zap.String("field", dup.Field))
		data.Errors[dup.Field] = duplicateUserMessage(dup.Field)
		h.render(w, r, http.StatusOK, viewRegister, data)
		return
	}
	if err != nil {
		h.serverError(w, r, "Failed to create user", err)
		return
	}

	if err := h.sessions.Login(r.Context(), user, form.RememberMe); err != nil {
		h.serverError(w, r, "Failed to start session", err)
		return
	}

	logRequest(r, "info", "User registered", zap.Int64("user_id", user.ID))
	http.Redirect(w, r, "/index", http.StatusSeeOther)
}

func duplicateUserMessage(field string) string {
	switch field {
	case "username":
		return "This username is already taken."
	case "email":
		return "This email is already registered."
	}
	return "This value is already in use."
}

// Logout handles GET /logout
func (h *ForumHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		h.serverError(w, r, "Failed to end session", err)
		return
	}
	logRequest(r, "info", "Logged out")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
