package models

// User represents a registered forum member
// Password is stored and compared as plain text; see DESIGN.md before deploying anywhere real
type User struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"-" db:"password"`
	Email    string `json:"email" db:"email"`
}

// LoginForm is the body of POST /login
type LoginForm struct {
	Username   string `schema:"username" validate:"notblank,max=80"`
	Password   string `schema:"password" validate:"notblank,max=80"`
	RememberMe bool   `schema:"remember_me"`
}

// RegisterForm is the body of POST /register
// No password confirmation and no email format check, only presence
type RegisterForm struct {
	Username   string `schema:"username" validate:"notblank,max=80"`
	Password   string `schema:"password" validate:"notblank,max=80"`
	Email      string `schema:"email" validate:"notblank,max=80"`
	RememberMe bool   `schema:"remember_me"`
}
