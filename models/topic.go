package models

// Topic is a named discussion thread
// Author holds the creating user's id; it is not a foreign key
type Topic struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Author      int64  `json:"author" db:"author"`
}

// AddTopicForm is the body of POST /add_topic
type AddTopicForm struct {
	Title   string `schema:"title" validate:"notblank,max=80"`
	Content string `schema:"content" validate:"notblank,max=2000"`
}
