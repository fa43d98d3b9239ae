package models

// Message is a single post inside a topic
type Message struct {
	ID     int64  `json:"id" db:"id"`
	Author int64  `json:"author" db:"author"`
	Topic  int64  `json:"topic" db:"topic"`
	Text   string `json:"text" db:"text"`
}

// AddMessageForm is the body of POST /topic/{topic_id}
type AddMessageForm struct {
	Text string `schema:"text" validate:"notblank,max=2000"`
}
