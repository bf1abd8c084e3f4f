package domain

import "time"

// Record is a document kept in a store.
type Record struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Document  Document  `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TitleOf returns the plain text of the first heading of doc, or "".
func TitleOf(doc Document) string {
	var title string
	Walk(doc, func(n Node, _ int) bool {
		if title != "" {
			return false
		}
		if h, ok := n.(Heading); ok {
			title = PlainText(h.Children...)
			return false
		}
		return true
	})
	return title
}
