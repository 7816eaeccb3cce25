package outbox

import (
	"time"

	"github.com/google/uuid"
)

// Message is an email waiting for delivery while the SMTP relay is
// unreachable.
type Message struct {
	ID        string    `json:"id"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Retries   int       `json:"retries"`
	Timestamp time.Time `json:"timestamp"`

	bucketKey []byte
}

func (m *Message) normalize() {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
}
