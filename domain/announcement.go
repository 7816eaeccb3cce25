package domain

import "time"

// AnnouncementTTL is how long a broadcast stays visible on the homepage.
const AnnouncementTTL = 24 * time.Hour

// Announcement is the single admin broadcast shown to all visitors.
// Posting a new one replaces whatever was active before.
type Announcement struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Announcement) IsExpired(reference time.Time) bool {
	if a == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return reference.Sub(a.CreatedAt) > AnnouncementTTL
}
