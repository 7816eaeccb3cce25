package usecase

import "context"

// MailSender abstracts outgoing mail so usecases stay transport-agnostic.
// Implementations may deliver immediately or queue for later delivery;
// a nil error only acknowledges acceptance.
type MailSender interface {
	SendMail(ctx context.Context, to, subject, body string) error
}
