// Package email sends transactional mail. Sends are fire-and-forget from the
// caller's perspective: a failed send never rolls back the triggering write.
package email

import "context"

type InvitationMessage struct {
	To            string
	HouseholdName string
	InviterName   string
	Message       string
}

type Mailer interface {
	SendInvitation(ctx context.Context, msg InvitationMessage) error
}

// NoopMailer is used when no provider API key is configured.
type NoopMailer struct{}

func (NoopMailer) SendInvitation(context.Context, InvitationMessage) error {
	return nil
}
