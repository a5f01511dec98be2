package domain

import "context"

// CaptureResult is the only thing the core consumes from the payment
// provider: outcome plus the external transaction id.
type CaptureResult struct {
	Success       bool
	ExternalTxnID string
	FailureReason string
}

// CaptureProvider is the card/PayPal gateway. Calls must carry a bounded
// timeout; on error no balance mutation happens.
type CaptureProvider interface {
	Capture(ctx context.Context, paymentID string, amount Money, token string) (*CaptureResult, error)
}

// MailSender is fire-and-forget. Failures are logged and swallowed.
type MailSender interface {
	Send(subject, body, recipient string) error
}
