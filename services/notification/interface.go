package notification

import "context"

// Dispatcher sends customer-facing messages. Both methods report whether the
// message was actually delivered; callers must not record success on an
// unconfirmed send.
type Dispatcher interface {
	SendSMS(ctx context.Context, phone, body string) (bool, error)
	SendEmail(ctx context.Context, address, subject, body string) (bool, error)
}
