package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"brightwash/config"
)

func testDispatcher() *DefaultDispatcher {
	return NewDefaultDispatcher(config.Config{
		TwilioAccountSID: "AC00000000000000000000000000000000",
		TwilioAuthToken:  "token",
		TwilioFromNumber: "+15550009999",
		SMTPHost:         "smtp.invalid",
		SMTPPort:         587,
	})
}

func TestSendSMSRejectsEmptyPhone(t *testing.T) {
	if _, err := testDispatcher().SendSMS(context.Background(), "", "hi"); err == nil {
		t.Fatalf("empty phone must be rejected before dispatch")
	}
}

func TestSendEmailRejectsEmptyAddress(t *testing.T) {
	if _, err := testDispatcher().SendEmail(context.Background(), "", "subject", "body"); err == nil {
		t.Fatalf("empty address must be rejected before dispatch")
	}
}

func TestSendSMSHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	delivered, err := testDispatcher().SendSMS(ctx, "+15550001111", "hi")
	if delivered {
		t.Fatalf("cancelled dispatch reported delivered")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestSendEmailHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	delivered, err := testDispatcher().SendEmail(ctx, "dana@example.com", "subject", "body")
	if delivered {
		t.Fatalf("cancelled dispatch reported delivered")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestSendBoundsProviderCalls(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	hung := make(chan struct{})
	defer close(hung)

	start := time.Now()
	err := send(ctx, func() error {
		<-hung
		return nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("send blocked %v on a hung provider call", elapsed)
	}
}
