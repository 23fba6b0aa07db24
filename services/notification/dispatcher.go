package notification

import (
	"context"
	"fmt"
	"time"

	"brightwash/config"
	"brightwash/utils"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// dispatchTimeout bounds every outbound send. A hung provider call must not
// stall the sweep loop or a booking's side effects.
const dispatchTimeout = 10 * time.Second

// DefaultDispatcher sends SMS through Twilio and email through SMTP.
type DefaultDispatcher struct {
	twilioClient *twilio.RestClient
	fromNumber   string
	mailDialer   *gomail.Dialer
	mailFrom     string
}

// NewDefaultDispatcher builds a dispatcher from the loaded configuration.
func NewDefaultDispatcher(cfg config.Config) *DefaultDispatcher {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	client.SetTimeout(dispatchTimeout)
	return &DefaultDispatcher{
		twilioClient: client,
		fromNumber:   cfg.TwilioFromNumber,
		mailDialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		mailFrom:     cfg.SMTPFrom,
	}
}

// send runs fn and waits for it under the caller's context plus the dispatch
// timeout, whichever ends first. Neither provider client takes a context, so
// the wait is bounded here.
func send(ctx context.Context, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// SendSMS sends a text message and reports whether Twilio accepted it.
func (d *DefaultDispatcher) SendSMS(ctx context.Context, phone, body string) (bool, error) {
	if phone == "" {
		return false, fmt.Errorf("SendSMS: empty phone number")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(d.fromNumber)
	params.SetBody(body)

	var sid string
	err := send(ctx, func() error {
		resp, err := d.twilioClient.Api.CreateMessage(params)
		if err != nil {
			return err
		}
		if resp.Sid == nil {
			return fmt.Errorf("twilio returned no message sid")
		}
		sid = *resp.Sid
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("SendSMS: %w", err)
	}

	utils.GetLogger().Debug("sms dispatched",
		zap.String("to", phone), zap.String("sid", sid))
	return true, nil
}

// SendEmail sends a plain-text email and reports whether the SMTP server
// accepted it.
func (d *DefaultDispatcher) SendEmail(ctx context.Context, address, subject, body string) (bool, error) {
	if address == "" {
		return false, fmt.Errorf("SendEmail: empty address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", d.mailFrom)
	m.SetHeader("To", address)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := send(ctx, func() error { return d.mailDialer.DialAndSend(m) }); err != nil {
		return false, fmt.Errorf("SendEmail: %w", err)
	}

	utils.GetLogger().Debug("email dispatched", zap.String("to", address))
	return true, nil
}
