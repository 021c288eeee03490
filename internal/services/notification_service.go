package services

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/lawrenceChege/order-management/internal/utils"
)

// OrderNotifier delivers customer-facing order notifications. Delivery is
// best effort: a failed notification never fails the order operation.
type OrderNotifier interface {
	SendOrderSMS(ctx context.Context, phoneNumber, message string) error
	SendOrderReceipt(ctx context.Context, email, subject, body string) error
}

type notificationService struct {
	twilioClient *twilio.RestClient
	smsFrom      string
	sendgridKey  string
	emailFrom    string
	emailName    string
}

// NewNotificationService wires Twilio for SMS and SendGrid for email.
func NewNotificationService(twilioSID, twilioToken, smsFrom, sendgridKey, emailFrom, emailName string) OrderNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: twilioSID,
		Password: twilioToken,
	})
	return &notificationService{
		twilioClient: client,
		smsFrom:      smsFrom,
		sendgridKey:  sendgridKey,
		emailFrom:    emailFrom,
		emailName:    emailName,
	}
}

func (n *notificationService) SendOrderSMS(_ context.Context, phoneNumber, message string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo("+" + phoneNumber)
	params.SetFrom(n.smsFrom)
	params.SetBody(message)

	if _, err := n.twilioClient.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	return nil
}

func (n *notificationService) SendOrderReceipt(_ context.Context, email, subject, body string) error {
	from := mail.NewEmail(n.emailName, n.emailFrom)
	to := mail.NewEmail("", email)
	msg := mail.NewSingleEmail(from, subject, to, body, body)

	resp, err := sendgrid.NewSendClient(n.sendgridKey).Send(msg)
	if err != nil {
		return fmt.Errorf("send receipt: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("send receipt: sendgrid status %d", resp.StatusCode)
	}
	return nil
}

// NoopNotifier is used when notification credentials are not configured.
type NoopNotifier struct{}

func (NoopNotifier) SendOrderSMS(_ context.Context, phoneNumber, _ string) error {
	utils.Logger.Debugf("sms notification skipped for %s: notifications disabled", phoneNumber)
	return nil
}

func (NoopNotifier) SendOrderReceipt(_ context.Context, email, _, _ string) error {
	utils.Logger.Debugf("email receipt skipped for %s: notifications disabled", email)
	return nil
}
