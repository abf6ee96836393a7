package services

import (
	"context"
	"fmt"
	"html"
	"maroon_shop/structs"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

// mailer is the part of the resend client the service uses.
type mailer interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client mailer
}

// NewEmailService returns a service that only sends when an API key is configured.
func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	es := &EmailService{
		logger: logger,
		cfg:    cfg,
	}
	if cfg.Email.ApiKey != "" {
		es.client = resend.NewClient(cfg.Email.ApiKey).Emails
	}
	return es
}

func (es *EmailService) Enabled() bool {
	return es.client != nil
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	if !es.Enabled() {
		es.logger.Debug("Email disabled, not sending", gecho.Field("to", to), gecho.Field("subject", subject))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	if _, err := es.client.Send(params); err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// OrderPlaced sends the order confirmation to the customer.
func (es *EmailService) OrderPlaced(_ context.Context, placed *PlacedOrder) error {
	if placed.Customer == nil || placed.Customer.EmailAddress == "" {
		return nil
	}

	subject := fmt.Sprintf("Your %s order #%d", es.cfg.Server.AppName, placed.Order.OrderID)
	return es.SendEmail([]string{placed.Customer.EmailAddress}, subject, orderConfirmationBody(es.cfg.Server.AppName, placed))
}

func orderConfirmationBody(appName string, placed *PlacedOrder) string {
	var items strings.Builder
	for _, item := range placed.Items {
		name := fmt.Sprintf("Product %d", item.ProductID)
		if item.Product != nil {
			name = item.Product.Name
		}
		fmt.Fprintf(&items, "<li>%dx %s - &pound;%s</li>", item.Quantity, html.EscapeString(name), item.TotalPrice.StringFixed(2))
	}

	shipping := ""
	if a := placed.Shipping; a != nil {
		parts := []string{a.NameOfRecipient, a.Line1, a.Line2, a.Town, a.County, a.PostCode, a.Country}
		lines := make([]string, 0, len(parts))
		for _, p := range parts {
			if p != "" {
				lines = append(lines, html.EscapeString(p))
			}
		}
		shipping = strings.Join(lines, "<br>")
	}

	return fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #800000; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				ul { list-style-type: none; padding: 0; }
				li { padding: 5px 0; border-bottom: 1px solid #eee; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Thank you for your order!</h1>
				</div>
				<div class="content">
					<p>Dear %s,</p>
					<p>Order <strong>#%d</strong> has been received.</p>
					<ul>%s</ul>
					<p><strong>Total: &pound;%s</strong></p>
					<h4>Delivery Address:</h4>
					<p>%s</p>
				</div>
				<p>%s</p>
			</div>
		</body>
		</html>
	`, html.EscapeString(placed.Customer.FullName()), placed.Order.OrderID, items.String(),
		placed.Order.TotalPrice.StringFixed(2), shipping, html.EscapeString(appName))
}
