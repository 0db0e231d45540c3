// Package email sends the quotation email over SMTP with the rendered
// document attached.
package email

import (
	"context"
	"fmt"
	"net"
	"time"

	"quotebot/internal/extractor"
	"quotebot/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender delivers quotation emails via a direct SMTP connection using go-mail.
type SMTPSender struct {
	host          string
	port          int
	username      string
	password      string
	fromName      string
	fromEmail     string
	companyName   string
	signatoryName string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials and
// letterhead settings.
func NewSMTPSender(cfg config.SMTPConfig, quote config.QuoteConfig) *SMTPSender {
	return &SMTPSender{
		host:          cfg.GetSMTPHost(),
		port:          cfg.GetSMTPPort(),
		username:      cfg.GetSMTPUsername(),
		password:      cfg.GetSMTPPassword(),
		fromName:      cfg.GetEmailFromName(),
		fromEmail:     cfg.GetEmailFromAddress(),
		companyName:   quote.GetCompanyName(),
		signatoryName: quote.GetSignatoryName(),
	}
}

// SendQuotation emails the quotation to the customer with the rendered
// document attached from attachmentPath.
func (s *SMTPSender) SendQuotation(ctx context.Context, toEmail string, record extractor.OrderRecord, attachmentPath string) error {
	ref := record.QuoteNumber
	if ref == "" {
		ref = noQuoteNumberRef
	}

	content, err := renderEmailTemplate("quotation.html", quotationEmailData{
		CustomerName:  record.CustomerName,
		Product:       record.Product,
		Quantity:      record.Quantity,
		Rate:          record.Rate,
		Total:         record.Total,
		QuoteRef:      ref,
		CompanyName:   s.companyName,
		SignatoryName: s.signatoryName,
	})
	if err != nil {
		return err
	}

	subject := quotationSubject(s.companyName, record.QuoteNumber)
	return s.send(ctx, toEmail, subject, content, attachmentPath)
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent, attachmentPath string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	if attachmentPath != "" {
		msg.AttachFile(attachmentPath)
	}

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}
