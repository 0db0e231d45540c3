package webhook

import (
	"context"
	"fmt"
	"os"

	"quotebot/internal/extractor"
	"quotebot/platform/logger"
)

// Fixed-wording replies sent back to the WhatsApp sender. Internal failures
// never surface as HTTP errors; these messages are the only failure signal
// the end user gets.
const (
	replyExtractionFailed = "Sorry, I couldn't understand your request. Please check the details and try again."
	replyRenderFailed     = "Sorry, an internal error occurred while creating your document."
	replyEmailFailedFmt   = "Sorry, I created the quote but failed to send the email to %s."
	replySuccessFmt       = "Success! Your quotation for %s has been generated and sent to %s."
)

// Extractor turns a free-text command into a validated order record.
type Extractor interface {
	Extract(ctx context.Context, rawText string) (extractor.OrderRecord, error)
}

// DocumentRenderer renders an order record into a quotation document on local
// storage and returns its path.
type DocumentRenderer interface {
	Render(ctx context.Context, record extractor.OrderRecord) (string, error)
}

// MailSender emails the quotation document to the customer.
type MailSender interface {
	SendQuotation(ctx context.Context, toEmail string, record extractor.OrderRecord, attachmentPath string) error
}

// ReplySender posts a text reply to the WhatsApp sender. Send failures are
// logged by the caller and never escalated.
type ReplySender interface {
	SendReply(ctx context.Context, toPhoneNumber, message string) error
}

// Service drives one webhook delivery end to end: extract, render, email,
// reply. It holds no state across deliveries beyond its collaborators.
type Service struct {
	extractor Extractor
	renderer  DocumentRenderer
	mail      MailSender
	replies   ReplySender
	log       *logger.Logger
}

// NewService creates the dispatch service.
func NewService(ext Extractor, renderer DocumentRenderer, mail MailSender, replies ReplySender, log *logger.Logger) *Service {
	return &Service{
		extractor: ext,
		renderer:  renderer,
		mail:      mail,
		replies:   replies,
		log:       log,
	}
}

// ProcessCommand handles a text message from sender. Every failure is
// translated into a reply to the sender; the returned state machine always
// terminates and the HTTP layer acknowledges with 200 regardless.
func (s *Service) ProcessCommand(ctx context.Context, sender, text string) {
	log := s.log.WithContext(ctx)
	log.Info("processing command", "sender", sender)

	record, err := s.extractor.Extract(ctx, text)
	if err != nil {
		log.Warn("extraction failed", "error", err)
		s.reply(ctx, sender, replyExtractionFailed)
		return
	}

	docPath, err := s.renderer.Render(ctx, record)
	if err != nil {
		log.Error("document rendering failed", "error", err)
		s.reply(ctx, sender, replyRenderFailed)
		return
	}
	// The rendered file is transient: remove it on every exit path once the
	// email attempt is over, whether or not the send succeeded.
	defer s.cleanup(ctx, docPath)

	if err := s.mail.SendQuotation(ctx, record.Email, record, docPath); err != nil {
		log.Error("email send failed", "error", err, "recipient", record.Email)
		s.reply(ctx, sender, fmt.Sprintf(replyEmailFailedFmt, record.Email))
		return
	}

	log.Info("quotation sent", "recipient", record.Email, "product", record.Product)
	s.reply(ctx, sender, fmt.Sprintf(replySuccessFmt, record.Product, record.Email))
}

func (s *Service) reply(ctx context.Context, sender, message string) {
	if err := s.replies.SendReply(ctx, sender, message); err != nil {
		s.log.WithContext(ctx).Error("reply send failed", "error", err, "sender", sender)
	}
}

func (s *Service) cleanup(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil {
		s.log.WithContext(ctx).Warn("could not remove rendered document", "path", path, "error", err)
	}
}
