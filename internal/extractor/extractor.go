// Package extractor turns a free-text quotation command into a validated
// OrderRecord via a single completion-model call. It owns all business-rule
// validation: an OrderRecord never exists with a missing required field or a
// non-numeric rate/quantity.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"quotebot/platform/logger"
	"quotebot/platform/validator"
)

// CompletionModel is the narrow contract for the language-model collaborator.
// One prompt in, raw text out. No retries happen behind it; a transport error
// is a single-shot extraction failure.
type CompletionModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service extracts order records from raw commands.
type Service struct {
	model CompletionModel
	val   *validator.Validator
	log   *logger.Logger
	now   func() time.Time
}

// NewService creates the extraction service. A nil model leaves the service
// constructed but every Extract call fails with ErrModelUnavailable, so a
// misconfigured deployment degrades to user-visible failure replies instead
// of crashing.
func NewService(model CompletionModel, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{
		model: model,
		val:   val,
		log:   log,
		now:   time.Now,
	}
}

// Extract sends the command to the completion model and converts the response
// into a validated OrderRecord. Every failure is an ordinary error result the
// caller reports to the end user; nothing here is fatal.
func (s *Service) Extract(ctx context.Context, rawText string) (OrderRecord, error) {
	log := s.log.WithContext(ctx)

	if s.model == nil {
		err := fmt.Errorf("%w: no completion model configured", ErrModelUnavailable)
		log.ExtractionFailure("model_unconfigured", err)
		return OrderRecord{}, err
	}

	today := s.now().Format(dateLayout)

	raw, err := s.model.Complete(ctx, buildPrompt(rawText, today))
	if err != nil {
		log.ExtractionFailure("model_call", err)
		return OrderRecord{}, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	cleaned := stripCodeFences(raw)
	log.Debug("model response received", "response", cleaned)

	var payload modelPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		log.ExtractionFailure("parse_json", err)
		return OrderRecord{}, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}

	// Presence before conversion: a missing field and an unparsable field must
	// be distinguishable in the logs even though the user sees one outcome.
	if err := s.val.Struct(payload); err != nil {
		log.ExtractionFailure("missing_field", err)
		return OrderRecord{}, fmt.Errorf("%w: %v", ErrMissingField, err)
	}

	rateValue, err := strconv.ParseFloat(strings.TrimSpace(string(payload.Rate)), 64)
	if err != nil {
		log.ExtractionFailure("invalid_rate", err)
		return OrderRecord{}, fmt.Errorf("%w: rate %q", ErrInvalidNumber, payload.Rate)
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(string(payload.Quantity)))
	if err != nil {
		log.ExtractionFailure("invalid_quantity", err)
		return OrderRecord{}, fmt.Errorf("%w: quantity %q", ErrInvalidNumber, payload.Quantity)
	}

	// The total comes from the numeric rate; formatting overwrites the raw
	// field afterwards.
	total := rateValue * float64(quantity)

	record := OrderRecord{
		QuoteNumber:  string(payload.QuoteNumber),
		Date:         string(payload.Date),
		CompanyName:  string(payload.CompanyName),
		CustomerName: string(payload.CustomerName),
		Product:      string(payload.Product),
		Quantity:     strconv.Itoa(quantity),
		Rate:         formatINR(rateValue),
		RateValue:    rateValue,
		Units:        string(payload.Units),
		HSN:          string(payload.HSN),
		Email:        string(payload.Email),
		Total:        formatINR(total),
	}

	if record.Date == "" {
		record.Date = today
	}
	if record.Units == "" {
		record.Units = "Nos"
	}

	log.Info("order extracted",
		"customer", record.CustomerName,
		"product", record.Product,
		"quantity", record.Quantity,
		"total", record.Total,
	)

	return record, nil
}

// stripCodeFences removes markdown code-fence wrapping the model sometimes
// adds despite being told not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
