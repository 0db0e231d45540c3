package extractor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"quotebot/platform/logger"
	"quotebot/platform/validator"
)

type stubModel struct {
	response string
	err      error
	calls    int
	prompt   string
}

func (m *stubModel) Complete(_ context.Context, prompt string) (string, error) {
	m.calls++
	m.prompt = prompt
	return m.response, m.err
}

func newTestService(model CompletionModel) *Service {
	svc := NewService(model, validator.New(), logger.New("development"))
	svc.now = func() time.Time {
		return time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

const fullResponse = `{"q_no":"101","date":"August 29, 2026","company_name":"Raj pvt ltd","customer_name":"Raju","product":"3in pipe","quantity":"500","rate":"600","units":"Pcs","hsn":"7304","email":"raju@example.com"}`

func TestExtractFullCommand(t *testing.T) {
	model := &stubModel{response: fullResponse}
	record, err := newTestService(model).Extract(context.Background(), "quote 101 for Raju at Raj pvt ltd, 500 pcs 3in pipe at 600, hsn 7304, email raju@example.com")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if model.calls != 1 {
		t.Fatalf("expected exactly one model call, got %d", model.calls)
	}
	if record.Quantity != "500" {
		t.Fatalf("expected quantity 500, got %q", record.Quantity)
	}
	if record.Rate != "₹600.00" {
		t.Fatalf("expected rate display ₹600.00, got %q", record.Rate)
	}
	if record.Total != "₹300,000.00" {
		t.Fatalf("expected total display ₹300,000.00, got %q", record.Total)
	}
	if record.RateValue != 600 {
		t.Fatalf("expected numeric rate 600, got %v", record.RateValue)
	}
	if record.Units != "Pcs" {
		t.Fatalf("expected units Pcs, got %q", record.Units)
	}
	if record.HSN != "7304" {
		t.Fatalf("expected hsn 7304, got %q", record.HSN)
	}
	if record.Email != "raju@example.com" {
		t.Fatalf("expected email raju@example.com, got %q", record.Email)
	}
}

func TestExtractPromptCarriesCommandAndDate(t *testing.T) {
	model := &stubModel{response: fullResponse}
	if _, err := newTestService(model).Extract(context.Background(), "quote for Raju"); err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if !strings.Contains(model.prompt, "quote for Raju") {
		t.Fatal("prompt does not contain the user command")
	}
	if !strings.Contains(model.prompt, "August 29, 2026") {
		t.Fatal("prompt does not contain the current date")
	}
}

func TestExtractMissingRequiredFields(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{"no product", `{"customer_name":"Raju","quantity":"500","rate":"600","email":"raju@example.com"}`},
		{"no customer", `{"product":"3in pipe","quantity":"500","rate":"600","email":"raju@example.com"}`},
		{"no email", `{"product":"3in pipe","customer_name":"Raju","quantity":"500","rate":"600"}`},
		{"no rate", `{"product":"3in pipe","customer_name":"Raju","quantity":"500","email":"raju@example.com"}`},
		{"no quantity", `{"product":"3in pipe","customer_name":"Raju","rate":"600","email":"raju@example.com"}`},
		{"empty product", `{"product":"","customer_name":"Raju","quantity":"500","rate":"600","email":"raju@example.com"}`},
		{"empty email", `{"product":"3in pipe","customer_name":"Raju","quantity":"500","rate":"600","email":""}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newTestService(&stubModel{response: tc.response}).Extract(context.Background(), "anything")
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("expected ErrMissingField, got %v", err)
			}
		})
	}
}

func TestExtractNonNumericRateAndQuantity(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{"rate text", `{"product":"pipe","customer_name":"Raju","quantity":"500","rate":"six hundred","email":"raju@example.com"}`},
		{"quantity text", `{"product":"pipe","customer_name":"Raju","quantity":"many","rate":"600","email":"raju@example.com"}`},
		{"quantity fractional", `{"product":"pipe","customer_name":"Raju","quantity":"500.5","rate":"600","email":"raju@example.com"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newTestService(&stubModel{response: tc.response}).Extract(context.Background(), "anything")
			if !errors.Is(err, ErrInvalidNumber) {
				t.Fatalf("expected ErrInvalidNumber, got %v", err)
			}
		})
	}
}

func TestExtractOptionalFieldDefaults(t *testing.T) {
	response := `{"product":"3in pipe","customer_name":"Raju","quantity":"500","rate":"600","email":"raju@example.com"}`
	record, err := newTestService(&stubModel{response: response}).Extract(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if record.Units != "Nos" {
		t.Fatalf("expected default units Nos, got %q", record.Units)
	}
	if record.Date != "August 29, 2026" {
		t.Fatalf("expected default date August 29, 2026, got %q", record.Date)
	}
	if record.QuoteNumber != "" || record.CompanyName != "" || record.HSN != "" {
		t.Fatalf("expected empty optional fields, got q_no=%q company=%q hsn=%q",
			record.QuoteNumber, record.CompanyName, record.HSN)
	}
}

func TestExtractEmptyUnitsFallsBackToDefault(t *testing.T) {
	response := `{"product":"pipe","customer_name":"Raju","quantity":"500","rate":"600","units":"","email":"raju@example.com"}`
	record, err := newTestService(&stubModel{response: response}).Extract(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if record.Units != "Nos" {
		t.Fatalf("expected default units Nos, got %q", record.Units)
	}
}

func TestExtractStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + fullResponse + "\n```"
	record, err := newTestService(&stubModel{response: fenced}).Extract(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if record.CustomerName != "Raju" {
		t.Fatalf("expected customer Raju, got %q", record.CustomerName)
	}
}

func TestExtractNumericJSONValuesAccepted(t *testing.T) {
	response := `{"product":"pipe","customer_name":"Raju","quantity":500,"rate":600,"email":"raju@example.com"}`
	record, err := newTestService(&stubModel{response: response}).Extract(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if record.Quantity != "500" || record.Rate != "₹600.00" {
		t.Fatalf("unexpected record from numeric payload: quantity=%q rate=%q", record.Quantity, record.Rate)
	}
}

func TestExtractNonJSONResponse(t *testing.T) {
	_, err := newTestService(&stubModel{response: "I could not find any order details, sorry!"}).Extract(context.Background(), "anything")
	if !errors.Is(err, ErrNotJSON) {
		t.Fatalf("expected ErrNotJSON, got %v", err)
	}
}

func TestExtractModelTransportFailure(t *testing.T) {
	_, err := newTestService(&stubModel{err: errors.New("connection refused")}).Extract(context.Background(), "anything")
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestExtractNilModel(t *testing.T) {
	_, err := newTestService(nil).Extract(context.Background(), "anything")
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}
