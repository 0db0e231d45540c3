package extractor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Extraction failure classes. The dispatcher treats them all as one
// user-facing failure; the distinct sentinels exist so diagnostics can tell a
// transport problem from a bad model response from a business-rule rejection.
var (
	// ErrModelUnavailable means the completion call itself failed.
	ErrModelUnavailable = errors.New("completion model unavailable")
	// ErrNotJSON means the model response could not be parsed as JSON.
	ErrNotJSON = errors.New("model response is not valid JSON")
	// ErrMissingField means a required business field was absent or empty.
	ErrMissingField = errors.New("required field missing or empty")
	// ErrInvalidNumber means rate or quantity was present but not numeric.
	ErrInvalidNumber = errors.New("rate or quantity is not a valid number")
)

// OrderRecord is the validated, normalized order extracted from a free-text
// command. It is only ever constructed with all required fields present and
// rate/quantity parsed; partial records do not exist.
type OrderRecord struct {
	QuoteNumber  string
	Date         string
	CompanyName  string
	CustomerName string
	Product      string
	// Quantity is the canonical string form of the parsed integer.
	Quantity string
	// Rate is the currency-formatted display string, e.g. "₹600.00".
	Rate string
	// RateValue is the numeric rate the total was computed from.
	RateValue float64
	Units     string
	HSN       string
	Email     string
	// Total is rate × quantity, currency-formatted like Rate.
	Total string
}

// modelPayload is the raw field set the model is instructed to return.
// Presence validation runs on this struct before any numeric conversion.
type modelPayload struct {
	QuoteNumber  flexString `json:"q_no"`
	Date         flexString `json:"date"`
	CompanyName  flexString `json:"company_name"`
	CustomerName flexString `json:"customer_name" validate:"required"`
	Product      flexString `json:"product" validate:"required"`
	Quantity     flexString `json:"quantity" validate:"required"`
	Rate         flexString `json:"rate" validate:"required"`
	Units        flexString `json:"units"`
	HSN          flexString `json:"hsn"`
	Email        flexString `json:"email" validate:"required"`
}

// flexString tolerates the model returning a JSON number where a string was
// asked for, which happens often enough for quantity and rate.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
