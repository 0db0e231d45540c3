package document

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quotebot/internal/extractor"
	"quotebot/platform/logger"
)

type fakeConverter struct {
	html  []byte
	err   error
	calls int
}

func (f *fakeConverter) ConvertHTML(_ context.Context, indexHTML []byte) ([]byte, error) {
	f.calls++
	f.html = indexHTML
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.7 fake"), nil
}

func testRecord() extractor.OrderRecord {
	return extractor.OrderRecord{
		QuoteNumber:  "101",
		Date:         "August 29, 2026",
		CompanyName:  "Raj pvt ltd",
		CustomerName: "Raju",
		Product:      "3in pipe",
		Quantity:     "500",
		Rate:         "₹600.00",
		RateValue:    600,
		Units:        "Pcs",
		HSN:          "7304",
		Email:        "raju@example.com",
		Total:        "₹300,000.00",
	}
}

func newTestRenderer(t *testing.T, converter PDFConverter) *Renderer {
	t.Helper()
	r, err := NewRenderer(converter, t.TempDir(), "NIVEE METAL PRODUCTS PVT LTD", "Harsh Bhandari", logger.New("development"))
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	r.now = func() time.Time {
		return time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	}
	return r
}

func TestRenderWritesPDFToOutputDir(t *testing.T) {
	converter := &fakeConverter{}
	r := newTestRenderer(t, converter)

	path, err := r.Render(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if converter.calls != 1 {
		t.Fatalf("expected 1 conversion call, got %d", converter.calls)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read rendered file: %v", err)
	}
	if string(data) != "%PDF-1.7 fake" {
		t.Fatalf("rendered file has wrong contents: %q", data)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "Quotation_Raju_2026-08-29_") || !strings.HasSuffix(base, ".pdf") {
		t.Fatalf("unexpected filename: %q", base)
	}
}

func TestRenderTemplateCarriesAllFields(t *testing.T) {
	converter := &fakeConverter{}
	r := newTestRenderer(t, converter)

	if _, err := r.Render(context.Background(), testRecord()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := string(converter.html)
	for _, want := range []string{
		"NIVEE METAL PRODUCTS PVT LTD", "Harsh Bhandari",
		"Raju", "Raj pvt ltd", "3in pipe", "500", "Pcs", "7304",
		"₹600.00", "₹300,000.00", "August 29, 2026", "raju@example.com",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered HTML missing %q", want)
		}
	}
}

func TestRenderConversionFailure(t *testing.T) {
	r := newTestRenderer(t, &fakeConverter{err: errors.New("gotenberg down")})
	if _, err := r.Render(context.Background(), testRecord()); err == nil {
		t.Fatal("expected conversion error")
	}
}

func TestRenderWithoutConverter(t *testing.T) {
	r := newTestRenderer(t, nil)
	if _, err := r.Render(context.Background(), testRecord()); err == nil {
		t.Fatal("expected error when converter is not configured")
	}
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Raju", "Raju"},
		{"Raj Pvt Ltd", "Raj Pvt Ltd"},
		{"a/b\\c:d", "abcd"},
		{"name_with-dash", "name_with-dash"},
		{"trailing space ", "trailing space"},
		{"../../etc/passwd", "etcpasswd"},
	}
	for _, tc := range cases {
		if got := sanitizeName(tc.in); got != tc.want {
			t.Fatalf("sanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
