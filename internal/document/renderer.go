package document

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quotebot/internal/extractor"
	"quotebot/platform/logger"

	"github.com/google/uuid"
)

//go:embed templates/*.html
var templateFS embed.FS

// PDFConverter is the narrow contract for the HTML→PDF collaborator.
type PDFConverter interface {
	ConvertHTML(ctx context.Context, indexHTML []byte) ([]byte, error)
}

// quotationData is the field mapping passed into the quotation template.
type quotationData struct {
	CompanyName   string
	SignatoryName string
	Record        extractor.OrderRecord
}

// Renderer renders order records into quotation PDFs on local storage.
type Renderer struct {
	converter     PDFConverter
	outputDir     string
	companyName   string
	signatoryName string
	tmpl          *template.Template
	log           *logger.Logger
	now           func() time.Time
}

// NewRenderer creates the document renderer. The converter may be nil when
// Gotenberg is not configured; Render then fails and the dispatcher degrades
// to an internal-error reply.
func NewRenderer(converter PDFConverter, outputDir, companyName, signatoryName string, log *logger.Logger) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse quotation template: %w", err)
	}

	return &Renderer{
		converter:     converter,
		outputDir:     outputDir,
		companyName:   companyName,
		signatoryName: signatoryName,
		tmpl:          tmpl,
		log:           log,
		now:           time.Now,
	}, nil
}

// Render produces the quotation PDF for the record and returns its local
// path. The file is the caller's to delete once it has been consumed.
func (r *Renderer) Render(ctx context.Context, record extractor.OrderRecord) (string, error) {
	if r.converter == nil {
		return "", fmt.Errorf("document conversion is not configured")
	}

	var html bytes.Buffer
	data := quotationData{
		CompanyName:   r.companyName,
		SignatoryName: r.signatoryName,
		Record:        record,
	}
	if err := r.tmpl.ExecuteTemplate(&html, "quotation.html", data); err != nil {
		return "", fmt.Errorf("render quotation template: %w", err)
	}

	pdf, err := r.converter.ConvertHTML(ctx, html.Bytes())
	if err != nil {
		return "", fmt.Errorf("convert quotation to pdf: %w", err)
	}

	outputPath := filepath.Join(r.outputDir, r.filename(record.CustomerName))
	if err := os.WriteFile(outputPath, pdf, 0o600); err != nil {
		return "", fmt.Errorf("write quotation pdf: %w", err)
	}

	r.log.WithContext(ctx).Info("quotation rendered", "path", outputPath, "customer", record.CustomerName)
	return outputPath, nil
}

// filename builds a unique, filesystem-safe name for the rendered document.
// The uuid suffix keeps concurrent deliveries for the same customer from
// overwriting each other.
func (r *Renderer) filename(customerName string) string {
	return fmt.Sprintf("Quotation_%s_%s_%s.pdf",
		sanitizeName(customerName),
		r.now().Format("2006-01-02"),
		uuid.NewString()[:8],
	)
}

// sanitizeName keeps alphanumerics, spaces, underscores, and hyphens, and
// strips trailing whitespace.
func sanitizeName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '_', r == '-':
			sb.WriteRune(r)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}
