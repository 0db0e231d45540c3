package email

import "fmt"

const subjectQuotationFmt = "Quotation from %s (Ref: %s)"

const noQuoteNumberRef = "N/A"

// quotationSubject builds the quotation email subject. An absent quote number
// is shown as "N/A" rather than an empty reference.
func quotationSubject(companyName, quoteNumber string) string {
	if quoteNumber == "" {
		quoteNumber = noQuoteNumberRef
	}
	return fmt.Sprintf(subjectQuotationFmt, companyName, quoteNumber)
}
