package extractor

import "fmt"

// dateLayout renders dates as "Month DD, YYYY", the form the quotation
// template and the model prompt both use.
const dateLayout = "January 02, 2006"

const promptTemplate = `You are an assistant for a stainless steel trader. Your job is to extract
quotation details from a user's command.

The current date is: %[1]s

Extract the following fields:
- q_no: The quotation number.
- date: The date for the quote. If not mentioned, use today's date.
- company_name: The customer's company name (e.g., "Raj Pvt Ltd").
- customer_name: The contact person's name (e.g., "Raju").
- product: The full product description (e.g., "3 inch SS Pipe Sch 40").
- quantity: The numerical quantity of items (e.g., "500"). Extract only the number.
- rate: The price per item (e.g., "600").
- units: The unit of measurement (e.g., "Pcs", "Nos", "Kgs"). Default to "Nos" if not specified.
- hsn: The HSN code (e.g., "7304").
- email: The customer's email address.

Return the result ONLY as a single, minified JSON string. Do not add any
other text, greetings, code blocks (like ` + "```json" + `), or explanations.

Example:
User: "quote 101 for Raju at Raj pvt ltd, 500 pcs 3in pipe at 600, hsn 7304, email raju@gmail.com"
AI: {"q_no":"101","date":"%[1]s","company_name":"Raj pvt ltd","customer_name":"Raju","product":"3in pipe","quantity":"500","rate":"600","units":"Pcs","hsn":"7304","email":"raju@gmail.com"}

User: %[2]s`

// buildPrompt assembles the fixed instruction prompt around the user command.
func buildPrompt(command, today string) string {
	return fmt.Sprintf(promptTemplate, today, command)
}
