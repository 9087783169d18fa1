package intake

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	quantityRe = regexp.MustCompile(`(?i)(\d+)\s*units?\b`)
	productRe  = regexp.MustCompile(`(?i)product\s+(\w+)`)
	ofPhraseRe = regexp.MustCompile(`(?i)units?\s+of\s+([^\n,.;]+)`)

	invoiceNumRe    = regexp.MustCompile(`(?i)invoice\s*(?:number|no\.?)?\s*[#:]?\s*([A-Za-z0-9/-]*\d[A-Za-z0-9/-]*)`)
	invoiceNumAltRe = regexp.MustCompile(`(?i)\bno[.:'"#\s]+([A-Za-z0-9/-]*\d[A-Za-z0-9/-]*)`)
	isoDateRe       = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	slashDateRe     = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
	totalRe         = regexp.MustCompile(`(?i)total(?:\s+due)?\s*:?\s*[$€£₹]?\s*(\d+(?:,\d{3})*(?:\.\d+)?)`)
	currencyCodeRe  = regexp.MustCompile(`\b(USD|EUR|GBP|INR|JPY|CNY|AUD|CAD)\b`)

	orderIDRe   = regexp.MustCompile(`(?i)order\s*#?\s*(\d+)`)
	hashIDRe    = regexp.MustCompile(`#(\d+)`)
	emailAddrRe = regexp.MustCompile(`[\w.+-]+@[\w-]+(?:\.[\w-]+)+`)
	phoneRe     = regexp.MustCompile(`\+?\d{1,3}[-.\s]?(?:\d{10}|\d{3}[-.\s]\d{3}[-.\s]\d{4})`)
	nameLineRe  = regexp.MustCompile(`(?m)^[ \t]*([A-Za-z][A-Za-z ]+[A-Za-z])[ \t]*$`)
)

var currencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"₹": "INR",
}

const summaryMaxLen = 200

// ExtractFromText pulls intent-specific fields out of raw text using the
// pattern tables above. Fields that do not match receive the NotAvailable
// sentinel; that is noted in the trace, never treated as an error.
func ExtractFromText(text string, intent Intent) (map[string]any, []string) {
	if strings.TrimSpace(text) == "" {
		return map[string]any{}, []string{"TextExtractor: empty text, nothing to extract"}
	}

	fields := map[string]any{
		"urgency": urgencyOf(text),
	}
	var missing []string

	switch intent {
	case IntentRFQ:
		if m := quantityRe.FindStringSubmatch(text); m != nil {
			if qty, err := strconv.Atoi(m[1]); err == nil {
				fields["quantity"] = qty
			}
		}
		if _, ok := fields["quantity"]; !ok {
			fields["quantity"] = NotAvailable
			missing = append(missing, "quantity")
		}
		fields["product"] = NotAvailable
		if m := productRe.FindStringSubmatch(text); m != nil {
			fields["product"] = m[1]
		} else if m := ofPhraseRe.FindStringSubmatch(text); m != nil {
			fields["product"] = strings.TrimSpace(m[1])
		} else {
			missing = append(missing, "product")
		}

	case IntentInvoice:
		fields["invoice_number"] = NotAvailable
		if m := invoiceNumRe.FindStringSubmatch(text); m != nil {
			fields["invoice_number"] = m[1]
		} else if m := invoiceNumAltRe.FindStringSubmatch(text); m != nil {
			fields["invoice_number"] = m[1]
		} else {
			missing = append(missing, "invoice_number")
		}
		fields["date"] = NotAvailable
		if m := isoDateRe.FindString(text); m != "" {
			fields["date"] = m
		} else if m := slashDateRe.FindString(text); m != "" {
			fields["date"] = m
		} else {
			missing = append(missing, "date")
		}
		fields["total"] = NotAvailable
		if m := totalRe.FindStringSubmatch(text); m != nil {
			if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
				fields["total"] = v
			}
		}
		if fields["total"] == NotAvailable {
			missing = append(missing, "total")
		}
		fields["currency"] = extractCurrency(text)
		if fields["currency"] == NotAvailable {
			missing = append(missing, "currency")
		}

	case IntentComplaint:
		fields["order_id"] = NotAvailable
		fields["issue_description"] = NotAvailable
		loc := orderIDRe.FindStringSubmatchIndex(text)
		if loc == nil {
			loc = hashIDRe.FindStringSubmatchIndex(text)
		}
		if loc != nil {
			fields["order_id"] = text[loc[2]:loc[3]]
			if desc := trailingClause(text[loc[1]:]); desc != "" {
				fields["issue_description"] = desc
			} else {
				missing = append(missing, "issue_description")
			}
		} else {
			missing = append(missing, "order_id", "issue_description")
		}

	default:
		fields["name"] = NotAvailable
		if m := nameLineRe.FindStringSubmatch(text); m != nil {
			fields["name"] = strings.TrimSpace(m[1])
		} else {
			missing = append(missing, "name")
		}
		fields["email"] = NotAvailable
		if m := emailAddrRe.FindString(text); m != "" {
			fields["email"] = m
		} else {
			missing = append(missing, "email")
		}
		fields["phone"] = NotAvailable
		if m := phoneRe.FindString(text); m != "" {
			fields["phone"] = m
		} else {
			missing = append(missing, "phone")
		}
		fields["summary"] = summarize(text)
	}

	trace := []string{fmt.Sprintf("TextExtractor: extracted fields for %s", intent)}
	if len(missing) > 0 {
		trace = append(trace, fmt.Sprintf("TextExtractor: no match for %s", strings.Join(missing, ", ")))
	}
	return fields, trace
}

func urgencyOf(text string) string {
	if strings.Contains(strings.ToLower(text), "urgent") {
		return "high"
	}
	return "normal"
}

func extractCurrency(text string) string {
	if m := currencyCodeRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	for sym, code := range currencySymbols {
		if strings.Contains(text, sym) {
			return code
		}
	}
	return NotAvailable
}

// trailingClause returns the clause following an order-id mention,
// bounded at the first line break and stripped of list punctuation.
func trailingClause(tail string) string {
	if i := strings.IndexAny(tail, "\r\n"); i >= 0 {
		tail = tail[:i]
	}
	tail = strings.Trim(tail, " \t-,;:")
	return strings.TrimSuffix(tail, ".")
}

// summarize keeps the first sentence, falling back to a bounded prefix
// of the whitespace-collapsed text. Truncation never splits a rune.
func summarize(text string) string {
	s := CollapseWhitespace(text)
	if i := strings.Index(s, ". "); i >= 0 && i+1 <= summaryMaxLen {
		return s[:i+1]
	}
	if len(s) > summaryMaxLen {
		cut := summaryMaxLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut]
	}
	return s
}
