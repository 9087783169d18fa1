package intake

import (
	"fmt"
	"strings"
)

// intentRule pairs an intent with the keywords that select it. Rules are
// evaluated in order; the first keyword hit wins.
type intentRule struct {
	intent   Intent
	keywords []string
}

var intentRules = []intentRule{
	{IntentRFQ, []string{"rfq", "quote", "quantity"}},
	{IntentComplaint, []string{"complaint", "damaged", "defective", "issue"}},
	{IntentRegulation, []string{"regulation", "compliance", "policy"}},
	{IntentInvoice, []string{"invoice", "total due"}},
}

// invoiceDocType is the document-type code that marks a structured
// payload as an invoice regardless of keyword content.
const invoiceDocType = "INV"

// Classify assigns an intent to a document. For JSON documents the
// decoded payload is consulted first: a DocDtls.Typ equal to the invoice
// code short-circuits the keyword scan. Otherwise the lower-cased
// content is scanned against the rule table in priority order.
func Classify(content string, format Format, decoded any) (Intent, []string) {
	var trace []string

	if format == FormatJSON && decoded != nil {
		if v, ok := lookupPath(decoded, "DocDtls", "Typ"); ok {
			if s, ok := v.(string); ok && s == invoiceDocType {
				trace = append(trace, fmt.Sprintf("Router: document type %q, classified intent as %s", s, IntentInvoice))
				return IntentInvoice, trace
			}
		}
	}

	lower := strings.ToLower(content)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				trace = append(trace, fmt.Sprintf("Router: keyword %q, classified intent as %s", kw, rule.intent))
				return rule.intent, trace
			}
		}
	}

	trace = append(trace, fmt.Sprintf("Router: no rule matched, classified intent as %s", IntentOther))
	return IntentOther, trace
}
