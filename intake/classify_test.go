package intake

import (
	"encoding/json"
	"testing"
)

func TestClassify_KeywordPriority(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    Intent
	}{
		{"rfq", "Please send a quote for 10 units", IntentRFQ},
		{"rfq wins over complaint", "RFQ regarding the damaged batch", IntentRFQ},
		{"complaint", "This is a complaint about my delivery", IntentComplaint},
		{"complaint wins over regulation", "Issue with the new compliance forms", IntentComplaint},
		{"regulation", "New regulation effective June", IntentRegulation},
		{"regulation via policy", "Updated travel policy attached", IntentRegulation},
		{"invoice", "Invoice attached, total due $400", IntentInvoice},
		{"other", "Hello, just checking in", IntentOther},
		{"case insensitive", "URGENT RFQ NOW", IntentRFQ},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, trace := Classify(tc.content, FormatEmail, nil)
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
			if len(trace) == 0 {
				t.Fatalf("expected a trace entry")
			}
		})
	}
}

func TestClassify_JSONInvoiceCodeOverridesKeywords(t *testing.T) {
	raw := `{"DocDtls":{"Typ":"INV","No":"X1"},"Note":"please quote us a complaint"}`
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatal(err)
	}
	got, _ := Classify(raw, FormatJSON, decoded)
	if got != IntentInvoice {
		t.Fatalf("expected Invoice for DocDtls.Typ=INV, got %s", got)
	}
}

func TestClassify_JSONWithoutInvoiceCodeFallsBackToKeywords(t *testing.T) {
	raw := `{"DocDtls":{"Typ":"CRN"},"Note":"regulation update"}`
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatal(err)
	}
	got, _ := Classify(raw, FormatJSON, decoded)
	if got != IntentRegulation {
		t.Fatalf("expected Regulation, got %s", got)
	}
}

func TestClassify_NoMatchIsOther(t *testing.T) {
	got, trace := Classify("", FormatEmail, nil)
	if got != IntentOther {
		t.Fatalf("expected Other for empty content, got %s", got)
	}
	if len(trace) != 1 {
		t.Fatalf("expected single trace entry, got %d", len(trace))
	}
}
