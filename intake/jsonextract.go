package intake

import (
	"fmt"
	"strings"
)

// lookupPath walks nested map keys and returns the value at the path
// with a found flag. It never panics on shape mismatches.
func lookupPath(v any, path ...string) (any, bool) {
	cur := v
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// firstItem returns the first element of the array at key, if any.
func firstItem(v any, key string) (any, bool) {
	arr, ok := lookupPath(v, key)
	if !ok {
		return nil, false
	}
	items, ok := arr.([]any)
	if !ok || len(items) == 0 {
		return nil, false
	}
	return items[0], true
}

// scalarAt resolves a path to a scalar value. A present but non-scalar
// value counts as malformed, not found.
func scalarAt(v any, path ...string) (any, bool, bool) {
	val, found := lookupPath(v, path...)
	if !found {
		return nil, false, false
	}
	switch val.(type) {
	case string, float64, bool, nil:
		return val, true, true
	default:
		return nil, true, false
	}
}

// ExtractFromJSON walks the fixed document schema (DocDtls, ValDtls,
// ItemList) and pulls intent-specific fields. Missing or malformed keys
// degrade to the NotAvailable sentinel plus an anomaly entry; extraction
// never fails a parsed document outright.
func ExtractFromJSON(doc any, intent Intent) (map[string]any, []string, []string) {
	fields := map[string]any{}
	var anomalies []string

	take := func(name string, path ...string) {
		val, found, scalar := scalarAt(doc, path...)
		switch {
		case !found:
			fields[name] = NotAvailable
			anomalies = append(anomalies, "missing "+strings.Join(path, "."))
		case !scalar:
			fields[name] = NotAvailable
			anomalies = append(anomalies, "malformed "+strings.Join(path, "."))
		default:
			fields[name] = val
		}
	}

	switch intent {
	case IntentInvoice:
		take("invoice_number", "DocDtls", "No")
		take("date", "DocDtls", "Dt")
		take("total", "ValDtls", "TotInvVal")
		// CGST is only levied on INR invoices; its presence fixes the currency.
		if _, ok := lookupPath(doc, "ValDtls", "CgstVal"); ok {
			fields["currency"] = "INR"
		} else {
			fields["currency"] = NotAvailable
			anomalies = append(anomalies, "missing currency (ValDtls.CgstVal)")
		}

	case IntentRFQ:
		item, ok := firstItem(doc, "ItemList")
		if ok {
			takeItem := func(name, key string) {
				if v, found := lookupPath(item, key); found {
					fields[name] = v
					return
				}
				fields[name] = NotAvailable
				anomalies = append(anomalies, "missing ItemList[0]."+key)
			}
			takeItem("product", "PrdDesc")
			takeItem("quantity", "Qty")
		} else {
			fields["product"] = NotAvailable
			fields["quantity"] = NotAvailable
			anomalies = append(anomalies, "missing ItemList")
		}
		take("delivery_date", "DocDtls", "Dt")

	case IntentComplaint:
		take("order_id", "DocDtls", "No")
		if item, ok := firstItem(doc, "ItemList"); ok {
			if v, found := lookupPath(item, "PrdDesc"); found {
				fields["issue_description"] = v
			} else {
				fields["issue_description"] = NotAvailable
				anomalies = append(anomalies, "missing ItemList[0].PrdDesc")
			}
		} else {
			fields["issue_description"] = NotAvailable
			anomalies = append(anomalies, "missing ItemList")
		}

	default:
		// No schema for this intent; keep the flattened payload.
		for k, v := range FlattenJSON(doc) {
			fields[k] = v
		}
	}

	trace := []string{fmt.Sprintf("JSONExtractor: extracted %d fields for %s", len(fields), intent)}
	if len(anomalies) > 0 {
		trace = append(trace, fmt.Sprintf("JSONExtractor: %d anomalies: %s", len(anomalies), strings.Join(anomalies, "; ")))
	}
	return fields, anomalies, trace
}
