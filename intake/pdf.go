package intake

import (
	"io"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// extractPDFText pulls plain text out of a PDF by walking each page's
// content stream and collecting the strings shown by the text operators.
// Layout is not preserved; the result is only used for keyword
// classification and regex extraction.
func extractPDFText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil || len(data) == 0 {
			continue
		}
		page := textFromContentStream(data)
		if page == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(page)
	}
	return sb.String(), nil
}

// textFromContentStream tokenizes a page content stream and emits the
// literals consumed by the show operators (Tj, TJ, ' and "). Operators
// are recognized as tokens, not line suffixes, so streams written on a
// single line decode the same as pretty-printed ones. Positioning
// operators (Td, TD, T*) separate logical lines.
func textFromContentStream(data []byte) string {
	var sb strings.Builder
	var pending []string

	flush := func() {
		for _, s := range pending {
			sb.WriteString(s)
		}
		pending = pending[:0]
	}

	i := 0
	for i < len(data) {
		c := data[i]
		switch {
		case c == '(':
			lit, next := parsePDFLiteral(data, i)
			pending = append(pending, lit)
			i = next
		case c == '<':
			// Hex strings and inline dictionaries carry no text we show.
			i++
			for i < len(data) && data[i] != '>' {
				i++
			}
			i++
		case c == '%':
			for i < len(data) && data[i] != '\n' {
				i++
			}
		case isPDFDelim(c):
			i++
		default:
			start := i
			for i < len(data) && !isPDFDelim(data[i]) {
				i++
			}
			switch string(data[start:i]) {
			case "Tj", "TJ", "'", `"`:
				flush()
			case "Td", "TD", "T*":
				if sb.Len() > 0 {
					sb.WriteByte('\n')
				}
				pending = pending[:0]
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// parsePDFLiteral consumes a balanced ( ... ) string literal starting at
// data[start] and returns its decoded text plus the index just past the
// closing paren. Escaped and nested parens stay inside the literal.
func parsePDFLiteral(data []byte, start int) (string, int) {
	var raw []byte
	depth := 0
	i := start
	for ; i < len(data); i++ {
		c := data[i]
		if c == '\\' && i+1 < len(data) {
			if depth > 0 {
				raw = append(raw, c, data[i+1])
			}
			i++
			continue
		}
		switch c {
		case '(':
			if depth > 0 {
				raw = append(raw, c)
			}
			depth++
		case ')':
			depth--
			if depth == 0 {
				return decodePDFLiteral(raw), i + 1
			}
			raw = append(raw, c)
		default:
			if depth > 0 {
				raw = append(raw, c)
			}
		}
	}
	return decodePDFLiteral(raw), i
}

// isPDFDelim reports whether c ends a regular token: PDF whitespace or
// one of the delimiter characters ( ) < > [ ] { } / %.
func isPDFDelim(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// decodePDFLiteral resolves the basic escape sequences allowed inside a
// PDF string literal, including octal byte escapes.
func decodePDFLiteral(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}
