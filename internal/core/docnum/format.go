// Package docnum renders final document numbers from configurable templates.
package docnum

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Default templates applied when no format is configured.
const (
	DefaultInvoiceTemplate   = "INV/{FY}/{SEQ:3}"
	DefaultQuotationTemplate = "QTN/{FY}/{SEQ:3}"
)

// defaultSeqWidth is the zero-padding width for a bare {SEQ} token.
const defaultSeqWidth = 3

// seqToken matches {SEQ} or {SEQ:N} where N is an explicit padding width.
var seqToken = regexp.MustCompile(`\{SEQ(?::(\d+))?\}`)

// Values holds the substitution inputs for a template.
type Values struct {
	// FiscalYear is the label produced by the fiscal package (e.g. "2425").
	FiscalYear string

	// Date supplies the {YYYY}, {MM} and {DD} placeholders.
	Date time.Time

	// Sequence is the allocated per-fiscal-year counter value.
	Sequence int64
}

// Render substitutes template placeholders and returns the final number.
//
// {FY}, {YYYY}, {MM} and {DD} are replaced literally ({MM}/{DD} zero-padded
// to two digits). The first {SEQ} or {SEQ:N} token is replaced with the
// sequence zero-padded to N digits (default 3). Templates without any SEQ
// token get "-<sequence>" appended so rendered numbers are never silently
// non-unique.
func Render(template string, v Values) string {
	out := strings.ReplaceAll(template, "{FY}", v.FiscalYear)
	if !v.Date.IsZero() {
		out = strings.ReplaceAll(out, "{YYYY}", strconv.Itoa(v.Date.Year()))
		out = strings.ReplaceAll(out, "{MM}", fmt.Sprintf("%02d", int(v.Date.Month())))
		out = strings.ReplaceAll(out, "{DD}", fmt.Sprintf("%02d", v.Date.Day()))
	}

	m := seqToken.FindStringSubmatchIndex(out)
	if m == nil {
		return fmt.Sprintf("%s-%d", out, v.Sequence)
	}

	width := defaultSeqWidth
	if m[2] >= 0 {
		if w, err := strconv.Atoi(out[m[2]:m[3]]); err == nil && w > 0 {
			width = w
		}
	}

	return out[:m[0]] + fmt.Sprintf("%0*d", width, v.Sequence) + out[m[1]:]
}
