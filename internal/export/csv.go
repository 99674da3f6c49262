// Package export serializes order history rows to CSV. The output format
// is fixed by the storefront's import tooling: ten named columns, LF line
// endings, fields quoted only when they contain a comma, a double quote or
// a newline. encoding/csv is close but writes CRLF and has its own quoting
// triggers, so the framing is done by hand against that contract.
package export

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/DanielPopoola/ficmart-checkout-service/internal/domain"
)

// Header is the fixed column set, matching the user_order_details view.
var Header = []string{
	"order_id",
	"order_created_at",
	"order_status",
	"order_total_price",
	"item_id",
	"item_quantity",
	"item_total_price",
	"product_id",
	"product_name",
	"product_unit_price",
}

// Escape quotes a field value when it contains a comma, a double quote or
// a line feed, doubling any embedded double quotes. Everything else passes
// through unchanged.
func Escape(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// Marshal renders the rows as a complete CSV document: one header line
// plus one line per row. The result is fully buffered; row counts are
// bounded by a single user's order history.
func Marshal(rows []domain.OrderDetailRow) []byte {
	var buf bytes.Buffer
	writeLine(&buf, Header)

	for _, row := range rows {
		writeLine(&buf, []string{
			Escape(row.OrderID),
			Escape(row.OrderCreatedAt),
			Escape(row.OrderStatus),
			Escape(strconv.FormatInt(row.OrderTotalPrice, 10)),
			Escape(stringField(row.ItemID)),
			Escape(intField(row.ItemQuantity)),
			Escape(intField(row.ItemTotalPrice)),
			Escape(stringField(row.ProductID)),
			Escape(stringField(row.ProductName)),
			Escape(floatField(row.ProductPrice)),
		})
	}

	return buf.Bytes()
}

func writeLine(buf *bytes.Buffer, fields []string) {
	buf.WriteString(strings.Join(fields, ","))
	buf.WriteByte('\n')
}

// Absent values serialize to the empty string, present ones to their
// natural form with no locale formatting.

func stringField(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intField(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func floatField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
