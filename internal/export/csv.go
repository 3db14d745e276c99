// Package export projects order records into downloadable CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
)

var header = []string{"Order ID", "Customer", "PO Number", "Items", "Status", "Date"}

// Orders writes one row per order after a fixed header. Fields containing
// delimiters, quotes, or newlines are quoted per RFC 4180.
func Orders(w io.Writer, orders []domain.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, o := range orders {
		row := []string{
			o.ID,
			o.CustomerName,
			o.PONumber,
			strconv.Itoa(o.TotalItems),
			string(o.Status),
			o.CreatedAt.Format("2006-01-02"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write order %s: %w", o.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename names the export artifact for the given day.
func Filename(now time.Time) string {
	return "orders-" + now.Format("2006-01-02") + ".csv"
}
