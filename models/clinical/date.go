package clinical

import (
	"fmt"
	"strings"
	"time"
)

// NotAvailable is written for fields that could not be extracted.
const NotAvailable = "NA"

// ReportLayout is the date layout used in the hospital reports.
const ReportLayout = "02/01/2006"

// Date is a calendar date read from a report
type Date struct {
	time.Time
}

// ParseReportDate parses a dd/mm/yyyy date
func ParseReportDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(ReportLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid report date: %s", s)
	}
	return Date{Time: t}, nil
}

// MarshalCSV implements the gocsv.TypeMarshaller interface
func (d Date) MarshalCSV() (string, error) {
	return d.String(), nil
}

// String returns the date in YYYY-MM-DD format, or NA when unset
func (d Date) String() string {
	if d.Time.IsZero() {
		return NotAvailable
	}
	return d.Format("2006-01-02")
}
