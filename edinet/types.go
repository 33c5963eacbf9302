package edinet

import (
	"fmt"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// jst is the zone EDINET timestamps are written in
var jst = time.FixedZone("JST", 9*60*60)

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Value: s, Reason: "expected YYYY-MM-DD"}
	}
	return t, nil
}

// FormatDate renders the calendar date of t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ListResponse is the body of documents.json. Results is nil unless the
// request used ModeWithDocuments.
type ListResponse struct {
	Metadata Metadata   `json:"metadata"`
	Results  []Document `json:"results,omitempty"`
}

// HasResults reports whether the response carried a results array
func (r *ListResponse) HasResults() bool {
	return r.Results != nil
}

// Metadata is the metadata block of documents.json
type Metadata struct {
	Title           string    `json:"title"`
	Parameter       Parameter `json:"parameter"`
	ResultSet       ResultSet `json:"resultset"`
	ProcessDateTime string    `json:"processDateTime"`
	Status          string    `json:"status"`
	Message         string    `json:"message"`
}

// ProcessedAt parses processDateTime in JST
func (m *Metadata) ProcessedAt() (time.Time, error) {
	return time.ParseInLocation(dateTimeLayout, m.ProcessDateTime, jst)
}

// Parameter echoes the request parameters
type Parameter struct {
	Date string `json:"date"`
	Type string `json:"type"`
}

// ResultSet holds the number of documents filed on the date
type ResultSet struct {
	Count int `json:"count"`
}

// Document is one row of the documents.json results array
type Document struct {
	SeqNumber            int              `json:"seqNumber"`
	DocID                string           `json:"docID"`
	EdinetCode           *string          `json:"edinetCode"`
	SecCode              *string          `json:"secCode"`
	JCN                  *string          `json:"JCN"`
	FilerName            *string          `json:"filerName"`
	FundCode             *string          `json:"fundCode"`
	OrdinanceCode        *string          `json:"ordinanceCode"`
	FormCode             *string          `json:"formCode"`
	DocTypeCode          *string          `json:"docTypeCode"`
	PeriodStart          *string          `json:"periodStart"`
	PeriodEnd            *string          `json:"periodEnd"`
	SubmitDateTime       *string          `json:"submitDateTime"`
	DocDescription       *string          `json:"docDescription"`
	IssuerEdinetCode     *string          `json:"issuerEdinetCode"`
	SubjectEdinetCode    *string          `json:"subjectEdinetCode"`
	SubsidiaryEdinetCode *string          `json:"subsidiaryEdinetCode"`
	CurrentReportReason  *string          `json:"currentReportReason"`
	ParentDocID          *string          `json:"parentDocID"`
	OpeDateTime          *string          `json:"opeDateTime"`
	WithdrawalStatus     WithdrawalStatus `json:"withdrawalStatus"`
	DocInfoEditStatus    EditStatus       `json:"docInfoEditStatus"`
	DisclosureStatus     DisclosureStatus `json:"disclosureStatus"`
	XBRLFlag             Flag             `json:"xbrlFlag"`
	PDFFlag              Flag             `json:"pdfFlag"`
	AttachDocFlag        Flag             `json:"attachDocFlag"`
	EnglishDocFlag       Flag             `json:"englishDocFlag"`
	CSVFlag              Flag             `json:"csvFlag"`
	LegalStatus          LegalStatus      `json:"legalStatus"`
}

// Value dereferences a nullable field, returning "" for null
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// HasFormat reports whether the presence flag for f is set
func (d *Document) HasFormat(f Format) bool {
	switch f {
	case FormatXBRL:
		return d.XBRLFlag.Present()
	case FormatPDF:
		return d.PDFFlag.Present()
	case FormatAttachments:
		return d.AttachDocFlag.Present()
	case FormatEnglish:
		return d.EnglishDocFlag.Present()
	case FormatCSV:
		return d.CSVFlag.Present()
	default:
		return false
	}
}

// IsWithdrawn reports whether the document has been withdrawn
func (d *Document) IsWithdrawn() bool {
	return d.WithdrawalStatus == WithdrawalWithdrawn
}

// SubmittedAt parses submitDateTime in JST. The zero time is returned when
// the field is null or malformed.
func (d *Document) SubmittedAt() time.Time {
	if d.SubmitDateTime == nil {
		return time.Time{}
	}
	t, err := time.ParseInLocation(dateTimeLayout, *d.SubmitDateTime, jst)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Period parses periodStart and periodEnd. ok is false if either is null
// or malformed.
func (d *Document) Period() (start, end time.Time, ok bool) {
	if d.PeriodStart == nil || d.PeriodEnd == nil {
		return time.Time{}, time.Time{}, false
	}
	start, err := time.Parse(dateLayout, *d.PeriodStart)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = time.Parse(dateLayout, *d.PeriodEnd)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// String returns a short description for logs and listings
func (d *Document) String() string {
	return fmt.Sprintf("%s %s %s", d.DocID, Value(d.FilerName), Value(d.DocDescription))
}
