package edinet

import (
	"fmt"
	"strconv"
	"strings"
)

// ListMode selects what documents.json returns
type ListMode int

const (
	// ModeMetadataOnly returns the metadata block only
	ModeMetadataOnly ListMode = 1
	// ModeWithDocuments returns metadata plus the document list
	ModeWithDocuments ListMode = 2
)

// Valid reports whether m is one of the two list modes
func (m ListMode) Valid() bool {
	return m == ModeMetadataOnly || m == ModeWithDocuments
}

// Code returns the value sent as the type query parameter
func (m ListMode) Code() string {
	return strconv.Itoa(int(m))
}

// String returns the string representation of a ListMode
func (m ListMode) String() string {
	switch m {
	case ModeMetadataOnly:
		return "metadata"
	case ModeWithDocuments:
		return "documents"
	default:
		return fmt.Sprintf("ListMode(%d)", int(m))
	}
}

// Format selects which file variant of a document is fetched
type Format int

const (
	// FormatXBRL is the filing body, audit report and XBRL (zip)
	FormatXBRL Format = 1
	// FormatPDF is the PDF rendition
	FormatPDF Format = 2
	// FormatAttachments is alternate documents and attachments (zip)
	FormatAttachments Format = 3
	// FormatEnglish is the English-language files (zip)
	FormatEnglish Format = 4
	// FormatCSV is the XBRL-to-CSV conversion (zip)
	FormatCSV Format = 5
)

// Formats lists every valid format in code order
var Formats = []Format{FormatXBRL, FormatPDF, FormatAttachments, FormatEnglish, FormatCSV}

// Valid reports whether f is one of the five format codes
func (f Format) Valid() bool {
	return f >= FormatXBRL && f <= FormatCSV
}

// Code returns the value sent as the type query parameter
func (f Format) Code() string {
	return strconv.Itoa(int(f))
}

// String returns the string representation of a Format
func (f Format) String() string {
	switch f {
	case FormatXBRL:
		return "xbrl"
	case FormatPDF:
		return "pdf"
	case FormatAttachments:
		return "attachments"
	case FormatEnglish:
		return "english"
	case FormatCSV:
		return "csv"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extension returns the file extension of the payload for f
func (f Format) Extension() string {
	if f == FormatPDF {
		return "pdf"
	}
	return "zip"
}

// ContentType returns the MIME type of the payload for f
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/zip"
}

// ParseFormat accepts a format name ("pdf") or its code ("2")
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		f := Format(n)
		if !f.Valid() {
			return 0, &ValidationError{Field: "format", Value: s, Reason: "must be between 1 and 5"}
		}
		return f, nil
	}
	for _, f := range Formats {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, &ValidationError{Field: "format", Value: s, Reason: "unknown format name"}
}

// WithdrawalStatus is the withdrawalStatus field: "0" none, "1" withdrawal
// filing, "2" withdrawn
type WithdrawalStatus string

const (
	WithdrawalNone      WithdrawalStatus = "0"
	WithdrawalRequested WithdrawalStatus = "1"
	WithdrawalWithdrawn WithdrawalStatus = "2"
)

// EditStatus is the docInfoEditStatus field: "0" none, "1" corrected
// information, "2" corrected by the FSA
type EditStatus string

const (
	EditNone       EditStatus = "0"
	EditCorrection EditStatus = "1"
	EditCorrected  EditStatus = "2"
)

// DisclosureStatus is the disclosureStatus field
type DisclosureStatus string

const (
	DisclosureNormal    DisclosureStatus = "0"
	DisclosureWithheld  DisclosureStatus = "1"
	DisclosureReleased  DisclosureStatus = "2"
	DisclosureSuspended DisclosureStatus = "3"
)

// Flag is a "0"/"1" presence flag
type Flag string

const (
	FlagAbsent  Flag = "0"
	FlagPresent Flag = "1"
)

// Present reports whether the flag is "1"
func (f Flag) Present() bool {
	return f == FlagPresent
}

// LegalStatus is the legalStatus field: "0" past inspection period,
// "1" under inspection, "2" extended inspection
type LegalStatus string

const (
	LegalExpired  LegalStatus = "0"
	LegalOpen     LegalStatus = "1"
	LegalExtended LegalStatus = "2"
)
