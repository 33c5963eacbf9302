package edinet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestListMode(t *testing.T) {
	assert.True(t, ModeMetadataOnly.Valid())
	assert.True(t, ModeWithDocuments.Valid())
	assert.False(t, ListMode(0).Valid())
	assert.False(t, ListMode(3).Valid())

	assert.Equal(t, "1", ModeMetadataOnly.Code())
	assert.Equal(t, "2", ModeWithDocuments.Code())
	assert.Equal(t, "documents", ModeWithDocuments.String())
	assert.Equal(t, "ListMode(7)", ListMode(7).String())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"1", FormatXBRL, false},
		{"2", FormatPDF, false},
		{"pdf", FormatPDF, false},
		{" PDF ", FormatPDF, false},
		{"xbrl", FormatXBRL, false},
		{"attachments", FormatAttachments, false},
		{"english", FormatEnglish, false},
		{"csv", FormatCSV, false},
		{"5", FormatCSV, false},
		{"0", 0, true},
		{"9", 0, true},
		{"docx", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "pdf", FormatPDF.Extension())
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	for _, f := range []Format{FormatXBRL, FormatAttachments, FormatEnglish, FormatCSV} {
		assert.Equal(t, "zip", f.Extension())
		assert.Equal(t, "application/zip", f.ContentType())
	}
	assert.False(t, Format(6).Valid())
	assert.Equal(t, "Format(6)", Format(6).String())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2023-03-01", FormatDate(d))

	for _, bad := range []string{"2023-02-30", "2023/03/01", "20230301", ""} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestDocument(t *testing.T) {
	doc := Document{
		DocID:            "S100ABCD",
		FilerName:        ptr("テスト株式会社"),
		DocDescription:   ptr("有価証券報告書"),
		PeriodStart:      ptr("2022-04-01"),
		PeriodEnd:        ptr("2023-03-31"),
		SubmitDateTime:   ptr("2023-06-28 15:30"),
		XBRLFlag:         FlagPresent,
		PDFFlag:          FlagPresent,
		AttachDocFlag:    FlagAbsent,
		EnglishDocFlag:   FlagAbsent,
		CSVFlag:          FlagPresent,
		WithdrawalStatus: WithdrawalNone,
	}

	t.Run("HasFormat", func(t *testing.T) {
		assert.True(t, doc.HasFormat(FormatXBRL))
		assert.True(t, doc.HasFormat(FormatPDF))
		assert.False(t, doc.HasFormat(FormatAttachments))
		assert.False(t, doc.HasFormat(FormatEnglish))
		assert.True(t, doc.HasFormat(FormatCSV))
		assert.False(t, doc.HasFormat(Format(8)))
	})

	t.Run("SubmittedAt", func(t *testing.T) {
		at := doc.SubmittedAt()
		assert.Equal(t, time.Date(2023, 6, 28, 6, 30, 0, 0, time.UTC), at.UTC())

		empty := Document{}
		assert.True(t, empty.SubmittedAt().IsZero())
	})

	t.Run("Period", func(t *testing.T) {
		start, end, ok := doc.Period()
		require.True(t, ok)
		assert.Equal(t, "2022-04-01", FormatDate(start))
		assert.Equal(t, "2023-03-31", FormatDate(end))

		_, _, ok = (&Document{PeriodStart: ptr("2022-04-01")}).Period()
		assert.False(t, ok)
	})

	t.Run("IsWithdrawn", func(t *testing.T) {
		assert.False(t, doc.IsWithdrawn())
		withdrawn := Document{WithdrawalStatus: WithdrawalWithdrawn}
		assert.True(t, withdrawn.IsWithdrawn())
	})

	t.Run("Value", func(t *testing.T) {
		assert.Equal(t, "", Value(nil))
		assert.Equal(t, "テスト株式会社", Value(doc.FilerName))
		assert.Equal(t, "S100ABCD テスト株式会社 有価証券報告書", doc.String())
	})
}

func TestMetadataProcessedAt(t *testing.T) {
	m := Metadata{ProcessDateTime: "2023-03-02 00:00"}
	at, err := m.ProcessedAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 3, 1, 15, 0, 0, 0, time.UTC), at.UTC())
}

func TestResponseError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := newResponseError(404, []byte("Not Found"))
		assert.Equal(t, "edinet API error: status 404: Not Found", err.Error())
		assert.True(t, err.IsNotFound())
		assert.False(t, err.IsUnauthorized())
	})

	t.Run("Kind strings", func(t *testing.T) {
		assert.Equal(t, "invalid_api_key", kindForStatus(401).String())
		assert.Equal(t, "unsuccessful", kindForStatus(418).String())
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		assert.True(t, newResponseError(401, nil).IsUnauthorized())
		assert.False(t, newResponseError(403, nil).IsUnauthorized())
	})
}
