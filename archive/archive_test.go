package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/edinet/config"
	"github.com/s0up4200/edinet/edinet"
)

func TestKey(t *testing.T) {
	date := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		format   edinet.Format
		expected string
	}{
		{edinet.FormatXBRL, "2023-03-01/S100ABCD_xbrl.zip"},
		{edinet.FormatPDF, "2023-03-01/S100ABCD_pdf.pdf"},
		{edinet.FormatCSV, "2023-03-01/S100ABCD_csv.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, Key(date, "S100ABCD", tt.format))
		})
	}
}

func TestLocal(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()

	store, err := NewLocal(fs, "/data/edinet")
	require.NoError(t, err)

	key := "2023-03-01/S100ABCD_pdf.pdf"

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Put(ctx, key, []byte("%PDF-1.7"), "application/pdf"))

	exists, err = store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	path := filepath.Join("/data/edinet", "2023-03-01", "S100ABCD_pdf.pdf")
	assert.Equal(t, path, store.Location(key))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), data)

	_, err = fs.Stat(path + ".part")
	assert.Error(t, err, "temporary file should be renamed away")

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, key, []byte("new"), "application/pdf"))
		data, err := afero.ReadFile(fs, path)
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), data)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := store.Put(cctx, "2023-03-02/S100ZZZZ_pdf.pdf", []byte("x"), "application/pdf")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewLocalRequiresDir(t *testing.T) {
	_, err := NewLocal(afero.NewMemMapFs(), "")
	assert.Error(t, err)
}

func TestNewMinIOValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  config.MinIOConfig
	}{
		{"missing endpoint", config.MinIOConfig{AccessKey: "a", SecretKey: "b", Bucket: "c"}},
		{"missing credentials", config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "c"}},
		{"missing bucket", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMinIO(ctx, tt.cfg)
			assert.Error(t, err)
		})
	}
}
