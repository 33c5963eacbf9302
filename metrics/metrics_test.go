package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	client := c.InstrumentClient(&http.Client{})

	for _, path := range []string{"/ok", "/ok", "/missing"} {
		resp, err := client.Get(server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(c.requests.With(prometheus.Labels{"code": "200", "method": "get"})))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.requests.With(prometheus.Labels{"code": "404", "method": "get"})))
	assert.Equal(t, 2, testutil.CollectAndCount(c.duration))
}

func TestInstrumentClientNil(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	client := c.InstrumentClient(nil)
	require.NotNil(t, client)
	assert.NotNil(t, client.Transport)
}

func TestNewCollectorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	assert.Error(t, err)
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.ObserveDocument("pdf", ResultDownloaded)
	c.ObserveDocument("pdf", ResultDownloaded)
	c.ObserveDocument("xbrl", ResultFailed)

	path := filepath.Join(t.TempDir(), "edinet.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `edinet_documents_total{format="pdf",result="downloaded"} 2`)
	assert.Contains(t, string(data), `edinet_documents_total{format="xbrl",result="failed"} 1`)
}
