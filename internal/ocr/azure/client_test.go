package azure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tieahapani/Scanpal-Intelligent-Receipt-Organizer/internal/common"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cli := NewClient(Config{
		Endpoint:     srv.URL,
		APIKey:       "test-key",
		PollInterval: 5 * time.Millisecond,
		Timeout:      2 * time.Second,
	}, nil)
	return cli, srv
}

func TestAnalyzeReceiptPollsUntilSucceeded(t *testing.T) {
	var polls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("POST /formrecognizer/documentModels/prebuilt-receipt:analyze", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		assert.Equal(t, "image/jpeg", r.Header.Get("Content-Type"))
		w.Header().Set("Operation-Location", "http://"+r.Host+"/operation/123")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("GET /operation/123", func(w http.ResponseWriter, r *http.Request) {
		if polls.Add(1) < 3 {
			_, _ = w.Write([]byte(`{"status":"running"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"succeeded","analyzeResult":` + sampleAnalyzeResult + `}`))
	})

	cli, _ := newTestClient(t, mux)
	res, err := cli.AnalyzeReceipt(context.Background(), []byte("img"), "image/jpeg")
	require.NoError(t, err)
	require.Len(t, res.Documents, 1)
	assert.Equal(t, int32(3), polls.Load())
}

func TestAnalyzeReceiptNoDocument(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /formrecognizer/documentModels/prebuilt-receipt:analyze", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Operation-Location", "http://"+r.Host+"/operation/empty")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("GET /operation/empty", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"succeeded","analyzeResult":{"documents":[],"pages":[]}}`))
	})

	cli, _ := newTestClient(t, mux)
	_, err := cli.AnalyzeReceipt(context.Background(), []byte("img"), "")
	assert.ErrorIs(t, err, common.ErrNoDocument)
}

func TestAnalyzeReceiptOperationFailed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /formrecognizer/documentModels/prebuilt-receipt:analyze", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Operation-Location", "http://"+r.Host+"/operation/bad")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("GET /operation/bad", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"failed","error":{"code":"InvalidImage","message":"unsupported format"}}`))
	})

	cli, _ := newTestClient(t, mux)
	_, err := cli.AnalyzeReceipt(context.Background(), []byte("img"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUpstream)
	assert.Contains(t, err.Error(), "InvalidImage")
}

func TestAnalyzeReceiptSubmitRejected(t *testing.T) {
	cli, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"401","message":"unauthorized"}}`, http.StatusUnauthorized)
	}))

	_, err := cli.AnalyzeReceipt(context.Background(), []byte("img"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUpstream)
}
