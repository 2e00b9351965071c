package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveUploadCountsBytesOnlyWhenStored(t *testing.T) {
	beforeStored := testutil.ToFloat64(uploadsTotal.WithLabelValues("RESUME", OutcomeStored))
	beforeFailed := testutil.ToFloat64(uploadsTotal.WithLabelValues("RESUME", OutcomeFailed))
	beforeBytes := testutil.ToFloat64(uploadBytesTotal.WithLabelValues("RESUME"))

	ObserveUpload("RESUME", OutcomeStored, 128, 20*time.Millisecond)
	ObserveUpload("RESUME", OutcomeFailed, 64, 5*time.Millisecond)

	if got := testutil.ToFloat64(uploadsTotal.WithLabelValues("RESUME", OutcomeStored)) - beforeStored; got != 1 {
		t.Fatalf("expected 1 stored upload, got %v", got)
	}
	if got := testutil.ToFloat64(uploadsTotal.WithLabelValues("RESUME", OutcomeFailed)) - beforeFailed; got != 1 {
		t.Fatalf("expected 1 failed upload, got %v", got)
	}
	if got := testutil.ToFloat64(uploadBytesTotal.WithLabelValues("RESUME")) - beforeBytes; got != 128 {
		t.Fatalf("expected 128 bytes, got %v", got)
	}
}

func TestObserveRequestUnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404"))
	ObserveRequest("GET", "", http.StatusNotFound)
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")) - before; got != 1 {
		t.Fatalf("expected unmatched counter to increase by 1, got %v", got)
	}
}

func TestObserveRequestCollapsesUnknownMethods(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("other", "/consultant/upload", "405"))
	ObserveRequest("BREW", "/consultant/upload", http.StatusMethodNotAllowed)
	ObserveRequest("PROPFIND-1234", "/consultant/upload", http.StatusMethodNotAllowed)
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("other", "/consultant/upload", "405")) - before; got != 2 {
		t.Fatalf("expected other counter to increase by 2, got %v", got)
	}
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("PUT", "/consultant/upload", "405")); got != 0 {
		t.Fatalf("expected no PUT increment, got %v", got)
	}
}

func TestHandlerRendersRegistry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ObserveUpload("INVOICE", OutcomeStored, 10, time.Millisecond)

	r := gin.New()
	r.GET("/metrics", Handler())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{
		`consultant_docs_uploads_total{doc_type="INVOICE",outcome="stored"}`,
		"consultant_docs_upload_duration_seconds_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected metrics output to contain %q", want)
		}
	}
}
