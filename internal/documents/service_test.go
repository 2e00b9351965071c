package documents

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consultant-backend/internal/shared/metrics"
	"consultant-backend/internal/shared/storage/object"
)

type putCall struct {
	Key         string
	Body        []byte
	Size        int64
	ContentType string
}

type fakeStore struct {
	mu    sync.Mutex
	base  string
	calls []putCall
	err   error
}

func (f *fakeStore) Put(_ context.Context, key string, body io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, putCall{Key: key, Body: data, Size: size, ContentType: contentType})
	return f.err
}

func (f *fakeStore) Location(key string) string {
	return object.JoinLocation(f.base, key)
}

func (f *fakeStore) Calls() []putCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]putCall(nil), f.calls...)
}

var _ object.ObjectStore = (*fakeStore)(nil)

func newTestService(t *testing.T, store *fakeStore) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	return NewService(store, dir), dir
}

func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "spool files left behind")
}

func TestUploadStoresOnceUnderGeneratedKey(t *testing.T) {
	store := &fakeStore{base: "https://cdn.example/docs"}
	svc, dir := newTestService(t, store)

	doc, err := svc.Upload(context.Background(), UploadRequest{
		DocumentType: Invoice,
		FileName:     "report.pdf",
		Size:         -1,
		Content:      strings.NewReader("%PDF-1.4\n%fake pdf body\n"),
	})
	require.NoError(t, err)

	calls := store.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, doc.Key, calls[0].Key)
	assert.Equal(t, []byte("%PDF-1.4\n%fake pdf body\n"), calls[0].Body)
	assert.EqualValues(t, len(calls[0].Body), calls[0].Size)
	assert.Equal(t, "application/pdf", calls[0].ContentType)

	pattern := regexp.MustCompile(`^https://cdn\.example/docs/[0-9a-f-]{36}-INVOICE\.pdf$`)
	assert.Regexp(t, pattern, doc.Location)
	assert.Len(t, doc.ID, 36)
	assert.Equal(t, Invoice, doc.DocumentType)
	assert.EqualValues(t, len(calls[0].Body), doc.SizeBytes)

	requireEmptyDir(t, dir)
}

func TestUploadUsesInjectedID(t *testing.T) {
	store := &fakeStore{base: "https://cdn.example/docs/"}
	svc, _ := newTestService(t, store)
	svc.NewID = func() string { return "fixed-id" }

	doc, err := svc.Upload(context.Background(), UploadRequest{
		DocumentType: Resume,
		FileName:     "cv.final.docx",
		Content:      strings.NewReader("hello"),
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id-RESUME.docx", doc.Key)
	assert.Equal(t, "https://cdn.example/docs/fixed-id-RESUME.docx", doc.Location)
	assert.Equal(t, "text/plain; charset=utf-8", doc.ContentType)
}

func TestUploadIdenticalRequestsProduceDistinctKeys(t *testing.T) {
	store := &fakeStore{base: "https://cdn.example/docs"}
	svc, _ := newTestService(t, store)

	for i := 0; i < 2; i++ {
		_, err := svc.Upload(context.Background(), UploadRequest{
			DocumentType: IDProof,
			FileName:     "passport.png",
			Content:      bytes.NewReader([]byte("same bytes")),
		})
		require.NoError(t, err)
	}

	calls := store.Calls()
	require.Len(t, calls, 2)
	assert.NotEqual(t, calls[0].Key, calls[1].Key)
}

func TestUploadRejectsFileNameWithoutExtension(t *testing.T) {
	for _, name := range []string{"report", "report.", ""} {
		store := &fakeStore{}
		svc, dir := newTestService(t, store)

		_, err := svc.Upload(context.Background(), UploadRequest{
			DocumentType: Invoice,
			FileName:     name,
			Content:      strings.NewReader("data"),
		})
		require.ErrorIs(t, err, ErrMalformedFileName, "file name %q", name)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Empty(t, store.Calls())
		requireEmptyDir(t, dir)
	}
}

func TestUploadRejectsInvalidDocumentType(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestService(t, store)

	_, err := svc.Upload(context.Background(), UploadRequest{
		DocumentType: DocumentType("PAYSLIP"),
		FileName:     "a.pdf",
		Content:      strings.NewReader("data"),
	})
	require.ErrorIs(t, err, ErrUnknownDocumentType)

	_, err = svc.Upload(context.Background(), UploadRequest{
		FileName: "a.pdf",
		Content:  strings.NewReader("data"),
	})
	require.ErrorIs(t, err, ErrMissingDocumentType)
	assert.Empty(t, store.Calls())
}

func TestUploadRejectsEmptyDocument(t *testing.T) {
	store := &fakeStore{}
	svc, dir := newTestService(t, store)

	_, err := svc.Upload(context.Background(), UploadRequest{
		DocumentType: Resume,
		FileName:     "cv.pdf",
		Content:      strings.NewReader(""),
	})
	require.ErrorIs(t, err, ErrEmptyDocument)
	assert.Empty(t, store.Calls())
	requireEmptyDir(t, dir)
}

func TestUploadRejectsMissingContent(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestService(t, store)

	_, err := svc.Upload(context.Background(), UploadRequest{
		DocumentType: Resume,
		FileName:     "cv.pdf",
	})
	require.ErrorIs(t, err, ErrMissingDocument)
}

func TestUploadPropagatesStoreErrorAndCleansUp(t *testing.T) {
	storeErr := errors.New("access denied")
	store := &fakeStore{err: storeErr}
	svc, dir := newTestService(t, store)

	_, err := svc.Upload(context.Background(), UploadRequest{
		DocumentType: OfferLetter,
		FileName:     "offer.pdf",
		Content:      strings.NewReader("signed"),
	})
	require.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.Len(t, store.Calls(), 1)
	requireEmptyDir(t, dir)
}

func TestUploadFailsWhenSpoolDirMissing(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, t.TempDir()+"/missing")

	_, err := svc.Upload(context.Background(), UploadRequest{
		DocumentType: Resume,
		FileName:     "cv.pdf",
		Content:      strings.NewReader("data"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create spool file")
	assert.Empty(t, store.Calls())
}

func TestParseDocumentType(t *testing.T) {
	got, err := ParseDocumentType("  EXPERIENCE_LETTER ")
	require.NoError(t, err)
	assert.Equal(t, ExperienceLetter, got)

	_, err = ParseDocumentType("invoice")
	assert.ErrorIs(t, err, ErrUnknownDocumentType)

	_, err = ParseDocumentType("   ")
	assert.ErrorIs(t, err, ErrMissingDocumentType)

	for _, dt := range DocumentTypes() {
		parsed, err := ParseDocumentType(dt.String())
		require.NoError(t, err)
		assert.Equal(t, dt, parsed)
	}
}

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "abc-ADDRESS_PROOF.jpg", StorageKey("abc", AddressProof, "jpg"))
}

func TestUploadMetricLabelForUnknownDocumentType(t *testing.T) {
	assert.Equal(t, "INVOICE", Invoice.metricLabel())
	assert.Equal(t, "unknown", DocumentType("PAYSLIP-1234").metricLabel())
	assert.Equal(t, "unknown", DocumentType("").metricLabel())

	svc, _ := newTestService(t, &fakeStore{})
	_, err := svc.Upload(context.Background(), UploadRequest{
		DocumentType: DocumentType("random-value-42"),
		FileName:     "a.pdf",
		Content:      strings.NewReader("data"),
	})
	require.ErrorIs(t, err, ErrUnknownDocumentType)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", metrics.Handler())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := resp.Body.String()
	assert.Contains(t, body, `consultant_docs_uploads_total{doc_type="unknown",outcome="rejected"}`)
	assert.NotContains(t, body, "random-value-42")
}
