package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"consultant-backend/internal/shared/metrics"
	"consultant-backend/internal/shared/storage/object"
	"consultant-backend/internal/shared/util"
)

// Service stores uploaded consultant documents in object storage.
type Service struct {
	Store object.ObjectStore
	// NewID mints the identifier prefix of each storage key. Defaults to uuid.NewString.
	NewID func() string
	// TempDir is where uploads are spooled before the store write. Empty means os.TempDir.
	TempDir string
}

// NewService constructs a Service around store with the default id generator.
func NewService(store object.ObjectStore, tempDir string) *Service {
	return &Service{Store: store, NewID: uuid.NewString, TempDir: tempDir}
}

// Upload writes the document exactly once under a freshly minted key and
// returns where it can be fetched from. Nothing is retried.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (doc StoredDocument, err error) {
	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeStored
		switch {
		case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrDocumentTooLarge):
			outcome = metrics.OutcomeRejected
		case err != nil:
			outcome = metrics.OutcomeFailed
		}
		metrics.ObserveUpload(req.DocumentType.metricLabel(), outcome, doc.SizeBytes, time.Since(start))
	}()

	if !req.DocumentType.Valid() {
		if req.DocumentType == "" {
			return StoredDocument{}, ErrMissingDocumentType
		}
		return StoredDocument{}, fmt.Errorf("%w: %q", ErrUnknownDocumentType, string(req.DocumentType))
	}
	if req.Content == nil {
		return StoredDocument{}, ErrMissingDocument
	}

	ext, err := util.FileExtension(req.FileName)
	if err != nil {
		return StoredDocument{}, fmt.Errorf("%w: %w", ErrMalformedFileName, err)
	}

	id := s.newID()
	key := StorageKey(id, req.DocumentType, ext)

	spool, size, err := s.spool(req.Content)
	if err != nil {
		return StoredDocument{}, err
	}
	defer func() {
		_ = spool.Close()
		_ = os.Remove(spool.Name())
	}()
	if size == 0 {
		return StoredDocument{}, ErrEmptyDocument
	}

	contentType, err := detectContentType(spool)
	if err != nil {
		return StoredDocument{}, err
	}

	if err := s.Store.Put(ctx, key, spool, size, contentType); err != nil {
		return StoredDocument{}, fmt.Errorf("store document key=%s: %w", key, err)
	}

	return StoredDocument{
		ID:           id,
		DocumentType: req.DocumentType,
		Key:          key,
		Location:     s.Store.Location(key),
		SizeBytes:    size,
		ContentType:  contentType,
	}, nil
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// spool copies r into a temp file so the store gets a known size and a
// seekable body. The caller owns closing and removing the returned file.
func (s *Service) spool(r io.Reader) (*os.File, int64, error) {
	f, err := os.CreateTemp(s.TempDir, "upload-*")
	if err != nil {
		return nil, 0, fmt.Errorf("create spool file: %w", err)
	}
	size, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, 0, fmt.Errorf("spool document: %w", err)
	}
	return f, size, nil
}

// detectContentType sniffs the spooled bytes and rewinds the file.
func detectContentType(f *os.File) (string, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind spool file: %w", err)
	}
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind spool file: %w", err)
	}
	return mt.String(), nil
}
