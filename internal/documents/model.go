package documents

import (
	"fmt"
	"io"
	"strings"
)

// DocumentType is the closed set of categories a consultant document can be filed under.
type DocumentType string

const (
	Resume               DocumentType = "RESUME"
	IDProof              DocumentType = "ID_PROOF"
	AddressProof         DocumentType = "ADDRESS_PROOF"
	Invoice              DocumentType = "INVOICE"
	OfferLetter          DocumentType = "OFFER_LETTER"
	EducationCertificate DocumentType = "EDUCATION_CERTIFICATE"
	ExperienceLetter     DocumentType = "EXPERIENCE_LETTER"
)

var documentTypes = []DocumentType{
	Resume,
	IDProof,
	AddressProof,
	Invoice,
	OfferLetter,
	EducationCertificate,
	ExperienceLetter,
}

// DocumentTypes returns every recognized document type in declaration order.
func DocumentTypes() []DocumentType {
	return append([]DocumentType(nil), documentTypes...)
}

// Valid reports whether t is a recognized document type.
func (t DocumentType) Valid() bool {
	for _, known := range documentTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t DocumentType) String() string { return string(t) }

// metricLabel keeps the doc_type label set closed.
func (t DocumentType) metricLabel() string {
	if t.Valid() {
		return string(t)
	}
	return "unknown"
}

// ParseDocumentType matches raw against the enumeration names. Surrounding
// whitespace is ignored; case is not.
func ParseDocumentType(raw string) (DocumentType, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrMissingDocumentType
	}
	t := DocumentType(trimmed)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDocumentType, trimmed)
	}
	return t, nil
}

// UploadRequest is one validated upload. It lives only for the duration of the call.
type UploadRequest struct {
	DocumentType DocumentType
	FileName     string
	// Size is the size declared by the client, -1 when unknown.
	Size    int64
	Content io.Reader
}

// StoredDocument describes the object written for a successful upload.
type StoredDocument struct {
	ID           string
	DocumentType DocumentType
	Key          string
	Location     string
	SizeBytes    int64
	ContentType  string
}
