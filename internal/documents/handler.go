package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"consultant-backend/internal/shared/server/respond"
	"consultant-backend/internal/shared/telemetry"
	"consultant-backend/internal/shared/util"
)

const defaultMaxUploadBytes = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler. A non-positive limit falls back to 10MB.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.PUT("/consultant/upload", h.upload)
}

// upload godoc
//
//	@Summary		Upload a consultant document
//	@Description	Stores the document publicly readable under a new key and returns its location.
//	@Tags			documents
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			doc-type	formData	string	true	"Document type"	Enums(RESUME, ID_PROOF, ADDRESS_PROOF, INVOICE, OFFER_LETTER, EDUCATION_CERTIFICATE, EXPERIENCE_LETTER)
//	@Param			document	formData	file	true	"Document file"
//	@Success		200	{string}	string	"document location"
//	@Failure		400	{object}	respond.ErrorResponse
//	@Failure		413	{object}	respond.ErrorResponse
//	@Failure		500	{object}	respond.ErrorResponse
//	@Router			/consultant/upload [put]
func (h *Handler) upload(c *gin.Context) {
	if c.Request.ContentLength > h.MaxUploadBytes {
		h.fail(c, ErrDocumentTooLarge)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	form, err := parseUploadRequest(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer form.Close()

	c.Set("docType", string(form.Request.DocumentType))

	doc, err := h.Svc.Upload(c.Request.Context(), form.Request)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set("storageKey", doc.Key)

	telemetry.Info("documents.upload.stored", map[string]any{
		"request_id":   c.GetString("requestId"),
		"doc_type":     string(doc.DocumentType),
		"storage_key":  doc.Key,
		"size_bytes":   doc.SizeBytes,
		"content_type": doc.ContentType,
	})
	respond.OK(c, doc.Location)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrDocumentTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "document exceeds upload limit", gin.H{"maxBytes": h.MaxUploadBytes})
	case errors.Is(err, ErrMalformedFileName):
		msg := util.ErrNoExtension.Error()
		if errors.Is(err, util.ErrInvalidExtension) {
			msg = util.ErrInvalidExtension.Error()
		}
		respond.Error(c, http.StatusBadRequest, "malformed_filename", msg, nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", validationMessage(err), nil)
	default:
		telemetry.Error("documents.upload.failed", map[string]any{
			"request_id": c.GetString("requestId"),
			"doc_type":   c.GetString("docType"),
			"error":      err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store document", nil)
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingDocumentType):
		return "doc-type is required"
	case errors.Is(err, ErrUnknownDocumentType):
		return "doc-type is not a recognized document type"
	case errors.Is(err, ErrMissingDocument):
		return "document is required"
	case errors.Is(err, ErrEmptyDocument):
		return "document is empty"
	case errors.Is(err, errNotMultipart):
		return errNotMultipart.Error()
	default:
		return "invalid request"
	}
}
