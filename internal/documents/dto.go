package documents

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Multipart field names accepted by the upload route.
const (
	fieldDocType  = "doc-type"
	fieldDocument = "document"
)

// uploadForm is the parsed upload request. Close releases the file part
// and any temp files created while parsing.
type uploadForm struct {
	Request UploadRequest
	file    multipart.File
	form    *multipart.Form
}

func (f *uploadForm) Close() {
	if f == nil {
		return
	}
	if f.file != nil {
		_ = f.file.Close()
	}
	if f.form != nil {
		_ = f.form.RemoveAll()
	}
}

// parseUploadRequest reads the multipart body through gin. The body must
// already be limited with http.MaxBytesReader. On error no temp files are
// left behind.
func parseUploadRequest(c *gin.Context) (*uploadForm, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if c.Request.MultipartForm != nil {
			_ = c.Request.MultipartForm.RemoveAll()
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrDocumentTooLarge
		}
		return nil, errors.Join(ErrInvalidInput, errNotMultipart, err)
	}

	out := &uploadForm{form: form}

	docType, err := ParseDocumentType(c.PostForm(fieldDocType))
	if err != nil {
		out.Close()
		return nil, err
	}

	header, err := c.FormFile(fieldDocument)
	if err != nil {
		out.Close()
		return nil, ErrMissingDocument
	}

	file, err := header.Open()
	if err != nil {
		out.Close()
		return nil, errors.Join(ErrMissingDocument, err)
	}
	out.file = file
	out.Request = UploadRequest{
		DocumentType: docType,
		FileName:     header.Filename,
		Size:         header.Size,
		Content:      file,
	}
	return out, nil
}

var errNotMultipart = errors.New("request body must be multipart/form-data")
