package http

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	apierrors "feedbackpulse/internal/errors"
	"feedbackpulse/internal/infrastructure"
	"feedbackpulse/internal/validation"
)

// UploadField is the multipart field carrying the spreadsheet
const UploadField = "file"

// multipartMemory is the part of a multipart body kept in memory before
// spilling to temporary files
const multipartMemory = 8 << 20

// UploadReader extracts and validates the spreadsheet of a multipart request
type UploadReader struct {
	maxBytes  int64
	validator *validation.UploadValidator
	logger    *slog.Logger
}

// NewUploadReader creates an upload reader limited to maxBytes per request body
func NewUploadReader(maxBytes int64, validator *validation.UploadValidator, logger *slog.Logger) *UploadReader {
	return &UploadReader{
		maxBytes:  maxBytes,
		validator: validator,
		logger:    infrastructure.WithComponent(logger, "upload_reader"),
	}
}

// Read returns the uploaded file. The caller closes it. Returned errors are
// ready for the error handler.
func (u *UploadReader) Read(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if u.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, u.maxBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, maxErr
		}
		return nil, nil, apierrors.InvalidRequestWithError(err)
	}

	file, header, err := r.FormFile(UploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, apierrors.MissingParameter(UploadField)
		}
		return nil, nil, apierrors.InvalidRequestWithError(err)
	}

	if err := u.validator.ValidateUpload(validation.Upload{
		FileName: header.Filename,
		Size:     header.Size,
	}); err != nil {
		file.Close()
		return nil, nil, err
	}

	u.logger.DebugContext(r.Context(), "upload received",
		slog.String("file", header.Filename),
		slog.Int64("size", header.Size))

	return file, header, nil
}

// cleanupMultipart removes temporary files of a parsed multipart form
func cleanupMultipart(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}
