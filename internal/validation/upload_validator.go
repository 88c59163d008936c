package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "feedbackpulse/internal/errors"
	"feedbackpulse/internal/spreadsheet"
)

// Upload describes one uploaded file
type Upload struct {
	FileName string `json:"file" validate:"required,max=255,filename,spreadsheet"`
	Size     int64  `json:"size" validate:"gt=0"`
}

// UploadValidator validates uploads against the accepted formats and the
// configured size limit
type UploadValidator struct {
	validate *validator.Validate
	logger   *slog.Logger
	maxBytes int64
}

// NewUploadValidator creates a new upload validator
func NewUploadValidator(maxBytes int64, logger *slog.Logger) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}

	v := validator.New()
	_ = v.RegisterValidation("filename", isValidFilename)
	_ = v.RegisterValidation("spreadsheet", isSpreadsheet)

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &UploadValidator{
		validate: v,
		logger:   logger.With(slog.String("component", "upload_validator")),
		maxBytes: maxBytes,
	}
}

// ValidateUpload returns nil when the upload may be analysed, otherwise an
// *errors.APIError describing every failed rule
func (v *UploadValidator) ValidateUpload(u Upload) error {
	if v.maxBytes > 0 && u.Size > v.maxBytes {
		v.logger.Warn("Upload exceeds size limit",
			slog.String("file", u.FileName),
			slog.Int64("size", u.Size),
			slog.Int64("limit", v.maxBytes))
		return apierrors.NewWithDetails(
			http.StatusRequestEntityTooLarge,
			apierrors.ErrPayloadTooLarge.ErrorCode,
			apierrors.ErrPayloadTooLarge.Message,
			map[string]interface{}{
				"size":        u.Size,
				"limit_bytes": v.maxBytes,
			},
		)
	}

	err := v.validate.Struct(u)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierrors.InvalidRequestWithError(err)
	}

	out := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
		})
	}

	v.logger.Debug("Upload rejected",
		slog.String("file", u.FileName),
		slog.Int("violations", len(out)))
	return apierrors.NewValidationErrors(out)
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "gt":
		return fmt.Sprintf("%s must not be empty", field)
	case "filename":
		return fmt.Sprintf("%s must be a plain file name", field)
	case "spreadsheet":
		if isLockFile(err.Value().(string)) {
			return fmt.Sprintf("%s is an Excel lock file", field)
		}
		return fmt.Sprintf("%s must be one of: .xlsx, .xlsm, .csv", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// isValidFilename rejects names carrying path components
func isValidFilename(fl validator.FieldLevel) bool {
	filename := fl.Field().String()
	if filename == "" {
		return false
	}
	return !strings.Contains(filename, "..") &&
		!strings.ContainsAny(filename, `/\`)
}

// isSpreadsheet accepts the formats the spreadsheet reader can decode
func isSpreadsheet(fl validator.FieldLevel) bool {
	filename := fl.Field().String()
	if isLockFile(filename) {
		return false
	}
	_, err := spreadsheet.DetectFormat(filename)
	return err == nil
}

func isLockFile(filename string) bool {
	return strings.HasPrefix(filepath.Base(filename), "~$")
}
