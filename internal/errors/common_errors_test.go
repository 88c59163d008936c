package errors

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	tests := []struct {
		name    string
		err     *AppError
		want    string
		errType ErrorType
	}{
		{
			name:    "parsing with cause",
			err:     NewParsingError("PARSE_FAILED", "spreadsheet could not be read", io.ErrUnexpectedEOF),
			want:    "[PARSING] spreadsheet could not be read: unexpected EOF",
			errType: ErrTypeParsing,
		},
		{
			name:    "validation without cause",
			err:     NewAppValidationError("EMPTY_FILE", "uploaded file is empty"),
			want:    "[VALIDATION] uploaded file is empty",
			errType: ErrTypeValidation,
		},
		{
			name:    "config",
			err:     NewConfigError("invalid port", nil),
			want:    "[CONFIG] invalid port",
			errType: ErrTypeConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.Equal(t, tt.errType, tt.err.Type)
		})
	}
}

func TestAppError_UnwrapAndContext(t *testing.T) {
	err := NewParsingError("PARSE_FAILED", "bad", io.EOF).WithContext("filename", "a.xlsx")

	assert.True(t, errors.Is(err, io.EOF))
	assert.Equal(t, "a.xlsx", err.Context["filename"])

	var appErr *AppError
	assert.True(t, errors.As(error(err), &appErr))

	empty := &AppError{Type: ErrTypeParsing}
	empty.WithContext("k", 1)
	assert.Equal(t, 1, empty.Context["k"])
}
