package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/feet/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "sheet",
			ID:       "Parkdale",
		}
		assert.Equal(t, `sheet "Parkdale" not found`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("sheet", "King Club")
		wrapped := fmt.Errorf("opening venue: %w", base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "team1",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field team1: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "roster has no rounds",
		}
		assert.Equal(t, "validation failed: roster has no rounds", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapValidation("grade", nil))
		err := pkgerrors.WrapValidation("grade", errors.New("blank"))
		assert.True(t, pkgerrors.IsValidationError(err))
		assert.Contains(t, err.Error(), "grade")
	})
}

func TestSchemaError(t *testing.T) {
	t.Run("with cell", func(t *testing.T) {
		base := errors.New(`cannot parse "noon"`)
		err := pkgerrors.NewSchemaError("Parkdale", "B9", "unparsable time", base)
		assert.Equal(t, `schema violation in sheet "Parkdale" at B9: unparsable time`, err.Error())
		assert.True(t, pkgerrors.IsSchemaError(err))
		assert.Equal(t, base, errors.Unwrap(err))
	})

	t.Run("without cell", func(t *testing.T) {
		err := pkgerrors.NewSchemaError("King Club", "", "court headers out of order", nil)
		assert.Equal(t, `schema violation in sheet "King Club": court headers out of order`, err.Error())
	})

	t.Run("wrap helper", func(t *testing.T) {
		err := pkgerrors.WrapSchema("Mentone Girls", "B7", errors.New("bad"))
		var schemaErr *pkgerrors.SchemaError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, "B7", schemaErr.Cell)
	})
}

func TestCourtError(t *testing.T) {
	err := pkgerrors.NewCourtError("Parkdale", 9)
	assert.Equal(t, "court 9 at Parkdale has no defined ordinal", err.Error())
	assert.True(t, pkgerrors.IsMisaligned(err))
	assert.False(t, pkgerrors.IsSchemaError(err))

	err = pkgerrors.NewCourtError("", 0)
	assert.Equal(t, "court 0 has no defined ordinal", err.Error())
}

func TestIOError(t *testing.T) {
	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("save", "1st Jul 2023.xlsx", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
		assert.Contains(t, err.Error(), "save")
		assert.Contains(t, err.Error(), "1st Jul 2023.xlsx")
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapIO("read", "x", nil))
		err := pkgerrors.WrapIO("open", "template.xlsx", errors.New("missing"))
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "open", ioErr.Operation)
		assert.Equal(t, "template.xlsx", ioErr.Path)
	})
}

func TestParseError(t *testing.T) {
	t.Run("with file", func(t *testing.T) {
		err := pkgerrors.NewParseError("yaml", "roster.yaml", "invalid indentation", nil)
		assert.Equal(t, "parse error in yaml file roster.yaml: invalid indentation", err.Error())
	})

	t.Run("format only", func(t *testing.T) {
		err := pkgerrors.WrapParse("html", "", errors.New("missing date heading"))
		assert.Equal(t, "html parse error: missing date heading", err.Error())
	})
}

func TestFetchError(t *testing.T) {
	tests := []struct {
		name      string
		err       *pkgerrors.FetchError
		retryable bool
		message   string
	}{
		{
			name:      "server error",
			err:       pkgerrors.NewFetchError("https://example.com/a", 503, nil),
			retryable: true,
			message:   "fetching https://example.com/a: unexpected status 503",
		},
		{
			name:      "rate limited",
			err:       pkgerrors.NewFetchError("https://example.com/a", 429, nil),
			retryable: true,
		},
		{
			name:      "not found",
			err:       pkgerrors.NewFetchError("https://example.com/a", 404, nil),
			retryable: false,
		},
		{
			name:      "transport error",
			err:       pkgerrors.NewFetchError("https://example.com/a", 0, errors.New("connection reset")),
			retryable: true,
			message:   "fetching https://example.com/a: connection reset",
		},
		{
			name:      "page too large",
			err:       pkgerrors.NewFetchError("https://example.com/a", 200, pkgerrors.ErrPageTooLarge),
			retryable: false,
			message:   "fetching https://example.com/a: page too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, tt.err.Retryable())
			assert.True(t, pkgerrors.IsFetchError(tt.err))
			if tt.message != "" {
				assert.Equal(t, tt.message, tt.err.Error())
			}
		})
	}
}
