package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/tagdesk/tagdesk-server/internal/errors"
	"github.com/tagdesk/tagdesk-server/internal/validation"
)

type createRequest struct {
	Title string `json:"title" validate:"min=3"`
}

type exportRequest struct {
	Format string `json:"format,omitempty" validate:"required,oneof=json yaml csv"`
	Rows   int    `json:"rows" validate:"gte=1,lte=1000"`
	Note   string `validate:"max=5"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(createRequest{Title: "abc"}))
	assert.NoError(t, v.Validate(exportRequest{Format: "yaml", Rows: 10}))
}

func TestValidator_TitleMinimum(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"empty", "", true},
		{"two chars", "ab", true},
		{"three chars", "abc", false},
		{"multibyte counted as runes", "日本語", false},
		{"two accented runes", "éé", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(createRequest{Title: tt.title})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())
			assert.Equal(t, "Minimum 3 characters.", domainErr.Message)
			assert.Equal(t, map[string]string{"title": "Minimum 3 characters."}, domainErr.Details)
		})
	}
}

func TestValidator_FieldNamesAndMessages(t *testing.T) {
	v := validation.New()

	err := v.Validate(exportRequest{Format: "xml", Rows: 0, Note: "too long"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "Must be one of: json yaml csv.", details["format"])
	assert.Equal(t, "Must be at least 1.", details["rows"])
	assert.Equal(t, "Maximum 5 characters.", details["Note"], "fields without a json tag keep their Go name")
	assert.Equal(t, details["format"], domainErr.Message, "first failing field becomes the message")
}
