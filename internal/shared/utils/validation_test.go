package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyforge/internal/shared/errors"
)

type validatedPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3"`
	Mode     string `json:"mode" validate:"oneof=console json"`
	Retries  int    `json:"retries" validate:"min=1,max=5"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct passes", func(t *testing.T) {
		payload := validatedPayload{
			Email:    "owner@example.com",
			Username: "owner",
			Mode:     "console",
			Retries:  3,
		}

		assert.NoError(t, ValidateStruct(&payload))
	})

	t.Run("failures fold into one validation error", func(t *testing.T) {
		payload := validatedPayload{
			Email:    "not-an-email",
			Username: "ab",
			Mode:     "verbose",
			Retries:  0,
		}

		err := ValidateStruct(&payload)
		require.Error(t, err)

		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, 400, appErr.Code)
		assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)

		// Field names come from the json tags, messages from the
		// failing rule.
		assert.Contains(t, appErr.Details, "email must be a valid email address")
		assert.Contains(t, appErr.Details, "username must be at least 3")
		assert.Contains(t, appErr.Details, "mode must be one of: console json")
		assert.Contains(t, appErr.Details, "retries must be at least 1")
	})

	t.Run("untagged field names fall back to struct names", func(t *testing.T) {
		payload := struct {
			Level string `validate:"oneof=debug info warn error"`
		}{Level: "verbose"}

		err := ValidateStruct(&payload)
		require.Error(t, err)

		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Contains(t, appErr.Details, "Level must be one of: debug info warn error")
	})
}
