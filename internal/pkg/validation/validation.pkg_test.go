package validation

import (
	"delegasi-pay/internal/common/enum"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type referenceForm struct {
	Provider      enum.ProviderEnum `json:"provider" validate:"required,enum"`
	PaymentNumber string            `json:"payment_number" validate:"required,min=5,reference"`
}

func TestMain(m *testing.M) {
	if err := Setup(); err != nil {
		panic(err)
	}
	m.Run()
}

func TestSetupIsIdempotent(t *testing.T) {
	assert.NoError(t, Setup())
}

func TestValidateAcceptsGoodForm(t *testing.T) {
	assert.NoError(t, Validate(referenceForm{Provider: enum.DELEGASI, PaymentNumber: "12345"}))
	assert.Nil(t, FieldErrors(referenceForm{Provider: enum.DELEGASI, PaymentNumber: "12345"}, nil))
}

func TestFieldErrorsDefaultMessages(t *testing.T) {
	errs := FieldErrors(referenceForm{Provider: "other", PaymentNumber: "1234"}, nil)
	require.Len(t, errs, 2)
	assert.Equal(t, "payment_number must be at least 5 characters", errs["payment_number"])
	assert.Contains(t, errs["provider"], "must be one of the allowed enum values")
}

func TestFieldErrorsOverrides(t *testing.T) {
	errs := FieldErrors(referenceForm{}, map[string]string{
		"provider.required":       "Please select a provider",
		"payment_number.required": "Payment number is required",
	})
	assert.Equal(t, "Please select a provider", errs["provider"])
	assert.Equal(t, "Payment number is required", errs["payment_number"])
}

func TestReferenceRejectsWhitespace(t *testing.T) {
	errs := FieldErrors(referenceForm{Provider: enum.DELEGASI, PaymentNumber: "123 45"}, nil)
	assert.Equal(t, "payment_number must not contain spaces or control characters", errs["payment_number"])
}

func TestValidateMessage(t *testing.T) {
	err := Validate(referenceForm{Provider: enum.DELEGASI})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Validation failed: referenceForm.payment_number: payment_number is required")
}
