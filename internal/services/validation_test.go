package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONName(t *testing.T) {
	assert.Equal(t, "start_date", jsonName("StartDate"))
	assert.Equal(t, "tenant", jsonName("Tenant"))
	assert.Equal(t, "digital_signature", jsonName("DigitalSignature"))
}

func TestValidatePayload_Valid(t *testing.T) {
	v := newValidator()
	type payload struct {
		Name string `json:"name" validate:"required"`
	}
	assert.NoError(t, validatePayload(v, payload{Name: "x"}))

	err := validatePayload(v, payload{})
	assert.EqualError(t, err, "name is required")
}
