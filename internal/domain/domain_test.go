package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VivekRai08/Jain-Foam-website/pkg/validator"
)

func TestProduct_JSONFieldNames(t *testing.T) {
	raw, err := json.Marshal(Product{ID: "1", Name: "n", Category: "c", Description: "d", ImageURL: "/i.png"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","name":"n","category":"c","description":"d","imageUrl":"/i.png"}`, string(raw))
}

func TestCategory_JSONFieldNames(t *testing.T) {
	raw, err := json.Marshal(Category{ID: "1", Name: "Sofas", Slug: "sofas", Description: "d", Icon: "Armchair"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","name":"Sofas","slug":"sofas","description":"d","icon":"Armchair"}`, string(raw))
}

func TestContactInquiryInput_Validation(t *testing.T) {
	valid := ContactInquiryInput{
		Name:    "Asha Jain",
		Email:   "asha@example.com",
		Phone:   "9876543210",
		Service: "Sofas",
		Message: "Need a quote for a 3-seater",
	}
	require.NoError(t, validator.Validate(valid))

	tests := []struct {
		name   string
		mutate func(*ContactInquiryInput)
		field  string
	}{
		{"short name", func(in *ContactInquiryInput) { in.Name = "A" }, "name"},
		{"bad email", func(in *ContactInquiryInput) { in.Email = "not-an-email" }, "email"},
		{"short phone", func(in *ContactInquiryInput) { in.Phone = "12345" }, "phone"},
		{"missing service", func(in *ContactInquiryInput) { in.Service = "" }, "service"},
		{"short message", func(in *ContactInquiryInput) { in.Message = "hi" }, "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := validator.Validate(in)

			var valErr *validator.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Contains(t, valErr.Fields(), tt.field)
		})
	}
}

func TestContactInquiryInput_BoundaryLengths(t *testing.T) {
	in := ContactInquiryInput{
		Name:    "Al",
		Email:   "a@b.co",
		Phone:   "0123456789",
		Service: "Other",
		Message: "0123456789",
	}
	assert.NoError(t, validator.Validate(in))
}

func TestServices(t *testing.T) {
	list := Services()
	assert.Len(t, list, 9)
	assert.Equal(t, "Mattresses", list[0])
	assert.Equal(t, "Other", list[8])

	list[0] = "changed"
	assert.Equal(t, "Mattresses", Services()[0])

	assert.True(t, IsKnownService("Carpets & Rugs"))
	assert.False(t, IsKnownService("Plumbing"))
}
