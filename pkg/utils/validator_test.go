package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email string `validate:"required,email"`
	Name  string `validate:"max=3"`
}

type paging struct {
	PerPage int `validate:"min=1,max=100"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(sample{Email: "a@b.co", Name: "abc"}))

	errs := ValidateStruct(sample{Email: "", Name: "abcd"})
	assert.Equal(t, map[string]string{
		"Email": "This field is required",
		"Name":  "Maximum length is 3",
	}, errs)
	assert.Equal(t, "Email: This field is required; Name: Maximum length is 3", FormatValidationErrors(errs))
}

func TestValidateStruct_NumericBounds(t *testing.T) {
	assert.Nil(t, ValidateStruct(paging{PerPage: 100}))
	assert.Equal(t, map[string]string{"PerPage": "Maximum value is 100"}, ValidateStruct(paging{PerPage: 500}))
	assert.Equal(t, map[string]string{"PerPage": "Minimum value is 1"}, ValidateStruct(paging{PerPage: 0}))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("1234", 4)
	assert.NoError(t, err)
	assert.True(t, CheckPasswordHash("1234", hash))
	assert.False(t, CheckPasswordHash("12345", hash))
	assert.False(t, CheckPasswordHash("1234", "plain"))
}
