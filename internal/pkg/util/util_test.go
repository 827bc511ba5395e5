package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("79991234567"))
	assert.False(t, ValidatePhone("7999123456"))
	assert.False(t, ValidatePhone("799912345678"))
	assert.False(t, ValidatePhone("7999123456a"))
	assert.False(t, ValidatePhone(""))
}

func TestGenerateCode(t *testing.T) {
	code := GenerateCode(6)
	require.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9')
	}
}

func TestValidateDTO(t *testing.T) {
	type sample struct {
		Age int `validate:"min=18,max=100"`
	}

	assert.NoError(t, ValidateDTO(&sample{Age: 25}))

	err := ValidateDTO(&sample{Age: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Age")
}
