package phone

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+71234567890", true},
		{"71234567890", true},
		{"+14155552671", true},
		{"", false},
		{"+0123456789", false},
		{"not-a-phone", false},
		{"+7 123 456 78 90", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.phone))
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	v := validator.New()
	RegisterValidation(v)

	type req struct {
		Phone string `validate:"required,phone"`
	}

	assert.NoError(t, v.Struct(req{Phone: "+71234567890"}))
	assert.Error(t, v.Struct(req{Phone: "garbage"}))
}
