package finance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"mochini/internal/core/apperror"
)

func TestExpenseCategoryValidate(t *testing.T) {
	cases := []struct {
		name     string
		category ExpenseCategory
		wantErr  bool
	}{
		{"valid", ExpenseCategory{Nombre: "Renta", Descripcion: "Renta del local"}, false},
		{"name only", ExpenseCategory{Nombre: "Servicios"}, false},
		{"missing name", ExpenseCategory{Descripcion: "sin nombre"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.category.Validate(context.Background())
			if tc.wantErr {
				assert.True(t, apperror.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
