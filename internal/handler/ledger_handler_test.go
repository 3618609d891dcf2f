package handler

import (
	"errors"
	"fmt"
	"testing"

	"go-icarstok-ws/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestLedgerErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown product", service.ErrProductNotFound, 404},
		{"insufficient stock", service.ErrInsufficientStock, 409},
		{"bad field", fmt.Errorf("%w: field 'Quantity' failed on tag 'gt'", service.ErrValidation), 400},
		{"negative price", service.ErrNegativePrice, 400},
		{"bad date", service.ErrInvalidDate, 400},
		{"persistence failure", fmt.Errorf("failed to load product: %w", errors.New("connection reset")), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledgerErrorStatus(tt.err))
		})
	}
}
