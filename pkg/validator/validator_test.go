package validator_test

import (
	"testing"

	"go-icarstok-ws/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineItem struct {
	ProductID uuid.UUID `validate:"uuid_required"`
	Quantity  int       `validate:"required,gt=0"`
}

func TestValidateStructZeroUUID(t *testing.T) {
	errs := validator.ValidateStruct(&lineItem{Quantity: 1})
	require.Len(t, errs, 1)
	assert.Equal(t, "uuid_required", errs[0].Tag)
}

func TestValidateStructNonPositiveQuantity(t *testing.T) {
	errs := validator.ValidateStruct(&lineItem{ProductID: uuid.New(), Quantity: 0})
	require.Len(t, errs, 1)
	assert.Equal(t, "gt", errs[0].Tag)
}

func TestValidateStructValid(t *testing.T) {
	assert.Empty(t, validator.ValidateStruct(&lineItem{ProductID: uuid.New(), Quantity: 3}))
}
