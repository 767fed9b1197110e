package stockservice_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"goestoque/internal/domain"
	"goestoque/internal/service/stockservice"
)

func TestValidateItem_Valid(t *testing.T) {
	item := domain.BatchAdjustmentItem{
		ProductID:       1,
		LocationID:      2,
		Delta:           json.Number("-7"),
		ExpectedVersion: 3,
		Reason:          "cycle count",
	}

	adj, failure := stockservice.ValidateItem(item)

	assert.Nil(t, failure)
	assert.Equal(t, int64(1), adj.ProductID)
	assert.Equal(t, int64(2), adj.LocationID)
	assert.Equal(t, int64(-7), adj.Delta)
	assert.Equal(t, int64(3), adj.ExpectedVersion)
	assert.Equal(t, "cycle count", adj.Reason)
}

func TestValidateItem_Fail_MissingProductID(t *testing.T) {
	item := domain.BatchAdjustmentItem{LocationID: 2, Delta: json.Number("5")}

	_, failure := stockservice.ValidateItem(item)

	assert.NotNil(t, failure)
	assert.Equal(t, domain.FailureValidation, failure.Reason)
	assert.False(t, failure.CanRetry)
	assert.Contains(t, failure.Message, "product_id")
}

func TestValidateItem_Fail_MissingDelta(t *testing.T) {
	item := domain.BatchAdjustmentItem{ProductID: 1, LocationID: 2}

	_, failure := stockservice.ValidateItem(item)

	assert.NotNil(t, failure)
	assert.Equal(t, domain.FailureValidation, failure.Reason)
	assert.Contains(t, failure.Message, "obrigatório")
}

func TestValidateItem_Fail_FractionalDelta(t *testing.T) {
	item := domain.BatchAdjustmentItem{ProductID: 1, LocationID: 2, Delta: json.Number("2.5")}

	_, failure := stockservice.ValidateItem(item)

	assert.NotNil(t, failure)
	assert.Equal(t, domain.FailureValidation, failure.Reason)
	assert.Contains(t, failure.Message, "2.5")
}

func TestValidateItem_Fail_ZeroDelta(t *testing.T) {
	item := domain.BatchAdjustmentItem{ProductID: 1, LocationID: 2, Delta: json.Number("0")}

	_, failure := stockservice.ValidateItem(item)

	assert.NotNil(t, failure)
	assert.Contains(t, failure.Message, "não pode ser zero")
}

func TestValidateItem_Fail_NegativeExpectedVersion(t *testing.T) {
	item := domain.BatchAdjustmentItem{ProductID: 1, LocationID: 2, Delta: json.Number("1"), ExpectedVersion: -1}

	_, failure := stockservice.ValidateItem(item)

	assert.NotNil(t, failure)
	assert.Contains(t, failure.Message, "expected_version")
}

func TestValidateItem_Fail_NegativeNewQuantity(t *testing.T) {
	item := domain.BatchAdjustmentItem{
		ProductID:   1,
		LocationID:  2,
		Delta:       json.Number("-5"),
		NewQuantity: json.Number("-3"),
	}

	_, failure := stockservice.ValidateItem(item)

	assert.NotNil(t, failure)
	assert.Equal(t, domain.FailureValidation, failure.Reason)
	assert.NotNil(t, failure.AttemptedQuantity)
	assert.Equal(t, int64(-3), *failure.AttemptedQuantity)
}

func TestValidateItem_NewQuantityIsStructuralOnly(t *testing.T) {
	// new_quantity não precisa ser coerente com o delta: o delta é autoritativo
	item := domain.BatchAdjustmentItem{
		ProductID:   1,
		LocationID:  2,
		Delta:       json.Number("5"),
		NewQuantity: json.Number("999"),
	}

	adj, failure := stockservice.ValidateItem(item)

	assert.Nil(t, failure)
	assert.Equal(t, int64(5), adj.Delta)
}

func TestValidateBatch_PreservesSubmissionOrder(t *testing.T) {
	items := []domain.BatchAdjustmentItem{
		{ProductID: 10, LocationID: 1, Delta: json.Number("1")},
		{ProductID: 0, LocationID: 1, Delta: json.Number("1")}, // inválido
		{ProductID: 30, LocationID: 1, Delta: json.Number("1")},
		{ProductID: 40, LocationID: 1, Delta: json.Number("x")}, // inválido
		{ProductID: 50, LocationID: 1, Delta: json.Number("1")},
	}

	valid, failures := stockservice.ValidateBatch(items)

	assert.Len(t, valid, 3)
	assert.Len(t, failures, 2)
	assert.Equal(t, int64(10), valid[0].ProductID)
	assert.Equal(t, int64(30), valid[1].ProductID)
	assert.Equal(t, int64(50), valid[2].ProductID)
	assert.Equal(t, int64(0), failures[0].ProductID)
	assert.Equal(t, int64(40), failures[1].ProductID)
}
