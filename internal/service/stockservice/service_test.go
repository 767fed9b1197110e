package stockservice_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/service/stockservice"
)

// MockStockRepository é uma implementação mock da interface StockRepository
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) GetStockLevel(ctx context.Context, productID, locationID int64) (domain.StockLevel, error) {
	args := m.Called(ctx, productID, locationID)
	return args.Get(0).(domain.StockLevel), args.Error(1)
}

func (m *MockStockRepository) ApplyChunk(ctx context.Context, userID, note string, items []domain.StockAdjustment, allowPartial bool) (domain.ChunkOutcome, error) {
	args := m.Called(ctx, userID, note, items, allowPartial)
	return args.Get(0).(domain.ChunkOutcome), args.Error(1)
}

func (m *MockStockRepository) History(ctx context.Context, productID, locationID int64, limit int) ([]domain.InventoryLogEntry, error) {
	args := m.Called(ctx, productID, locationID, limit)
	return args.Get(0).([]domain.InventoryLogEntry), args.Error(1)
}

func newTestLogger() logger.Logger {
	return logger.NewLogger("error")
}

func newService(repo *MockStockRepository) *stockservice.Service {
	// chunk de 50 e limite de 1000 itens, como os padrões de configuração
	return stockservice.NewService(repo, 50, 1000, newTestLogger())
}

func intPtr(v int64) *int64 { return &v }

// appliedOutcome monta um ChunkOutcome de sucesso total para um chunk.
func appliedOutcome(items []domain.StockAdjustment) domain.ChunkOutcome {
	outcome := domain.ChunkOutcome{}
	for _, adj := range items {
		outcome.Applied = append(outcome.Applied, domain.AppliedAdjustment{
			ProductID:   adj.ProductID,
			LocationID:  adj.LocationID,
			Delta:       adj.Delta,
			NewQuantity: 10 + adj.Delta,
			NewVersion:  adj.ExpectedVersion + 1,
		})
	}
	return outcome
}

// --- Testes para AdjustStock (ajuste unitário) ---

func TestAdjustStock_Success_WithExpectedVersion(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := newService(mockRepo)

	req := domain.StockAdjustmentRequest{
		ProductID:       1,
		LocationID:      2,
		Delta:           5,
		ExpectedVersion: intPtr(3),
		Reason:          "recebimento",
	}

	expectedAdjustments := []domain.StockAdjustment{{
		ProductID:       1,
		LocationID:      2,
		Delta:           5,
		ExpectedVersion: 3,
		Reason:          "recebimento",
	}}
	outcome := domain.ChunkOutcome{Applied: []domain.AppliedAdjustment{{
		ProductID: 1, LocationID: 2, Delta: 5, NewQuantity: 15, NewVersion: 4,
	}}}

	mockRepo.On("ApplyChunk", mock.Anything, "user-1", "recebimento", expectedAdjustments, false).
		Return(outcome, nil)

	result, err := svc.AdjustStock(context.Background(), "user-1", req)

	assert.NoError(t, err)
	assert.Equal(t, int64(15), result.Quantity)
	assert.Equal(t, int64(4), result.Version)
	// O repositório não deve ser consultado: a versão veio do cliente
	mockRepo.AssertNotCalled(t, "GetStockLevel", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAdjustStock_Success_WithoutExpectedVersion_UsesCurrent(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := newService(mockRepo)

	// Sem expected_version: o serviço lê a versão corrente (last-write-wins)
	mockRepo.On("GetStockLevel", mock.Anything, int64(1), int64(2)).
		Return(domain.StockLevel{ProductID: 1, LocationID: 2, Quantity: 10, Version: 7}, nil)

	expectedAdjustments := []domain.StockAdjustment{{
		ProductID: 1, LocationID: 2, Delta: -4, ExpectedVersion: 7,
	}}
	outcome := domain.ChunkOutcome{Applied: []domain.AppliedAdjustment{{
		ProductID: 1, LocationID: 2, Delta: -4, NewQuantity: 6, NewVersion: 8,
	}}}
	mockRepo.On("ApplyChunk", mock.Anything, "user-1", "", expectedAdjustments, false).
		Return(outcome, nil)

	req := domain.StockAdjustmentRequest{ProductID: 1, LocationID: 2, Delta: -4}
	result, err := svc.AdjustStock(context.Background(), "user-1", req)

	assert.NoError(t, err)
	assert.Equal(t, int64(6), result.Quantity)
	assert.Equal(t, int64(8), result.Version)
	mockRepo.AssertExpectations(t)
}

func TestAdjustStock_Fail_ZeroDelta(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := newService(mockRepo)

	req := domain.StockAdjustmentRequest{ProductID: 1, LocationID: 2, Delta: 0}
	_, err := svc.AdjustStock(context.Background(), "user-1", req)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "não pode ser zero")
	mockRepo.AssertNotCalled(t, "ApplyChunk", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdjustStock_Fail_VersionConflict(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := newService(mockRepo)

	fr := domain.NewFailureRecord(1, 2, domain.FailureOptimisticLock,
		"A versão esperada (3) não corresponde à versão atual (5).")
	mockRepo.On("ApplyChunk", mock.Anything, "user-1", "", mock.Anything, false).
		Return(domain.ChunkOutcome{Failures: []domain.FailureRecord{fr}}, nil)

	req := domain.StockAdjustmentRequest{ProductID: 1, LocationID: 2, Delta: 5, ExpectedVersion: intPtr(3)}
	_, err := svc.AdjustStock(context.Background(), "user-1", req)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
	mockRepo.AssertExpectations(t)
}

func TestAdjustStock_Fail_ProductNotFound(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := newService(mockRepo)

	fr := domain.NewFailureRecord(99, 2, domain.FailureProductMissing, "Produto 99 não encontrado ou inativo.")
	mockRepo.On("ApplyChunk", mock.Anything, "user-1", "", mock.Anything, false).
		Return(domain.ChunkOutcome{Failures: []domain.FailureRecord{fr}}, nil)

	req := domain.StockAdjustmentRequest{ProductID: 99, LocationID: 2, Delta: 5, ExpectedVersion: intPtr(0)}
	_, err := svc.AdjustStock(context.Background(), "user-1", req)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertExpectations(t)
}

func TestAdjustStock_Fail_RepoError(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := newService(mockRepo)

	repoError := errors.New("falha de conexão com o DB")
	mockRepo.On("ApplyChunk", mock.Anything, "user-1", "", mock.Anything, false).
		Return(domain.ChunkOutcome{}, repoError)

	req := domain.StockAdjustmentRequest{ProductID: 1, LocationID: 2, Delta: 5, ExpectedVersion: intPtr(0)}
	_, err := svc.AdjustStock(context.Background(), "user-1", req)

	assert.Error(t, err)
	assert.IsType(t, &apperror.InternalError{}, err)
	mockRepo.AssertExpectations(t)
}

// --- Testes para AdjustStockBatch ---

func TestAdjustStockBatch_AllSucceed(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := newService(mockRepo)

	req := domain.BatchAdjustmentRequest{
		Items: []domain.BatchAdjustmentItem{
			{ProductID: 1, LocationID: 1, Delta: json.Number("5"), ExpectedVersion: 1},
			{ProductID: 2, LocationID: 1, Delta: json.Number("-3"), ExpectedVersion: 2},
			{ProductID: 3, LocationID: 2, Delta: json.Number("7"), ExpectedVersion: 0},
		},
	}

	mockRepo.On("ApplyChunk", mock.Anything, "user-1", "", mock.Anything, false).
		Return(appliedOutcome([]domain.StockAdjustment{
			{ProductID: 1, LocationID: 1, Delta: 5, ExpectedVersion: 1},
			{ProductID: 2, LocationID: 1, Delta: -3, ExpectedVersion: 2},
			{ProductID: 3, LocationID: 2, Delta: 7, ExpectedVersion: 0},
		}), nil)

	result, err := svc.AdjustStockBatch(context.Background(), "user-1", req)

	assert.NoError(t, err)
	assert.Equal(t, 3, result.Successful)
	assert.Equal(t, 0, result.Failed)
	assert.False(t, result.Partial)
	assert.Len(t, result.Applied, 3)
	assert.Empty(t, result.Failures)
	assert.NotEmpty(t, result.TransactionID)
	mockRepo.AssertExpectations(t)
}

func TestAdjustStockBatch_PartialResult(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := newService(mockRepo)

	req := domain.BatchAdjustmentRequest{
		AllowPartial: true,
		Items: []domain.BatchAdjustmentItem{
			{ProductID: 1, LocationID: 1, Delta: json.Number("5"), ExpectedVersion: 1},
			{ProductID: 2, LocationID: 1, Delta: json.Number("1"), ExpectedVersion: 9},
		},
	}

	// Um item aplica, o outro perde a corrida de versão
	fr := domain.NewFailureRecord(2, 1, domain.FailureOptimisticLock,
		"A versão esperada (9) não corresponde à versão atual (11).")
	outcome := domain.ChunkOutcome{
		Applied:  []domain.AppliedAdjustment{{ProductID: 1, LocationID: 1, Delta: 5, NewQuantity: 15, NewVersion: 2}},
		Failures: []domain.FailureRecord{fr},
	}
	mockRepo.On("ApplyChunk", mock.Anything, "user-1", "", mock.Anything, true).
		Return(outcome, nil)

	result, err := svc.AdjustStockBatch(context.Background(), "user-1", req)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.Partial)
	assert.True(t, result.Failures[0].CanRetry)
	assert.Equal(t, domain.FailureOptimisticLock, result.Failures[0].Reason)
	mockRepo.AssertExpectations(t)
}

func TestAdjustStockBatch_AllOrNothing_WholeChunkFails(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := newService(mockRepo)

	req := domain.BatchAdjustmentRequest{
		AllowPartial: false,
		Items: []domain.BatchAdjustmentItem{
			{ProductID: 1, LocationID: 1, Delta: json.Number("5"), ExpectedVersion: 1},
			{ProductID: 2, LocationID: 1, Delta: json.Number("1"), ExpectedVersion: 9},
		},
	}

	// Sem allow_partial, o aplicador devolve o chunk inteiro como falho,
	// todos com o motivo do item que disparou o abort
	trigger := domain.NewFailureRecord(2, 1, domain.FailureOptimisticLock,
		"A versão esperada (9) não corresponde à versão atual (11).")
	outcome := domain.ChunkOutcome{Failures: []domain.FailureRecord{
		domain.NewFailureRecord(1, 1, trigger.Reason, trigger.Message),
		trigger,
	}}
	mockRepo.On("ApplyChunk", mock.Anything, "user-1", "", mock.Anything, false).
		Return(outcome, nil)

	result, err := svc.AdjustStockBatch(context.Background(), "user-1", req)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Successful)
	assert.Equal(t, 2, result.Failed)
	assert.False(t, result.Partial)
	// Cada item submetido termina com exatamente um FailureRecord
	assert.Len(t, result.Failures, 2)
	for _, f := range result.Failures {
		assert.Equal(t, domain.FailureOptimisticLock, f.Reason)
		assert.True(t, f.CanRetry)
	}
	mockRepo.AssertExpectations(t)
}

func TestAdjustStockBatch_FractionalDelta_RejectedItemOnly(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := newService(mockRepo)

	req := domain.BatchAdjustmentRequest{
		AllowPartial: true,
		Items: []domain.BatchAdjustmentItem{
			{ProductID: 1, LocationID: 1, Delta: json.Number("2.5"), ExpectedVersion: 1}, // fracionário
			{ProductID: 2, LocationID: 1, Delta: json.Number("3"), ExpectedVersion: 2},
		},
	}

	// Apenas o item válido chega ao aplicador
	mockRepo.On("ApplyChunk", mock.Anything, "user-1", "",
		[]domain.StockAdjustment{{ProductID: 2, LocationID: 1, Delta: 3, ExpectedVersion: 2}}, true).
		Return(appliedOutcome([]domain.StockAdjustment{{ProductID: 2, LocationID: 1, Delta: 3, ExpectedVersion: 2}}), nil)

	result, err := svc.AdjustStockBatch(context.Background(), "user-1", req)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.Partial)
	assert.Equal(t, domain.FailureValidation, result.Failures[0].Reason)
	assert.False(t, result.Failures[0].CanRetry)
	assert.Equal(t, int64(1), result.Failures[0].ProductID)
	mockRepo.AssertExpectations(t)
}

func TestAdjustStockBatch_AllValidationFailures(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := newService(mockRepo)

	req := domain.BatchAdjustmentRequest{
		Items: []domain.BatchAdjustmentItem{
			{ProductID: 0, LocationID: 1, Delta: json.Number("5")},  // sem product_id
			{ProductID: 1, LocationID: 1, Delta: json.Number("0")},  // delta zero
			{ProductID: 2, LocationID: 1, Delta: json.Number("")},   // sem delta
		},
	}

	result, err := svc.AdjustStockBatch(context.Background(), "user-1", req)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Successful)
	assert.Equal(t, 3, result.Failed)
	assert.False(t, result.Partial)
	assert.True(t, result.AllValidationFailures())
	// Nenhuma transação deve ser aberta para um lote todo inválido
	mockRepo.AssertNotCalled(t, "ApplyChunk", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdjustStockBatch_LargeBatch_OneInvalidItem(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := newService(mockRepo)

	// 120 itens, chunk de 50: o item #75 é fracionário e cai na validação,
	// sobrando 119 válidos particionados em chunks de 50, 50 e 19
	items := make([]domain.BatchAdjustmentItem, 0, 120)
	for i := 1; i <= 120; i++ {
		delta := json.Number("1")
		if i == 75 {
			delta = json.Number("0.5")
		}
		items = append(items, domain.BatchAdjustmentItem{
			ProductID: int64(i), LocationID: 1, Delta: delta, ExpectedVersion: 0,
		})
	}
	req := domain.BatchAdjustmentRequest{AllowPartial: true, Items: items}

	chunkOf := func(n int) domain.ChunkOutcome {
		outcome := domain.ChunkOutcome{}
		for j := 0; j < n; j++ {
			outcome.Applied = append(outcome.Applied, domain.AppliedAdjustment{
				ProductID: int64(j + 1), LocationID: 1, Delta: 1, NewQuantity: 1, NewVersion: 1,
			})
		}
		return outcome
	}

	matchLen := func(n int) interface{} {
		return mock.MatchedBy(func(chunk []domain.StockAdjustment) bool { return len(chunk) == n })
	}
	mockRepo.On("ApplyChunk", mock.Anything, "user-1", "", matchLen(50), true).
		Return(chunkOf(50), nil).Twice()
	mockRepo.On("ApplyChunk", mock.Anything, "user-1", "", matchLen(19), true).
		Return(chunkOf(19), nil).Once()

	result, err := svc.AdjustStockBatch(context.Background(), "user-1", req)

	assert.NoError(t, err)
	assert.Equal(t, 119, result.Successful)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.Partial)
	assert.Equal(t, domain.FailureValidation, result.Failures[0].Reason)
	assert.Equal(t, int64(75), result.Failures[0].ProductID)
	mockRepo.AssertExpectations(t)
}

func TestAdjustStockBatch_EmptyBatch(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := newService(mockRepo)

	_, err := svc.AdjustStockBatch(context.Background(), "user-1", domain.BatchAdjustmentRequest{})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "ApplyChunk", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdjustStockBatch_OversizedBatch(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := stockservice.NewService(mockRepo, 50, 2, newTestLogger())

	req := domain.BatchAdjustmentRequest{
		Items: []domain.BatchAdjustmentItem{
			{ProductID: 1, LocationID: 1, Delta: json.Number("1"), ExpectedVersion: 0},
			{ProductID: 2, LocationID: 1, Delta: json.Number("1"), ExpectedVersion: 0},
			{ProductID: 3, LocationID: 1, Delta: json.Number("1"), ExpectedVersion: 0},
		},
	}

	_, err := svc.AdjustStockBatch(context.Background(), "user-1", req)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "limite de 2 itens")
	mockRepo.AssertNotCalled(t, "ApplyChunk", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdjustStockBatch_ChunkTransactionLost_BecomesDatabaseErrors(t *testing.T) {
	mockRepo := new(MockStockRepository)
	// Chunks de 2 itens para forçar dois ApplyChunk
	svc := stockservice.NewService(mockRepo, 2, 1000, newTestLogger())

	req := domain.BatchAdjustmentRequest{
		AllowPartial: true,
		Items: []domain.BatchAdjustmentItem{
			{ProductID: 1, LocationID: 1, Delta: json.Number("1"), ExpectedVersion: 0},
			{ProductID: 2, LocationID: 1, Delta: json.Number("1"), ExpectedVersion: 0},
			{ProductID: 3, LocationID: 1, Delta: json.Number("1"), ExpectedVersion: 0},
		},
	}

	firstChunk := []domain.StockAdjustment{
		{ProductID: 1, LocationID: 1, Delta: 1, ExpectedVersion: 0},
		{ProductID: 2, LocationID: 1, Delta: 1, ExpectedVersion: 0},
	}
	secondChunk := []domain.StockAdjustment{
		{ProductID: 3, LocationID: 1, Delta: 1, ExpectedVersion: 0},
	}

	// Primeiro chunk perde a transação inteira; o segundo ainda é processado
	mockRepo.On("ApplyChunk", mock.Anything, "user-1", "", firstChunk, true).
		Return(domain.ChunkOutcome{}, errors.New("driver: bad connection"))
	mockRepo.On("ApplyChunk", mock.Anything, "user-1", "", secondChunk, true).
		Return(appliedOutcome(secondChunk), nil)

	result, err := svc.AdjustStockBatch(context.Background(), "user-1", req)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 2, result.Failed)
	assert.True(t, result.Partial)
	// Nenhum item é silenciosamente descartado: os do chunk perdido viram DATABASE_ERROR
	for _, f := range result.Failures {
		assert.Equal(t, domain.FailureDatabase, f.Reason)
		assert.True(t, f.CanRetry)
	}
	mockRepo.AssertExpectations(t)
}

func TestAdjustStockBatch_RejectionIsIdempotent(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := newService(mockRepo)

	req := domain.BatchAdjustmentRequest{
		Items: []domain.BatchAdjustmentItem{
			{ProductID: 1, LocationID: 1, Delta: json.Number("1.5"), ExpectedVersion: 0},
		},
	}

	first, err1 := svc.AdjustStockBatch(context.Background(), "user-1", req)
	second, err2 := svc.AdjustStockBatch(context.Background(), "user-1", req)

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first.Failures[0].Reason, second.Failures[0].Reason)
	assert.Equal(t, first.Failures[0].Message, second.Failures[0].Message)
	mockRepo.AssertNotCalled(t, "ApplyChunk", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Testes para GetStockLevel / History ---

func TestGetStockLevel_AbsentPairIsZero(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := newService(mockRepo)

	// O repositório sintetiza quantidade 0 / versão 0 para pares sem registro
	mockRepo.On("GetStockLevel", mock.Anything, int64(5), int64(9)).
		Return(domain.StockLevel{ProductID: 5, LocationID: 9, Quantity: 0, Version: 0}, nil)

	level, err := svc.GetStockLevel(context.Background(), 5, 9)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), level.Quantity)
	assert.Equal(t, int64(0), level.Version)
	mockRepo.AssertExpectations(t)
}

func TestGetStockLevel_Fail_InvalidIDs(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := newService(mockRepo)

	_, err := svc.GetStockLevel(context.Background(), 0, 9)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "GetStockLevel", mock.Anything, mock.Anything, mock.Anything)
}

func TestHistory_DefaultLimit(t *testing.T) {
	mockRepo := new(MockStockRepository)
	svc := newService(mockRepo)

	mockRepo.On("History", mock.Anything, int64(1), int64(2), 50).
		Return([]domain.InventoryLogEntry{{ProductID: 1, LocationID: 2, Delta: 5}}, nil)

	entries, err := svc.History(context.Background(), 1, 2, 0)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	mockRepo.AssertExpectations(t)
}
