package stockservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
)

// StockRepository define o contrato que o Serviço de Estoque espera da camada
// de Persistência (o Version Store e o aplicador transacional).
type StockRepository interface {
	GetStockLevel(ctx context.Context, productID, locationID int64) (domain.StockLevel, error)
	ApplyChunk(ctx context.Context, userID, note string, items []domain.StockAdjustment, allowPartial bool) (domain.ChunkOutcome, error)
	History(ctx context.Context, productID, locationID int64, limit int) ([]domain.InventoryLogEntry, error)
}

// Service orquestra a reconciliação de estoque em lote:
// validador → particionador → aplicador (um chunk por transação) → agregador.
type Service struct {
	repo      StockRepository
	chunkSize int
	maxItems  int
	logger    logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Estoque.
// chunkSize e maxItems vêm da configuração (BATCH_CHUNK_SIZE, BATCH_MAX_ITEMS).
func NewService(repo StockRepository, chunkSize, maxItems int, logger logger.Logger) *Service {
	return &Service{repo: repo, chunkSize: chunkSize, maxItems: maxItems, logger: logger}
}

// GetStockLevel retorna o nível de estoque atual de um produto em um local.
// Ausência de registro é reportada como estoque zero.
func (s *Service) GetStockLevel(ctx domain.Context, productID, locationID int64) (domain.StockLevel, error) {
	if productID <= 0 || locationID <= 0 {
		return domain.StockLevel{}, apperror.NewValidationError("product_id e location_id devem ser inteiros positivos.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetStockLevel", nil)
	}

	return s.repo.GetStockLevel(ctxGo, productID, locationID)
}

// History retorna as entradas mais recentes do log de inventário.
func (s *Service) History(ctx domain.Context, productID, locationID int64, limit int) ([]domain.InventoryLogEntry, error) {
	if productID <= 0 || locationID <= 0 {
		return nil, apperror.NewValidationError("product_id e location_id devem ser inteiros positivos.")
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para History", nil)
	}

	return s.repo.History(ctxGo, productID, locationID, limit)
}

// AdjustStock aplica um ajuste unitário ao nível de estoque de um produto em
// um local. Internamente é um lote de um item (chunk único, all-or-nothing),
// de modo que o caminho de escrita é sempre o mesmo aplicador transacional.
func (s *Service) AdjustStock(ctx domain.Context, userID string, req domain.StockAdjustmentRequest) (domain.StockLevel, error) {
	s.logger.Debug("Iniciando ajuste de estoque no serviço.", map[string]interface{}{
		"product_id":  req.ProductID,
		"location_id": req.LocationID,
		"delta":       req.Delta,
	})

	if req.ProductID <= 0 || req.LocationID <= 0 {
		return domain.StockLevel{}, apperror.NewValidationError("product_id e location_id devem ser inteiros positivos.")
	}
	if req.Delta == 0 {
		return domain.StockLevel{}, apperror.NewValidationError("O ajuste de estoque (delta) não pode ser zero.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para AdjustStock", nil)
	}

	// Sem expected_version no payload, usa a versão corrente: o chamador
	// opta explicitamente por last-write-wins.
	expectedVersion := int64(0)
	if req.ExpectedVersion != nil {
		expectedVersion = *req.ExpectedVersion
	} else {
		current, err := s.repo.GetStockLevel(ctxGo, req.ProductID, req.LocationID)
		if err != nil {
			return domain.StockLevel{}, err
		}
		expectedVersion = current.Version
	}

	adjustment := domain.StockAdjustment{
		ProductID:       req.ProductID,
		LocationID:      req.LocationID,
		Delta:           req.Delta,
		ExpectedVersion: expectedVersion,
		Reason:          req.Reason,
	}

	outcome, err := s.repo.ApplyChunk(ctxGo, userID, req.Reason, []domain.StockAdjustment{adjustment}, false)
	if err != nil {
		s.logger.Error("Falha ao ajustar estoque no repositório.", err)
		return domain.StockLevel{}, apperror.NewInternalError("Falha interna ao ajustar estoque.", err)
	}

	if len(outcome.Applied) == 0 {
		if len(outcome.Failures) == 0 {
			return domain.StockLevel{}, apperror.NewInternalError("Ajuste não produziu desfecho.", nil)
		}
		return domain.StockLevel{}, failureToError(outcome.Failures[0])
	}

	applied := outcome.Applied[0]
	s.logger.Info("Estoque ajustado com sucesso.", map[string]interface{}{
		"product_id":   applied.ProductID,
		"location_id":  applied.LocationID,
		"new_quantity": applied.NewQuantity,
		"new_version":  applied.NewVersion,
	})
	return domain.StockLevel{
		ProductID:  applied.ProductID,
		LocationID: applied.LocationID,
		Quantity:   applied.NewQuantity,
		Version:    applied.NewVersion,
	}, nil
}

// AdjustStockBatch processa uma submissão em lote: valida estruturalmente,
// particiona em chunks limitados, aplica cada chunk em sua própria transação
// (sequencialmente, na ordem de submissão) e agrega os desfechos.
//
// O serviço nunca deixa vazar um erro cru: falhas inesperadas viram um
// BatchResult de melhor esforço com um único registro UNKNOWN_ERROR. Erros
// retornados aqui são apenas estruturais (lote vazio, lote grande demais) e
// resolvidos antes de qualquer transação.
func (s *Service) AdjustStockBatch(ctx domain.Context, userID string, req domain.BatchAdjustmentRequest) (result domain.BatchResult, err error) {
	transactionID := uuid.New().String()

	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("Pânico durante processamento do lote.", fmt.Errorf("panic: %v", rec))
			fr := domain.NewFailureRecord(0, 0, domain.FailureUnknown,
				"Falha inesperada ao processar o lote. Nenhum item deste processamento foi confirmado.")
			result = domain.BatchResult{
				Failed:        1,
				Failures:      []domain.FailureRecord{fr},
				TransactionID: transactionID,
			}
			err = nil
		}
	}()

	s.logger.Info("Iniciando reconciliação de estoque em lote.", map[string]interface{}{
		"transaction_id": transactionID,
		"items":          len(req.Items),
		"allow_partial":  req.AllowPartial,
	})

	if len(req.Items) == 0 {
		return domain.BatchResult{}, apperror.NewValidationError("O lote não contém itens.")
	}
	if s.maxItems > 0 && len(req.Items) > s.maxItems {
		return domain.BatchResult{}, apperror.NewValidationError(
			fmt.Sprintf("O lote excede o limite de %d itens.", s.maxItems))
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para AdjustStockBatch", nil)
	}

	// 1. Validação estrutural, sem abrir transação.
	valid, validationFailures := ValidateBatch(req.Items)

	// 2. Particionamento em chunks limitados.
	chunks := Partition(valid, s.chunkSize)

	// 3. Aplicação sequencial, um chunk por transação. Uma falha de chunk
	// não interrompe os chunks seguintes.
	outcomes := make([]domain.ChunkOutcome, 0, len(chunks))
	for i, chunk := range chunks {
		outcome, applyErr := s.repo.ApplyChunk(ctxGo, userID, req.Note, chunk, req.AllowPartial)
		if applyErr != nil {
			// Transação do chunk inteira perdida (timeout, falha de commit):
			// cada item vira DATABASE_ERROR retryable.
			s.logger.Error(fmt.Sprintf("Chunk %d falhou por erro de persistência.", i), applyErr)
			outcome = domain.ChunkOutcome{}
			for _, adj := range chunk {
				outcome.Failures = append(outcome.Failures, domain.NewFailureRecord(
					adj.ProductID, adj.LocationID, domain.FailureDatabase,
					"Falha de persistência ao aplicar o chunk. Reconsulte o estoque e tente novamente."))
			}
		}
		outcomes = append(outcomes, outcome)
	}

	// 4. Agregação.
	result = Aggregate(transactionID, validationFailures, outcomes)

	s.logger.Info("Reconciliação de estoque em lote concluída.", map[string]interface{}{
		"transaction_id": result.TransactionID,
		"successful":     result.Successful,
		"failed":         result.Failed,
		"partial":        result.Partial,
	})
	return result, nil
}

// failureToError traduz um FailureRecord do aplicador para o erro tipado
// correspondente da API (usado pelo caminho de ajuste unitário).
func failureToError(fr domain.FailureRecord) error {
	switch fr.Reason {
	case domain.FailureValidation:
		return apperror.NewValidationError(fr.Message)
	case domain.FailureProductMissing, domain.FailureLocationMissing:
		return apperror.NewNotFoundError(fr.Message)
	case domain.FailureOptimisticLock, domain.FailureConcurrent:
		return apperror.NewConflictError(fr.Message)
	default:
		return apperror.NewInternalError(fr.Message, nil)
	}
}
