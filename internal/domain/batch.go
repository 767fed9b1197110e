package domain

import (
	"encoding/json"
	"time"
)

// BatchAdjustmentItem é um item bruto do payload de ajuste em massa,
// exatamente como chega do cliente. Delta e NewQuantity usam json.Number
// para que um valor fracionário (e.g. 2.5) seja detectável item a item
// pelo validador, em vez de derrubar o decode do payload inteiro.
type BatchAdjustmentItem struct {
	ProductID       int64       `json:"product_id"`
	LocationID      int64       `json:"location_id"`
	Delta           json.Number `json:"delta"`
	NewQuantity     json.Number `json:"new_quantity,omitempty"` // Opcional; usado só para checagem estrutural
	ExpectedVersion int64       `json:"expected_version"`
	Reason          string      `json:"reason,omitempty"`
}

// BatchAdjustmentRequest é o payload da requisição POST /v1/stock/batch.
type BatchAdjustmentRequest struct {
	Items        []BatchAdjustmentItem `json:"items"`
	AllowPartial bool                  `json:"allow_partial"`
	Note         string                `json:"note,omitempty"`
}

// FailureReason é a taxonomia fechada de motivos de falha por item.
type FailureReason string

const (
	FailureValidation      FailureReason = "VALIDATION_ERROR"
	FailureProductMissing  FailureReason = "PRODUCT_NOT_FOUND"
	FailureLocationMissing FailureReason = "LOCATION_NOT_FOUND"
	FailureOptimisticLock  FailureReason = "OPTIMISTIC_LOCK_ERROR"
	FailureConcurrent      FailureReason = "CONCURRENT_UPDATE"
	FailureDatabase        FailureReason = "DATABASE_ERROR"
	FailureUnknown         FailureReason = "UNKNOWN_ERROR"
	FailureNetwork         FailureReason = "NETWORK_ERROR"
)

// Retryable indica se o cliente pode resubmeter o item sem correção,
// após reconsultar o estado atual do estoque.
func (r FailureReason) Retryable() bool {
	switch r {
	case FailureOptimisticLock, FailureConcurrent, FailureDatabase, FailureUnknown, FailureNetwork:
		return true
	}
	return false
}

// FailureRecord carrega o detalhe de um item que não pôde ser aplicado.
// Todo item submetido termina "aplicado" ou com exatamente um FailureRecord.
type FailureRecord struct {
	ProductID         int64         `json:"product_id"`
	ProductName       string        `json:"product_name,omitempty"`
	LocationID        int64         `json:"location_id"`
	LocationName      string        `json:"location_name,omitempty"`
	AttemptedQuantity *int64        `json:"attempted_quantity,omitempty"`
	CurrentQuantity   *int64        `json:"current_quantity,omitempty"`
	Reason            FailureReason `json:"reason"`
	Message           string        `json:"message"`
	Timestamp         time.Time     `json:"timestamp"`
	CanRetry          bool          `json:"can_retry"`
}

// NewFailureRecord monta um registro de falha com a retryabilidade
// derivada do motivo.
func NewFailureRecord(productID, locationID int64, reason FailureReason, message string) FailureRecord {
	return FailureRecord{
		ProductID:  productID,
		LocationID: locationID,
		Reason:     reason,
		Message:    message,
		Timestamp:  time.Now().UTC(),
		CanRetry:   reason.Retryable(),
	}
}

// ChunkOutcome é o resultado da aplicação de um chunk pelo aplicador
// transacional: itens aplicados (com nova versão) e falhas por item.
type ChunkOutcome struct {
	Applied  []AppliedAdjustment
	Failures []FailureRecord
}

// BatchResult é o resultado consolidado de uma submissão em lote.
// Construído por submissão, retornado ao cliente e não persistido.
type BatchResult struct {
	Successful    int                 `json:"successful"`
	Failed        int                 `json:"failed"`
	Partial       bool                `json:"partial"` // true sse houve sucessos E falhas
	Applied       []AppliedAdjustment `json:"applied,omitempty"`
	Failures      []FailureRecord     `json:"failures"`
	TransactionID string              `json:"transaction_id,omitempty"` // Correlaciona os chunks de um lote
}

// AllValidationFailures informa se toda falha do lote é de validação.
// O handler usa isso para escolher entre 400 e 500 quando nada foi aplicado.
func (b BatchResult) AllValidationFailures() bool {
	if len(b.Failures) == 0 {
		return false
	}
	for _, f := range b.Failures {
		if f.Reason != FailureValidation {
			return false
		}
	}
	return true
}
