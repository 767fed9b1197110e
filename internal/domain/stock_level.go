package domain

import "time"

// StockLevel representa o nível de estoque de um produto em um local.
// Inclui uma coluna 'version' para controle de concorrência otimista.
// O registro é criado de forma preguiçosa (quantidade 0, versão 0) na
// primeira vez que um ajuste referencia o par (produto, local); nunca
// é deletado — ausência equivale a estoque zero.
type StockLevel struct {
	ID         string    `json:"id"`
	ProductID  int64     `json:"product_id"`
	LocationID int64     `json:"location_id"`
	Quantity   int64     `json:"quantity"`
	Version    int64     `json:"version"` // Para Controle de Concorrência Otimista (OCC)
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StockAdjustment é um ajuste já validado, pronto para o aplicador.
// Segue o padrão parse-don't-validate: é construído apenas pelo
// validador a partir de um BatchAdjustmentItem.
// O delta assinado é a entrada autoritativa; a quantidade absoluta
// resultante é sempre derivada de (quantidade atual + delta).
type StockAdjustment struct {
	ProductID       int64  `json:"product_id"`
	LocationID      int64  `json:"location_id"`
	Delta           int64  `json:"delta"`
	ExpectedVersion int64  `json:"expected_version"` // Versão observada pelo cliente
	Reason          string `json:"reason,omitempty"` // Texto livre, sem semântica
}

// StockAdjustmentRequest é o payload do ajuste unitário (POST /v1/stock/update).
// Quando ExpectedVersion é omitido, o serviço usa a versão corrente lida
// no momento da chamada (last-write-wins explícito do chamador).
type StockAdjustmentRequest struct {
	ProductID       int64  `json:"product_id"`
	LocationID      int64  `json:"location_id"`
	Delta           int64  `json:"delta"`
	ExpectedVersion *int64 `json:"expected_version,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

// AppliedAdjustment descreve o resultado de um ajuste aplicado com sucesso.
type AppliedAdjustment struct {
	ProductID   int64 `json:"product_id"`
	LocationID  int64 `json:"location_id"`
	Delta       int64 `json:"delta"`
	NewQuantity int64 `json:"new_quantity"`
	NewVersion  int64 `json:"new_version"`
}

// LogType categoriza uma entrada do log de inventário.
type LogType string

const (
	LogTypeAdjustment LogType = "adjustment"
	LogTypeTransfer   LogType = "transfer"
	LogTypeInitial    LogType = "initial"
)

// InventoryLogEntry é o registro imutável de auditoria de uma mutação aplicada.
// Append-only: uma entrada por ajuste aplicado, criada na mesma transação
// que a mutação do StockLevel; nunca atualizada ou removida.
type InventoryLogEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ProductID  int64     `json:"product_id"`
	LocationID int64     `json:"location_id"`
	Delta      int64     `json:"delta"`
	LogType    LogType   `json:"log_type"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
