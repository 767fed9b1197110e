package domain

import (
	"time"
)

// Location representa um local de estoque físico ou lógico no sistema
// (depósito, loja, prateleira virtual). O controle de estoque é feito
// por par (produto, local).
type Location struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"` // Código curto único (e.g. "CD-01")
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"` // Soft delete: local inativo é tratado como inexistente
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
