package domain

import (
	"time"
)

// Product representa o item principal do catálogo (a Entidade).
// O ID é uma chave numérica gerada pelo banco (BIGSERIAL).
type Product struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"` // Stock Keeping Unit (código único de produto)
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	IsActive    bool      `json:"is_active"` // Soft delete: produto inativo é tratado como inexistente
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// --- Interfaces de Contrato (O CORAÇÃO DA ARQUITETURA LIMPA) ---

// ProductService é a interface que a camada de Serviço (Business Logic) DEVE implementar.
// Ela define o que o Handler (Camada API) pode pedir para a camada de Serviço fazer.
type ProductService interface {
	CreateProduct(ctx Context, product Product) (Product, error)
	GetProductByID(ctx Context, id int64) (Product, error)
	ListProducts(ctx Context, filter ProductFilter) ([]Product, error)
	UpdateProduct(ctx Context, product Product) (Product, error)
	DeleteProduct(ctx Context, id int64) error
}

// ProductRepository é a interface que a camada de Repositório (Data Access) DEVE implementar.
// Ela define o que a camada de Serviço pode pedir para a camada de Persistência (DB/Cache) fazer.
type ProductRepository interface {
	Save(ctx Context, product Product) (Product, error)
	FindByID(ctx Context, id int64) (Product, error)
	FindAll(ctx Context, filter ProductFilter) ([]Product, error)
	Update(ctx Context, product Product) (Product, error)
	Delete(ctx Context, id int64) error
}

// --- Estruturas Auxiliares (Filtros e Contexto) ---

// ProductFilter define os parâmetros de busca e paginação.
type ProductFilter struct {
	Page       int
	Limit      int
	Name       string
	SKU        string
	ActiveOnly bool
}

// Context é uma interface que encapsula o Go context.Context.
// É usado para propagar o timeout e sinais de cancelamento pelas camadas.
// Isso evita a dependência direta do pacote "context".
type Context interface{}
