package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"goestoque/internal/domain"
	"goestoque/internal/errors"
	"goestoque/internal/pkg/cache"
	"goestoque/internal/pkg/logger"
)

// ProductRepository implementa a interface domain.ProductRepository.
// Ela contém as conexões necessárias para acessar dados.
type ProductRepository struct {
	DB        *sql.DB      // Conexão principal com o banco de dados (PostgreSQL)
	Cache     cache.Client // Cliente para operações de cache (Redis)
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewProductRepository cria e retorna uma nova instância do Repositório.
// Aqui injetamos as dependências de Infraestrutura (DB e Cache).
func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout time.Duration, logger logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Define a chave de cache para produtos.
const productCacheKey = "product:%d"

// Save persiste um novo Produto no banco de dados.
// O ID é gerado pelo banco (BIGSERIAL) e devolvido via RETURNING.
func (r *ProductRepository) Save(ctx domain.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	product.IsActive = true

	const productSQL = `
        INSERT INTO products (sku, name, description, price, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id`

	err := r.DB.QueryRowContext(ctxTimeout, productSQL,
		product.SKU,
		product.Name,
		product.Description,
		product.Price,
		product.IsActive,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)

	if err != nil {
		r.logger.Error("Falha ao inserir produto no DB.", err)
		return domain.Product{}, errors.NewDBError("Falha ao inserir produto", err)
	}

	r.logger.Info("Produto criado com sucesso.", map[string]interface{}{"id": product.ID, "sku": product.SKU})
	return product, nil
}

// FindByID busca um produto pelo ID, utilizando a estratégia Cache-Aside.
func (r *ProductRepository) FindByID(ctx domain.Context, id int64) (domain.Product, error) {
	ctxGo, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(productCacheKey, id)
	var product domain.Product

	// --- Estratégia Cache-Aside (READ) ---
	cachedData, err := r.Cache.Get(ctxGo, key)
	if err == nil {
		// Cache HIT
		if json.Unmarshal([]byte(cachedData), &product) == nil {
			return product, nil
		}
		// Se a desserialização falhar, continua para o DB
	} else if err != cache.ErrCacheMiss {
		// Erro real de cache (ex: conexão perdida): logamos, mas continuamos.
		r.logger.Warn("Falha ao ler produto do cache.", map[string]interface{}{"key": key, "error": err.Error()})
	}

	// --- Busca no Banco de Dados (PostgreSQL) ---
	productSQL := `
        SELECT id, sku, name, description, price, is_active, created_at, updated_at
        FROM products
        WHERE id = $1`

	row := r.DB.QueryRowContext(ctxGo, productSQL, id)

	err = row.Scan(
		&product.ID,
		&product.SKU,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		// O Serviço receberá isso e o Handler o mapeará para 404.
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %d não existe na base de dados.", id))
	}
	if err != nil {
		return domain.Product{}, errors.NewDBError("Falha ao buscar produto no DB", err)
	}

	// --- Estratégia Cache-Aside (WRITE) ---
	productJSON, marshalErr := json.Marshal(product)
	if marshalErr == nil {
		// TTL de 5 minutos
		r.Cache.Set(ctxGo, key, productJSON, 5*time.Minute)
	}

	return product, nil
}

// FindAll lista produtos com filtros e paginação.
func (r *ProductRepository) FindAll(ctx domain.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	query := `
        SELECT id, sku, name, description, price, is_active, created_at, updated_at
        FROM products
        WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
          AND ($2 = '' OR sku = $2)
          AND (NOT $3 OR is_active = TRUE)
        ORDER BY name
        LIMIT $4 OFFSET $5`

	rows, err := r.DB.QueryContext(ctxTimeout, query, filter.Name, filter.SKU, filter.ActiveOnly, filter.Limit, offset)
	if err != nil {
		r.logger.Error("Falha ao executar FindAll de produtos.", err)
		return nil, errors.NewDBError("Falha ao listar produtos", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			r.logger.Error("Falha ao mapear produto na iteração de FindAll.", err)
			return nil, errors.NewDBError("Falha ao mapear produtos do DB", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração de produtos", err)
	}

	return products, nil
}

// Update atualiza os dados de um produto existente e invalida o cache.
func (r *ProductRepository) Update(ctx domain.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	product.UpdatedAt = time.Now().UTC()

	query := `
        UPDATE products
        SET sku = $1, name = $2, description = $3, price = $4, updated_at = $5
        WHERE id = $6 AND is_active = TRUE
        RETURNING id, sku, name, description, price, is_active, created_at, updated_at`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		product.SKU, product.Name, product.Description, product.Price, product.UpdatedAt, product.ID,
	).Scan(
		&product.ID, &product.SKU, &product.Name, &product.Description,
		&product.Price, &product.IsActive, &product.CreatedAt, &product.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %d não encontrado para atualização.", product.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar produto no DB.", err)
		return domain.Product{}, errors.NewDBError("Falha ao atualizar produto", err)
	}

	// Invalida o cache para que a próxima leitura veja o dado novo.
	r.Cache.Delete(ctxTimeout, fmt.Sprintf(productCacheKey, product.ID))

	r.logger.Info("Produto atualizado com sucesso.", map[string]interface{}{"id": product.ID})
	return product, nil
}

// Delete desativa um produto (soft delete). Produtos inativos ficam
// invisíveis para o aplicador de ajustes (PRODUCT_NOT_FOUND).
func (r *ProductRepository) Delete(ctx domain.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	query := `
        UPDATE products
        SET is_active = FALSE, updated_at = $1
        WHERE id = $2 AND is_active = TRUE`

	result, err := r.DB.ExecContext(ctxTimeout, query, time.Now().UTC(), id)
	if err != nil {
		r.logger.Error("Falha ao desativar produto no DB.", err)
		return errors.NewDBError("Falha ao desativar produto", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Produto com ID %d não encontrado para exclusão.", id))
	}

	r.Cache.Delete(ctxTimeout, fmt.Sprintf(productCacheKey, id))

	r.logger.Info("Produto desativado com sucesso.", map[string]interface{}{"id": id})
	return nil
}
