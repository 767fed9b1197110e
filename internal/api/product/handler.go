package product

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/pkg/middleware"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
// Usamos a assinatura com o tipo abstrato domain.Context para manter a pureza do domínio.
type ProductService interface {
	CreateProduct(ctx domain.Context, product domain.Product) (domain.Product, error)
	GetProductByID(ctx domain.Context, id int64) (domain.Product, error)
	ListProducts(ctx domain.Context, filter domain.ProductFilter) ([]domain.Product, error)
	UpdateProduct(ctx domain.Context, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx domain.Context, id int64) error
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		// Sucesso
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)

		h.Logger.Info("Requisição concluída com sucesso", map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": successStatus,
		})

		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
				http.Error(w, "Erro ao codificar resposta", http.StatusInternalServerError)
			}
		}
		return
	}

	// TRATAMENTO DE ERROS
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		// Erros de cliente (4xx) são logged como info/warn
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	errorResponse := map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse)
}

// parseIDFromPath extrai o ID numérico do último segmento da URL.
func parseIDFromPath(path, prefix string) (int64, error) {
	raw := strings.TrimPrefix(path, prefix)
	raw = strings.Trim(raw, "/")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationError("O ID na URL deve ser um inteiro positivo.")
	}
	return id, nil
}

// CreateProductHandler lida com a requisição POST /v1/products.
// @Summary Cria um novo produto
// @Description Cria um novo produto no catálogo.
// @Tags products
// @Accept json
// @Produce json
// @Param product body domain.Product true "Dados do produto para criação"
// @Success 201 {object} domain.Product "Produto criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	// O contexto nativo (context.Context) será passado como domain.Context
	ctx := r.Context()

	claims, ok := middleware.GetUserClaimsFromContext(ctx)
	if ok {
		// Logamos o ID do usuário que está criando o produto
		h.Logger.Info("Criação de produto solicitada por", map[string]interface{}{
			"user_id": claims.UserID,
			"role":    claims.Role,
		})
	} else {
		h.Logger.Warn("Tentativa de criação de produto sem claims de usuário no contexto.", nil)
	}

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	newProduct, err := h.Service.CreateProduct(ctx, product)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	h.handleServiceResponse(w, r, newProduct, nil, http.StatusCreated)
}

// GetProductByIDHandler lida com a requisição GET /v1/products/{id}.
// @Summary Obtém um produto por ID
// @Description Busca um produto específico pelo seu ID numérico.
// @Tags products
// @Produce json
// @Param id path int true "ID do Produto"
// @Success 200 {object} domain.Product "Produto encontrado"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /products/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := parseIDFromPath(r.URL.Path, "/v1/products/")
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	product, err := h.Service.GetProductByID(ctx, productID)
	if err != nil {
		// O handleServiceResponse fará o mapeamento de NotFoundError (404) ou InternalError (500)
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, product, nil, http.StatusOK)
}

// ListProductsHandler lida com a requisição GET /v1/products.
// @Summary Lista produtos
// @Description Retorna produtos filtrados por nome, SKU e paginação.
// @Tags products
// @Produce json
// @Param name query string false "Filtro por nome (busca parcial)"
// @Param sku query string false "Filtro por SKU (igualdade)"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Itens por página (default 20)"
// @Success 200 {array} domain.Product "Lista de produtos"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /products [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	filter := domain.ProductFilter{
		Page:       page,
		Limit:      limit,
		Name:       query.Get("name"),
		SKU:        query.Get("sku"),
		ActiveOnly: query.Get("include_inactive") != "true",
	}

	products, err := h.Service.ListProducts(ctx, filter)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, products, nil, http.StatusOK)
}

// UpdateProductHandler lida com a requisição PUT /v1/products/{id}.
// @Summary Atualiza um produto
// @Description Atualiza os dados de um produto existente.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "ID do Produto"
// @Param product body domain.Product true "Dados do produto para atualização"
// @Success 200 {object} domain.Product "Produto atualizado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /products/{id} [put]
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	productID, err := parseIDFromPath(r.URL.Path, "/v1/products/")
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}
	product.ID = productID // O ID da URL prevalece sobre o do corpo

	updatedProduct, err := h.Service.UpdateProduct(ctx, product)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, updatedProduct, nil, http.StatusOK)
}

// DeleteProductHandler lida com a requisição DELETE /v1/products/{id}.
// @Summary Desativa um produto
// @Description Desativa (soft delete) um produto pelo seu ID. O estoque associado deixa de aceitar movimentações.
// @Tags products
// @Param id path int true "ID do Produto"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /products/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	productID, err := parseIDFromPath(r.URL.Path, "/v1/products/")
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	if err := h.Service.DeleteProduct(ctx, productID); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, nil, nil, http.StatusNoContent)
}
