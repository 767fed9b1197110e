package stock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/pkg/middleware"
)

// StockService define o contrato que o Handler espera da camada de Serviço.
type StockService interface {
	GetStockLevel(ctx domain.Context, productID, locationID int64) (domain.StockLevel, error)
	History(ctx domain.Context, productID, locationID int64, limit int) ([]domain.InventoryLogEntry, error)
	AdjustStock(ctx domain.Context, userID string, req domain.StockAdjustmentRequest) (domain.StockLevel, error)
	AdjustStockBatch(ctx domain.Context, userID string, req domain.BatchAdjustmentRequest) (domain.BatchResult, error)
}

// Handler agrupa todos os métodos de Handler de estoque.
type Handler struct {
	Service StockService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc StockService, log logger.Logger) *Handler {
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

// parsePairFromQuery extrai product_id e location_id obrigatórios da query string.
func parsePairFromQuery(r *http.Request) (int64, int64, error) {
	productID, err := strconv.ParseInt(r.URL.Query().Get("product_id"), 10, 64)
	if err != nil || productID <= 0 {
		return 0, 0, apperror.NewValidationError("O parâmetro product_id deve ser um inteiro positivo.")
	}
	locationID, err := strconv.ParseInt(r.URL.Query().Get("location_id"), 10, 64)
	if err != nil || locationID <= 0 {
		return 0, 0, apperror.NewValidationError("O parâmetro location_id deve ser um inteiro positivo.")
	}
	return productID, locationID, nil
}

// userIDFromContext extrai o ID do usuário autenticado para registrar no log de inventário.
func (h *Handler) userIDFromContext(r *http.Request) string {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		h.Logger.Warn("Movimentação de estoque sem claims de usuário no contexto.", map[string]interface{}{"path": r.URL.Path})
		return ""
	}
	return claims.UserID
}

// GetStockLevelHandler lida com a requisição GET /v1/stock.
// @Summary Consulta o nível de estoque
// @Description Retorna a quantidade e a versão atuais para um par produto/local. Pares sem registro retornam quantidade 0 e versão 0.
// @Tags stock
// @Produce json
// @Param product_id query int true "ID do Produto"
// @Param location_id query int true "ID do Local"
// @Success 200 {object} domain.StockLevel "Nível de estoque"
// @Failure 400 {object} domain.ErrorResponse "Parâmetros inválidos"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /stock [get]
func (h *Handler) GetStockLevelHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	productID, locationID, err := parsePairFromQuery(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	stockLevel, err := h.Service.GetStockLevel(ctx, productID, locationID)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, stockLevel, nil, http.StatusOK)
}

// AdjustStockHandler lida com a requisição POST /v1/stock/update.
// @Summary Ajusta o estoque de um par produto/local
// @Description Aplica um delta ao estoque. Se expected_version for informado, a escrita só ocorre se a versão atual coincidir (controle otimista).
// @Tags stock
// @Accept json
// @Produce json
// @Param adjustment body domain.StockAdjustmentRequest true "Dados do ajuste"
// @Success 200 {object} domain.StockLevel "Nível de estoque após o ajuste"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto ou local não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Conflito de versão"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /stock/update [post]
func (h *Handler) AdjustStockHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	var adjustmentRequest domain.StockAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&adjustmentRequest); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	stockLevel, err := h.Service.AdjustStock(ctx, h.userIDFromContext(r), adjustmentRequest)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, stockLevel, nil, http.StatusOK)
}

// AdjustStockBatchHandler lida com a requisição POST /v1/stock/batch.
// @Summary Aplica um lote de ajustes de estoque
// @Description Valida, particiona e aplica um lote de ajustes. Com allow_partial=true, itens que falham não impedem os demais; caso contrário cada bloco é tudo-ou-nada.
// @Tags stock
// @Accept json
// @Produce json
// @Param batch body domain.BatchAdjustmentRequest true "Lote de ajustes"
// @Success 200 {object} domain.BatchResult "Resultado do lote (total ou parcial)"
// @Failure 400 {object} domain.BatchResult "Todos os itens rejeitados por validação"
// @Failure 500 {object} domain.BatchResult "Todos os itens falharam"
// @Security ApiKeyAuth
// @Router /stock/batch [post]
func (h *Handler) AdjustStockBatchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	var batchRequest domain.BatchAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&batchRequest); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	result, err := h.Service.AdjustStockBatch(ctx, h.userIDFromContext(r), batchRequest)
	if err != nil {
		// Lote vazio ou acima do limite: erro antes de qualquer aplicação
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	// O corpo é sempre o resultado completo do lote; o status HTTP resume o desfecho:
	// algum sucesso -> 200 (inclusive parcial); nenhum sucesso -> 400 se tudo foi
	// rejeitado na validação, 500 caso contrário. Zero sucessos nunca vira 2xx,
	// mesmo com allow_partial=true: um lote inteiro rejeitado não pode parecer aplicado.
	status := http.StatusOK
	if result.Successful == 0 && result.Failed > 0 {
		if result.AllValidationFailures() {
			status = http.StatusBadRequest
		} else {
			status = http.StatusInternalServerError
		}
	}

	if status >= 500 {
		h.Logger.Error("Lote de ajustes falhou por completo.", fmt.Errorf("transaction_id=%s failed=%d", result.TransactionID, result.Failed))
	} else if result.Partial {
		h.Logger.Warn("Lote de ajustes aplicado parcialmente.", map[string]interface{}{
			"transaction_id": result.TransactionID,
			"successful":     result.Successful,
			"failed":         result.Failed,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if jsonErr := json.NewEncoder(w).Encode(result); jsonErr != nil {
		h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
	}
}

// StockHistoryHandler lida com a requisição GET /v1/stock/history.
// @Summary Consulta o histórico de movimentações
// @Description Retorna as movimentações mais recentes de um par produto/local, em ordem decrescente.
// @Tags stock
// @Produce json
// @Param product_id query int true "ID do Produto"
// @Param location_id query int true "ID do Local"
// @Param limit query int false "Número máximo de entradas (default 50)"
// @Success 200 {array} domain.InventoryLogEntry "Histórico de movimentações"
// @Failure 400 {object} domain.ErrorResponse "Parâmetros inválidos"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /stock/history [get]
func (h *Handler) StockHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	productID, locationID, err := parsePairFromQuery(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.Service.History(ctx, productID, locationID, limit)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, entries, nil, http.StatusOK)
}
