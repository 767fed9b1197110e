package location

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
)

// LocationService define o contrato que o Handler espera da camada de Serviço.
type LocationService interface {
	CreateLocation(ctx domain.Context, location domain.Location) (domain.Location, error)
	GetLocationByID(ctx domain.Context, id int64) (domain.Location, error)
	GetAllLocations(ctx domain.Context) ([]domain.Location, error)
	UpdateLocation(ctx domain.Context, location domain.Location) (domain.Location, error)
	DeleteLocation(ctx domain.Context, id int64) error
}

// Handler agrupa todos os métodos de Handler de locais de estoque.
type Handler struct {
	Service LocationService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc LocationService, log logger.Logger) *Handler {
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

// parseIDFromPath extrai o ID numérico do último segmento da URL.
func parseIDFromPath(path string) (int64, error) {
	raw := strings.TrimPrefix(path, "/v1/locations/")
	raw = strings.Trim(raw, "/")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationError("O ID na URL deve ser um inteiro positivo.")
	}
	return id, nil
}

// CreateLocationHandler lida com a requisição POST /v1/locations.
// @Summary Cria um novo local de estoque
// @Description Cria um novo local de estoque no sistema.
// @Tags locations
// @Accept json
// @Produce json
// @Param location body domain.Location true "Dados do local para criação"
// @Success 201 {object} domain.Location "Local criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /locations [post]
func (h *Handler) CreateLocationHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	var location domain.Location
	if err := json.NewDecoder(r.Body).Decode(&location); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	createdLocation, err := h.Service.CreateLocation(ctx, location)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, createdLocation, nil, http.StatusCreated)
}

// GetLocationByIDHandler lida com a requisição GET /v1/locations/{id}.
// @Summary Obtém um local por ID
// @Description Busca um local de estoque específico pelo seu ID.
// @Tags locations
// @Produce json
// @Param id path int true "ID do Local"
// @Success 200 {object} domain.Location "Local encontrado"
// @Failure 404 {object} domain.ErrorResponse "Local não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /locations/{id} [get]
func (h *Handler) GetLocationByIDHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	id, err := parseIDFromPath(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	location, err := h.Service.GetLocationByID(ctx, id)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, location, nil, http.StatusOK)
}

// GetAllLocationsHandler lida com a requisição GET /v1/locations.
// @Summary Lista todos os locais
// @Description Retorna uma lista de todos os locais de estoque ativos.
// @Tags locations
// @Produce json
// @Success 200 {array} domain.Location "Lista de locais"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /locations [get]
func (h *Handler) GetAllLocationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	locations, err := h.Service.GetAllLocations(ctx)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, locations, nil, http.StatusOK)
}

// UpdateLocationHandler lida com a requisição PUT /v1/locations/{id}.
// @Summary Atualiza um local
// @Description Atualiza os dados de um local de estoque existente.
// @Tags locations
// @Accept json
// @Produce json
// @Param id path int true "ID do Local"
// @Param location body domain.Location true "Dados do local para atualização"
// @Success 200 {object} domain.Location "Local atualizado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Local não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /locations/{id} [put]
func (h *Handler) UpdateLocationHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	id, err := parseIDFromPath(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	var location domain.Location
	if err := json.NewDecoder(r.Body).Decode(&location); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}
	location.ID = id // O ID da URL prevalece sobre o do corpo

	updatedLocation, err := h.Service.UpdateLocation(ctx, location)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, updatedLocation, nil, http.StatusOK)
}

// DeleteLocationHandler lida com a requisição DELETE /v1/locations/{id}.
// @Summary Desativa um local
// @Description Desativa (soft delete) um local de estoque pelo seu ID.
// @Tags locations
// @Param id path int true "ID do Local"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse "Local não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /locations/{id} [delete]
func (h *Handler) DeleteLocationHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	id, err := parseIDFromPath(r.URL.Path)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	if err := h.Service.DeleteLocation(ctx, id); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, nil, nil, http.StatusNoContent)
}
