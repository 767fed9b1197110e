package locationservice

import (
	"context"
	"strings"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
)

// LocationRepository define o contrato que o Serviço de Locais espera da camada de Persistência.
type LocationRepository interface {
	CreateLocation(ctx context.Context, location domain.Location) (domain.Location, error)
	GetLocationByID(ctx context.Context, id int64) (domain.Location, error)
	GetAllLocations(ctx context.Context) ([]domain.Location, error)
	UpdateLocation(ctx context.Context, location domain.Location) (domain.Location, error)
	DeleteLocation(ctx context.Context, id int64) error
}

// Service é a estrutura que implementa a lógica de negócio de locais de estoque.
type Service struct {
	repo   LocationRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Locais.
func NewService(repo LocationRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateLocation cria um novo local após validações de negócio.
func (s *Service) CreateLocation(ctx domain.Context, location domain.Location) (domain.Location, error) {
	s.logger.Debug("Iniciando criação de local no serviço.", map[string]interface{}{"code": location.Code, "name": location.Name})

	if err := s.validateLocation(location); err != nil {
		s.logger.Warn("Falha na validação do local.", map[string]interface{}{"name": location.Name, "error": err.Error()})
		return domain.Location{}, err
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para CreateLocation", nil)
	}

	created, err := s.repo.CreateLocation(ctxGo, location)
	if err != nil {
		s.logger.Error("Falha ao criar local no repositório.", err)
		return domain.Location{}, apperror.NewInternalError("Falha interna ao criar local.", err)
	}

	s.logger.Info("Local criado com sucesso.", map[string]interface{}{"id": created.ID, "code": created.Code})
	return created, nil
}

// GetLocationByID busca um local pelo ID.
func (s *Service) GetLocationByID(ctx domain.Context, id int64) (domain.Location, error) {
	s.logger.Debug("Iniciando busca de local por ID no serviço.", map[string]interface{}{"id": id})

	if id <= 0 {
		return domain.Location{}, apperror.NewValidationError("O ID do local deve ser um inteiro positivo.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetLocationByID", nil)
	}

	location, err := s.repo.GetLocationByID(ctxGo, id)
	if err != nil {
		s.logger.Error("Falha ao buscar local no repositório.", err)
		return domain.Location{}, err // Erros do repositório já são NotFoundError ou DBError
	}

	return location, nil
}

// GetAllLocations busca todos os locais ativos.
func (s *Service) GetAllLocations(ctx domain.Context) ([]domain.Location, error) {
	s.logger.Debug("Iniciando busca de todos os locais no serviço.", nil)

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetAllLocations", nil)
	}

	locations, err := s.repo.GetAllLocations(ctxGo)
	if err != nil {
		s.logger.Error("Falha ao buscar todos os locais no repositório.", err)
		return nil, apperror.NewInternalError("Falha interna ao buscar locais.", err)
	}

	s.logger.Info("Todos os locais encontrados com sucesso.", map[string]interface{}{"count": len(locations)})
	return locations, nil
}

// UpdateLocation atualiza um local existente.
func (s *Service) UpdateLocation(ctx domain.Context, location domain.Location) (domain.Location, error) {
	s.logger.Debug("Iniciando atualização de local no serviço.", map[string]interface{}{"id": location.ID, "name": location.Name})

	if location.ID <= 0 {
		return domain.Location{}, apperror.NewValidationError("O ID do local deve ser um inteiro positivo.")
	}
	if err := s.validateLocation(location); err != nil {
		s.logger.Warn("Falha na validação do local para atualização.", map[string]interface{}{"name": location.Name, "error": err.Error()})
		return domain.Location{}, err
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para UpdateLocation", nil)
	}

	updated, err := s.repo.UpdateLocation(ctxGo, location)
	if err != nil {
		s.logger.Error("Falha ao atualizar local no repositório.", err)
		return domain.Location{}, err // Erros do repositório já são NotFoundError ou DBError
	}

	s.logger.Info("Local atualizado com sucesso.", map[string]interface{}{"id": updated.ID, "name": updated.Name})
	return updated, nil
}

// DeleteLocation desativa um local (soft delete).
func (s *Service) DeleteLocation(ctx domain.Context, id int64) error {
	s.logger.Debug("Iniciando exclusão de local no serviço.", map[string]interface{}{"id": id})

	if id <= 0 {
		return apperror.NewValidationError("O ID do local deve ser um inteiro positivo.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para DeleteLocation", nil)
	}

	err := s.repo.DeleteLocation(ctxGo, id)
	if err != nil {
		s.logger.Error("Falha ao deletar local no repositório.", err)
		return err // Erros do repositório já são NotFoundError ou DBError
	}

	s.logger.Info("Local deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// validateLocation é uma função auxiliar para validar os dados do local.
func (s *Service) validateLocation(location domain.Location) error {
	if strings.TrimSpace(location.Code) == "" {
		return apperror.NewValidationError("O código do local não pode ser vazio.")
	}
	if strings.TrimSpace(location.Name) == "" {
		return apperror.NewValidationError("O nome do local não pode ser vazio.")
	}
	if len(location.Name) < 3 || len(location.Name) > 100 {
		return apperror.NewValidationError("O nome do local deve ter entre 3 e 100 caracteres.")
	}
	return nil
}
