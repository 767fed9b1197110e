package productservice

import (
	"strings"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
)

// ProductRepository define o contrato (interface) que este Serviço espera
// da camada de Persistência (DB, Cache).
type ProductRepository interface {
	Save(ctx domain.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx domain.Context, id int64) (domain.Product, error)
	FindAll(ctx domain.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Update(ctx domain.Context, product domain.Product) (domain.Product, error)
	Delete(ctx domain.Context, id int64) error
}

// Service é a estrutura que implementa a interface domain.ProductService.
type Service struct {
	repo   ProductRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo ProductRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateProduct cria um novo produto após validações de negócio.
func (s *Service) CreateProduct(ctx domain.Context, product domain.Product) (domain.Product, error) {
	s.logger.Debug("Iniciando criação de produto no serviço.", map[string]interface{}{"sku": product.SKU})

	if err := validateProduct(product); err != nil {
		s.logger.Warn("Falha na validação do produto.", map[string]interface{}{"sku": product.SKU, "error": err.Error()})
		return domain.Product{}, err
	}

	created, err := s.repo.Save(ctx, product)
	if err != nil {
		s.logger.Error("Falha ao salvar produto no repositório.", err)
		return domain.Product{}, apperror.NewInternalError("Falha interna ao criar produto.", err)
	}

	s.logger.Info("Produto criado com sucesso.", map[string]interface{}{"id": created.ID, "sku": created.SKU})
	return created, nil
}

// GetProductByID busca um produto pelo ID.
func (s *Service) GetProductByID(ctx domain.Context, id int64) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, apperror.NewValidationError("O ID do produto deve ser um inteiro positivo.")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		// Erros do repositório já são NotFoundError ou DBError
		return domain.Product{}, err
	}

	return product, nil
}

// ListProducts lista produtos com filtros e paginação.
func (s *Service) ListProducts(ctx domain.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	products, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Falha ao listar produtos no repositório.", err)
		return nil, apperror.NewInternalError("Falha interna ao listar produtos.", err)
	}
	return products, nil
}

// UpdateProduct atualiza os dados de um produto existente.
func (s *Service) UpdateProduct(ctx domain.Context, product domain.Product) (domain.Product, error) {
	s.logger.Debug("Iniciando atualização de produto no serviço.", map[string]interface{}{"id": product.ID})

	if product.ID <= 0 {
		return domain.Product{}, apperror.NewValidationError("O ID do produto deve ser um inteiro positivo.")
	}
	if err := validateProduct(product); err != nil {
		s.logger.Warn("Falha na validação do produto para atualização.", map[string]interface{}{"id": product.ID, "error": err.Error()})
		return domain.Product{}, err
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		s.logger.Error("Falha ao atualizar produto no repositório.", err)
		return domain.Product{}, err
	}

	s.logger.Info("Produto atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// DeleteProduct desativa um produto (soft delete).
func (s *Service) DeleteProduct(ctx domain.Context, id int64) error {
	s.logger.Debug("Iniciando exclusão de produto no serviço.", map[string]interface{}{"id": id})

	if id <= 0 {
		return apperror.NewValidationError("O ID do produto deve ser um inteiro positivo.")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Falha ao deletar produto no repositório.", err)
		return err
	}

	s.logger.Info("Produto desativado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// validateProduct aplica as regras de negócio básicas do catálogo.
func validateProduct(product domain.Product) error {
	if strings.TrimSpace(product.Name) == "" || strings.TrimSpace(product.SKU) == "" {
		return apperror.NewValidationError("Nome e SKU são obrigatórios para o produto.")
	}
	if product.Price < 0 {
		return apperror.NewValidationError("O preço do produto não pode ser negativo.")
	}
	return nil
}
