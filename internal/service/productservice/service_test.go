package productservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/service/productservice"
)

// MockProductRepository é uma implementação mock da interface ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx domain.Context, product domain.Product) (domain.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx domain.Context, id int64) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx domain.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx domain.Context, product domain.Product) (domain.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx domain.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestLogger() logger.Logger {
	return logger.NewLogger("error")
}

// --- Testes para CreateProduct ---

func TestCreateProduct_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	newProduct := domain.Product{SKU: "SKU-001", Name: "Parafuso M8", Price: 0.35}
	expectedProduct := newProduct
	expectedProduct.ID = 1
	expectedProduct.IsActive = true

	mockRepo.On("Save", mock.Anything, newProduct).Return(expectedProduct, nil)

	ctx := context.Background()
	result, err := svc.CreateProduct(ctx, newProduct)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, "SKU-001", result.SKU)
	mockRepo.AssertExpectations(t)
}

func TestCreateProduct_Fail_MissingSKU(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	invalidProduct := domain.Product{Name: "Sem SKU"}
	ctx := context.Background()
	_, err := svc.CreateProduct(ctx, invalidProduct)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "SKU")
	mockRepo.AssertNotCalled(t, "Save")
}

func TestCreateProduct_Fail_NegativePrice(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	invalidProduct := domain.Product{SKU: "SKU-002", Name: "Preço negativo", Price: -1}
	ctx := context.Background()
	_, err := svc.CreateProduct(ctx, invalidProduct)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "negativo")
	mockRepo.AssertNotCalled(t, "Save")
}

func TestCreateProduct_Fail_RepoError(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	newProduct := domain.Product{SKU: "SKU-003", Name: "Porca M8", Price: 0.20}
	repoError := errors.New("database connection failed")

	mockRepo.On("Save", mock.Anything, newProduct).Return(domain.Product{}, repoError)

	ctx := context.Background()
	_, err := svc.CreateProduct(ctx, newProduct)

	assert.Error(t, err)
	assert.IsType(t, &apperror.InternalError{}, err)
	assert.Contains(t, err.Error(), "Falha interna ao criar produto")
	mockRepo.AssertExpectations(t)
}

// --- Testes para GetProductByID ---

func TestGetProductByID_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	expectedProduct := domain.Product{ID: 42, SKU: "SKU-042", Name: "Arruela"}

	mockRepo.On("FindByID", mock.Anything, int64(42)).Return(expectedProduct, nil)

	ctx := context.Background()
	result, err := svc.GetProductByID(ctx, 42)

	assert.NoError(t, err)
	assert.Equal(t, expectedProduct.ID, result.ID)
	mockRepo.AssertExpectations(t)
}

func TestGetProductByID_Fail_InvalidID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	ctx := context.Background()
	_, err := svc.GetProductByID(ctx, -5)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "FindByID")
}

func TestGetProductByID_Fail_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	repoError := apperror.NewNotFoundError("Produto não encontrado")
	mockRepo.On("FindByID", mock.Anything, int64(99)).Return(domain.Product{}, repoError)

	ctx := context.Background()
	_, err := svc.GetProductByID(ctx, 99)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertExpectations(t)
}

// --- Testes para ListProducts ---

func TestListProducts_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	filter := domain.ProductFilter{Page: 1, Limit: 20, ActiveOnly: true}
	expected := []domain.Product{
		{ID: 1, SKU: "A", Name: "Produto A"},
		{ID: 2, SKU: "B", Name: "Produto B"},
	}

	mockRepo.On("FindAll", mock.Anything, filter).Return(expected, nil)

	ctx := context.Background()
	results, err := svc.ListProducts(ctx, filter)

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	mockRepo.AssertExpectations(t)
}

func TestListProducts_Fail_RepoError(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	mockRepo.On("FindAll", mock.Anything, mock.Anything).Return([]domain.Product{}, errors.New("db timeout"))

	ctx := context.Background()
	_, err := svc.ListProducts(ctx, domain.ProductFilter{})

	assert.Error(t, err)
	assert.IsType(t, &apperror.InternalError{}, err)
	mockRepo.AssertExpectations(t)
}

// --- Testes para UpdateProduct ---

func TestUpdateProduct_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	productToUpdate := domain.Product{ID: 7, SKU: "SKU-007", Name: "Nome novo", Price: 12.5}
	mockRepo.On("Update", mock.Anything, productToUpdate).Return(productToUpdate, nil)

	ctx := context.Background()
	result, err := svc.UpdateProduct(ctx, productToUpdate)

	assert.NoError(t, err)
	assert.Equal(t, "Nome novo", result.Name)
	mockRepo.AssertExpectations(t)
}

func TestUpdateProduct_Fail_InvalidID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	ctx := context.Background()
	_, err := svc.UpdateProduct(ctx, domain.Product{ID: 0, SKU: "S", Name: "N"})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestUpdateProduct_Fail_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	productToUpdate := domain.Product{ID: 123, SKU: "SKU-123", Name: "Inexistente"}
	repoError := apperror.NewNotFoundError("Produto não encontrado")

	mockRepo.On("Update", mock.Anything, productToUpdate).Return(domain.Product{}, repoError)

	ctx := context.Background()
	_, err := svc.UpdateProduct(ctx, productToUpdate)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertExpectations(t)
}

// --- Testes para DeleteProduct ---

func TestDeleteProduct_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	mockRepo.On("Delete", mock.Anything, int64(9)).Return(nil)

	ctx := context.Background()
	err := svc.DeleteProduct(ctx, 9)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestDeleteProduct_Fail_InvalidID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, newTestLogger())

	ctx := context.Background()
	err := svc.DeleteProduct(ctx, 0)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Delete")
}
