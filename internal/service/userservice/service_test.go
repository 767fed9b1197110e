package userservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/pkg/token"
	"goestoque/internal/service/userservice"
)

// MockUserRepository é uma implementação mock da interface domain.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx domain.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx domain.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

// MockTokenService é uma implementação mock da interface TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken(userID string, userRole string) (string, error) {
	args := m.Called(userID, userRole)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateToken(tokenString string) (*token.CustomClaims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*token.CustomClaims)
	return claims, args.Error(1)
}

func newTestLogger() logger.Logger {
	return logger.NewLogger("debug")
}

// --- Testes para Register ---

func TestRegister_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := userservice.NewService(mockRepo, mockToken, newTestLogger())

	registration := domain.UserRegistration{Email: "novo@estoque.com", Password: "senha-segura"}

	// O ID é gerado pelo repositório; o mock devolve o usuário já persistido.
	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		// A senha nunca pode chegar ao repositório em texto puro.
		return u.Email == registration.Email &&
			u.PasswordHash != registration.Password &&
			u.Role == domain.RoleUser
	})).Return(domain.User{ID: "uuid-1", Email: registration.Email, Role: domain.RoleUser}, nil).Once()

	user, err := svc.Register(context.Background(), registration)

	assert.NoError(t, err)
	assert.Equal(t, "uuid-1", user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	mockRepo.AssertExpectations(t)
}

func TestRegister_Fail_MissingFields(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := userservice.NewService(mockRepo, mockToken, newTestLogger())

	_, err := svc.Register(context.Background(), domain.UserRegistration{Email: "", Password: "x"})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegister_Fail_DuplicateEmailBecomesConflict(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := userservice.NewService(mockRepo, mockToken, newTestLogger())

	registration := domain.UserRegistration{Email: "duplicado@estoque.com", Password: "senha"}

	// Violação de unicidade chega do repositório como InternalError (erro do driver).
	dbErr := apperror.NewDBError("failed to insert user (DB)", errors.New("pq: duplicate key value violates unique constraint"))
	mockRepo.On("Save", mock.Anything, mock.Anything).Return(domain.User{}, dbErr).Once()

	_, err := svc.Register(context.Background(), registration)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
	assert.Contains(t, err.Error(), registration.Email)
	mockRepo.AssertExpectations(t)
}

// --- Testes para Login ---

func TestLogin_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := userservice.NewService(mockRepo, mockToken, newTestLogger())

	password := "senha-correta"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)

	storedUser := domain.User{
		ID:           "uuid-2",
		Email:        "op@estoque.com",
		PasswordHash: string(hash),
		Role:         domain.RoleOperator,
	}

	mockRepo.On("FindByEmail", mock.Anything, storedUser.Email).Return(storedUser, nil).Once()
	mockToken.On("GenerateToken", storedUser.ID, string(domain.RoleOperator)).Return("jwt-assinado", nil).Once()

	tokenString, err := svc.Login(context.Background(), storedUser.Email, password)

	assert.NoError(t, err)
	assert.Equal(t, "jwt-assinado", tokenString)
	mockRepo.AssertExpectations(t)
	mockToken.AssertExpectations(t)
}

func TestLogin_Fail_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := userservice.NewService(mockRepo, mockToken, newTestLogger())

	hash, _ := bcrypt.GenerateFromPassword([]byte("senha-correta"), bcrypt.MinCost)
	storedUser := domain.User{ID: "uuid-3", Email: "op@estoque.com", PasswordHash: string(hash)}

	mockRepo.On("FindByEmail", mock.Anything, storedUser.Email).Return(storedUser, nil).Once()

	_, err := svc.Login(context.Background(), storedUser.Email, "senha-errada")

	assert.Error(t, err)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)
	mockToken.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

func TestLogin_Fail_UnknownEmailIsUnauthorized(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := userservice.NewService(mockRepo, mockToken, newTestLogger())

	// NotFound do repositório vira 401 para não revelar quais emails existem.
	mockRepo.On("FindByEmail", mock.Anything, "nao-existe@estoque.com").
		Return(domain.User{}, apperror.NewNotFoundError("Usuário não encontrado")).Once()

	_, err := svc.Login(context.Background(), "nao-existe@estoque.com", "qualquer")

	assert.Error(t, err)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}

func TestLogin_Fail_RepoErrorIsPropagated(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := userservice.NewService(mockRepo, mockToken, newTestLogger())

	dbErr := apperror.NewDBError("failed to find user by email (DB)", errors.New("connection refused"))
	mockRepo.On("FindByEmail", mock.Anything, "op@estoque.com").Return(domain.User{}, dbErr).Once()

	_, err := svc.Login(context.Background(), "op@estoque.com", "senha")

	assert.Error(t, err)
	assert.IsType(t, &apperror.InternalError{}, err)
}
