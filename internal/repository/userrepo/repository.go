package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
)

// UserRepository implementa a interface domain.UserRepository
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

const insertUserSQL = `INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
                       VALUES ($1, $2, $3, $4, $5, $6)`

// Save insere um novo usuário no banco de dados.
func (r *UserRepository) Save(ctx domain.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"email": user.Email})

	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	_, err := r.DB.ExecContext(
		ctxTimeout,
		insertUserSQL,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		// Duplicidade de email chega aqui como erro do driver; o serviço
		// traduz InternalError de Save para ConflictError.
		return domain.User{}, apperror.NewDBError("failed to insert user (DB)", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": user.ID, "email": user.Email})
	return user, nil
}

// FindByEmail busca um usuário pelo endereço de e-mail.
func (r *UserRepository) FindByEmail(ctx domain.Context, email string) (domain.User, error) {
	r.logger.Debug("Iniciando FindByEmail de usuário no repositório.", map[string]interface{}{"email_attempt": email})

	ctxTimeout, cancel := context.WithTimeout(ctx.(context.Context), r.DBTimeout)
	defer cancel()

	query := `SELECT id, email, password_hash, role, created_at, updated_at FROM users WHERE email = $1`

	row := r.DB.QueryRowContext(ctxTimeout, query, email)

	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Info("Usuário não encontrado no DB por email.", map[string]interface{}{"email": email})
			return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com email '%s' não encontrado", email))
		}
		r.logger.Error("Falha ao buscar usuário por email no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to find user by email (DB)", err)
	}

	r.logger.Info("Usuário encontrado no repositório por email.", map[string]interface{}{"user_id": user.ID, "email": user.Email})
	return user, nil
}
