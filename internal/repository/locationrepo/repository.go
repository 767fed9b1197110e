package locationrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"goestoque/internal/domain"
	"goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
)

// LocationRepository implementa a interface para operações CRUD de locais de estoque.
type LocationRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewLocationRepository cria e retorna uma nova instância do Repositório de Locais.
func NewLocationRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *LocationRepository {
	return &LocationRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// CreateLocation insere um novo local no banco de dados.
func (r *LocationRepository) CreateLocation(ctx context.Context, location domain.Location) (domain.Location, error) {
	r.logger.Debug("Iniciando CreateLocation no repositório.", map[string]interface{}{"code": location.Code, "name": location.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	now := time.Now().UTC()
	location.CreatedAt = now
	location.UpdatedAt = now
	location.IsActive = true

	query := `
        INSERT INTO locations (code, name, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		location.Code, location.Name, location.IsActive, location.CreatedAt, location.UpdatedAt,
	).Scan(&location.ID)
	if err != nil {
		r.logger.Error("Falha ao inserir local no DB.", err)
		return domain.Location{}, errors.NewDBError("Falha ao criar local", err)
	}

	r.logger.Info("Local criado com sucesso.", map[string]interface{}{"id": location.ID, "code": location.Code})
	return location, nil
}

// GetLocationByID busca um local pelo ID.
func (r *LocationRepository) GetLocationByID(ctx context.Context, id int64) (domain.Location, error) {
	r.logger.Debug("Iniciando GetLocationByID no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, code, name, is_active, created_at, updated_at
        FROM locations
        WHERE id = $1`

	var location domain.Location
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&location.ID, &location.Code, &location.Name, &location.IsActive, &location.CreatedAt, &location.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		r.logger.Info("Local não encontrado.", map[string]interface{}{"id": id})
		return domain.Location{}, errors.NewNotFoundError(fmt.Sprintf("Local com ID %d não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar local no DB.", err)
		return domain.Location{}, errors.NewDBError("Falha ao buscar local", err)
	}

	return location, nil
}

// GetAllLocations busca todos os locais ativos.
func (r *LocationRepository) GetAllLocations(ctx context.Context) ([]domain.Location, error) {
	r.logger.Debug("Iniciando GetAllLocations no repositório.", nil)

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, code, name, is_active, created_at, updated_at
        FROM locations
        WHERE is_active = TRUE
        ORDER BY name`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao executar GetAllLocations query.", err)
		return nil, errors.NewDBError("Falha ao buscar todos os locais", err)
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		var location domain.Location
		err := rows.Scan(
			&location.ID, &location.Code, &location.Name, &location.IsActive, &location.CreatedAt, &location.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Falha ao mapear local na iteração de GetAllLocations.", err)
			return nil, errors.NewDBError("Falha ao mapear locais do DB", err)
		}
		locations = append(locations, location)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Erro após iteração das linhas de locais.", err)
		return nil, errors.NewDBError("Erro após iteração de locais", err)
	}

	r.logger.Info("GetAllLocations concluído com sucesso.", map[string]interface{}{"total_locations": len(locations)})
	return locations, nil
}

// UpdateLocation atualiza um local existente.
func (r *LocationRepository) UpdateLocation(ctx context.Context, location domain.Location) (domain.Location, error) {
	r.logger.Debug("Iniciando UpdateLocation no repositório.", map[string]interface{}{"id": location.ID, "name": location.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	location.UpdatedAt = time.Now().UTC()

	query := `
        UPDATE locations
        SET code = $1, name = $2, updated_at = $3
        WHERE id = $4 AND is_active = TRUE
        RETURNING id, code, name, is_active, created_at, updated_at`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		location.Code, location.Name, location.UpdatedAt, location.ID,
	).Scan(
		&location.ID, &location.Code, &location.Name, &location.IsActive, &location.CreatedAt, &location.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		r.logger.Info("Local não encontrado para atualização.", map[string]interface{}{"id": location.ID})
		return domain.Location{}, errors.NewNotFoundError(fmt.Sprintf("Local com ID %d não encontrado para atualização.", location.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar local no DB.", err)
		return domain.Location{}, errors.NewDBError("Falha ao atualizar local", err)
	}

	r.logger.Info("Local atualizado com sucesso.", map[string]interface{}{"id": location.ID, "name": location.Name})
	return location, nil
}

// DeleteLocation desativa um local (soft delete). Os níveis de estoque do
// local permanecem no banco; o local inativo vira LOCATION_NOT_FOUND para
// o aplicador de ajustes.
func (r *LocationRepository) DeleteLocation(ctx context.Context, id int64) error {
	r.logger.Debug("Iniciando DeleteLocation no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE locations
        SET is_active = FALSE, updated_at = $1
        WHERE id = $2 AND is_active = TRUE`

	result, err := r.DB.ExecContext(ctxTimeout, query, time.Now().UTC(), id)
	if err != nil {
		r.logger.Error("Falha ao desativar local no DB.", err)
		return errors.NewDBError("Falha ao desativar local", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Falha ao verificar linhas afetadas após DeleteLocation.", err)
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}

	if rowsAffected == 0 {
		r.logger.Info("Local não encontrado para exclusão.", map[string]interface{}{"id": id})
		return errors.NewNotFoundError(fmt.Sprintf("Local com ID %d não encontrado para exclusão.", id))
	}

	r.logger.Info("Local desativado com sucesso.", map[string]interface{}{"id": id})
	return nil
}
