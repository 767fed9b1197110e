package stockrepo

import (
	"context"
	"database/sql"
	"time"

	"goestoque/internal/domain"
	"goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
)

// StockRepository é o Version Store: a visão de persistência dos pares
// (produto, local) com quantidade e versão monotônica. Toda mutação passa
// pelo aplicador transacional (ApplyChunk); leituras toleram estado
// ligeiramente defasado entre commits.
type StockRepository struct {
	DB           *sql.DB
	DBTimeout    time.Duration // Timeout para leituras avulsas
	ChunkTimeout time.Duration // Timeout da transação de um chunk
	logger       logger.Logger
}

// NewStockRepository cria e retorna uma nova instância do Repositório de Estoque.
func NewStockRepository(db *sql.DB, dbTimeout, chunkTimeout time.Duration, logger logger.Logger) *StockRepository {
	return &StockRepository{
		DB:           db,
		DBTimeout:    dbTimeout,
		ChunkTimeout: chunkTimeout,
		logger:       logger,
	}
}

// GetStockLevel busca o nível de estoque para um produto em um local.
// Ausência de registro equivale a estoque zero (quantidade 0, versão 0);
// o registro real só é criado pelo aplicador na primeira mutação.
func (r *StockRepository) GetStockLevel(ctx context.Context, productID, locationID int64) (domain.StockLevel, error) {
	r.logger.Debug("Buscando nível de estoque no repositório.", map[string]interface{}{"product_id": productID, "location_id": locationID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, product_id, location_id, quantity, version, created_at, updated_at
        FROM stock_levels
        WHERE product_id = $1 AND location_id = $2`

	var sl domain.StockLevel
	err := r.DB.QueryRowContext(ctxTimeout, query, productID, locationID).Scan(
		&sl.ID, &sl.ProductID, &sl.LocationID, &sl.Quantity, &sl.Version, &sl.CreatedAt, &sl.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		r.logger.Debug("Nível de estoque ausente, retornando estoque zero.", map[string]interface{}{"product_id": productID, "location_id": locationID})
		return domain.StockLevel{ProductID: productID, LocationID: locationID, Quantity: 0, Version: 0}, nil
	}
	if err != nil {
		r.logger.Error("Falha ao buscar nível de estoque no DB.", err)
		return domain.StockLevel{}, errors.NewDBError("Falha ao buscar nível de estoque", err)
	}

	return sl, nil
}

// History retorna as entradas mais recentes do log de inventário para um
// par (produto, local). O log é append-only; a leitura é apenas para auditoria.
func (r *StockRepository) History(ctx context.Context, productID, locationID int64, limit int) ([]domain.InventoryLogEntry, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, user_id, product_id, location_id, delta, log_type, note, created_at
        FROM inventory_log
        WHERE product_id = $1 AND location_id = $2
        ORDER BY created_at DESC
        LIMIT $3`

	rows, err := r.DB.QueryContext(ctxTimeout, query, productID, locationID, limit)
	if err != nil {
		r.logger.Error("Falha ao buscar histórico de inventário no DB.", err)
		return nil, errors.NewDBError("Falha ao buscar histórico de inventário", err)
	}
	defer rows.Close()

	var entries []domain.InventoryLogEntry
	for rows.Next() {
		var e domain.InventoryLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ProductID, &e.LocationID, &e.Delta, &e.LogType, &e.Note, &e.CreatedAt); err != nil {
			r.logger.Error("Falha ao mapear entrada do log de inventário.", err)
			return nil, errors.NewDBError("Falha ao mapear histórico de inventário", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Erro após iteração do histórico de inventário", err)
	}

	return entries, nil
}

// ApplyChunk aplica um chunk de ajustes em uma única transação com isolamento
// serializable, limitada por ChunkTimeout.
//
// allowPartial=false: a primeira falha aborta o chunk inteiro (rollback) e
// todos os itens do chunk são reportados com o mesmo motivo subjacente.
// allowPartial=true: cada item é contido por um SAVEPOINT; falhas de um item
// (inclusive erros de comando) não impedem o commit dos irmãos.
//
// Um retorno (outcome, nil) cobre todo item do chunk com exatamente um
// desfecho. Um retorno de erro significa que a transação inteira falhou
// (e.g. timeout, falha de commit) e nada persistiu; o chamador reporta
// DATABASE_ERROR para cada item.
func (r *StockRepository) ApplyChunk(ctx context.Context, userID, note string, items []domain.StockAdjustment, allowPartial bool) (domain.ChunkOutcome, error) {
	r.logger.Debug("Iniciando aplicação de chunk no repositório.", map[string]interface{}{
		"items":         len(items),
		"allow_partial": allowPartial,
	})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.ChunkTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		r.logger.Error("Falha ao iniciar transação do chunk.", err)
		return domain.ChunkOutcome{}, errors.NewDBError("Falha ao iniciar transação do chunk", err)
	}
	defer tx.Rollback() // Rollback em caso de erro ou abort do chunk

	outcome, commit, err := applyChunkItems(ctxTimeout, &txChunkStore{tx: tx}, userID, note, items, allowPartial)
	if err != nil {
		r.logger.Error("Erro de infraestrutura durante aplicação do chunk.", err)
		return domain.ChunkOutcome{}, errors.NewDBError("Falha de persistência durante o chunk", err)
	}

	if !commit {
		// Chunk abortado (all-or-nothing): o rollback descarta mutações e log.
		return outcome, nil
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao commitar transação do chunk.", err)
		return domain.ChunkOutcome{}, errors.NewDBError("Falha ao commitar transação do chunk", err)
	}

	r.logger.Info("Chunk aplicado.", map[string]interface{}{
		"applied": len(outcome.Applied),
		"failed":  len(outcome.Failures),
	})
	return outcome, nil
}

// txChunkStore implementa chunkStore sobre a transação SQL de um chunk.
type txChunkStore struct {
	tx *sql.Tx
}

func (s *txChunkStore) ActiveProductName(ctx context.Context, productID int64) (string, error) {
	var name string
	err := s.tx.QueryRowContext(ctx,
		`SELECT name FROM products WHERE id = $1 AND is_active = TRUE`, productID,
	).Scan(&name)
	return name, err
}

func (s *txChunkStore) ActiveLocationName(ctx context.Context, locationID int64) (string, error) {
	var name string
	err := s.tx.QueryRowContext(ctx,
		`SELECT name FROM locations WHERE id = $1 AND is_active = TRUE`, locationID,
	).Scan(&name)
	return name, err
}

func (s *txChunkStore) LockStockLevel(ctx context.Context, productID, locationID int64) (stockRow, error) {
	row := stockRow{ProductID: productID, LocationID: locationID}
	err := s.tx.QueryRowContext(ctx,
		`SELECT id, quantity, version FROM stock_levels
         WHERE product_id = $1 AND location_id = $2 FOR UPDATE`,
		productID, locationID,
	).Scan(&row.ID, &row.Quantity, &row.Version)
	return row, err
}

func (s *txChunkStore) InsertStockLevel(ctx context.Context, row stockRow, now time.Time) error {
	_, err := s.tx.ExecContext(ctx,
		`INSERT INTO stock_levels (id, product_id, location_id, quantity, version, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		row.ID, row.ProductID, row.LocationID, row.Quantity, row.Version, now, now,
	)
	return err
}

func (s *txChunkStore) AppendLog(ctx context.Context, entry domain.InventoryLogEntry) error {
	_, err := s.tx.ExecContext(ctx,
		`INSERT INTO inventory_log (id, user_id, product_id, location_id, delta, log_type, note, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.UserID, entry.ProductID, entry.LocationID, entry.Delta, entry.LogType, entry.Note, entry.CreatedAt,
	)
	return err
}

func (s *txChunkStore) UpdateStockLevel(ctx context.Context, productID, locationID, newQuantity, expectedVersion int64, now time.Time) (int64, error) {
	result, err := s.tx.ExecContext(ctx,
		`UPDATE stock_levels
         SET quantity = $1, version = version + 1, updated_at = $2
         WHERE product_id = $3 AND location_id = $4 AND version = $5`,
		newQuantity, now, productID, locationID, expectedVersion,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *txChunkStore) Savepoint(ctx context.Context, name string) error {
	_, err := s.tx.ExecContext(ctx, "SAVEPOINT "+name)
	return err
}

func (s *txChunkStore) RollbackToSavepoint(ctx context.Context, name string) error {
	_, err := s.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name)
	return err
}

func (s *txChunkStore) ReleaseSavepoint(ctx context.Context, name string) error {
	_, err := s.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name)
	return err
}
