package stockrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"goestoque/internal/domain"
)

// stockRow é a projeção mínima de uma linha de stock_levels que o algoritmo
// por item manipula.
type stockRow struct {
	ID         string
	ProductID  int64
	LocationID int64
	Quantity   int64
	Version    int64
}

// chunkStore é a visão transacional que o aplicador enxerga durante um chunk.
// A implementação de produção embrulha o *sql.Tx do chunk; os testes usam uma
// implementação em memória com a mesma semântica de savepoints.
// Buscas sinalizam ausência com sql.ErrNoRows.
type chunkStore interface {
	ActiveProductName(ctx context.Context, productID int64) (string, error)
	ActiveLocationName(ctx context.Context, locationID int64) (string, error)
	LockStockLevel(ctx context.Context, productID, locationID int64) (stockRow, error)
	InsertStockLevel(ctx context.Context, row stockRow, now time.Time) error
	AppendLog(ctx context.Context, entry domain.InventoryLogEntry) error
	UpdateStockLevel(ctx context.Context, productID, locationID, newQuantity, expectedVersion int64, now time.Time) (int64, error)
	Savepoint(ctx context.Context, name string) error
	RollbackToSavepoint(ctx context.Context, name string) error
	ReleaseSavepoint(ctx context.Context, name string) error
}

// applyChunkItems percorre os itens de um chunk dentro de uma transação já
// aberta (representada por store).
//
// commit=false indica que o chunk foi abortado (allowPartial=false) e o
// chamador deve descartar a transação: nenhuma mutação ou entrada de log do
// chunk pode persistir. Um erro não-nulo indica que a transação não está
// mais utilizável; o chamador reporta DATABASE_ERROR para cada item.
func applyChunkItems(ctx context.Context, store chunkStore, userID, note string, items []domain.StockAdjustment, allowPartial bool) (domain.ChunkOutcome, bool, error) {
	var outcome domain.ChunkOutcome

	for i, adj := range items {
		applied, failure, err := applyItem(ctx, store, userID, note, adj, i, allowPartial)
		if err != nil {
			return domain.ChunkOutcome{}, false, err
		}

		if failure != nil {
			if !allowPartial {
				// Aborta o chunk inteiro: todo item (processado ou não) falha
				// com o mesmo motivo subjacente.
				return abortedChunkOutcome(items, *failure), false, nil
			}
			outcome.Failures = append(outcome.Failures, *failure)
			continue
		}

		outcome.Applied = append(outcome.Applied, applied)
	}

	return outcome, true, nil
}

// abortedChunkOutcome materializa a semântica all-or-nothing: cada item do
// chunk recebe um FailureRecord com o motivo do item que disparou o abort.
func abortedChunkOutcome(items []domain.StockAdjustment, trigger domain.FailureRecord) domain.ChunkOutcome {
	var outcome domain.ChunkOutcome
	for _, adj := range items {
		if adj.ProductID == trigger.ProductID && adj.LocationID == trigger.LocationID {
			outcome.Failures = append(outcome.Failures, trigger)
			continue
		}
		fr := domain.NewFailureRecord(adj.ProductID, adj.LocationID, trigger.Reason,
			fmt.Sprintf("Chunk abortado: %s", trigger.Message))
		outcome.Failures = append(outcome.Failures, fr)
	}
	return outcome
}

// applyItem executa o algoritmo por item dentro da transação do chunk.
// Quando useSavepoint=true, o item roda entre SAVEPOINT/RELEASE: tanto falhas
// de negócio quanto erros de comando são contidos por um rollback parcial,
// mantendo a transação utilizável para os irmãos.
func applyItem(ctx context.Context, store chunkStore, userID, note string, adj domain.StockAdjustment, seq int, useSavepoint bool) (domain.AppliedAdjustment, *domain.FailureRecord, error) {
	savepoint := fmt.Sprintf("batch_item_%d", seq)
	if useSavepoint {
		if err := store.Savepoint(ctx, savepoint); err != nil {
			return domain.AppliedAdjustment{}, nil, err
		}
	}

	applied, failure, err := applyItemInner(ctx, store, userID, note, adj)
	if err != nil {
		if !useSavepoint {
			return domain.AppliedAdjustment{}, nil, err
		}
		// Erro de comando com savepoint ativo: o rollback parcial recupera a
		// transação e a falha vira um DATABASE_ERROR só deste item. Se o
		// próprio rollback falhar (conexão perdida, timeout), a transação
		// está perdida e o erro original sobe.
		if rbErr := store.RollbackToSavepoint(ctx, savepoint); rbErr != nil {
			return domain.AppliedAdjustment{}, nil, err
		}
		fr := domain.NewFailureRecord(adj.ProductID, adj.LocationID, domain.FailureDatabase,
			fmt.Sprintf("Falha de persistência ao aplicar o item: %v", err))
		return domain.AppliedAdjustment{}, &fr, nil
	}

	if failure != nil {
		if useSavepoint {
			// Desfaz apenas os efeitos deste item; a transação segue válida.
			if rbErr := store.RollbackToSavepoint(ctx, savepoint); rbErr != nil {
				return domain.AppliedAdjustment{}, nil, rbErr
			}
		}
		return domain.AppliedAdjustment{}, failure, nil
	}

	if useSavepoint {
		if err := store.ReleaseSavepoint(ctx, savepoint); err != nil {
			return domain.AppliedAdjustment{}, nil, err
		}
	}
	return applied, nil, nil
}

func applyItemInner(ctx context.Context, store chunkStore, userID, note string, adj domain.StockAdjustment) (domain.AppliedAdjustment, *domain.FailureRecord, error) {
	// 1. Produto precisa existir e estar ativo (soft delete conta como ausente).
	productName, err := store.ActiveProductName(ctx, adj.ProductID)
	if err == sql.ErrNoRows {
		fr := domain.NewFailureRecord(adj.ProductID, adj.LocationID, domain.FailureProductMissing,
			fmt.Sprintf("Produto %d não encontrado ou inativo.", adj.ProductID))
		return domain.AppliedAdjustment{}, &fr, nil
	}
	if err != nil {
		return domain.AppliedAdjustment{}, nil, err
	}

	// 2. Local precisa existir e estar ativo.
	locationName, err := store.ActiveLocationName(ctx, adj.LocationID)
	if err == sql.ErrNoRows {
		fr := domain.NewFailureRecord(adj.ProductID, adj.LocationID, domain.FailureLocationMissing,
			fmt.Sprintf("Local %d não encontrado ou inativo.", adj.LocationID))
		fr.ProductName = productName
		return domain.AppliedAdjustment{}, &fr, nil
	}
	if err != nil {
		return domain.AppliedAdjustment{}, nil, err
	}

	// 3. Obter (ou criar preguiçosamente) o nível de estoque, bloqueando a
	//    linha dentro da transação.
	row, err := store.LockStockLevel(ctx, adj.ProductID, adj.LocationID)
	if err == sql.ErrNoRows {
		// Primeira referência ao par (produto, local): cria com quantidade 0, versão 0.
		row = stockRow{
			ID:         uuid.New().String(),
			ProductID:  adj.ProductID,
			LocationID: adj.LocationID,
			Quantity:   0,
			Version:    0,
		}
		if err := store.InsertStockLevel(ctx, row, time.Now().UTC()); err != nil {
			return domain.AppliedAdjustment{}, nil, err
		}
	} else if err != nil {
		return domain.AppliedAdjustment{}, nil, err
	}

	// 4. Checagem de concorrência otimista contra a versão observada pelo cliente.
	if row.Version != adj.ExpectedVersion {
		fr := domain.NewFailureRecord(adj.ProductID, adj.LocationID, domain.FailureOptimisticLock,
			fmt.Sprintf("Versão esperada %d, versão atual %d. Reconsulte o estoque e resubmeta.", adj.ExpectedVersion, row.Version))
		fr.ProductName = productName
		fr.LocationName = locationName
		fr.CurrentQuantity = &row.Quantity
		return domain.AppliedAdjustment{}, &fr, nil
	}

	// 5. A quantidade resultante não pode ser negativa.
	newQuantity := row.Quantity + adj.Delta
	if newQuantity < 0 {
		fr := domain.NewFailureRecord(adj.ProductID, adj.LocationID, domain.FailureValidation,
			fmt.Sprintf("Ajuste de %d resultaria em quantidade negativa (%d).", adj.Delta, newQuantity))
		fr.ProductName = productName
		fr.LocationName = locationName
		fr.CurrentQuantity = &row.Quantity
		fr.AttemptedQuantity = &newQuantity
		return domain.AppliedAdjustment{}, &fr, nil
	}

	// 6. Append no log de inventário, na mesma transação da mutação.
	entryNote := note
	if adj.Reason != "" {
		entryNote = adj.Reason
	}
	now := time.Now().UTC()
	entry := domain.InventoryLogEntry{
		ID:         uuid.New().String(),
		UserID:     userID,
		ProductID:  adj.ProductID,
		LocationID: adj.LocationID,
		Delta:      adj.Delta,
		LogType:    domain.LogTypeAdjustment,
		Note:       entryNote,
		CreatedAt:  now,
	}
	if err := store.AppendLog(ctx, entry); err != nil {
		return domain.AppliedAdjustment{}, nil, err
	}

	// 7. Atualização com OCC: a cláusula de versão protege contra um escritor
	//    que tenha passado entre a leitura e este UPDATE.
	rowsAffected, err := store.UpdateStockLevel(ctx, adj.ProductID, adj.LocationID, newQuantity, adj.ExpectedVersion, now)
	if err != nil {
		return domain.AppliedAdjustment{}, nil, err
	}
	if rowsAffected == 0 {
		fr := domain.NewFailureRecord(adj.ProductID, adj.LocationID, domain.FailureConcurrent,
			"O estoque foi modificado por outra operação. Reconsulte e tente novamente.")
		fr.ProductName = productName
		fr.LocationName = locationName
		fr.CurrentQuantity = &row.Quantity
		return domain.AppliedAdjustment{}, &fr, nil
	}

	return domain.AppliedAdjustment{
		ProductID:   adj.ProductID,
		LocationID:  adj.LocationID,
		Delta:       adj.Delta,
		NewQuantity: newQuantity,
		NewVersion:  adj.ExpectedVersion + 1,
	}, nil, nil
}
