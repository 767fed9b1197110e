package stockservice

import "goestoque/internal/domain"

// Partition divide a lista de ajustes aprovados pelo validador em chunks
// consecutivos de no máximo size itens, para limitar o tamanho e a duração
// de cada transação. A ordem dos itens dentro de um chunk e a ordem dos
// chunks preservam a ordem de submissão; não há reordenação nem prioridade.
// Os chunks são processados sequencialmente (nunca em paralelo) para evitar
// contenção de lock entre chunks que tocam as mesmas linhas.
func Partition(items []domain.StockAdjustment, size int) [][]domain.StockAdjustment {
	if len(items) == 0 {
		return nil
	}
	if size < 1 {
		size = 1
	}

	chunks := make([][]domain.StockAdjustment, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
