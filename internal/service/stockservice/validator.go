package stockservice

import (
	"fmt"

	"goestoque/internal/domain"
)

// ValidateItem faz a checagem estrutural de um item bruto do lote, antes de
// qualquer transação ser aberta. É uma função pura: sem efeitos colaterais.
// Falhas de validação nunca são retryable — o cliente deve corrigir o payload.
// Resubmeter o mesmo item inválido produz a mesma rejeição.
func ValidateItem(item domain.BatchAdjustmentItem) (domain.StockAdjustment, *domain.FailureRecord) {
	fail := func(msg string) (domain.StockAdjustment, *domain.FailureRecord) {
		fr := domain.NewFailureRecord(item.ProductID, item.LocationID, domain.FailureValidation, msg)
		return domain.StockAdjustment{}, &fr
	}

	// (a) Identificadores presentes e bem-formados.
	if item.ProductID <= 0 {
		return fail("O campo product_id é obrigatório e deve ser um inteiro positivo.")
	}
	if item.LocationID <= 0 {
		return fail("O campo location_id é obrigatório e deve ser um inteiro positivo.")
	}

	// (b) Delta precisa ser um inteiro representável (JSON aceita 2.5; nós não).
	if item.Delta.String() == "" {
		return fail("O campo delta é obrigatório.")
	}
	delta, err := item.Delta.Int64()
	if err != nil {
		return fail(fmt.Sprintf("O delta '%s' não é um inteiro válido.", item.Delta.String()))
	}
	if delta == 0 {
		return fail("O ajuste de estoque (delta) não pode ser zero.")
	}

	if item.ExpectedVersion < 0 {
		return fail("O campo expected_version não pode ser negativo.")
	}

	// (c) Quantidade resultante pretendida, quando informada, não pode ser
	// negativa. O delta é a entrada autoritativa; new_quantity serve só de
	// checagem estrutural aqui e a quantidade real é derivada no aplicador.
	if item.NewQuantity.String() != "" {
		newQty, err := item.NewQuantity.Int64()
		if err != nil {
			return fail(fmt.Sprintf("O new_quantity '%s' não é um inteiro válido.", item.NewQuantity.String()))
		}
		if newQty < 0 {
			adj, fr := fail(fmt.Sprintf("A quantidade pretendida (%d) não pode ser negativa.", newQty))
			fr.AttemptedQuantity = &newQty
			return adj, fr
		}
	}

	return domain.StockAdjustment{
		ProductID:       item.ProductID,
		LocationID:      item.LocationID,
		Delta:           delta,
		ExpectedVersion: item.ExpectedVersion,
		Reason:          item.Reason,
	}, nil
}

// ValidateBatch filtra os itens estruturalmente inválidos de um lote,
// devolvendo os ajustes válidos (na ordem de submissão) e um FailureRecord
// por item rejeitado.
func ValidateBatch(items []domain.BatchAdjustmentItem) ([]domain.StockAdjustment, []domain.FailureRecord) {
	var (
		valid    []domain.StockAdjustment
		failures []domain.FailureRecord
	)
	for _, item := range items {
		adj, failure := ValidateItem(item)
		if failure != nil {
			failures = append(failures, *failure)
			continue
		}
		valid = append(valid, adj)
	}
	return valid, failures
}
