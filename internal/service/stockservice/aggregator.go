package stockservice

import "goestoque/internal/domain"

// Aggregate consolida as falhas de pré-validação e os desfechos de todos os
// chunks em um único BatchResult. O detalhe por item é preservado para que o
// cliente possa resubmeter seletivamente apenas as falhas retryable.
func Aggregate(transactionID string, validationFailures []domain.FailureRecord, outcomes []domain.ChunkOutcome) domain.BatchResult {
	result := domain.BatchResult{
		TransactionID: transactionID,
		Failures:      []domain.FailureRecord{},
	}

	result.Failures = append(result.Failures, validationFailures...)
	for _, outcome := range outcomes {
		result.Applied = append(result.Applied, outcome.Applied...)
		result.Failures = append(result.Failures, outcome.Failures...)
	}

	result.Successful = len(result.Applied)
	result.Failed = len(result.Failures)
	// Parcial sse houve sucessos E falhas — "nada aconteceu" nunca deve
	// parecer "tudo aconteceu".
	result.Partial = result.Successful > 0 && result.Failed > 0

	return result
}
