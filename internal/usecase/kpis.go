package usecase

import (
	"context"
	"math"

	"github.com/xavierca1/insta-setter/internal/entity"
)

// KPICounters é o subconjunto de leitura do lead store usado pelos KPIs.
type KPICounters interface {
	CountContactedToday(ctx context.Context) (int, error)
	CountTotal(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

// BuildKPIReport computa as métricas agregadas de uma conta. Denominador
// zero produz taxa zero, nunca erro.
//
// Nota: "qualified" hoje é um alias de "replied": não existe sinal
// distinto de qualificação implementado. Mantido como está até definição
// de produto.
func BuildKPIReport(ctx context.Context, accountID string, c KPICounters) (*KPIReport, error) {
	sentToday, err := c.CountContactedToday(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "KPI_QUERY_FAILED", Message: err.Error()}
	}
	totalSent, err := c.CountTotal(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "KPI_QUERY_FAILED", Message: err.Error()}
	}
	totalReplies, err := c.CountByStatus(ctx, entity.StatusReplied)
	if err != nil {
		return nil, &TechnicalError{Code: "KPI_QUERY_FAILED", Message: err.Error()}
	}
	totalQualified := totalReplies

	return &KPIReport{
		AccountID:         accountID,
		MessagesSentToday: sentToday,
		TotalSent:         totalSent,
		TotalReplies:      totalReplies,
		TotalQualified:    totalQualified,
		ResponseRate:      percentage(totalReplies, totalSent),
		QualificationRate: percentage(totalQualified, totalReplies),
	}, nil
}

// EmptyKPIReport é a resposta para uma conta que ainda não tem store.
func EmptyKPIReport(accountID string) *KPIReport {
	return &KPIReport{
		AccountID: accountID,
		Msg:       "no lead store found for this account yet",
	}
}

func percentage(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return math.Round(float64(numerator)/float64(denominator)*10000) / 100
}
