package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/insta-setter/internal/entity"
)

type stubCounters struct {
	sentToday int
	total     int
	replied   int
}

func (s stubCounters) CountContactedToday(ctx context.Context) (int, error) { return s.sentToday, nil }
func (s stubCounters) CountTotal(ctx context.Context) (int, error)          { return s.total, nil }
func (s stubCounters) CountByStatus(ctx context.Context, status string) (int, error) {
	if status == entity.StatusReplied {
		return s.replied, nil
	}
	return 0, nil
}

func TestKPIReportZeroDenominators(t *testing.T) {
	report, err := BuildKPIReport(context.Background(), "conta", stubCounters{})

	assert.NoError(t, err)
	assert.Equal(t, 0, report.MessagesSentToday)
	assert.Equal(t, 0, report.TotalReplies)
	assert.Equal(t, float64(0), report.ResponseRate)
	assert.Equal(t, float64(0), report.QualificationRate)
}

func TestKPIReportRates(t *testing.T) {
	report, err := BuildKPIReport(context.Background(), "conta", stubCounters{
		sentToday: 5,
		total:     40,
		replied:   10,
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, report.MessagesSentToday)
	assert.Equal(t, 40, report.TotalSent)
	assert.Equal(t, 10, report.TotalReplies)
	assert.Equal(t, 25.0, report.ResponseRate)
	// qualified é alias de replied: taxa de qualificação vira 100%.
	assert.Equal(t, 10, report.TotalQualified)
	assert.Equal(t, 100.0, report.QualificationRate)
}

func TestKPIRatesAreBoundedPercentages(t *testing.T) {
	report, err := BuildKPIReport(context.Background(), "conta", stubCounters{
		sentToday: 1,
		total:     3,
		replied:   1,
	})

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, report.ResponseRate, 0.0)
	assert.LessOrEqual(t, report.ResponseRate, 100.0)
	assert.GreaterOrEqual(t, report.QualificationRate, 0.0)
	assert.LessOrEqual(t, report.QualificationRate, 100.0)
	assert.Equal(t, 33.33, report.ResponseRate)
}

func TestEmptyKPIReportHasMessage(t *testing.T) {
	report := EmptyKPIReport("conta_nova")

	assert.Equal(t, "conta_nova", report.AccountID)
	assert.Equal(t, 0, report.MessagesSentToday)
	assert.Equal(t, float64(0), report.ResponseRate)
	assert.NotEmpty(t, report.Msg)
}
