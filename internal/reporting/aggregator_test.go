package reporting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dee126/DSAR-sub009/internal/domain"
	"github.com/Dee126/DSAR-sub009/internal/reporting"
)

var reportNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

var reportCfg = domain.TenantSlaConfig{
	TenantID:             "t1",
	BaseSlaDays:          30,
	DueSoonThresholdDays: 7,
	CalendarPolicy:       domain.PolicyCalendar,
}

func pair(number string, status domain.CaseStatus, received time.Time, dl *domain.Deadline) domain.CaseWithDeadline {
	return domain.CaseWithDeadline{
		Case: domain.Case{
			ID:         number,
			TenantID:   "t1",
			CaseNumber: number,
			Type:       domain.CaseTypeAccess,
			Priority:   domain.CasePriorityMedium,
			Status:     status,
			ReceivedAt: received,
			CreatedAt:  received,
			UpdatedAt:  received,
		},
		Deadline: dl,
	}
}

// fleet builds a small tenant:
//
//	overdue   open, received 2025-04-01, due 2025-05-01 (31 days overdue)
//	soon-a    open, received 2025-05-05, due 2025-06-04 (3 days remaining)
//	soon-b    open, received 2025-05-07, due 2025-06-06 (5 days remaining)
//	closed    CLOSED after 20 days, carried a 14-day extension
//	no-dl     open with a missing deadline row
func fleet() []domain.CaseWithDeadline {
	overdue := pair("DSAR-2025-000001", domain.CaseStatusInProgress,
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), &domain.Deadline{CaseID: "DSAR-2025-000001"})
	soonA := pair("DSAR-2025-000002", domain.CaseStatusInProgress,
		time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC), &domain.Deadline{CaseID: "DSAR-2025-000002"})
	soonB := pair("DSAR-2025-000003", domain.CaseStatusPendingClarification,
		time.Date(2025, 5, 7, 0, 0, 0, 0, time.UTC), &domain.Deadline{CaseID: "DSAR-2025-000003"})

	closed := pair("DSAR-2025-000004", domain.CaseStatusClosed,
		time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC),
		&domain.Deadline{CaseID: "DSAR-2025-000004", ExtensionDays: 14})
	closed.Case.UpdatedAt = closed.Case.ReceivedAt.AddDate(0, 0, 20)

	noDeadline := pair("DSAR-2025-000005", domain.CaseStatusNew,
		time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC), nil)

	return []domain.CaseWithDeadline{overdue, soonA, soonB, closed, noDeadline}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	summary := reporting.Summarize(fleet(), reportNow, reportCfg, nil)

	assert.Equal(t, 5, summary.TotalCases)
	assert.Equal(t, 4, summary.TotalOpen)
	assert.Equal(t, 1, summary.Overdue)
	assert.Equal(t, 2, summary.DueIn7)
	assert.Equal(t, 2, summary.DueIn14)
	assert.Equal(t, 2, summary.DueIn30)
	assert.Equal(t, 20, summary.AvgDaysToClose)
	assert.Equal(t, 20, summary.ExtensionRate)

	assert.Equal(t, 1, summary.RiskDistribution[domain.RiskRed])
	assert.Equal(t, 2, summary.RiskDistribution[domain.RiskYellow])
	assert.Equal(t, 1, summary.RiskDistribution[domain.RiskGreen])
}

func TestSummarizeIsIdempotent(t *testing.T) {
	t.Parallel()

	pairs := fleet()
	first := reporting.Summarize(pairs, reportNow, reportCfg, nil)
	second := reporting.Summarize(pairs, reportNow, reportCfg, nil)
	assert.Equal(t, first, second)
}

func TestSummarizeEmptyTenant(t *testing.T) {
	t.Parallel()

	summary := reporting.Summarize(nil, reportNow, reportCfg, nil)
	assert.Equal(t, 0, summary.TotalCases)
	assert.Equal(t, 0, summary.TotalOpen)
	assert.Equal(t, 0, summary.AvgDaysToClose)
	assert.Equal(t, 0, summary.ExtensionRate)
}

func TestSummarizeMissingDeadlineIsGreen(t *testing.T) {
	t.Parallel()

	// Received long ago, but no deadline row: must not count as overdue.
	pairs := []domain.CaseWithDeadline{
		pair("DSAR-2024-000001", domain.CaseStatusInProgress,
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil),
	}
	summary := reporting.Summarize(pairs, reportNow, reportCfg, nil)

	assert.Equal(t, 0, summary.Overdue)
	assert.Equal(t, 1, summary.RiskDistribution[domain.RiskGreen])
	assert.Equal(t, 0, summary.RiskDistribution[domain.RiskRed])
}

func TestSummarizeMalformedDeadlineIsGreen(t *testing.T) {
	t.Parallel()

	// A negative stored extension no longer computes; the row degrades to
	// GREEN instead of failing the report.
	pairs := []domain.CaseWithDeadline{
		pair("DSAR-2024-000002", domain.CaseStatusInProgress,
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			&domain.Deadline{CaseID: "DSAR-2024-000002", ExtensionDays: -3}),
	}
	summary := reporting.Summarize(pairs, reportNow, reportCfg, nil)

	assert.Equal(t, 0, summary.Overdue)
	assert.Equal(t, 1, summary.RiskDistribution[domain.RiskGreen])
}

func TestRowsMatchSummaryClassification(t *testing.T) {
	t.Parallel()

	rows := reporting.Rows(fleet(), reportNow, reportCfg, nil)
	require.Len(t, rows, 5)

	byNumber := make(map[string]reporting.Row, len(rows))
	for _, row := range rows {
		byNumber[row.CaseNumber] = row
	}

	overdue := byNumber["DSAR-2025-000001"]
	require.NotNil(t, overdue.DaysRemaining)
	assert.Equal(t, -31, *overdue.DaysRemaining)
	assert.Equal(t, domain.RiskRed, overdue.CurrentRisk)
	require.NotNil(t, overdue.EffectiveDueAt)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), *overdue.EffectiveDueAt)

	soon := byNumber["DSAR-2025-000002"]
	require.NotNil(t, soon.DaysRemaining)
	assert.Equal(t, 3, *soon.DaysRemaining)
	assert.Equal(t, domain.RiskYellow, soon.CurrentRisk)

	closed := byNumber["DSAR-2025-000004"]
	assert.Equal(t, 14, closed.ExtensionDays)
	assert.Equal(t, domain.CaseStatusClosed, closed.Status)

	noDeadline := byNumber["DSAR-2025-000005"]
	assert.Nil(t, noDeadline.DaysRemaining)
	assert.Nil(t, noDeadline.EffectiveDueAt)
	assert.Equal(t, domain.RiskGreen, noDeadline.CurrentRisk)
}
