package reporting_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dee126/DSAR-sub009/internal/domain"
	"github.com/Dee126/DSAR-sub009/internal/reporting"
)

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	due := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	remaining := 3
	rows := []reporting.Row{
		{
			CaseNumber:     "DSAR-2025-000002",
			Type:           domain.CaseTypeAccess,
			Priority:       domain.CasePriorityMedium,
			Status:         domain.CaseStatusInProgress,
			ReceivedAt:     time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC),
			EffectiveDueAt: &due,
			ExtensionDays:  0,
			DaysRemaining:  &remaining,
			CurrentRisk:    domain.RiskYellow,
		},
		{
			CaseNumber:  "DSAR-2025-000005",
			Type:        domain.CaseTypeErasure,
			Priority:    domain.CasePriorityHigh,
			Status:      domain.CaseStatusNew,
			ReceivedAt:  time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC),
			CurrentRisk: domain.RiskGreen,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, reporting.WriteCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"case_number", "type", "priority", "status", "received_at",
		"effective_due_at", "extension_days", "total_paused_days",
		"days_remaining", "current_risk",
	}, records[0])

	assert.Equal(t, []string{
		"DSAR-2025-000002", "ACCESS", "MEDIUM", "IN_PROGRESS",
		"2025-05-05T00:00:00Z", "2025-06-04T00:00:00Z", "0", "0", "3", "YELLOW",
	}, records[1])

	// Missing deadline data emits empty cells, not zeros.
	assert.Equal(t, "", records[2][5])
	assert.Equal(t, "", records[2][8])
	assert.Equal(t, "GREEN", records[2][9])
}

func TestWriteCSVEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, reporting.WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}
