package reporting

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{
	"case_number", "type", "priority", "status", "received_at",
	"effective_due_at", "extension_days", "total_paused_days",
	"days_remaining", "current_risk",
}

// WriteCSV streams export rows as RFC 4180 CSV.
func WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.CaseNumber,
			string(row.Type),
			string(row.Priority),
			string(row.Status),
			row.ReceivedAt.UTC().Format(time.RFC3339),
			formatTime(row.EffectiveDueAt),
			strconv.Itoa(row.ExtensionDays),
			strconv.Itoa(row.TotalPausedDays),
			formatInt(row.DaysRemaining),
			string(row.CurrentRisk),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
