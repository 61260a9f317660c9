package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSalesDailySummary aggregates completed orders into the per-day,
	// per-channel summary table.
	TaskSalesDailySummary = "sales:daily_summary"
)

// SalesDailySummaryPayload selects the day to aggregate. An empty Date means
// "the previous day at handling time".
type SalesDailySummaryPayload struct {
	Date string `json:"date,omitempty"`
}

// NewSalesDailySummaryTask constructs the aggregation task for a given day.
func NewSalesDailySummaryTask(day time.Time) (*asynq.Task, error) {
	payload := SalesDailySummaryPayload{}
	if !day.IsZero() {
		payload.Date = day.Format("2006-01-02")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSalesDailySummary, data), nil
}
