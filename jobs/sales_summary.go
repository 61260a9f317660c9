package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-pos/meridian-pos/internal/platform/db"
)

// SalesSummaryJob rolls completed orders up into sales_daily_summaries, one
// row per day and channel. Re-running a day replaces its rows, so the task
// is safe to retry.
type SalesSummaryJob struct {
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics *Metrics
}

func NewSalesSummaryJob(pool *pgxpool.Pool, logger *slog.Logger, metrics *Metrics) *SalesSummaryJob {
	return &SalesSummaryJob{pool: pool, logger: logger, metrics: metrics}
}

func (j *SalesSummaryJob) Handle(ctx context.Context, t *asynq.Task) error {
	return j.metrics.Track(TaskSalesDailySummary).End(j.handle(ctx, t))
}

func (j *SalesSummaryJob) handle(ctx context.Context, t *asynq.Task) error {
	var payload SalesDailySummaryPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	day := time.Now().UTC().AddDate(0, 0, -1)
	if payload.Date != "" {
		parsed, err := time.Parse("2006-01-02", payload.Date)
		if err != nil {
			j.logger.Warn("sales summary: bad date in payload", "date", payload.Date)
			return asynq.SkipRetry
		}
		day = parsed
	}

	affected, err := db.Exec(ctx, j.pool,
		`INSERT INTO sales_daily_summaries (day, channel_id, order_count, subtotal, discount_total, tax_total, total, updated_at)
		 SELECT $1::date, COALESCE(channel_id, 0), COUNT(*), SUM(subtotal), SUM(discount_total), SUM(tax_total), SUM(total), now()
		 FROM sales_orders
		 WHERE order_status = 'COMPLETED' AND created_at >= $1::date AND created_at < $1::date + INTERVAL '1 day'
		 GROUP BY COALESCE(channel_id, 0)
		 ON CONFLICT (day, channel_id) DO UPDATE SET
			order_count = EXCLUDED.order_count,
			subtotal = EXCLUDED.subtotal,
			discount_total = EXCLUDED.discount_total,
			tax_total = EXCLUDED.tax_total,
			total = EXCLUDED.total,
			updated_at = now()`,
		day.Format("2006-01-02"))
	if err != nil {
		return err
	}

	j.logger.Info("sales summary refreshed", "day", day.Format("2006-01-02"), "rows", affected)
	return nil
}
