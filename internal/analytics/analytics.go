// Package analytics records plan lifecycle events for the reporting
// side of the dashboard. Recording is best-effort: a failed insert must
// never fail the request that produced the plan.
package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	_ "github.com/ClickHouse/clickhouse-go/v2"

	"github.com/patrickwarner/planforge/internal/models"
	"github.com/patrickwarner/planforge/internal/observability"
)

// ErrUnavailable is returned when the analytics DB is not configured.
var ErrUnavailable = fmt.Errorf("analytics unavailable")

// Service defines the interface for analytics operations.
// Implementations should handle cases where underlying storage is
// unavailable by returning ErrUnavailable.
type Service interface {
	// RecordPlanCreated records that a budget plan was computed and stored.
	RecordPlanCreated(ctx context.Context, requestID string, campaignID int64, strategy string, totals models.CampaignTotals) error
	// RecordPlanDeleted records that a budget plan was removed.
	RecordPlanDeleted(ctx context.Context, requestID string, campaignID int64) error
}

// Analytics wraps a ClickHouse DB connection.
type Analytics struct {
	DB      *sql.DB
	Metrics observability.MetricsRegistry
}

// InitClickHouse connects to ClickHouse and ensures the plan_events
// table exists.
func InitClickHouse(dsn string, metrics observability.MetricsRegistry) (*Analytics, error) {
	db, err := sql.Open("clickhouse", dsn)
	if err != nil {
		return nil, fmt.Errorf("clickhouse open: %w", err)
	}
	db.SetMaxOpenConns(25)
	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("clickhouse ping: %w", err)
	}
	create := `CREATE TABLE IF NOT EXISTS plan_events (
       timestamp     DateTime,
       event_type    String,
       request_id    String,
       campaign_id   Int64,
       strategy      String,
       total_days    Int32,
       total_orders  Int64,
       total_traffic Int64,
       total_budget  Int64
   ) ENGINE=MergeTree() ORDER BY (event_type, timestamp)`
	if _, err := db.ExecContext(context.Background(), create); err != nil {
		return nil, fmt.Errorf("clickhouse create table: %w", err)
	}

	zap.L().Info("Connected to ClickHouse")
	return &Analytics{DB: db, Metrics: metrics}, nil
}

func (a *Analytics) record(ctx context.Context, eventType, requestID string, campaignID int64, strategy string, totals models.CampaignTotals) error {
	if a == nil || a.DB == nil {
		return ErrUnavailable
	}
	_, err := a.DB.ExecContext(ctx,
		`INSERT INTO plan_events (timestamp, event_type, request_id, campaign_id, strategy,
                                  total_days, total_orders, total_traffic, total_budget)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), eventType, requestID, campaignID, strategy,
		int32(totals.TotalDays), totals.TotalOrders, totals.TotalTraffic, totals.TotalBudget,
	)
	if err != nil {
		if a.Metrics != nil {
			a.Metrics.IncrementAnalyticsErrors()
		}
		return fmt.Errorf("insert %s event: %w", eventType, err)
	}
	return nil
}

func (a *Analytics) RecordPlanCreated(ctx context.Context, requestID string, campaignID int64, strategy string, totals models.CampaignTotals) error {
	return a.record(ctx, "plan_created", requestID, campaignID, strategy, totals)
}

func (a *Analytics) RecordPlanDeleted(ctx context.Context, requestID string, campaignID int64) error {
	return a.record(ctx, "plan_deleted", requestID, campaignID, "", models.CampaignTotals{})
}

// Close shuts down the ClickHouse connection.
func (a *Analytics) Close() {
	if a != nil && a.DB != nil {
		if err := a.DB.Close(); err != nil {
			zap.L().Error("clickhouse close", zap.Error(err))
		}
	}
}
