package planstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/patrickwarner/planforge/internal/models"
)

// Postgres implements Store on top of a postgres connection.
type Postgres struct {
	DB *sql.DB
}

// schemaSQL sets up the plan tables if they don't exist. Campaign rows
// are owned by the surrounding SaaS; this service only records the
// ownership mapping it needs to scope reads and deletes.
const schemaSQL = `CREATE TABLE IF NOT EXISTS campaigns (
    id BIGINT PRIMARY KEY,
    user_id BIGINT NOT NULL,
    name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS periods (
    id BIGSERIAL PRIMARY KEY,
    campaign_id BIGINT NOT NULL REFERENCES campaigns(id),
    name TEXT NOT NULL,
    label TEXT NOT NULL,
    order_index INT NOT NULL,
    start_date DATE NOT NULL,
    end_date DATE NOT NULL,
    days INT NOT NULL,
    budget BIGINT NOT NULL,
    budget_pct DOUBLE PRECISION NOT NULL,
    traffic BIGINT NOT NULL,
    traffic_pct DOUBLE PRECISION NOT NULL,
    daily_budget BIGINT NOT NULL,
    daily_traffic BIGINT NOT NULL,
    expected_orders BIGINT NOT NULL,
    expected_revenue BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_budgets (
    id BIGSERIAL PRIMARY KEY,
    campaign_id BIGINT NOT NULL REFERENCES campaigns(id),
    period_id BIGINT NOT NULL REFERENCES periods(id),
    date DATE NOT NULL,
    day_index INT NOT NULL,
    budget BIGINT NOT NULL,
    traffic BIGINT NOT NULL,
    expected_orders BIGINT NOT NULL,
    expected_revenue BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_periods_campaign_id ON periods (campaign_id, order_index);
CREATE INDEX IF NOT EXISTS idx_daily_budgets_campaign_id ON daily_budgets (campaign_id, day_index);
CREATE INDEX IF NOT EXISTS idx_daily_budgets_period_id ON daily_budgets (period_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_daily_budgets_campaign_date ON daily_budgets (campaign_id, date);
`

// InitPostgres connects to Postgres with connection pooling configuration
// and bootstraps the plan schema.
func InitPostgres(dsn string, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (*Postgres, error) {
	driverName, err := otelsql.Register("postgres",
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("register otelsql: %w", err)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if _, err := db.ExecContext(context.Background(), schemaSQL); err != nil {
		return nil, fmt.Errorf("postgres schema: %w", err)
	}

	zap.L().Info("Connected to Postgres")
	return &Postgres{DB: db}, nil
}

func (p *Postgres) EnsureCampaign(ctx context.Context, campaignID, userID int64, name string) error {
	_, err := p.DB.ExecContext(ctx,
		`INSERT INTO campaigns (id, user_id, name) VALUES ($1, $2, $3)
         ON CONFLICT (id) DO UPDATE SET user_id = EXCLUDED.user_id, name = EXCLUDED.name`,
		campaignID, userID, name)
	if err != nil {
		return fmt.Errorf("ensure campaign %d: %w", campaignID, err)
	}
	return nil
}

// CreatePeriods inserts all period drafts in one transaction and
// returns them with assigned IDs, in input order.
func (p *Postgres) CreatePeriods(ctx context.Context, campaignID int64, drafts []models.Period) ([]models.Period, error) {
	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	created := make([]models.Period, len(drafts))
	for i, d := range drafts {
		d.CampaignID = campaignID
		err := tx.QueryRowContext(ctx,
			`INSERT INTO periods (campaign_id, name, label, order_index, start_date, end_date, days,
                                  budget, budget_pct, traffic, traffic_pct, daily_budget, daily_traffic,
                                  expected_orders, expected_revenue)
             VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
             RETURNING id`,
			d.CampaignID, d.Name, d.Label, d.OrderIndex, d.StartDate, d.EndDate, d.Days,
			d.Budget, d.BudgetPct, d.Traffic, d.TrafficPct, d.DailyBudget, d.DailyTraffic,
			d.ExpectedOrders, d.ExpectedRevenue,
		).Scan(&d.ID)
		if err != nil {
			return nil, fmt.Errorf("insert period %q: %w", d.Name, err)
		}
		created[i] = d
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit periods: %w", err)
	}
	return created, nil
}

// CreateDailyBudgets inserts all daily rows in one transaction. Drafts
// must already carry their resolved period IDs.
func (p *Postgres) CreateDailyBudgets(ctx context.Context, campaignID int64, drafts []models.DailyBudget) ([]models.DailyBudget, error) {
	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	created := make([]models.DailyBudget, len(drafts))
	for i, d := range drafts {
		if d.PeriodID == 0 {
			return nil, fmt.Errorf("daily budget for %s has no period id", d.Date.Format("2006-01-02"))
		}
		d.CampaignID = campaignID
		err := tx.QueryRowContext(ctx,
			`INSERT INTO daily_budgets (campaign_id, period_id, date, day_index,
                                        budget, traffic, expected_orders, expected_revenue)
             VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
             RETURNING id`,
			d.CampaignID, d.PeriodID, d.Date, d.DayIndex,
			d.Budget, d.Traffic, d.ExpectedOrders, d.ExpectedRevenue,
		).Scan(&d.ID)
		if err != nil {
			return nil, fmt.Errorf("insert daily budget day %d: %w", d.DayIndex, err)
		}
		created[i] = d
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit daily budgets: %w", err)
	}
	return created, nil
}

func (p *Postgres) GetPlan(ctx context.Context, campaignID, userID int64) (*models.StoredPlan, error) {
	var owner int64
	err := p.DB.QueryRowContext(ctx,
		`SELECT user_id FROM campaigns WHERE id = $1`, campaignID).Scan(&owner)
	if err == sql.ErrNoRows || (err == nil && owner != userID) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load campaign %d: %w", campaignID, err)
	}

	out := &models.StoredPlan{CampaignID: campaignID}

	rows, err := p.DB.QueryContext(ctx,
		`SELECT id, campaign_id, name, label, order_index, start_date, end_date, days,
                budget, budget_pct, traffic, traffic_pct, daily_budget, daily_traffic,
                expected_orders, expected_revenue
         FROM periods WHERE campaign_id = $1 ORDER BY order_index`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("load periods: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pd models.Period
		if err := rows.Scan(&pd.ID, &pd.CampaignID, &pd.Name, &pd.Label, &pd.OrderIndex,
			&pd.StartDate, &pd.EndDate, &pd.Days,
			&pd.Budget, &pd.BudgetPct, &pd.Traffic, &pd.TrafficPct,
			&pd.DailyBudget, &pd.DailyTraffic,
			&pd.ExpectedOrders, &pd.ExpectedRevenue); err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		out.Periods = append(out.Periods, pd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate periods: %w", err)
	}
	if len(out.Periods) == 0 {
		return nil, ErrNotFound
	}

	drows, err := p.DB.QueryContext(ctx,
		`SELECT id, campaign_id, period_id, date, day_index,
                budget, traffic, expected_orders, expected_revenue
         FROM daily_budgets WHERE campaign_id = $1 ORDER BY day_index`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("load daily budgets: %w", err)
	}
	defer drows.Close()
	for drows.Next() {
		var d models.DailyBudget
		if err := drows.Scan(&d.ID, &d.CampaignID, &d.PeriodID, &d.Date, &d.DayIndex,
			&d.Budget, &d.Traffic, &d.ExpectedOrders, &d.ExpectedRevenue); err != nil {
			return nil, fmt.Errorf("scan daily budget: %w", err)
		}
		out.DailyBudgets = append(out.DailyBudgets, d)
	}
	if err := drows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily budgets: %w", err)
	}

	return out, nil
}

func (p *Postgres) DeletePlan(ctx context.Context, campaignID, userID int64) (bool, error) {
	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var owner int64
	err = tx.QueryRowContext(ctx,
		`SELECT user_id FROM campaigns WHERE id = $1`, campaignID).Scan(&owner)
	if err == sql.ErrNoRows || (err == nil && owner != userID) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load campaign %d: %w", campaignID, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM daily_budgets WHERE campaign_id = $1`, campaignID); err != nil {
		return false, fmt.Errorf("delete daily budgets: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		`DELETE FROM periods WHERE campaign_id = $1`, campaignID)
	if err != nil {
		return false, fmt.Errorf("delete periods: %w", err)
	}
	n, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete: %w", err)
	}
	return n > 0, nil
}

// Close shuts down the database pool.
func (p *Postgres) Close() {
	if p != nil && p.DB != nil {
		if err := p.DB.Close(); err != nil {
			zap.L().Error("postgres close", zap.Error(err))
		}
	}
}
