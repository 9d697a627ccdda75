package postgres

import (
	"context"
	"database/sql"

	"github.com/plateful/ordering-service/internal/domain/loyalty"
	"github.com/plateful/ordering-service/internal/infrastructure/monitoring"
)

// LedgerRepository implements the points ledger on a loyalty_points table
// keyed by (user_id, restaurant_id). There is no version column: writers
// overwrite whatever points value is current.
type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(conn *Connection) *LedgerRepository {
	return &LedgerRepository{
		db: conn.GetDB(),
	}
}

func (r *LedgerRepository) Read(ctx context.Context, userID string, restaurantID int64) (*loyalty.Balance, error) {
	query := `
		SELECT user_id, restaurant_id, points, updated_at
		FROM loyalty_points
		WHERE user_id = $1 AND restaurant_id = $2
	`

	var b loyalty.Balance
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "loyalty_points", query, userID, restaurantID)
	err := row.Scan(&b.UserID, &b.RestaurantID, &b.Points, &b.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			// First checkout for this pair has not happened yet.
			return nil, nil
		}
		return nil, err
	}

	return &b, nil
}

func (r *LedgerRepository) Upsert(ctx context.Context, userID string, restaurantID int64, points int64) error {
	query := `
		INSERT INTO loyalty_points (user_id, restaurant_id, points, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, restaurant_id)
		DO UPDATE SET points = EXCLUDED.points, updated_at = NOW()
	`

	_, err := monitoring.InstrumentExec(ctx, r.db, "UPSERT", "loyalty_points", query, userID, restaurantID, points)
	return err
}
