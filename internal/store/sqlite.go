package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sqliteRepo implements StatsRepo with ent's SQL builder over SQLite.
// conn is the driver itself, or an open transaction inside withTx.
type sqliteRepo struct {
	drv  *entsql.Driver
	conn dialect.ExecQuerier
	seq  *sequenceCounter
}

var _ StatsRepo = (*sqliteRepo)(nil)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// query runs a SELECT and calls scan once per row.
func (r *sqliteRepo) query(ctx context.Context, q string, args []any, scan func(*entsql.Rows) error) error {
	var rows entsql.Rows
	if err := r.conn.Query(ctx, q, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// exec runs a statement and returns the number of affected rows.
func (r *sqliteRepo) exec(ctx context.Context, q string, args []any) (int64, error) {
	var res sql.Result
	if err := r.conn.Exec(ctx, q, args, &res); err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// withTx runs fn against a repo bound to a single transaction, committing
// when fn succeeds and rolling back otherwise.
func (r *sqliteRepo) withTx(ctx context.Context, fn func(tx *sqliteRepo) error) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&sqliteRepo{drv: r.drv, conn: tx, seq: r.seq}); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: rollback: %v", err, rerr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// jsonColumn marshals v for storage in a JSON column; nil stays NULL.
func jsonColumn(v any, empty bool) (any, error) {
	if empty {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// decodeJSONColumn unmarshals a nullable JSON column into dst.
func decodeJSONColumn(raw sql.NullString, dst any) error {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw.String), dst)
}
