package ledger

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradetrack/trade"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) Append(ctx context.Context, rec trade.Record) error {
	if j.db == nil {
		return ErrClosed
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO trades
		(id, date, amount, type, lot, symbol, side, platform)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Date, rec.Amount.String(), string(rec.Kind()),
		rec.Lot, rec.Symbol, string(rec.Order), string(rec.Platform),
	)
	if err != nil {
		return fmt.Errorf("insert trade: %w", err)
	}
	return nil
}

func (j *SQLite) ReadAll(ctx context.Context) ([]trade.Record, error) {
	if j.db == nil {
		return nil, ErrClosed
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, date, amount, lot, symbol, side, platform
		FROM trades
		ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	out := []trade.Record{}
	for rows.Next() {
		var (
			rec      trade.Record
			amount   string
			side     string
			platform string
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.Date,
			&amount,
			&rec.Lot,
			&rec.Symbol,
			&side,
			&platform,
		); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		if rec.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("trade %s amount %q: %w", rec.ID, amount, err)
		}
		rec.Order = trade.Side(side)
		rec.Platform = trade.Platform(platform)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ClearAll deletes every row inside one transaction.
func (j *SQLite) ClearAll(ctx context.Context) error {
	if j.db == nil {
		return ErrClosed
	}
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM trades`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear trades: %w", err)
	}
	return tx.Commit()
}

func (j *SQLite) Close() error {
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}
