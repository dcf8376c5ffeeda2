package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/rustyeddy/tradetrack/trade"
)

// ErrClosed is returned by every operation on a closed ledger.
var ErrClosed = errors.New("ledger closed")

// Ledger is the append-only store of confirmed trade records.
//
// Append is durable before it returns. ReadAll returns records in insertion
// order and an empty slice when there are none. ClearAll removes every record
// or none of them.
type Ledger interface {
	Append(ctx context.Context, rec trade.Record) error
	ReadAll(ctx context.Context) ([]trade.Record, error)
	ClearAll(ctx context.Context) error
	Close() error
}

// Backend types accepted by Open.
const (
	TypeMemory = "memory"
	TypeSQLite = "sqlite"
	TypeGorm   = "gorm"
	TypeCSV    = "csv"
)

// Open returns the ledger backend named by typ, stored at path.
func Open(typ, path string) (Ledger, error) {
	switch typ {
	case TypeMemory:
		return NewMemory(), nil
	case TypeSQLite:
		return NewSQLite(path)
	case TypeGorm:
		return NewGorm(path)
	case TypeCSV:
		return NewCSV(path)
	}
	return nil, fmt.Errorf("unknown ledger type %q", typ)
}
