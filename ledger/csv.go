package ledger

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradetrack/trade"
)

// StoreColumns is the header of the CSV backend's file.
var StoreColumns = []string{"id", "date", "amount", "type", "lot", "symbol", "order", "platform"}

// CSV keeps the ledger in a single flat file. Appends are synced before they
// return; ClearAll swaps in an empty file with a rename.
type CSV struct {
	mu     sync.RWMutex
	path   string
	closed bool
}

func NewCSV(path string) (*CSV, error) {
	j := &CSV{path: path}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := j.writeEmpty(); err != nil {
			return nil, err
		}
		return j, nil
	}
	if err := trimTornRow(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if errors.Is(err, io.EOF) {
		if err := j.writeEmpty(); err != nil {
			return nil, err
		}
		return j, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger header: %w", err)
	}
	if !slices.Equal(header, StoreColumns) {
		return nil, fmt.Errorf("ledger file %s: unexpected header %v", path, header)
	}
	return j, nil
}

func (j *CSV) Append(_ context.Context, rec trade.Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrClosed
	}

	f, err := os.OpenFile(j.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(storeRow(rec)); err != nil {
		_ = f.Close()
		return fmt.Errorf("write trade: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write trade: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync ledger file: %w", err)
	}
	return f.Close()
}

func (j *CSV) ReadAll(_ context.Context) ([]trade.Record, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return nil, ErrClosed
	}

	f, err := os.Open(j.path)
	if err != nil {
		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(StoreColumns)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger file: %w", err)
	}

	out := []trade.Record{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rec, err := parseStoreRow(row)
		if err != nil {
			return nil, fmt.Errorf("ledger line %d: %w", i+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (j *CSV) ClearAll(_ context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrClosed
	}
	return j.writeEmpty()
}

func (j *CSV) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.closed = true
	return nil
}

// writeEmpty replaces the ledger file with a header-only file. The rename is
// what makes clearing all-or-nothing.
func (j *CSV) writeEmpty() error {
	tmp, err := os.CreateTemp(filepath.Dir(j.path), filepath.Base(j.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create ledger file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(StoreColumns); err != nil {
		_ = tmp.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), j.path); err != nil {
		return fmt.Errorf("replace ledger file: %w", err)
	}
	return nil
}

// trimTornRow drops a last row that has no trailing newline. Only an
// interrupted append leaves one behind, and appending after it would glue two
// rows together.
func trimTornRow(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read ledger file: %w", err)
	}
	if len(data) == 0 || data[len(data)-1] == '\n' {
		return nil
	}
	keep := bytes.LastIndexByte(data, '\n') + 1
	if err := os.Truncate(path, int64(keep)); err != nil {
		return fmt.Errorf("truncate torn ledger row: %w", err)
	}
	return nil
}

func storeRow(rec trade.Record) []string {
	return []string{
		rec.ID,
		rec.Date,
		rec.Amount.String(),
		string(rec.Kind()),
		rec.Lot,
		rec.Symbol,
		string(rec.Order),
		string(rec.Platform),
	}
}

// parseStoreRow ignores the stored type column; Kind is derived.
func parseStoreRow(row []string) (trade.Record, error) {
	amount, err := decimal.NewFromString(row[2])
	if err != nil {
		return trade.Record{}, fmt.Errorf("amount %q: %w", row[2], err)
	}
	return trade.Record{
		ID:       row[0],
		Date:     row[1],
		Amount:   amount,
		Lot:      row[4],
		Symbol:   row[5],
		Order:    trade.Side(row[6]),
		Platform: trade.Platform(row[7]),
	}, nil
}
