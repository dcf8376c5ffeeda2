// Package tracker wires recognition, extraction, the ledger and analytics
// into the operations a user performs: scan a screenshot, confirm and save
// the result, view analytics, export, clear.
package tracker

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/rustyeddy/tradetrack/analytics"
	"github.com/rustyeddy/tradetrack/config"
	"github.com/rustyeddy/tradetrack/extract"
	"github.com/rustyeddy/tradetrack/ledger"
	"github.com/rustyeddy/tradetrack/ocr"
	"github.com/rustyeddy/tradetrack/pkg/id"
	"github.com/rustyeddy/tradetrack/trade"
)

// Candidate is an extracted record awaiting confirmation. Nothing is saved
// until it is passed to Save.
type Candidate struct {
	Text     string
	Record   trade.Record
	Insight  string
	Detected map[extract.Field]string
}

type Tracker struct {
	Recognizer ocr.Recognizer
	Extractor  *extract.Extractor
	Ledger     ledger.Ledger
	Aggregator *analytics.Aggregator
	Labels     trade.Labels
	Logger     *zap.Logger

	// NewID assigns record IDs at save time.
	NewID func() string
}

// New builds a tracker from cfg around an opened ledger.
func New(cfg *config.Config, rec ocr.Recognizer, l ledger.Ledger, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{
		Recognizer: rec,
		Extractor:  extract.New(cfg.Extract.DefaultLot),
		Ledger:     l,
		Aggregator: analytics.New(cfg.Analytics.TaxRate),
		Labels:     cfg.Insight,
		Logger:     log,
		NewID:      id.New,
	}
}

// Scan runs the recognizer over image and extracts a candidate record. Only
// a recognizer failure is an error; extraction always succeeds.
func (t *Tracker) Scan(ctx context.Context, image io.Reader) (Candidate, error) {
	t.Logger.Debug("recognizing image")
	fragments, err := t.Recognizer.Recognize(ctx, image)
	if err != nil {
		return Candidate{}, fmt.Errorf("recognize: %w", err)
	}
	return t.Extract(extract.Normalize(fragments)), nil
}

// Extract builds a candidate from already normalized text.
func (t *Tracker) Extract(text string) Candidate {
	rec, found := t.Extractor.ExtractFields(text)
	c := Candidate{
		Text:     text,
		Record:   rec,
		Detected: found,
	}
	c.Insight = t.Labels.Insight(c.Record)

	t.Logger.Info("extracted trade",
		zap.String("symbol", c.Record.Symbol),
		zap.String("amount", c.Record.Amount.String()),
		zap.String("order", string(c.Record.Order)),
		zap.String("platform", string(c.Record.Platform)),
		zap.String("date", c.Record.Date),
		zap.Int("detected", len(c.Detected)),
	)
	return c
}

// Save appends a confirmed record, assigning an ID if it has none, and
// returns the record as stored.
func (t *Tracker) Save(ctx context.Context, rec trade.Record) (trade.Record, error) {
	if rec.ID == "" {
		rec.ID = t.NewID()
	}
	if err := t.Ledger.Append(ctx, rec); err != nil {
		t.Logger.Error("save trade failed", zap.String("id", rec.ID), zap.Error(err))
		return trade.Record{}, fmt.Errorf("save trade: %w", err)
	}
	t.Logger.Info("saved trade",
		zap.String("id", rec.ID),
		zap.String("amount", rec.Amount.String()),
		zap.String("type", string(rec.Kind())),
	)
	return rec, nil
}

// SaveAll saves recs in order and stops at the first failure. n is the
// number of records saved.
func (t *Tracker) SaveAll(ctx context.Context, recs []trade.Record) (n int, err error) {
	for _, r := range recs {
		if _, err := t.Save(ctx, r); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Records returns the whole ledger in insertion order.
func (t *Tracker) Records(ctx context.Context) ([]trade.Record, error) {
	recs, err := t.Ledger.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return recs, nil
}

// Analytics recomputes the snapshot from a fresh read of the ledger.
func (t *Tracker) Analytics(ctx context.Context) (analytics.Snapshot, error) {
	recs, err := t.Records(ctx)
	if err != nil {
		return analytics.Snapshot{}, err
	}
	s := t.Aggregator.Compute(recs)
	t.Logger.Debug("computed analytics",
		zap.Int("trades", s.Trades),
		zap.String("total_pl", s.TotalPL.String()),
		zap.Int("months", len(s.Monthly)),
	)
	return s, nil
}

// Export writes the ledger as a flat CSV table.
func (t *Tracker) Export(ctx context.Context, w io.Writer) error {
	recs, err := t.Records(ctx)
	if err != nil {
		return err
	}
	if err := ledger.WriteCSV(w, recs); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	t.Logger.Info("exported ledger", zap.Int("trades", len(recs)))
	return nil
}

// Clear removes every record from the ledger.
func (t *Tracker) Clear(ctx context.Context) error {
	if err := t.Ledger.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear ledger: %w", err)
	}
	t.Logger.Warn("cleared ledger")
	return nil
}
