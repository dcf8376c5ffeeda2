package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rustyeddy/tradetrack/trade"
)

// gormTrade is the row model for the Gorm backend.
type gormTrade struct {
	Seq      uint            `gorm:"column:seq;primaryKey;autoIncrement"`
	RecordID string          `gorm:"column:record_id;index;not null"`
	Date     string          `gorm:"column:date;index;not null"`
	Amount   decimal.Decimal `gorm:"column:amount;type:text;not null"`
	Type     string          `gorm:"column:type;not null"`
	Lot      string          `gorm:"column:lot;not null"`
	Symbol   string          `gorm:"column:symbol;not null"`
	Side     string          `gorm:"column:side;not null"`
	Platform string          `gorm:"column:platform;not null"`
}

func (gormTrade) TableName() string { return "ledger_trades" }

// Gorm stores the ledger through gorm's SQLite driver.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(path string) (*Gorm, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&gormTrade{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &Gorm{db: db}, nil
}

func (g *Gorm) Append(ctx context.Context, rec trade.Record) error {
	if g.db == nil {
		return ErrClosed
	}
	row := gormTrade{
		RecordID: rec.ID,
		Date:     rec.Date,
		Amount:   rec.Amount,
		Type:     string(rec.Kind()),
		Lot:      rec.Lot,
		Symbol:   rec.Symbol,
		Side:     string(rec.Order),
		Platform: string(rec.Platform),
	}
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert trade: %w", err)
	}
	return nil
}

func (g *Gorm) ReadAll(ctx context.Context) ([]trade.Record, error) {
	if g.db == nil {
		return nil, ErrClosed
	}
	var rows []gormTrade
	if err := g.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}

	out := make([]trade.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, trade.Record{
			ID:       r.RecordID,
			Date:     r.Date,
			Amount:   r.Amount,
			Lot:      r.Lot,
			Symbol:   r.Symbol,
			Order:    trade.Side(r.Side),
			Platform: trade.Platform(r.Platform),
		})
	}
	return out, nil
}

func (g *Gorm) ClearAll(ctx context.Context) error {
	if g.db == nil {
		return ErrClosed
	}
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("1 = 1").Delete(&gormTrade{}).Error
	})
}

func (g *Gorm) Close() error {
	if g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	g.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
