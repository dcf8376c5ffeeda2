package ledger

// Schema is the SQLite layout used by the SQLite backend. seq keeps
// insertion order; amount is TEXT so decimals round-trip exactly.
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL,
	date TEXT NOT NULL,
	amount TEXT NOT NULL,
	type TEXT NOT NULL,
	lot TEXT NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	platform TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
`
