package sqlite

import "database/sql"

// schema sets up the receipt library. It runs on startup to ensure tables
// exist. Positions keep guests and items in receipt order.
const schema = `
CREATE TABLE IF NOT EXISTS receipts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    subtotal REAL NOT NULL,
    tax REAL NOT NULL,
    tip REAL NOT NULL,
    editable_guest INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS guests (
    receipt_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    first TEXT NOT NULL,
    last TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (receipt_id, position),
    FOREIGN KEY (receipt_id) REFERENCES receipts(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS items (
    receipt_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    price REAL NOT NULL,
    PRIMARY KEY (receipt_id, position),
    FOREIGN KEY (receipt_id) REFERENCES receipts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_receipts_created_at ON receipts(created_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
