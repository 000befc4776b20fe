package journal

const schema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    target TEXT,
    policy TEXT,
    started_at TEXT NOT NULL,
    finished_at TEXT,
    status TEXT NOT NULL DEFAULT 'running',
    records INTEGER DEFAULT 0,
    written INTEGER DEFAULT 0,
    skipped INTEGER DEFAULT 0,
    error TEXT
);

CREATE TABLE IF NOT EXISTS records (
    entry_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    record_index INTEGER NOT NULL,
    status TEXT NOT NULL,
    input TEXT,
    output TEXT,
    error TEXT,
    created_at TEXT NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id, record_index);
CREATE INDEX IF NOT EXISTS idx_records_status ON records(status) WHERE status != 'ok';
`
