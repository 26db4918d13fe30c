package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the audit database schema.
const Schema = `
-- Decision audit records
CREATE TABLE IF NOT EXISTS decisions (
    id TEXT PRIMARY KEY,
    decided_at TIMESTAMP NOT NULL,

    -- Decision
    network_state TEXT NOT NULL,
    matched BOOLEAN NOT NULL,
    rule_name TEXT,
    action TEXT NOT NULL,
    target TEXT,
    log_flag BOOLEAN NOT NULL,

    -- Connection attributes
    sni TEXT,
    protocol TEXT,
    port INTEGER,
    latency_ms INTEGER,
    rtt_ms INTEGER,

    -- Evaluation time
    duration_micros INTEGER NOT NULL
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_decisions_decided_at ON decisions(decided_at);
CREATE INDEX IF NOT EXISTS idx_decisions_rule_name ON decisions(rule_name);
CREATE INDEX IF NOT EXISTS idx_decisions_action ON decisions(action);
CREATE INDEX IF NOT EXISTS idx_decisions_sni ON decisions(sni);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
