package storage

const schema = `
-- The 'slots' table is a string-keyed store for client-side state that
-- must survive restarts. Today it holds a single row: the bearer token.
CREATE TABLE IF NOT EXISTS slots (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME NOT NULL
);
`
