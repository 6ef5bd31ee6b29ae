package store

const schema = `
CREATE TABLE IF NOT EXISTS priors (
    name TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`
