// ABOUTME: SQLite database schema for the study system
// ABOUTME: Creates all tables and indexes for documents, chunks, cards, and stats
package sqlite

// Schema contains all SQL statements for database initialization.
const Schema = `
-- Ingested source documents
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    file_path TEXT,
    file_type TEXT,
    file_size INTEGER DEFAULT 0,
    status TEXT DEFAULT 'pending',
    total_chunks INTEGER DEFAULT 0,
    error_message TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Document chunks with embedding vectors
CREATE TABLE IF NOT EXISTS document_chunks (
    id TEXT PRIMARY KEY,
    document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    chunk_index INTEGER NOT NULL,
    content TEXT NOT NULL,
    page_number INTEGER,
    embedding BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(document_id, chunk_index)
);

-- Flashcards
CREATE TABLE IF NOT EXISTS flashcards (
    id TEXT PRIMARY KEY,
    subject_id TEXT,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Per-card review state, upserted on every study event
CREATE TABLE IF NOT EXISTS progress (
    flashcard_id TEXT PRIMARY KEY REFERENCES flashcards(id) ON DELETE CASCADE,
    status TEXT NOT NULL,
    times_reviewed INTEGER DEFAULT 0,
    times_correct INTEGER DEFAULT 0,
    last_reviewed_at DATETIME,
    next_review_at DATETIME
);

-- Per-attempt study history
CREATE TABLE IF NOT EXISTS study_history (
    id TEXT PRIMARY KEY,
    flashcard_id TEXT NOT NULL,
    was_correct INTEGER NOT NULL,
    response_time_ms INTEGER,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Daily study counters, keyed by calendar date
CREATE TABLE IF NOT EXISTS daily_stats (
    date TEXT PRIMARY KEY,
    cards_studied INTEGER DEFAULT 0,
    cards_correct INTEGER DEFAULT 0
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_chunks_document ON document_chunks(document_id);
CREATE INDEX IF NOT EXISTS idx_progress_next_review ON progress(next_review_at);
CREATE INDEX IF NOT EXISTS idx_progress_status ON progress(status);
CREATE INDEX IF NOT EXISTS idx_history_flashcard ON study_history(flashcard_id);
CREATE INDEX IF NOT EXISTS idx_flashcards_subject ON flashcards(subject_id);
`

// SchemaVersion is the current schema version for migrations.
const SchemaVersion = 1
