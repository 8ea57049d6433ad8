// Package store implements the Payload Store (L0) and Rating Store (L1)
// of the Social Consensus Engine (spec.md §4.1, §4.2). Two attached
// SQLite databases back it — "main" (payload rows and history) and "web"
// (append-only rating deltas) — matching the persisted layout in spec.md
// §6. Both are opened in WAL journal mode so the single writer and the
// read-only notification/query threads (spec.md §5) don't block each other.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

// Store composes the main and web databases into the single serialised
// writer described in spec.md §5 ("all mutation of L0/L1 goes through one
// serialised writer"). Reader goroutines (notification hub, staker) should
// open their own *sql.DB against the same file instead of sharing this one.
type Store struct {
	Main *sql.DB
	Web  *sql.DB
}

// Open opens (and WAL-configures) the main and web SQLite files and runs
// schema migrations. Passing ":memory:" for either path is supported for
// tests.
func Open(mainPath, webPath string) (*Store, error) {
	mainDB, err := openWAL(mainPath)
	if err != nil {
		return nil, fmt.Errorf("store: open main db: %w", err)
	}

	webDB, err := openWAL(webPath)
	if err != nil {
		mainDB.Close()
		return nil, fmt.Errorf("store: open web db: %w", err)
	}

	s := &Store{Main: mainDB, Web: webDB}
	if err := s.initSchema(); err != nil {
		s.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}

	log.Println("[Store] main/web SQLite databases ready (WAL)")
	return s, nil
}

func openWAL(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single writer connection per spec.md §5; readers elsewhere use
	// their own *sql.DB handle against the same file.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON;"); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Close releases both database handles.
func (s *Store) Close() error {
	var firstErr error
	if s.Main != nil {
		if err := s.Main.Close(); err != nil {
			firstErr = err
		}
	}
	if s.Web != nil {
		if err := s.Web.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

const mainSchema = `
CREATE TABLE IF NOT EXISTS accounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	address TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL UNIQUE,
	avatar TEXT, about TEXT, lang TEXT, url TEXT, donations TEXT, pubkey TEXT,
	referrer TEXT NOT NULL DEFAULT '',
	regdate INTEGER NOT NULL,
	tx_hash TEXT NOT NULL,
	height INTEGER NOT NULL,
	deleted INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS account_history (
	address TEXT NOT NULL,
	height INTEGER NOT NULL,
	name TEXT, avatar TEXT, about TEXT, lang TEXT, url TEXT, donations TEXT, pubkey TEXT, tx_hash TEXT,
	PRIMARY KEY (address, height)
);

CREATE TABLE IF NOT EXISTS content (
	tx_hash TEXT PRIMARY KEY,
	root_tx_hash TEXT NOT NULL,
	kind INTEGER NOT NULL,
	address TEXT NOT NULL,
	lang TEXT, caption TEXT, message TEXT, tags TEXT, images TEXT, url TEXT, settings TEXT,
	post_id TEXT, parent_id TEXT, answer_id TEXT,
	height INTEGER NOT NULL,
	block_index INTEGER NOT NULL DEFAULT 0,
	time INTEGER NOT NULL,
	deleted INTEGER NOT NULL DEFAULT 0,
	last INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_content_root ON content(root_tx_hash);
CREATE INDEX IF NOT EXISTS idx_content_address ON content(address);
CREATE TABLE IF NOT EXISTS content_history (
	root_tx_hash TEXT NOT NULL,
	height INTEGER NOT NULL,
	tx_hash TEXT NOT NULL,
	address TEXT NOT NULL,
	lang TEXT, caption TEXT, message TEXT, tags TEXT, images TEXT, url TEXT, settings TEXT,
	post_id TEXT, parent_id TEXT, answer_id TEXT,
	time INTEGER NOT NULL,
	PRIMARY KEY (root_tx_hash, height)
);

CREATE TABLE IF NOT EXISTS scores (
	tx_hash TEXT PRIMARY KEY,
	kind INTEGER NOT NULL,
	address TEXT NOT NULL,
	content_tx_hash TEXT NOT NULL,
	value INTEGER NOT NULL,
	time INTEGER NOT NULL,
	height INTEGER NOT NULL,
	block_index INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_scores_content ON scores(content_tx_hash);
CREATE INDEX IF NOT EXISTS idx_scores_pair ON scores(address, content_tx_hash);
CREATE INDEX IF NOT EXISTS idx_scores_height ON scores(height);

CREATE TABLE IF NOT EXISTS subscriptions (
	tx_hash TEXT PRIMARY KEY,
	kind INTEGER NOT NULL,
	from_addr TEXT NOT NULL,
	to_addr TEXT NOT NULL,
	private INTEGER NOT NULL DEFAULT 0,
	time INTEGER NOT NULL,
	height INTEGER NOT NULL,
	block_index INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sub_pair ON subscriptions(from_addr, to_addr, height);

CREATE TABLE IF NOT EXISTS blockings (
	tx_hash TEXT PRIMARY KEY,
	kind INTEGER NOT NULL,
	from_addr TEXT NOT NULL,
	to_addr TEXT NOT NULL,
	time INTEGER NOT NULL,
	height INTEGER NOT NULL,
	block_index INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_block_pair ON blockings(from_addr, to_addr, height);

CREATE TABLE IF NOT EXISTS complaints (
	tx_hash TEXT PRIMARY KEY,
	address TEXT NOT NULL,
	post_tx_hash TEXT NOT NULL,
	reason INTEGER NOT NULL,
	time INTEGER NOT NULL,
	height INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_complaints_pair ON complaints(address, post_tx_hash);

CREATE TABLE IF NOT EXISTS moderation_flags (
	tx_hash TEXT PRIMARY KEY,
	address TEXT NOT NULL,
	target TEXT NOT NULL,
	reason INTEGER NOT NULL,
	time INTEGER NOT NULL,
	height INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_flags_target ON moderation_flags(target, height);

CREATE TABLE IF NOT EXISTS juries (
	id TEXT PRIMARY KEY,
	target TEXT NOT NULL,
	category INTEGER NOT NULL,
	moderators TEXT NOT NULL,
	height INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS moderation_votes (
	tx_hash TEXT PRIMARY KEY,
	jury_id TEXT NOT NULL,
	address TEXT NOT NULL,
	verdict INTEGER NOT NULL,
	time INTEGER NOT NULL,
	height INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_votes_jury ON moderation_votes(jury_id);

CREATE TABLE IF NOT EXISTS bans (
	target TEXT NOT NULL,
	category INTEGER NOT NULL,
	height INTEGER NOT NULL,
	ban1 INTEGER NOT NULL,
	ban2 INTEGER NOT NULL,
	ban3 INTEGER NOT NULL,
	PRIMARY KEY (target, height)
);

CREATE TABLE IF NOT EXISTS payload_mempool (
	id TEXT PRIMARY KEY,
	carrier_tx_hash TEXT NOT NULL UNIQUE,
	kind INTEGER NOT NULL,
	root_tx_hash TEXT,
	payload_b64 TEXT NOT NULL
);
`

const webSchema = `
CREATE TABLE IF NOT EXISTS rating_rows (
	type INTEGER NOT NULL,
	id TEXT NOT NULL,
	height INTEGER NOT NULL,
	value INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_rating_lookup ON rating_rows(type, id, height);
CREATE INDEX IF NOT EXISTS idx_rating_height ON rating_rows(height);
`

func (s *Store) initSchema() error {
	if _, err := s.Main.Exec(mainSchema); err != nil {
		return fmt.Errorf("main schema: %w", err)
	}
	if _, err := s.Web.Exec(webSchema); err != nil {
		return fmt.Errorf("web schema: %w", err)
	}
	return nil
}
