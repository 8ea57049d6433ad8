package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rawblock/sce/internal/models"
)

func joinOrEmpty(parts []string) string { return strings.Join(parts, ",") }

func splitOrEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// PutContent implements L0's put(kind, row) contract for Post/Video/Article
// (spec.md §4.1): insert, idempotent by TxHash; for the edit path the
// previous active row is copied into content_history keyed by
// (RootTxHash, height) before being replaced.
func (s *Store) PutContent(ctx context.Context, c models.Content, blockIndex int32) error {
	exists, err := s.ExistsByHash(ctx, c.TxHash)
	if err != nil {
		return err
	}
	if exists {
		return nil // idempotent
	}

	tx, err := s.Main.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if c.TxHash != c.RootTxHash {
		prev, err := s.getContentTx(ctx, tx, "SELECT tx_hash, root_tx_hash, kind, address, lang, caption, message, tags, images, url, settings, post_id, parent_id, answer_id, height, time, deleted, last FROM content WHERE root_tx_hash = ? AND last = 1", c.RootTxHash)
		if err == nil {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO content_history (root_tx_hash, height, tx_hash, address, lang, caption, message, tags, images, url, settings, post_id, parent_id, answer_id, time)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				prev.RootTxHash, prev.Height, prev.TxHash, prev.Address, prev.Lang, prev.Caption, prev.Message,
				joinOrEmpty(prev.Tags), joinOrEmpty(prev.Images), prev.URL, prev.Settings, prev.PostId, prev.ParentId, prev.AnswerId, prev.Time); err != nil {
				return fmt.Errorf("archive content history: %w", err)
			}
			if _, err := tx.ExecContext(ctx, "UPDATE content SET last = 0 WHERE root_tx_hash = ? AND last = 1", c.RootTxHash); err != nil {
				return err
			}
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}
	}

	deleted := 0
	if c.Deleted {
		deleted = 1
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO content (tx_hash, root_tx_hash, kind, address, lang, caption, message, tags, images, url, settings, post_id, parent_id, answer_id, height, block_index, time, deleted, last)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		c.TxHash, c.RootTxHash, int(c.Kind), c.Address, c.Lang, c.Caption, c.Message,
		joinOrEmpty(c.Tags), joinOrEmpty(c.Images), c.URL, c.Settings, c.PostId, c.ParentId, c.AnswerId,
		c.Height, blockIndex, c.Time, deleted)
	if err != nil {
		return fmt.Errorf("insert content: %w", err)
	}
	return tx.Commit()
}

// CommitLastComment implements L0's commitLast(kind, row) contract
// (spec.md §4.1): for the "last-wins" Comment kind, flips last off on any
// prior row sharing RootTxHash and inserts the new row with last=true.
// The archive/flip/insert mechanics are identical to PutContent's edit
// path, so it delegates directly.
func (s *Store) CommitLastComment(ctx context.Context, c models.Content, blockIndex int32) error {
	return s.PutContent(ctx, c, blockIndex)
}

// GetContent resolves the active row by its own TxHash.
func (s *Store) GetContent(ctx context.Context, txHash string) (models.Content, error) {
	return s.getContent(ctx, "SELECT tx_hash, root_tx_hash, kind, address, lang, caption, message, tags, images, url, settings, post_id, parent_id, answer_id, height, time, deleted, last FROM content WHERE tx_hash = ?", txHash)
}

// GetActiveByRoot resolves the currently active (last) version of root.
func (s *Store) GetActiveByRoot(ctx context.Context, rootTxHash string) (models.Content, error) {
	return s.getContent(ctx, "SELECT tx_hash, root_tx_hash, kind, address, lang, caption, message, tags, images, url, settings, post_id, parent_id, answer_id, height, time, deleted, last FROM content WHERE root_tx_hash = ? AND last = 1", rootTxHash)
}

func (s *Store) getContent(ctx context.Context, query, arg string) (models.Content, error) {
	row := s.Main.QueryRowContext(ctx, query, arg)
	return scanContentRow(row)
}

func (s *Store) getContentTx(ctx context.Context, tx *sql.Tx, query, arg string) (models.Content, error) {
	row := tx.QueryRowContext(ctx, query, arg)
	return scanContentRow(row)
}

func scanContentRow(row *sql.Row) (models.Content, error) {
	var c models.Content
	var kindInt, deleted, last int
	var tags, images string
	err := row.Scan(&c.TxHash, &c.RootTxHash, &kindInt, &c.Address, &c.Lang, &c.Caption, &c.Message, &tags, &images,
		&c.URL, &c.Settings, &c.PostId, &c.ParentId, &c.AnswerId, &c.Height, &c.Time, &deleted, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Content{}, ErrNotFound
	}
	if err != nil {
		return models.Content{}, err
	}
	c.Kind = models.Kind(kindInt)
	c.Tags = splitOrEmpty(tags)
	c.Images = splitOrEmpty(images)
	c.Deleted = deleted != 0
	c.Last = last != 0
	return c, nil
}

// ExistsByHash implements L0's existsByHash across every committed-content
// table (a row may be a Post/Video/Article/Comment, indistinguishable by
// hash alone until looked up).
func (s *Store) ExistsByHash(ctx context.Context, txHash string) (bool, error) {
	var n int
	err := s.Main.QueryRowContext(ctx, "SELECT COUNT(1) FROM content WHERE tx_hash = ?", txHash).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// History returns chronological prior versions of root (spec.md §4.1
// history(rootTxHash)).
func (s *Store) History(ctx context.Context, rootTxHash string) ([]models.Content, error) {
	rows, err := s.Main.QueryContext(ctx, `
		SELECT tx_hash, address, lang, caption, message, tags, images, url, settings, post_id, parent_id, answer_id, height, time
		FROM content_history WHERE root_tx_hash = ? ORDER BY height ASC`, rootTxHash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Content
	for rows.Next() {
		var c models.Content
		var tags, images string
		if err := rows.Scan(&c.TxHash, &c.Address, &c.Lang, &c.Caption, &c.Message, &tags, &images,
			&c.URL, &c.Settings, &c.PostId, &c.ParentId, &c.AnswerId, &c.Height, &c.Time); err != nil {
			return nil, err
		}
		c.RootTxHash = rootTxHash
		c.Tags = splitOrEmpty(tags)
		c.Images = splitOrEmpty(images)
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountEditsSince counts committed edits (tx_hash != root_tx_hash) of root
// since sinceHeight, used by the per-kind edit-count limit (spec.md §4.5).
func (s *Store) CountEditsSince(ctx context.Context, rootTxHash string, sinceHeight int32) (int, error) {
	var n int
	err := s.Main.QueryRowContext(ctx, "SELECT COUNT(1) FROM content WHERE root_tx_hash = ? AND tx_hash != root_tx_hash AND height > ?", rootTxHash, sinceHeight).Scan(&n)
	return n, err
}

// CountContentSince counts non-edit content rows of kind authored by
// address since sinceHeight, the basis for per-day post/video/article/
// comment caps (spec.md §4.5).
func (s *Store) CountContentSince(ctx context.Context, address string, kind models.Kind, sinceHeight int32) (int, error) {
	var n int
	err := s.Main.QueryRowContext(ctx, "SELECT COUNT(1) FROM content WHERE address = ? AND kind = ? AND tx_hash = root_tx_hash AND height > ?", address, int(kind), sinceHeight).Scan(&n)
	return n, err
}

// RollbackContentAbove deletes content/content_history rows above h and
// restores the most recent surviving version of each affected root as the
// active (last) row (spec.md S5 reversibility scenario).
func (s *Store) RollbackContentAbove(ctx context.Context, h int32) error {
	tx, err := s.Main.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, "SELECT DISTINCT root_tx_hash FROM content WHERE height > ?", h)
	if err != nil {
		return err
	}
	var roots []string
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			rows.Close()
			return err
		}
		roots = append(roots, r)
	}
	rows.Close()

	if _, err := tx.ExecContext(ctx, "DELETE FROM content WHERE height > ?", h); err != nil {
		return err
	}

	for _, root := range roots {
		var txHash, address, lang, caption, message, tags, images, url, settings, postID, parentID, answerID string
		var restoredHeight, t int64
		err := tx.QueryRowContext(ctx, `
			SELECT tx_hash, address, lang, caption, message, tags, images, url, settings, post_id, parent_id, answer_id, height, time
			FROM content_history WHERE root_tx_hash = ? AND height <= ? ORDER BY height DESC LIMIT 1`, root, h).
			Scan(&txHash, &address, &lang, &caption, &message, &tags, &images, &url, &settings, &postID, &parentID, &answerID, &restoredHeight, &t)
		if errors.Is(err, sql.ErrNoRows) {
			// The root itself was created above h; nothing to restore.
			continue
		}
		if err != nil {
			return fmt.Errorf("restore content root %s: %w", root, err)
		}
		// Earlier versions stay in content with last = 0, so the restored
		// version normally only needs its flag set back.
		res, err := tx.ExecContext(ctx, "UPDATE content SET last = 1 WHERE tx_hash = ?", txHash)
		if err != nil {
			return fmt.Errorf("restore content root %s: %w", root, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO content (tx_hash, root_tx_hash, kind, address, lang, caption, message, tags, images, url, settings, post_id, parent_id, answer_id, height, time, deleted, last)
			SELECT ?, ?, kind, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 1
			FROM content WHERE tx_hash = ? LIMIT 1`,
			txHash, root, address, lang, caption, message, tags, images, url, settings, postID, parentID, answerID, restoredHeight, t, txHash); err != nil {
			// The source kind row no longer exists (deleted above); fall back
			// to the root's own kind, which is invariant across edits.
			if _, err2 := tx.ExecContext(ctx, `
				INSERT INTO content (tx_hash, root_tx_hash, kind, address, lang, caption, message, tags, images, url, settings, post_id, parent_id, answer_id, height, time, deleted, last)
				SELECT ?, ?, kind, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 1 FROM content_history WHERE root_tx_hash = ? LIMIT 1`,
				txHash, root, address, lang, caption, message, tags, images, url, settings, postID, parentID, answerID, restoredHeight, t, root); err2 != nil {
				return fmt.Errorf("restore content root %s fallback: %w", root, err2)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM content_history WHERE height > ?", h); err != nil {
		return err
	}
	return tx.Commit()
}
