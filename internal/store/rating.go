package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rawblock/sce/internal/models"
)

// InsertDeltas implements L1's insertDeltas(height, rows[]) contract
// (spec.md §4.2): an atomic append of every rating delta produced while
// indexing one block. rows is trusted to already carry the correct
// height; it is not re-stamped here so replays (rollback tests) can
// insert deltas at an arbitrary height.
func (s *Store) InsertDeltas(ctx context.Context, rows []models.RatingRow) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := s.Web.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO rating_rows (type, id, height, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, int(r.Type), r.Id, r.Height, r.Value); err != nil {
			return fmt.Errorf("insert rating delta (type=%d id=%s height=%d): %w", r.Type, r.Id, r.Height, err)
		}
	}
	return tx.Commit()
}

// DeleteAboveHeight implements L1's deleteAboveHeight(h), used on rollback
// (spec.md §4.2, §8 invariant 4).
func (s *Store) DeleteAboveHeight(ctx context.Context, h int32) error {
	_, err := s.Web.ExecContext(ctx, "DELETE FROM rating_rows WHERE height > ?", h)
	return err
}

// RatingSumAt is the generic form of AccountReputationAt/ContentRatingAt's
// summation half, exposed for callers (the Chain Post-Processor's _LAST
// bookkeeping, spec.md §4.8 step 6) that need a running total for a
// RatingType not already covered by a type-specific accessor.
func (s *Store) RatingSumAt(ctx context.Context, t models.RatingType, id string, h int32) (int64, error) {
	return s.sumDeltas(ctx, t, id, h)
}

func (s *Store) sumDeltas(ctx context.Context, t models.RatingType, id string, h int32) (int64, error) {
	var v int64
	err := s.Web.QueryRowContext(ctx, "SELECT COALESCE(SUM(value), 0) FROM rating_rows WHERE type = ? AND id = ? AND height <= ?", int(t), id, h).Scan(&v)
	return v, err
}

func (s *Store) countDeltas(ctx context.Context, t models.RatingType, id string, h int32) (int64, error) {
	var n int64
	err := s.Web.QueryRowContext(ctx, "SELECT COUNT(1) FROM rating_rows WHERE type = ? AND id = ? AND height <= ?", int(t), id, h).Scan(&n)
	return n, err
}

// AccountReputationAt implements accountReputationAt(address, h) → int
// (spec.md §4.2): the effective signed reputation, scale ×10.
func (s *Store) AccountReputationAt(ctx context.Context, address string, h int32) (int64, error) {
	return s.sumDeltas(ctx, models.RatingAccount, address, h)
}

// ContentRatingAt implements contentRatingAt(contentTx, h) for scored
// (non-comment) content: sum of score deltas, number of contributing
// scores, and the content author's reputation at h (the third element
// feeds the likers/badge thresholds downstream, spec.md §4.6).
func (s *Store) ContentRatingAt(ctx context.Context, contentTxHash string, h int32) (sum int64, cnt int64, reputation int64, err error) {
	sum, err = s.sumDeltas(ctx, models.RatingContent, contentTxHash, h)
	if err != nil {
		return 0, 0, 0, err
	}
	cnt, err = s.countDeltas(ctx, models.RatingContent, contentTxHash, h)
	if err != nil {
		return 0, 0, 0, err
	}
	reputation, err = s.reputationOfAuthor(ctx, contentTxHash, h)
	return sum, cnt, reputation, err
}

// CommentRatingAt implements contentRatingAt for Comment content: up/down
// vote counts in place of (sum, cnt), plus the comment author's reputation.
func (s *Store) CommentRatingAt(ctx context.Context, commentTxHash string, h int32) (up int64, down int64, reputation int64, err error) {
	var upV, downV int64
	err = s.Web.QueryRowContext(ctx, "SELECT COALESCE(SUM(CASE WHEN value > 0 THEN value ELSE 0 END), 0), COALESCE(-SUM(CASE WHEN value < 0 THEN value ELSE 0 END), 0) FROM rating_rows WHERE type = ? AND id = ? AND height <= ?",
		int(models.RatingComment), commentTxHash, h).Scan(&upV, &downV)
	if err != nil {
		return 0, 0, 0, err
	}
	reputation, err = s.reputationOfAuthor(ctx, commentTxHash, h)
	return upV, downV, reputation, err
}

func (s *Store) reputationOfAuthor(ctx context.Context, contentTxHash string, h int32) (int64, error) {
	var address string
	err := s.Main.QueryRowContext(ctx, "SELECT address FROM content WHERE tx_hash = ?", contentTxHash).Scan(&address)
	if err != nil {
		return 0, nil // content may not exist locally (cross-shard reference); reputation unknown, not fatal
	}
	return s.AccountReputationAt(ctx, address, h)
}

// LikersCountAt implements likersCountAt(address, h) → int (spec.md
// §4.2): the number of distinct accounts whose score contributed a
// "liker" delta against address's content, summed across all three
// liker classes (post, comment-as-root, comment-as-answer).
func (s *Store) LikersCountAt(ctx context.Context, address string, h int32) (int64, error) {
	var total int64
	for _, t := range []models.RatingType{models.AccountLikersPost, models.AccountLikersCommentRoot, models.AccountLikersCommentAnswer} {
		v, err := s.sumDeltas(ctx, t, address, h)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}

// GetScoreData implements getScoreData(height, depthSeconds) → [ScoreData]
// (spec.md §4.2): joins every score tx committed at height against its
// content row, driving the Chain Post-Processor's reputation updates
// (spec.md §4.8). depthSeconds bounds how far back the joined content's
// own commit time may lag the score (legacy checkpoints relax this to 0).
func (s *Store) GetScoreData(ctx context.Context, height int32, depthSeconds int64) ([]models.ScoreData, error) {
	rows, err := s.Main.QueryContext(ctx, `
		SELECT sc.tx_hash, sc.address, sc.value, sc.time, sc.kind,
		       c.tx_hash, c.address, c.kind, c.time, c.root_tx_hash, c.id, c.answer_id
		FROM scores sc
		JOIN (SELECT tx_hash, address, kind, time, root_tx_hash, answer_id, rowid AS id FROM content) c
		  ON c.tx_hash = sc.content_tx_hash
		WHERE sc.height = ?`, height)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ScoreData
	for rows.Next() {
		var sd models.ScoreData
		var scoreKindInt, contentKindInt int
		var answerId sql.NullString
		if err := rows.Scan(&sd.ScoreTxHash, &sd.ScoreAddress, &sd.ScoreValue, &sd.ScoreTime, &scoreKindInt,
			&sd.ContentTxHash, &sd.ContentAddress, &contentKindInt, &sd.ContentTime, &sd.ContentId, &sd.ContentAddressId, &answerId); err != nil {
			return nil, err
		}
		sd.ScoreKind = models.Kind(scoreKindInt)
		sd.ContentType = models.Kind(contentKindInt)
		sd.ContentIsAnswer = answerId.Valid && answerId.String != ""
		if depthSeconds > 0 && sd.ScoreTime-sd.ContentTime > depthSeconds {
			continue
		}
		out = append(out, sd)
	}
	return out, rows.Err()
}
