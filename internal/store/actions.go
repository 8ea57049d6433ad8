package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rawblock/sce/internal/models"
)

// PutScore inserts a ScorePost/ScoreComment row, idempotent by TxHash
// (spec.md §4.1 put). Scores are never edited, so there is no history path.
func (s *Store) PutScore(ctx context.Context, sc models.Score, blockIndex int32) error {
	_, err := s.Main.ExecContext(ctx, `
		INSERT OR IGNORE INTO scores (tx_hash, kind, address, content_tx_hash, value, time, height, block_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sc.TxHash, int(sc.Kind), sc.Address, sc.ContentTxHash, sc.Value, sc.Time, sc.Height, blockIndex)
	return err
}

// ScoreExists reports whether address already scored contentTxHash,
// backing the one-vote-per-(voter,content) invariant (spec.md §4.5).
func (s *Store) ScoreExists(ctx context.Context, address, contentTxHash string) (bool, error) {
	var n int
	err := s.Main.QueryRowContext(ctx, "SELECT COUNT(1) FROM scores WHERE address = ? AND content_tx_hash = ?", address, contentTxHash).Scan(&n)
	return n > 0, err
}

// ScoresForContent returns every score cast on contentTxHash, used for
// likers-count and reputation-delta accounting (spec.md §4.6).
func (s *Store) ScoresForContent(ctx context.Context, contentTxHash string) ([]models.Score, error) {
	rows, err := s.Main.QueryContext(ctx, "SELECT tx_hash, kind, address, content_tx_hash, value, time, height FROM scores WHERE content_tx_hash = ? ORDER BY height ASC", contentTxHash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Score
	for rows.Next() {
		var sc models.Score
		var kindInt int
		if err := rows.Scan(&sc.TxHash, &kindInt, &sc.Address, &sc.ContentTxHash, &sc.Value, &sc.Time, &sc.Height); err != nil {
			return nil, err
		}
		sc.Kind = models.Kind(kindInt)
		out = append(out, sc)
	}
	return out, rows.Err()
}

// CountScoresSince counts votes cast by address since sinceHeight, backing
// the daily scoring cap (spec.md §4.3, §4.5); the scores_one_to_one gate
// uses CountScoresBetween instead.
func (s *Store) CountScoresSince(ctx context.Context, address string, sinceHeight int32) (int, error) {
	var n int
	err := s.Main.QueryRowContext(ctx, "SELECT COUNT(1) FROM scores WHERE address = ? AND height > ?", address, sinceHeight).Scan(&n)
	return n, err
}

// CountScoresBetween counts scores voter has cast on content authored by
// target since sinceTime, backing the scores_one_to_one gate (spec.md
// §4.6: "at most scores_one_to_one scores from the same voter to the
// same author within scores_one_to_one_depth").
func (s *Store) CountScoresBetween(ctx context.Context, voter, target string, sinceTime int64) (int64, error) {
	var n int64
	err := s.Main.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM scores sc
		JOIN content c ON c.tx_hash = sc.content_tx_hash
		WHERE sc.address = ? AND c.address = ? AND sc.time >= ?`, voter, target, sinceTime).Scan(&n)
	return n, err
}

func (s *Store) RollbackScoresAbove(ctx context.Context, h int32) error {
	_, err := s.Main.ExecContext(ctx, "DELETE FROM scores WHERE height > ?", h)
	return err
}

// PriorPositiveScore reports whether voter already cast a qualifying
// "liker" score against author's content of the given class at a height
// strictly below beforeHeight, backing ValidateAccountLiker's "first time"
// test (spec.md §4.6). isComment selects the comment classes (root vs
// answer, distinguished by isAnswer); otherwise it checks the post class,
// where a qualifying score is ScorePost with value 4 or 5 (the same
// positive band the content/author delta turns positive on).
func (s *Store) PriorPositiveScore(ctx context.Context, voter, author string, isComment, isAnswer bool, beforeHeight int32) (bool, error) {
	var n int
	var err error
	if isComment {
		answerFlag := 0
		if isAnswer {
			answerFlag = 1
		}
		err = s.Main.QueryRowContext(ctx, `
			SELECT COUNT(1) FROM scores sc
			JOIN content c ON c.tx_hash = sc.content_tx_hash
			WHERE sc.address = ? AND c.address = ? AND sc.height < ?
			  AND c.kind = ? AND sc.value > 0
			  AND ((? = 1 AND c.answer_id != '') OR (? = 0 AND c.answer_id = ''))`,
			voter, author, beforeHeight, int(models.KindComment), answerFlag, answerFlag).Scan(&n)
	} else {
		err = s.Main.QueryRowContext(ctx, `
			SELECT COUNT(1) FROM scores sc
			JOIN content c ON c.tx_hash = sc.content_tx_hash
			WHERE sc.address = ? AND c.address = ? AND sc.height < ?
			  AND c.kind != ? AND sc.value >= 4`,
			voter, author, beforeHeight, int(models.KindComment)).Scan(&n)
	}
	return n > 0, err
}

// PutSubscription inserts Subscribe/SubscribePrivate/Unsubscribe, keyed by
// (From, To); the latest row for a pair determines current subscription
// state (spec.md §3).
func (s *Store) PutSubscription(ctx context.Context, sub models.Subscription, blockIndex int32) error {
	private := 0
	if sub.Private {
		private = 1
	}
	_, err := s.Main.ExecContext(ctx, `
		INSERT OR IGNORE INTO subscriptions (tx_hash, kind, from_addr, to_addr, private, time, height, block_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.TxHash, int(sub.Kind), sub.From, sub.To, private, sub.Time, sub.Height, blockIndex)
	return err
}

// CurrentSubscription resolves the latest subscription row for (from, to),
// or ErrNotFound if the pair has never interacted.
func (s *Store) CurrentSubscription(ctx context.Context, from, to string) (models.Subscription, error) {
	var sub models.Subscription
	var kindInt, private int
	err := s.Main.QueryRowContext(ctx, `
		SELECT tx_hash, kind, from_addr, to_addr, private, time, height
		FROM subscriptions WHERE from_addr = ? AND to_addr = ? ORDER BY height DESC LIMIT 1`, from, to).
		Scan(&sub.TxHash, &kindInt, &sub.From, &sub.To, &private, &sub.Time, &sub.Height)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Subscription{}, ErrNotFound
	}
	if err != nil {
		return models.Subscription{}, err
	}
	sub.Kind = models.Kind(kindInt)
	sub.Private = private != 0
	return sub, nil
}

func (s *Store) RollbackSubscriptionsAbove(ctx context.Context, h int32) error {
	_, err := s.Main.ExecContext(ctx, "DELETE FROM subscriptions WHERE height > ?", h)
	return err
}

// PutBlocking inserts Block/Unblock, keyed by (From, To).
func (s *Store) PutBlocking(ctx context.Context, b models.Blocking, blockIndex int32) error {
	_, err := s.Main.ExecContext(ctx, `
		INSERT OR IGNORE INTO blockings (tx_hash, kind, from_addr, to_addr, time, height, block_index)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.TxHash, int(b.Kind), b.From, b.To, b.Time, b.Height, blockIndex)
	return err
}

// CurrentBlocking resolves the latest Block/Unblock row for (from, to).
func (s *Store) CurrentBlocking(ctx context.Context, from, to string) (models.Blocking, error) {
	var b models.Blocking
	var kindInt int
	err := s.Main.QueryRowContext(ctx, `
		SELECT tx_hash, kind, from_addr, to_addr, time, height
		FROM blockings WHERE from_addr = ? AND to_addr = ? ORDER BY height DESC LIMIT 1`, from, to).
		Scan(&b.TxHash, &kindInt, &b.From, &b.To, &b.Time, &b.Height)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Blocking{}, ErrNotFound
	}
	if err != nil {
		return models.Blocking{}, err
	}
	b.Kind = models.Kind(kindInt)
	return b, nil
}

func (s *Store) RollbackBlockingsAbove(ctx context.Context, h int32) error {
	_, err := s.Main.ExecContext(ctx, "DELETE FROM blockings WHERE height > ?", h)
	return err
}

// PutComplaint inserts a Complaint targeting a post.
func (s *Store) PutComplaint(ctx context.Context, c models.Complaint) error {
	_, err := s.Main.ExecContext(ctx, `
		INSERT OR IGNORE INTO complaints (tx_hash, address, post_tx_hash, reason, time, height)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.TxHash, c.Address, c.PostTxHash, c.Reason, c.Time, c.Height)
	return err
}

// CountComplaintsSince counts complaints filed by address since sinceHeight,
// backing the daily complaint cap (spec.md §4.3).
func (s *Store) CountComplaintsSince(ctx context.Context, address string, sinceHeight int32) (int, error) {
	var n int
	err := s.Main.QueryRowContext(ctx, "SELECT COUNT(1) FROM complaints WHERE address = ? AND height > ?", address, sinceHeight).Scan(&n)
	return n, err
}

func (s *Store) RollbackComplaintsAbove(ctx context.Context, h int32) error {
	_, err := s.Main.ExecContext(ctx, "DELETE FROM complaints WHERE height > ?", h)
	return err
}

// PutModerationFlag inserts an accusation against target (spec.md §4.7).
func (s *Store) PutModerationFlag(ctx context.Context, f models.ModerationFlag) error {
	_, err := s.Main.ExecContext(ctx, `
		INSERT OR IGNORE INTO moderation_flags (tx_hash, address, target, reason, time, height)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.TxHash, f.Address, f.Target, f.Reason, f.Time, f.Height)
	return err
}

// FlagsForTarget returns every moderation flag raised against target up to
// and including height, chronologically.
func (s *Store) FlagsForTarget(ctx context.Context, target string, height int32) ([]models.ModerationFlag, error) {
	rows, err := s.Main.QueryContext(ctx, "SELECT tx_hash, address, target, reason, time, height FROM moderation_flags WHERE target = ? AND height <= ? ORDER BY height ASC", target, height)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.ModerationFlag
	for rows.Next() {
		var f models.ModerationFlag
		if err := rows.Scan(&f.TxHash, &f.Address, &f.Target, &f.Reason, &f.Time, &f.Height); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *Store) RollbackModerationFlagsAbove(ctx context.Context, h int32) error {
	_, err := s.Main.ExecContext(ctx, "DELETE FROM moderation_flags WHERE height > ?", h)
	return err
}

// PutJury creates the jury record formed once a flagged account crosses
// the flag-count threshold (spec.md §4.7).
func (s *Store) PutJury(ctx context.Context, j models.Jury) error {
	_, err := s.Main.ExecContext(ctx, `
		INSERT OR IGNORE INTO juries (id, target, category, moderators, height)
		VALUES (?, ?, ?, ?, ?)`,
		j.Id, j.Target, j.Category, joinOrEmpty(j.Moderators), j.Height)
	return err
}

// GetJury looks up a jury by id.
func (s *Store) GetJury(ctx context.Context, id string) (models.Jury, error) {
	var j models.Jury
	var moderators string
	err := s.Main.QueryRowContext(ctx, "SELECT id, target, category, moderators, height FROM juries WHERE id = ?", id).
		Scan(&j.Id, &j.Target, &j.Category, &moderators, &j.Height)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Jury{}, ErrNotFound
	}
	if err != nil {
		return models.Jury{}, err
	}
	j.Moderators = splitOrEmpty(moderators)
	return j, nil
}

// ActiveJuriesForTarget returns juries formed against target, most recent
// first (an account can be tried more than once across its history).
func (s *Store) ActiveJuriesForTarget(ctx context.Context, target string) ([]models.Jury, error) {
	rows, err := s.Main.QueryContext(ctx, "SELECT id, target, category, moderators, height FROM juries WHERE target = ? ORDER BY height DESC", target)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Jury
	for rows.Next() {
		var j models.Jury
		var moderators string
		if err := rows.Scan(&j.Id, &j.Target, &j.Category, &moderators, &j.Height); err != nil {
			return nil, err
		}
		j.Moderators = splitOrEmpty(moderators)
		out = append(out, j)
	}
	return out, rows.Err()
}

func (s *Store) RollbackJuriesAbove(ctx context.Context, h int32) error {
	_, err := s.Main.ExecContext(ctx, "DELETE FROM juries WHERE height > ?", h)
	return err
}

// PutModerationVote casts a juror's verdict on jury jID (spec.md §4.7).
func (s *Store) PutModerationVote(ctx context.Context, v models.ModerationVote) error {
	_, err := s.Main.ExecContext(ctx, `
		INSERT OR IGNORE INTO moderation_votes (tx_hash, jury_id, address, verdict, time, height)
		VALUES (?, ?, ?, ?, ?, ?)`,
		v.TxHash, v.JuryId, v.Address, boolToInt(v.Verdict), v.Time, v.Height)
	return err
}

// VotesForJury returns every vote cast against juryID.
func (s *Store) VotesForJury(ctx context.Context, juryID string) ([]models.ModerationVote, error) {
	rows, err := s.Main.QueryContext(ctx, "SELECT tx_hash, jury_id, address, verdict, time, height FROM moderation_votes WHERE jury_id = ?", juryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.ModerationVote
	for rows.Next() {
		var v models.ModerationVote
		var verdict int
		if err := rows.Scan(&v.TxHash, &v.JuryId, &v.Address, &verdict, &v.Time, &v.Height); err != nil {
			return nil, err
		}
		v.Verdict = verdict != 0
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) RollbackModerationVotesAbove(ctx context.Context, h int32) error {
	_, err := s.Main.ExecContext(ctx, "DELETE FROM moderation_votes WHERE height > ?", h)
	return err
}

// PutBan writes the outcome once a jury's vote count crosses its ban
// threshold (spec.md §4.7); ban1/ban2/ban3 are the expiry heights the
// moderation package computes by adding the three ban-duration limits to
// the ban height.
func (s *Store) PutBan(ctx context.Context, b models.Ban) error {
	_, err := s.Main.ExecContext(ctx, `
		INSERT OR REPLACE INTO bans (target, category, height, ban1, ban2, ban3)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.Target, b.Category, b.Height, b.Ban1, b.Ban2, b.Ban3)
	return err
}

// ActiveBan resolves the most recent ban on target at or below height.
func (s *Store) ActiveBan(ctx context.Context, target string, height int32) (models.Ban, error) {
	var b models.Ban
	err := s.Main.QueryRowContext(ctx, `
		SELECT target, category, height, ban1, ban2, ban3 FROM bans
		WHERE target = ? AND height <= ? ORDER BY height DESC LIMIT 1`, target, height).
		Scan(&b.Target, &b.Category, &b.Height, &b.Ban1, &b.Ban2, &b.Ban3)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ban{}, ErrNotFound
	}
	return b, err
}

// BanCountForTarget counts prior bans on target (spec.md §4.7). The
// moderation package does not consult it when computing ban1/ban2/ban3.
func (s *Store) BanCountForTarget(ctx context.Context, target string) (int, error) {
	var n int
	err := s.Main.QueryRowContext(ctx, "SELECT COUNT(1) FROM bans WHERE target = ?", target).Scan(&n)
	return n, err
}

func (s *Store) RollbackBansAbove(ctx context.Context, h int32) error {
	_, err := s.Main.ExecContext(ctx, "DELETE FROM bans WHERE height > ?", h)
	return err
}

// PutPayloadMempool stores an application payload whose carrier tx has
// entered the node's tx mempool but has not yet been confirmed (L9,
// spec.md §4.11).
func (s *Store) PutPayloadMempool(ctx context.Context, r models.PayloadMempoolRow) error {
	_, err := s.Main.ExecContext(ctx, `
		INSERT OR REPLACE INTO payload_mempool (id, carrier_tx_hash, kind, root_tx_hash, payload_b64)
		VALUES (?, ?, ?, ?, ?)`,
		r.Id, r.CarrierTxHash, int(r.Kind), r.RootTxHash, r.PayloadB64)
	return err
}

// PayloadMempoolByCarrier looks up a pending payload by its carrier tx.
func (s *Store) PayloadMempoolByCarrier(ctx context.Context, carrierTxHash string) (models.PayloadMempoolRow, error) {
	var r models.PayloadMempoolRow
	var kindInt int
	var rootTxHash sql.NullString
	err := s.Main.QueryRowContext(ctx, "SELECT id, carrier_tx_hash, kind, root_tx_hash, payload_b64 FROM payload_mempool WHERE carrier_tx_hash = ?", carrierTxHash).
		Scan(&r.Id, &r.CarrierTxHash, &kindInt, &rootTxHash, &r.PayloadB64)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PayloadMempoolRow{}, ErrNotFound
	}
	if err != nil {
		return models.PayloadMempoolRow{}, err
	}
	r.Kind = models.Kind(kindInt)
	r.RootTxHash = rootTxHash.String
	return r, nil
}

// DeletePayloadMempool removes a row once its carrier tx confirms (commit)
// or is evicted from the node's tx mempool (spec.md §4.11).
func (s *Store) DeletePayloadMempool(ctx context.Context, carrierTxHash string) error {
	_, err := s.Main.ExecContext(ctx, "DELETE FROM payload_mempool WHERE carrier_tx_hash = ?", carrierTxHash)
	return err
}

// AllPayloadMempool lists every pending row, used by the mempool
// admitter's reconcile pass to evict rows whose carrier tx has left the
// node's tx mempool.
func (s *Store) AllPayloadMempool(ctx context.Context) ([]models.PayloadMempoolRow, error) {
	rows, err := s.Main.QueryContext(ctx, "SELECT id, carrier_tx_hash, kind, root_tx_hash, payload_b64 FROM payload_mempool")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.PayloadMempoolRow
	for rows.Next() {
		var r models.PayloadMempoolRow
		var kindInt int
		var rootTxHash sql.NullString
		if err := rows.Scan(&r.Id, &r.CarrierTxHash, &kindInt, &rootTxHash, &r.PayloadB64); err != nil {
			return nil, err
		}
		r.Kind = models.Kind(kindInt)
		r.RootTxHash = rootTxHash.String
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
