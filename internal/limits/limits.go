// Package limits implements the Limit Table (L2, spec.md §4.3): a
// three-level lookup limit(id, network, height) that resolves every
// social-consensus magic number to the value active at a given height.
// It is backed by a small read-only SQLite file per network
// (checkpoints/<network>.sqlite3), mirroring the teacher's pattern of
// keeping tunables in a dedicated store rather than scattered constants
// (internal/db/postgres.go in the teacher repo).
package limits

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/rawblock/sce/internal/chainparams"
)

// ID names a single tunable tracked by the Limit Table (spec.md §4.3).
type ID int

const (
	TrialPostLimit ID = iota
	TrialVideoLimit
	TrialArticleLimit
	TrialCommentLimit
	TrialScoreLimit
	TrialCommentScoreLimit
	TrialComplainLimit
	FullPostLimit
	FullVideoLimit
	FullArticleLimit
	FullCommentLimit
	FullScoreLimit
	FullCommentScoreLimit
	FullComplainLimit
	ProPostLimit
	ProVideoLimit
	ProArticleLimit
	ProCommentLimit
	ProScoreLimit
	ProCommentScoreLimit
	ProComplainLimit
	ReputationToPost
	ReputationToScore
	ReputationToComplain
	ThresholdReputationFull
	ThresholdLikersCount
	ScoresOneToOneDepth // seconds, window within which ScoresOneToOneMax applies
	ScoresOneToOneMax
	ScoresOneToOneOverCommentMax
	ReputationDepthModifierSeconds
	EditPostDepthBlocks
	EditCommentDepthBlocks
	EditUserDailyCount
	PostEditCountMax
	CommentEditCountMax
	ModerationFlagCountCat1
	ModerationFlagCountCat2
	ModerationFlagCountCat3
	ModerationFlagCountCat4
	ModerationJurySizeCat1
	ModerationJurySizeCat2
	ModerationJurySizeCat3
	ModerationJurySizeCat4
	ModerationVoteCountCat1
	ModerationVoteCountCat2
	ModerationVoteCountCat3
	ModerationVoteCountCat4
	BanDuration1Blocks
	BanDuration2Blocks
	BanDuration3Blocks
	BadgeSharkThreshold
	BadgeWhaleThreshold
	BadReputationCutoff
	ContentSizeCapBytes
	MaxCommentSizeBytes
	LotteryReferralDepthBlocks
	// ScaleTenfoldScorePost toggles the ×10 storage convention for
	// ScorePost reputation/content deltas (spec.md §9 "Reputation scale
	// ambiguity"): nonzero means v-3 is stored as (v-3)*10, matching the
	// checkpoint era spec.md §8 scenario S6 exercises. ScoreComment deltas
	// are never scaled by this flag — they are already the ±1/value
	// convention spec.md §4.6 describes as "stored at /10 scale".
	ScaleTenfoldScorePost
)

// Table is the queryable handle over a single network's checkpoint file.
type Table struct {
	db      *sql.DB
	network chainparams.Network
}

const schema = `
CREATE TABLE IF NOT EXISTS limits (
	id INTEGER NOT NULL,
	network TEXT NOT NULL,
	height INTEGER NOT NULL,
	value INTEGER NOT NULL,
	PRIMARY KEY (id, network, height)
);
`

// Open opens (creating and seeding with defaults if necessary) the
// checkpoint file at path for network.
func Open(path string, network chainparams.Network) (*Table, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("limits: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("limits: schema: %w", err)
	}
	t := &Table{db: db, network: network}

	var n int
	if err := db.QueryRow("SELECT COUNT(1) FROM limits WHERE network = ?", string(network)).Scan(&n); err != nil {
		db.Close()
		return nil, err
	}
	if n == 0 {
		if err := t.seedDefaults(); err != nil {
			db.Close()
			return nil, fmt.Errorf("limits: seed defaults: %w", err)
		}
	}
	return t, nil
}

// OpenReadOnly opens an existing checkpoint file without write access or
// default-seeding, for nodes that ship a vetted checkpoints/<network>.sqlite3.
func OpenReadOnly(path string, network chainparams.Network) (*Table, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("limits: open readonly %s: %w", path, err)
	}
	return &Table{db: db, network: network}, nil
}

// Close releases the underlying database handle.
func (t *Table) Close() error { return t.db.Close() }

// Value implements the three-level lookup limit(id, network, height):
// the largest value keyed at a height <= h (spec.md §4.3).
func (t *Table) Value(ctx context.Context, id ID, height int32) (int64, error) {
	var v int64
	err := t.db.QueryRowContext(ctx, `
		SELECT value FROM limits WHERE id = ? AND network = ? AND height <= ?
		ORDER BY height DESC LIMIT 1`, int(id), string(t.network), height).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("limits: no value for id=%d network=%s height=%d: %w", id, t.network, height, err)
	}
	return v, nil
}

// Put inserts (or overrides) the value effective for id starting at height,
// used by tests and by checkpoint operators rolling out a new tunable.
func (t *Table) Put(ctx context.Context, id ID, height int32, value int64) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO limits (id, network, height, value) VALUES (?, ?, ?, ?)
		ON CONFLICT(id, network, height) DO UPDATE SET value = excluded.value`,
		int(id), string(t.network), height, value)
	return err
}

type seedRow struct {
	id    ID
	value int64
}

// seedDefaults populates height-0 defaults for every tunable named in
// spec.md §4.3. Real deployments override individual rows at later
// heights via Put, or ship an already-populated checkpoint file.
func (t *Table) seedDefaults() error {
	defaults := []seedRow{
		{TrialPostLimit, 15}, {TrialVideoLimit, 15}, {TrialArticleLimit, 1}, {TrialCommentLimit, 150},
		{TrialScoreLimit, 45}, {TrialCommentScoreLimit, 300}, {TrialComplainLimit, 20},
		{FullPostLimit, 30}, {FullVideoLimit, 30}, {FullArticleLimit, 3}, {FullCommentLimit, 300},
		{FullScoreLimit, 90}, {FullCommentScoreLimit, 600}, {FullComplainLimit, 40},
		{ProPostLimit, 60}, {ProVideoLimit, 60}, {ProArticleLimit, 6}, {ProCommentLimit, 600},
		{ProScoreLimit, 180}, {ProCommentScoreLimit, 1200}, {ProComplainLimit, 80},
		{ReputationToPost, 0}, {ReputationToScore, -10}, {ReputationToComplain, -50},
		{ThresholdReputationFull, 500}, {ThresholdLikersCount, 5},
		{ScoresOneToOneDepth, 1209600}, {ScoresOneToOneMax, 1}, {ScoresOneToOneOverCommentMax, 2},
		{ReputationDepthModifierSeconds, 2629743},
		{EditPostDepthBlocks, 1440}, {EditCommentDepthBlocks, 1440}, {EditUserDailyCount, 10},
		{PostEditCountMax, 5}, {CommentEditCountMax, 5},
		{ModerationFlagCountCat1, 15}, {ModerationFlagCountCat2, 25}, {ModerationFlagCountCat3, 35}, {ModerationFlagCountCat4, 45},
		{ModerationJurySizeCat1, 15}, {ModerationJurySizeCat2, 25}, {ModerationJurySizeCat3, 35}, {ModerationJurySizeCat4, 45},
		{ModerationVoteCountCat1, 10}, {ModerationVoteCountCat2, 15}, {ModerationVoteCountCat3, 20}, {ModerationVoteCountCat4, 25},
		{BanDuration1Blocks, karmaWeek}, {BanDuration2Blocks, karmaWeek * 4}, {BanDuration3Blocks, karmaWeek * 52},
		{BadgeSharkThreshold, 1000}, {BadgeWhaleThreshold, 5000},
		{BadReputationCutoff, -500}, {ContentSizeCapBytes, 20000}, {MaxCommentSizeBytes, 2000},
		{LotteryReferralDepthBlocks, 30 * 1440},
		{ScaleTenfoldScorePost, 1},
	}

	tx, err := t.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO limits (id, network, height, value) VALUES (?, ?, 0, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range defaults {
		if _, err := stmt.Exec(int(d.id), string(t.network), d.value); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// karmaWeek approximates one week of blocks at the network's target
// spacing; ban durations are expressed in blocks so they scale with the
// chain's own clock rather than wall time.
const karmaWeek = 7 * 24 * 60
