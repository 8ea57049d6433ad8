package store

import (
	"context"

	"github.com/rawblock/sce/internal/models"
)

// Stats is the periodic aggregate snapshot spec.md's original source
// exposes read-only (`src/statistic.hpp`, SPEC_FULL.md §D.3): counts over
// the full history plus the trailing day, computed from L0 without
// mutating consensus state.
type Stats struct {
	Accounts        int64 `json:"accounts"`
	Posts           int64 `json:"posts"`
	Comments        int64 `json:"comments"`
	Scores          int64 `json:"scores"`
	AccountsLastDay int64 `json:"accountsLastDay"`
	PostsLastDay    int64 `json:"postsLastDay"`
	CommentsLastDay int64 `json:"commentsLastDay"`
	ScoresLastDay   int64 `json:"scoresLastDay"`
}

// Stats computes the snapshot as of height, with "last day" counting rows
// committed above sinceHeight (typically height - 1440 blocks on mainnet).
func (s *Store) Stats(ctx context.Context, height, sinceHeight int32) (Stats, error) {
	var st Stats
	if err := s.Main.QueryRowContext(ctx, "SELECT COUNT(1) FROM accounts WHERE height <= ?", height).Scan(&st.Accounts); err != nil {
		return st, err
	}
	if err := s.Main.QueryRowContext(ctx, "SELECT COUNT(1) FROM accounts WHERE height <= ? AND height > ?", height, sinceHeight).Scan(&st.AccountsLastDay); err != nil {
		return st, err
	}
	if err := s.Main.QueryRowContext(ctx, "SELECT COUNT(1) FROM content WHERE height <= ? AND kind != ? AND tx_hash = root_tx_hash", height, int(models.KindComment)).Scan(&st.Posts); err != nil {
		return st, err
	}
	if err := s.Main.QueryRowContext(ctx, "SELECT COUNT(1) FROM content WHERE height <= ? AND height > ? AND kind != ? AND tx_hash = root_tx_hash", height, sinceHeight, int(models.KindComment)).Scan(&st.PostsLastDay); err != nil {
		return st, err
	}
	if err := s.Main.QueryRowContext(ctx, "SELECT COUNT(1) FROM content WHERE height <= ? AND kind = ?", height, int(models.KindComment)).Scan(&st.Comments); err != nil {
		return st, err
	}
	if err := s.Main.QueryRowContext(ctx, "SELECT COUNT(1) FROM content WHERE height <= ? AND height > ? AND kind = ?", height, sinceHeight, int(models.KindComment)).Scan(&st.CommentsLastDay); err != nil {
		return st, err
	}
	if err := s.Main.QueryRowContext(ctx, "SELECT COUNT(1) FROM scores WHERE height <= ?", height).Scan(&st.Scores); err != nil {
		return st, err
	}
	if err := s.Main.QueryRowContext(ctx, "SELECT COUNT(1) FROM scores WHERE height <= ? AND height > ?", height, sinceHeight).Scan(&st.ScoresLastDay); err != nil {
		return st, err
	}
	return st, nil
}
