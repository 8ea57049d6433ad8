package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rawblock/sce/internal/models"
)

// ErrNotFound matches the L0 failure model (spec.md §4.1): "row not found
// → NotFound".
var ErrNotFound = errors.New("store: not found")

// GetAccountByAddress resolves the active account row for address.
func (s *Store) GetAccountByAddress(ctx context.Context, address string) (models.Account, error) {
	return s.scanAccount(ctx, "SELECT id, address, name, avatar, about, lang, url, donations, pubkey, referrer, regdate, tx_hash, height, deleted FROM accounts WHERE address = ?", address)
}

// GetAccountByName resolves the active account row by its unique name.
func (s *Store) GetAccountByName(ctx context.Context, name string) (models.Account, error) {
	return s.scanAccount(ctx, "SELECT id, address, name, avatar, about, lang, url, donations, pubkey, referrer, regdate, tx_hash, height, deleted FROM accounts WHERE name = ?", name)
}

func (s *Store) scanAccount(ctx context.Context, query, arg string) (models.Account, error) {
	var a models.Account
	var deleted int
	row := s.Main.QueryRowContext(ctx, query, arg)
	err := row.Scan(&a.Id, &a.Address, &a.Name, &a.Avatar, &a.About, &a.Lang, &a.URL, &a.Donations, &a.PubKey, &a.Referrer, &a.RegDate, &a.TxHash, &a.Height, &deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrNotFound
	}
	if err != nil {
		return models.Account{}, err
	}
	a.Deleted = deleted != 0
	return a, nil
}

// AccountExists reports whether address has a committed registration.
// Registrations earlier in the same batch are not visible here; the
// social package's checkRegistered covers those.
func (s *Store) AccountExists(ctx context.Context, address string) (bool, error) {
	var n int
	err := s.Main.QueryRowContext(ctx, "SELECT COUNT(1) FROM accounts WHERE address = ?", address).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// NameTaken reports whether name is already in use by a different address.
func (s *Store) NameTaken(ctx context.Context, name, byAddress string) (bool, error) {
	var n int
	err := s.Main.QueryRowContext(ctx, "SELECT COUNT(1) FROM accounts WHERE name = ? AND address != ?", name, byAddress).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// PutAccount inserts a first registration or replaces attributes on a
// later User tx, preserving Id, RegDate and the frozen Referrer (spec.md
// §3 Account lifecycle). The previous active row is copied to
// account_history before being overwritten, matching L0's edit contract.
func (s *Store) PutAccount(ctx context.Context, a models.Account, height int32) error {
	tx, err := s.Main.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := s.scanAccountTx(ctx, tx, a.Address)
	if errors.Is(err, ErrNotFound) {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO accounts (address, name, avatar, about, lang, url, donations, pubkey, referrer, regdate, tx_hash, height, deleted)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
			a.Address, a.Name, a.Avatar, a.About, a.Lang, a.URL, a.Donations, a.PubKey, a.Referrer, a.RegDate, a.TxHash, height)
		if err != nil {
			return fmt.Errorf("insert account: %w", err)
		}
		return tx.Commit()
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO account_history (address, height, name, avatar, about, lang, url, donations, pubkey, tx_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		existing.Address, existing.Height, existing.Name, existing.Avatar, existing.About, existing.Lang, existing.URL, existing.Donations, existing.PubKey, existing.TxHash)
	if err != nil {
		return fmt.Errorf("archive account history: %w", err)
	}

	// Id, RegDate and Referrer are frozen; only the mutable attributes and
	// the pointer to the current tx/height move.
	_, err = tx.ExecContext(ctx, `
		UPDATE accounts SET name = ?, avatar = ?, about = ?, lang = ?, url = ?, donations = ?, pubkey = ?, tx_hash = ?, height = ?
		WHERE address = ?`,
		a.Name, a.Avatar, a.About, a.Lang, a.URL, a.Donations, a.PubKey, a.TxHash, height, a.Address)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return tx.Commit()
}

func (s *Store) scanAccountTx(ctx context.Context, tx *sql.Tx, address string) (models.Account, error) {
	var a models.Account
	var deleted int
	row := tx.QueryRowContext(ctx, "SELECT id, address, name, avatar, about, lang, url, donations, pubkey, referrer, regdate, tx_hash, height, deleted FROM accounts WHERE address = ?", address)
	err := row.Scan(&a.Id, &a.Address, &a.Name, &a.Avatar, &a.About, &a.Lang, &a.URL, &a.Donations, &a.PubKey, &a.Referrer, &a.RegDate, &a.TxHash, &a.Height, &deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrNotFound
	}
	if err != nil {
		return models.Account{}, err
	}
	a.Deleted = deleted != 0
	return a, nil
}

// CountUserTxSince counts committed User txs for address at heights
// strictly greater than sinceHeight, used by the edit_user_daily_count
// rate limit (spec.md §4.5).
func (s *Store) CountUserTxSince(ctx context.Context, address string, sinceHeight int32) (int, error) {
	var n int
	// account_history holds the superseded versions; the active version
	// lives only in accounts, so both tables are counted.
	err := s.Main.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM (
			SELECT height FROM account_history WHERE address = ? AND height > ?
			UNION
			SELECT height FROM accounts WHERE address = ? AND height > ?)`,
		address, sinceHeight, address, sinceHeight).Scan(&n)
	return n, err
}

// RollbackAccountsAbove undoes account_history/accounts rows written at
// heights > h, restoring the most recent surviving history row as active.
func (s *Store) RollbackAccountsAbove(ctx context.Context, h int32) error {
	tx, err := s.Main.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Accounts whose first registration happened above h never existed
	// before the rollback target; delete outright.
	if _, err := tx.ExecContext(ctx, "DELETE FROM accounts WHERE height > ? AND address NOT IN (SELECT DISTINCT address FROM account_history WHERE height <= ?)", h, h); err != nil {
		return err
	}

	rows, err := tx.QueryContext(ctx, "SELECT DISTINCT address FROM accounts WHERE height > ?", h)
	if err != nil {
		return err
	}
	var addrs []string
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			rows.Close()
			return err
		}
		addrs = append(addrs, addr)
	}
	rows.Close()

	for _, addr := range addrs {
		var name, avatar, about, lang, url, donations, pubkey, txHash string
		var restoredHeight int32
		err := tx.QueryRowContext(ctx, `
			SELECT name, avatar, about, lang, url, donations, pubkey, tx_hash, height
			FROM account_history WHERE address = ? AND height <= ? ORDER BY height DESC LIMIT 1`, addr, h).
			Scan(&name, &avatar, &about, &lang, &url, &donations, &pubkey, &txHash, &restoredHeight)
		if err != nil {
			return fmt.Errorf("restore account %s: %w", addr, err)
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE accounts SET name = ?, avatar = ?, about = ?, lang = ?, url = ?, donations = ?, pubkey = ?, tx_hash = ?, height = ?
			WHERE address = ?`, name, avatar, about, lang, url, donations, pubkey, txHash, restoredHeight, addr); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM account_history WHERE height > ?", h); err != nil {
		return err
	}
	return tx.Commit()
}
