// Package sqlite is the wallet's local store, grounded on the node's
// mint/storage/sqlite/sqlite.go: the same go:embed migrations +
// golang-migrate + mattn/go-sqlite3 wiring, scaled down to a wallet's two
// tables (keyset cache, owned proofs).
package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/mattn/go-sqlite3"

	"github.com/paynet-go/paynet/crypto"
	"github.com/paynet-go/paynet/wallet/storage"
)

//go:embed migrations
var migrations embed.FS

type SQLiteDB struct {
	db *sql.DB
}

func migrationsDir() (string, error) {
	tempDir, err := os.MkdirTemp("", "wallet-migrations")
	if err != nil {
		return "", err
	}

	migrationFiles, err := migrations.ReadDir("migrations")
	if err != nil {
		return "", err
	}

	for _, file := range migrationFiles {
		filePath := filepath.Join(tempDir, file.Name())

		migrationFilePath := filepath.Join("migrations", file.Name())
		migrationFile, err := migrations.Open(migrationFilePath)
		if err != nil {
			return "", err
		}
		defer migrationFile.Close()

		destFile, err := os.Create(filePath)
		if err != nil {
			return "", err
		}
		defer destFile.Close()

		if _, err := io.Copy(destFile, migrationFile); err != nil {
			return "", err
		}
	}

	return tempDir, nil
}

func InitSQLite(path string) (*SQLiteDB, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, err
	}
	dbpath := filepath.Join(path, "wallet.sqlite.db")
	db, err := sql.Open("sqlite3", dbpath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	tempMigrationsDir, err := migrationsDir()
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tempMigrationsDir)

	m, err := migrate.New(fmt.Sprintf("file://%s", tempMigrationsDir), fmt.Sprintf("sqlite3://%s", dbpath))
	if err != nil {
		return nil, err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &SQLiteDB{db: db}, nil
}

func (s *SQLiteDB) Close() error { return s.db.Close() }

func (s *SQLiteDB) SaveKeyset(ks storage.DBKeyset) error {
	_, err := s.db.Exec(
		`INSERT INTO keyset (id, node_url, unit, active, input_fee_ppk, counter) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET active = excluded.active`,
		ks.Id, ks.NodeURL, ks.Unit.String(), ks.Active, ks.InputFeePpk, ks.Counter,
	)
	return err
}

func (s *SQLiteDB) GetKeysets(nodeURL string) ([]storage.DBKeyset, error) {
	rows, err := s.db.Query(
		`SELECT id, node_url, unit, active, input_fee_ppk, counter FROM keyset WHERE node_url = ?`, nodeURL,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []storage.DBKeyset
	for rows.Next() {
		var ks storage.DBKeyset
		var unit string
		if err := rows.Scan(&ks.Id, &ks.NodeURL, &unit, &ks.Active, &ks.InputFeePpk, &ks.Counter); err != nil {
			return nil, err
		}
		u, err := crypto.UnitFromString(unit)
		if err != nil {
			return nil, err
		}
		ks.Unit = u
		out = append(out, ks)
	}
	return out, rows.Err()
}

func (s *SQLiteDB) SetKeysetActive(id string, active bool) error {
	_, err := s.db.Exec(`UPDATE keyset SET active = ? WHERE id = ?`, active, id)
	return err
}

// GetCounter reads a keyset's current counter. It never advances it: the
// caller derives outputs against this value and only commits the advance,
// via BeginTx/SetCounter, once those outputs have actually produced proofs
// worth keeping.
func (s *SQLiteDB) GetCounter(keysetId string) (uint32, error) {
	var current uint32
	err := s.db.QueryRow(`SELECT counter FROM keyset WHERE id = ?`, keysetId).Scan(&current)
	return current, err
}

// sqliteTx bundles a counter advance with the proofs it produced into one
// commit, so a failure between deriving outputs and persisting them never
// leaves the counter ahead of what was actually saved.
type sqliteTx struct {
	tx *sql.Tx
}

func (s *SQLiteDB) BeginTx() (storage.Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx}, nil
}

func (t *sqliteTx) SetCounter(keysetId string, counter uint32) error {
	_, err := t.tx.Exec(`UPDATE keyset SET counter = ? WHERE id = ?`, counter, keysetId)
	return err
}

func (t *sqliteTx) SaveProofs(proofs []storage.DBProof) error {
	for _, p := range proofs {
		if _, err := t.tx.Exec(
			`INSERT INTO proof (y, amount, keyset_id, node_url, unit, secret, c) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.Y, p.Amount, p.KeysetId, p.NodeURL, p.Unit.String(), p.Secret, p.C,
		); err != nil {
			return err
		}
	}
	return nil
}

func (t *sqliteTx) Commit() error   { return t.tx.Commit() }
func (t *sqliteTx) Rollback() error { return t.tx.Rollback() }

func (s *SQLiteDB) GetProofs(nodeURL string, unit crypto.Unit) ([]storage.DBProof, error) {
	rows, err := s.db.Query(
		`SELECT y, amount, keyset_id, secret, c FROM proof WHERE node_url = ? AND unit = ?`, nodeURL, unit.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []storage.DBProof
	for rows.Next() {
		var p storage.DBProof
		if err := rows.Scan(&p.Y, &p.Amount, &p.KeysetId, &p.Secret, &p.C); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteDB) DeleteProofs(ys []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, y := range ys {
		if _, err := tx.Exec(`DELETE FROM proof WHERE y = ?`, y); err != nil {
			return err
		}
	}
	return tx.Commit()
}

var (
	_ storage.WalletDB = (*SQLiteDB)(nil)
	_ storage.Tx       = (*sqliteTx)(nil)
)
