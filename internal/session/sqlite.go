package session

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	walletstatedb "github.com/Maphikza/trust-wallet-client.git/internal/database"
	"github.com/Maphikza/trust-wallet-client.git/internal/logger"
)

const (
	dbTokenKey   = "wallet_token"
	dbAddressKey = "wallet_address"
)

// SQLiteStore keeps the session as two metadata rows written in one transaction.
type SQLiteStore struct {
	db *gorm.DB
}

func OpenSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := walletstatedb.InitSQLiteDB(dbPath)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// NewSQLiteStore wraps an already migrated database.
func NewSQLiteStore(db *gorm.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Save(sess Session) error {
	if !sess.Valid() {
		return ErrPartialSession
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := walletstatedb.SetMetadata(tx, dbTokenKey, sess.Token); err != nil {
			return err
		}
		return walletstatedb.SetMetadata(tx, dbAddressKey, sess.WalletAddress)
	})
	if err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() (Session, bool) {
	var sess Session
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if sess.Token, err = walletstatedb.GetMetadata(tx, dbTokenKey); err != nil {
			return err
		}
		sess.WalletAddress, err = walletstatedb.GetMetadata(tx, dbAddressKey)
		return err
	})
	if err != nil {
		if !errors.Is(err, walletstatedb.ErrNotFound) {
			logger.Warn("Session rows unreadable", "error", err)
		}
		return Session{}, false
	}
	if !sess.Valid() {
		return Session{}, false
	}
	return sess, true
}

func (s *SQLiteStore) Clear() error {
	if err := walletstatedb.DeleteMetadata(s.db, dbTokenKey, dbAddressKey); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return walletstatedb.Close(s.db)
}
