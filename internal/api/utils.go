package api

import (
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const certStoringTime = 30 * time.Minute

func addCertToDB(db *badger.DB, certID string, doc []byte) error {
	return db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(certID), doc).WithTTL(certStoringTime)
		if err := txn.SetEntry(e); err != nil {
			return fmt.Errorf("failed to set certificate to db: %w", err)
		}
		return nil
	})
}

func readCertFromDB(db *badger.DB, certID string) ([]byte, error) {
	var certData []byte
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(certID))
		if err == badger.ErrKeyNotFound {
			return ErrCertNotFound
		}
		if err != nil {
			return fmt.Errorf("error retrieving certificate: %w", err)
		}
		return item.Value(func(val []byte) error {
			certData = append([]byte{}, val...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return certData, nil
}
