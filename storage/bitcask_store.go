package storage

import (
	"github.com/prologic/bitcask"
	log "github.com/sirupsen/logrus"
)

// BitcaskStore ...
type BitcaskStore struct {
	db *bitcask.Bitcask
}

func newBitcaskStore(path string) (*BitcaskStore, error) {
	db, err := bitcask.Open(
		path,
		bitcask.WithMaxKeySize(256),
	)
	if err != nil {
		return nil, err
	}

	return &BitcaskStore{db: db}, nil
}

// Close ...
func (bs *BitcaskStore) Close() error {
	log.Debug("syncing store ...")
	if err := bs.db.Sync(); err != nil {
		log.WithError(err).Error("error syncing store")
		return err
	}

	log.Debug("closing store ...")
	if err := bs.db.Close(); err != nil {
		log.WithError(err).Error("error closing store")
		return err
	}

	return nil
}

// GetToken ...
func (bs *BitcaskStore) GetToken() (string, error) {
	data, err := bs.db.Get([]byte(TokenKey))
	if err == bitcask.ErrKeyNotFound {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SetToken ...
func (bs *BitcaskStore) SetToken(token string) error {
	if err := bs.db.Put([]byte(TokenKey), []byte(token)); err != nil {
		return err
	}
	return bs.db.Sync()
}

// DelToken ...
func (bs *BitcaskStore) DelToken() error {
	if !bs.db.Has([]byte(TokenKey)) {
		return nil
	}
	if err := bs.db.Delete([]byte(TokenKey)); err != nil {
		return err
	}
	return bs.db.Sync()
}
