package ledger

import (
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var chatsBucket = []byte("chats")

// BoltStore keeps the snapshot in one bbolt bucket, one key per chat
type BoltStore struct {
	path string
}

func NewBoltStore(path string) *BoltStore {
	return &BoltStore{path: path}
}

func (s *BoltStore) Path() string { return s.path }

func (s *BoltStore) Load() (map[string]string, bool, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, false, nil
		}
		return nil, true, err
	}

	db, err := bolt.Open(s.path, 0o600, &bolt.Options{Timeout: time.Second, ReadOnly: true})
	if err != nil {
		return nil, true, err
	}
	defer func() { _ = db.Close() }()

	out := map[string]string{}
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(chatsBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			out[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, true, err
	}
	return out, true, nil
}

// Save recreates the bucket so it mirrors chats exactly
func (s *BoltStore) Save(chats map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	db, err := bolt.Open(s.path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(chatsBucket) != nil {
			if err := tx.DeleteBucket(chatsBucket); err != nil {
				return err
			}
		}
		b, err := tx.CreateBucket(chatsBucket)
		if err != nil {
			return err
		}
		for name, sessionID := range chats {
			if err := b.Put([]byte(name), []byte(sessionID)); err != nil {
				return err
			}
		}
		return nil
	})
}
