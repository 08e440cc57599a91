package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kassslll/creator-studio/backend/models"

	bolt "go.etcd.io/bbolt"
)

var (
	contentsBucket   = []byte("contents")
	curriculaBucket  = []byte("curricula")
	requiredBuckets  = [][]byte{contentsBucket, curriculaBucket}
	boltOpenDeadline = 2 * time.Second
)

// BoltStore keeps records as JSON values in a bbolt file. Keys are the
// big-endian id so cursor order is insertion order; ids come from the
// bucket sequence.
type BoltStore struct {
	DB *bolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: boltOpenDeadline})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range requiredBuckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &BoltStore{DB: db}, nil
}

func itob(id uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, id)
	return b
}

func (s *BoltStore) Create(_ context.Context, c *models.Content) (uint, error) {
	prepareCreate(c)
	err := s.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(contentsBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		c.ID = uint(seq)
		raw, err := json.Marshal(c)
		if err != nil {
			return err
		}
		return b.Put(itob(seq), raw)
	})
	if err != nil {
		return 0, fmt.Errorf("create content: %w", err)
	}
	return c.ID, nil
}

func (s *BoltStore) Get(_ context.Context, id uint) (*models.Content, error) {
	var c models.Content
	err := s.DB.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(contentsBucket).Get(itob(uint64(id)))
		if raw == nil {
			return fmt.Errorf("content %d: %w", id, ErrNotFound)
		}
		return json.Unmarshal(raw, &c)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *BoltStore) ListAll(_ context.Context) ([]models.Content, error) {
	var out []models.Content
	err := s.DB.View(func(tx *bolt.Tx) error {
		return tx.Bucket(contentsBucket).ForEach(func(_, v []byte) error {
			var c models.Content
			if err := json.Unmarshal(v, &c); err != nil {
				return err
			}
			out = append(out, c)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return out, nil
}

func (s *BoltStore) ListRecent(ctx context.Context, n int) ([]models.Content, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return sortRecent(all, n), nil
}

func (s *BoltStore) Update(_ context.Context, id uint, patch models.ContentPatch) error {
	return s.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(contentsBucket)
		key := itob(uint64(id))
		raw := b.Get(key)
		if raw == nil {
			return fmt.Errorf("content %d: %w", id, ErrNotFound)
		}

		var c models.Content
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("decode content %d: %w", id, err)
		}
		patch.Apply(&c)
		updated := c.NextUpdatedAt(time.Now())
		c.UpdatedAt = &updated

		next, err := json.Marshal(c)
		if err != nil {
			return err
		}
		return b.Put(key, next)
	})
}

func (s *BoltStore) GetCurriculum(_ context.Context, id uint) (*models.Curriculum, error) {
	var c models.Curriculum
	err := s.DB.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(curriculaBucket).Get(itob(uint64(id)))
		if raw == nil {
			return fmt.Errorf("curriculum %d: %w", id, ErrNotFound)
		}
		return json.Unmarshal(raw, &c)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *BoltStore) ListCurricula(_ context.Context) ([]models.Curriculum, error) {
	var out []models.Curriculum
	err := s.DB.View(func(tx *bolt.Tx) error {
		return tx.Bucket(curriculaBucket).ForEach(func(_, v []byte) error {
			var c models.Curriculum
			if err := json.Unmarshal(v, &c); err != nil {
				return err
			}
			out = append(out, c)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list curricula: %w", err)
	}
	return out, nil
}

func (s *BoltStore) CreateCurriculum(_ context.Context, c *models.Curriculum) (uint, error) {
	err := s.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(curriculaBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		c.ID = uint(seq)
		raw, err := json.Marshal(c)
		if err != nil {
			return err
		}
		return b.Put(itob(seq), raw)
	})
	if err != nil {
		return 0, fmt.Errorf("create curriculum: %w", err)
	}
	return c.ID, nil
}

func (s *BoltStore) Close() error {
	return s.DB.Close()
}
