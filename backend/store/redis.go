package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kassslll/creator-studio/backend/models"

	"github.com/redis/go-redis/v9"
)

const (
	redisContentSeq    = "creator:content:seq"
	redisContentIndex  = "creator:content:ids"
	redisCurriculumSeq = "creator:curriculum:seq"
	redisCurriculaIdx  = "creator:curriculum:ids"
)

func contentKey(id uint) string    { return "creator:content:" + strconv.FormatUint(uint64(id), 10) }
func curriculumKey(id uint) string { return "creator:curriculum:" + strconv.FormatUint(uint64(id), 10) }

// RedisStore keeps each record as a JSON string. A sorted set scored by id
// preserves insertion order for listing.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Create(ctx context.Context, c *models.Content) (uint, error) {
	prepareCreate(c)
	seq, err := s.client.Incr(ctx, redisContentSeq).Result()
	if err != nil {
		return 0, fmt.Errorf("allocate content id: %w", err)
	}
	c.ID = uint(seq)
	if err := s.put(ctx, contentKey(c.ID), redisContentIndex, c.ID, c); err != nil {
		return 0, fmt.Errorf("create content: %w", err)
	}
	return c.ID, nil
}

func (s *RedisStore) put(ctx context.Context, key, index string, id uint, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, raw, 0)
		pipe.ZAdd(ctx, index, redis.Z{Score: float64(id), Member: strconv.FormatUint(uint64(id), 10)})
		return nil
	})
	return err
}

func (s *RedisStore) Get(ctx context.Context, id uint) (*models.Content, error) {
	raw, err := s.client.Get(ctx, contentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("content %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get content %d: %w", id, err)
	}
	var c models.Content
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode content %d: %w", id, err)
	}
	return &c, nil
}

// loadAll fetches every record named by index, in id order.
func (s *RedisStore) loadAll(ctx context.Context, index, prefix string) ([]string, error) {
	ids, err := s.client.ZRange(ctx, index, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = prefix + id
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if str, ok := v.(string); ok {
			out = append(out, str)
		}
	}
	return out, nil
}

func (s *RedisStore) ListAll(ctx context.Context) ([]models.Content, error) {
	raws, err := s.loadAll(ctx, redisContentIndex, "creator:content:")
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	out := make([]models.Content, 0, len(raws))
	for _, raw := range raws {
		var c models.Content
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("decode content: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *RedisStore) ListRecent(ctx context.Context, n int) ([]models.Content, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return sortRecent(all, n), nil
}

func (s *RedisStore) Update(ctx context.Context, id uint, patch models.ContentPatch) error {
	key := contentKey(id)
	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return fmt.Errorf("content %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("get content %d: %w", id, err)
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
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}, key)
}

func (s *RedisStore) GetCurriculum(ctx context.Context, id uint) (*models.Curriculum, error) {
	raw, err := s.client.Get(ctx, curriculumKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("curriculum %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get curriculum %d: %w", id, err)
	}
	var c models.Curriculum
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode curriculum %d: %w", id, err)
	}
	return &c, nil
}

func (s *RedisStore) ListCurricula(ctx context.Context) ([]models.Curriculum, error) {
	raws, err := s.loadAll(ctx, redisCurriculaIdx, "creator:curriculum:")
	if err != nil {
		return nil, fmt.Errorf("list curricula: %w", err)
	}
	out := make([]models.Curriculum, 0, len(raws))
	for _, raw := range raws {
		var c models.Curriculum
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("decode curriculum: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *RedisStore) CreateCurriculum(ctx context.Context, c *models.Curriculum) (uint, error) {
	seq, err := s.client.Incr(ctx, redisCurriculumSeq).Result()
	if err != nil {
		return 0, fmt.Errorf("allocate curriculum id: %w", err)
	}
	c.ID = uint(seq)
	if err := s.put(ctx, curriculumKey(c.ID), redisCurriculaIdx, c.ID, c); err != nil {
		return 0, fmt.Errorf("create curriculum: %w", err)
	}
	return c.ID, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
