package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/kassslll/creator-studio/backend/config"
	"github.com/kassslll/creator-studio/backend/models"
	"github.com/kassslll/creator-studio/backend/utils"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// DefaultRecentLimit is used by ListRecent when n <= 0.
const DefaultRecentLimit = 5

// ContentStore persists content records. Ids are assigned by the store,
// increase monotonically and are never reused.
type ContentStore interface {
	Create(ctx context.Context, c *models.Content) (uint, error)
	Get(ctx context.Context, id uint) (*models.Content, error)
	ListAll(ctx context.Context) ([]models.Content, error)
	// ListRecent returns up to n records, newest CreatedAt first; equal
	// timestamps keep insertion order.
	ListRecent(ctx context.Context, n int) ([]models.Content, error)
	// Update applies a shallow patch and always refreshes UpdatedAt.
	Update(ctx context.Context, id uint, patch models.ContentPatch) error
}

// CurriculumStore holds the read-mostly curriculum reference data.
type CurriculumStore interface {
	GetCurriculum(ctx context.Context, id uint) (*models.Curriculum, error)
	ListCurricula(ctx context.Context) ([]models.Curriculum, error)
	CreateCurriculum(ctx context.Context, c *models.Curriculum) (uint, error)
}

type Store interface {
	ContentStore
	CurriculumStore
	Close() error
}

// Open builds the store selected by cfg.StoreDriver and seeds the default
// curriculum if the store has none.
func Open(ctx context.Context, cfg *config.Config, logger *utils.Logger) (Store, error) {
	var (
		st  Store
		err error
	)
	switch cfg.StoreDriver {
	case "sqlite", "postgres":
		db, dbErr := utils.InitDB(cfg)
		if dbErr != nil {
			return nil, dbErr
		}
		st, err = NewGormStore(db)
	case "bolt":
		st, err = NewBoltStore(cfg.BoltPath)
	case "redis":
		st, err = NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case "memory":
		st = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store driver: %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}

	if err := SeedDefaults(ctx, st); err != nil {
		_ = st.Close()
		return nil, err
	}
	logger.Info("store ready", "driver", cfg.StoreDriver)
	return st, nil
}

// SeedDefaults inserts the default curriculum into an empty store.
func SeedDefaults(ctx context.Context, st CurriculumStore) error {
	existing, err := st.ListCurricula(ctx)
	if err != nil {
		return fmt.Errorf("list curricula: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	def := models.DefaultCurriculum(time.Now())
	if _, err := st.CreateCurriculum(ctx, &def); err != nil {
		return fmt.Errorf("seed default curriculum: %w", err)
	}
	return nil
}

// sortRecent orders records (given in insertion order) newest first and
// truncates to n.
func sortRecent(records []models.Content, n int) []models.Content {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if len(records) > n {
		records = records[:n]
	}
	return records
}

func prepareCreate(c *models.Content) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
}
