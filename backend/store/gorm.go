package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kassslll/creator-studio/backend/models"

	"gorm.io/gorm"
)

// GormStore keeps content and curricula in a relational database
// (postgres in production, sqlite for local runs and tests).
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&models.Content{}, &models.Curriculum{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &GormStore{DB: db}, nil
}

func (s *GormStore) Create(ctx context.Context, c *models.Content) (uint, error) {
	prepareCreate(c)
	c.ID = 0
	if err := s.DB.WithContext(ctx).Create(c).Error; err != nil {
		return 0, fmt.Errorf("create content: %w", err)
	}
	return c.ID, nil
}

func (s *GormStore) Get(ctx context.Context, id uint) (*models.Content, error) {
	var c models.Content
	if err := s.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("content %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get content %d: %w", id, err)
	}
	return &c, nil
}

func (s *GormStore) ListAll(ctx context.Context) ([]models.Content, error) {
	var contents []models.Content
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&contents).Error; err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return contents, nil
}

func (s *GormStore) ListRecent(ctx context.Context, n int) ([]models.Content, error) {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	var contents []models.Content
	err := s.DB.WithContext(ctx).
		Order("created_at DESC").
		Order("id ASC").
		Limit(n).
		Find(&contents).Error
	if err != nil {
		return nil, fmt.Errorf("list recent content: %w", err)
	}
	return contents, nil
}

func (s *GormStore) Update(ctx context.Context, id uint, patch models.ContentPatch) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Content
		if err := tx.First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("content %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("get content %d: %w", id, err)
		}

		updates := map[string]interface{}{
			"updated_at": c.NextUpdatedAt(time.Now()),
		}
		if patch.Title != nil {
			updates["title"] = *patch.Title
		}
		if patch.ContentType != nil {
			updates["content_type"] = *patch.ContentType
		}
		if patch.Content != nil {
			updates["content"] = *patch.Content
		}
		if patch.CurriculumID != nil {
			updates["curriculum_id"] = *patch.CurriculumID
		}

		if err := tx.Model(&models.Content{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("update content %d: %w", id, err)
		}
		return nil
	})
}

func (s *GormStore) GetCurriculum(ctx context.Context, id uint) (*models.Curriculum, error) {
	var c models.Curriculum
	if err := s.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("curriculum %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get curriculum %d: %w", id, err)
	}
	return &c, nil
}

func (s *GormStore) ListCurricula(ctx context.Context) ([]models.Curriculum, error) {
	var curricula []models.Curriculum
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&curricula).Error; err != nil {
		return nil, fmt.Errorf("list curricula: %w", err)
	}
	return curricula, nil
}

func (s *GormStore) CreateCurriculum(ctx context.Context, c *models.Curriculum) (uint, error) {
	c.ID = 0
	if err := s.DB.WithContext(ctx).Create(c).Error; err != nil {
		return 0, fmt.Errorf("create curriculum: %w", err)
	}
	return c.ID, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
