package repository

import (
	"Amoria/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PhotoRepo interface {
	Create(ctx context.Context, photo *model.Photo) error
	GetByID(ctx context.Context, id uint64) (*model.Photo, error)
	ListByProfile(ctx context.Context, profileID uint64) ([]*model.Photo, error)
	CountByProfile(ctx context.Context, profileID uint64) (int64, error)
	SetPrimary(ctx context.Context, profileID uint64, photoID uint64) error
	Delete(ctx context.Context, id uint64) error
}

type photoRepoImpl struct {
	db *gorm.DB
}

func NewPhotoRepo(db *gorm.DB) PhotoRepo {
	return &photoRepoImpl{db: db}
}

func (s *photoRepoImpl) Create(ctx context.Context, photo *model.Photo) error {
	return s.db.WithContext(ctx).Create(photo).Error
}

func (s *photoRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Photo, error) {
	photo := &model.Photo{}
	result := s.db.WithContext(ctx).First(photo, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return photo, nil
}

func (s *photoRepoImpl) ListByProfile(ctx context.Context, profileID uint64) ([]*model.Photo, error) {
	photos := make([]*model.Photo, 0)
	err := s.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("is_primary DESC, id ASC").
		Find(&photos).Error
	return photos, err
}

func (s *photoRepoImpl) CountByProfile(ctx context.Context, profileID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Photo{}).
		Where("profile_id = ?", profileID).
		Count(&count).Error
	return count, err
}

// SetPrimary 设置主照片，同时清除同资料下其他照片的主标记
func (s *photoRepoImpl) SetPrimary(ctx context.Context, profileID uint64, photoID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Photo{}).
			Where("profile_id = ? AND id <> ?", profileID, photoID).
			Update("is_primary", false).Error; err != nil {
			return err
		}

		result := tx.Model(&model.Photo{}).
			Where("profile_id = ? AND id = ?", profileID, photoID).
			Update("is_primary", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (s *photoRepoImpl) Delete(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Photo{}, id).Error
}
