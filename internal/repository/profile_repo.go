package repository

import (
	"Amoria/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ProfileSearchParams 资料检索条件，零值字段不参与过滤
type ProfileSearchParams struct {
	Gender        string
	City          string
	AgeMin        int
	AgeMax        int
	HeightMin     int
	HeightMax     int
	MaritalStatus string
	Education     string
	Smoking       string
	Alcohol       string
	HasChildren   *bool
	WithPhoto     bool
	OnlineSince   time.Time

	Page     int
	PageSize int
}

// GenderStat 按性别统计的活跃资料数
type GenderStat struct {
	Gender string `json:"gender"`
	Count  int64  `json:"count"`
}

type ProfileRepo interface {
	GetByUserID(ctx context.Context, userID uint64) (*model.Profile, error)
	GetByID(ctx context.Context, id uint64) (*model.Profile, error)
	Create(ctx context.Context, profile *model.Profile) error
	Update(ctx context.Context, profile *model.Profile) error
	Search(ctx context.Context, params *ProfileSearchParams) ([]*model.Profile, int64, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Profile, error)
	TouchLastOnline(ctx context.Context, userID uint64) error
	SetActive(ctx context.Context, userID uint64, active bool) error
	CountByGender(ctx context.Context) ([]*GenderStat, error)
}

type profileRepoImpl struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepo {
	return &profileRepoImpl{db: db}
}

func (s *profileRepoImpl) GetByUserID(ctx context.Context, userID uint64) (*model.Profile, error) {
	profile := &model.Profile{}
	result := s.db.WithContext(ctx).
		Preload("Photos").
		Where("user_id = ?", userID).
		First(profile)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return profile, nil
}

func (s *profileRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Profile, error) {
	profile := &model.Profile{}
	result := s.db.WithContext(ctx).
		Preload("Photos").
		First(profile, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return profile, nil
}

func (s *profileRepoImpl) Create(ctx context.Context, profile *model.Profile) error {
	return s.db.WithContext(ctx).Create(profile).Error
}

// Update 全量更新资料字段。按列更新而非结构体零值跳过，
// 否则 is_active 等布尔列无法被置回 false
func (s *profileRepoImpl) Update(ctx context.Context, profile *model.Profile) error {
	return s.db.WithContext(ctx).Model(&model.Profile{}).
		Where("user_id = ?", profile.UserID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(profile).Error
}

// Search 类型化检索，每个条件对应显式的 WHERE 子句
func (s *profileRepoImpl) Search(ctx context.Context, params *ProfileSearchParams) ([]*model.Profile, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Profile{}).Where("is_active = ?", true)

	if params.Gender != "" {
		query = query.Where("gender = ?", params.Gender)
	}
	if params.City != "" {
		query = query.Where("city = ?", params.City)
	}
	if params.AgeMin > 0 {
		query = query.Where("age >= ?", params.AgeMin)
	}
	if params.AgeMax > 0 {
		query = query.Where("age <= ?", params.AgeMax)
	}
	if params.HeightMin > 0 {
		query = query.Where("height >= ?", params.HeightMin)
	}
	if params.HeightMax > 0 {
		query = query.Where("height <= ?", params.HeightMax)
	}
	if params.MaritalStatus != "" {
		query = query.Where("marital_status = ?", params.MaritalStatus)
	}
	if params.Education != "" {
		query = query.Where("education = ?", params.Education)
	}
	if params.Smoking != "" {
		query = query.Where("smoking = ?", params.Smoking)
	}
	if params.Alcohol != "" {
		query = query.Where("alcohol = ?", params.Alcohol)
	}
	if params.HasChildren != nil {
		query = query.Where("has_children = ?", *params.HasChildren)
	}
	if params.WithPhoto {
		query = query.Where("EXISTS (SELECT 1 FROM photos WHERE photos.profile_id = profiles.id)")
	}
	if !params.OnlineSince.IsZero() {
		query = query.Where("last_online >= ?", params.OnlineSince)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	profiles := make([]*model.Profile, 0)
	err := query.
		Preload("Photos").
		Order("last_online DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

// ListRecent 最近上线的活跃资料
func (s *profileRepoImpl) ListRecent(ctx context.Context, limit int) ([]*model.Profile, error) {
	if limit <= 0 {
		limit = 10
	}
	profiles := make([]*model.Profile, 0)
	err := s.db.WithContext(ctx).
		Preload("Photos").
		Where("is_active = ?", true).
		Order("last_online DESC").
		Limit(limit).
		Find(&profiles).Error
	return profiles, err
}

func (s *profileRepoImpl) TouchLastOnline(ctx context.Context, userID uint64) error {
	return s.db.WithContext(ctx).Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("last_online", time.Now()).Error
}

func (s *profileRepoImpl) SetActive(ctx context.Context, userID uint64, active bool) error {
	return s.db.WithContext(ctx).Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("is_active", active).Error
}

// CountByGender 统计活跃资料的性别分布
func (s *profileRepoImpl) CountByGender(ctx context.Context) ([]*GenderStat, error) {
	stats := make([]*GenderStat, 0)
	err := s.db.WithContext(ctx).Model(&model.Profile{}).
		Select("gender, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("gender").
		Find(&stats).Error
	return stats, err
}
