package service

import (
	"Amoria/internal/api/dto"
	"Amoria/internal/model"
	"Amoria/internal/pkg/cache"
	"Amoria/internal/pkg/consts"
	"Amoria/internal/pkg/minio"
	"Amoria/internal/repository"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

const (
	profileCacheTTL = 15 * time.Minute
	noProfileTTL    = 1 * time.Minute
	searchCacheTTL  = 10 * time.Minute
	recentCacheTTL  = 5 * time.Minute
	statsCacheTTL   = 15 * time.Minute
)

type ProfileService interface {
	CreateProfile(ctx context.Context, userID uint64, dto *dto.CreateProfileDTO) (*dto.ProfileDTO, error)
	GetProfile(ctx context.Context, userID uint64) (*dto.ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uint64, dto *dto.UpdateProfileDTO) error
	Search(ctx context.Context, params *dto.SearchProfileDTO) (*dto.SearchResultDTO, error)
	ListRecent(ctx context.Context, limit int) ([]*dto.ProfileDTO, error)
	GetStats(ctx context.Context) (*dto.ProfileStatsDTO, error)
	RefreshStats(ctx context.Context) error
	TouchLastOnline(ctx context.Context, userID uint64)
}

type ProfileServiceImpl struct {
	profileRepo repository.ProfileRepo
	store       cache.Store
}

func NewProfileService(profileRepo repository.ProfileRepo, store cache.Store) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		store:       store,
	}
}

func (s *ProfileServiceImpl) CreateProfile(ctx context.Context, userID uint64, createDTO *dto.CreateProfileDTO) (*dto.ProfileDTO, error) {
	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProfileExist
	}

	profile := &model.Profile{}
	if err = copier.Copy(profile, createDTO); err != nil {
		return nil, err
	}
	profile.UserID = userID
	profile.LastOnline = time.Now()
	profile.IsActive = true

	if err = s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.invalidateProfile(ctx, userID)
	s.bumpSearchVersion(ctx)
	return toProfileDTO(profile), nil
}

func (s *ProfileServiceImpl) GetProfile(ctx context.Context, userID uint64) (*dto.ProfileDTO, error) {
	key := consts.ProfileKey + formatUint(userID)
	cached, err := s.store.Get(ctx, key)
	if err == nil && cached != "" {
		if cached == consts.NoProfileValue {
			return nil, ErrProfileNotFound
		}
		profileDTO := &dto.ProfileDTO{}
		if err = json.Unmarshal([]byte(cached), profileDTO); err == nil {
			return profileDTO, nil
		}
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		// 无资料做短时负缓存，挡住重复穿透
		_ = s.store.Set(ctx, key, consts.NoProfileValue, noProfileTTL)
		return nil, ErrProfileNotFound
	}

	profileDTO := toProfileDTO(profile)
	if data, err := json.Marshal(profileDTO); err == nil {
		_ = s.store.Set(ctx, key, string(data), profileCacheTTL)
	}
	return profileDTO, nil
}

func (s *ProfileServiceImpl) UpdateProfile(ctx context.Context, userID uint64, updateDTO *dto.UpdateProfileDTO) error {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrProfileNotFound
	}

	if err = copier.CopyWithOption(profile, updateDTO, copier.Option{IgnoreEmpty: true}); err != nil {
		return err
	}
	if updateDTO.IsActive != nil {
		profile.IsActive = *updateDTO.IsActive
	}
	if updateDTO.HasChildren != nil {
		profile.HasChildren = *updateDTO.HasChildren
	}
	if updateDTO.PhotoRequired != nil {
		profile.PhotoRequired = *updateDTO.PhotoRequired
	}

	if err = s.profileRepo.Update(ctx, profile); err != nil {
		return err
	}

	s.invalidateProfile(ctx, userID)
	s.bumpSearchVersion(ctx)
	return nil
}

// Search 检索结果按 过滤条件哈希+版本号 缓存，资料变更只需递增版本号即可整体失效
func (s *ProfileServiceImpl) Search(ctx context.Context, searchDTO *dto.SearchProfileDTO) (*dto.SearchResultDTO, error) {
	key := s.searchCacheKey(ctx, searchDTO)
	if key != "" {
		if cached, err := s.store.Get(ctx, key); err == nil && cached != "" {
			result := &dto.SearchResultDTO{}
			if err = json.Unmarshal([]byte(cached), result); err == nil {
				return result, nil
			}
		}
	}

	params := &repository.ProfileSearchParams{
		Gender:        searchDTO.Gender,
		City:          searchDTO.City,
		AgeMin:        searchDTO.AgeMin,
		AgeMax:        searchDTO.AgeMax,
		HeightMin:     searchDTO.HeightMin,
		HeightMax:     searchDTO.HeightMax,
		MaritalStatus: searchDTO.MaritalStatus,
		Education:     searchDTO.Education,
		Smoking:       searchDTO.Smoking,
		Alcohol:       searchDTO.Alcohol,
		HasChildren:   searchDTO.HasChildren,
		WithPhoto:     searchDTO.WithPhoto,
		Page:          searchDTO.Page,
		PageSize:      searchDTO.PageSize,
	}
	if searchDTO.OnlineDays > 0 {
		params.OnlineSince = time.Now().AddDate(0, 0, -searchDTO.OnlineDays)
	}

	profiles, total, err := s.profileRepo.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	result := &dto.SearchResultDTO{
		Total:    total,
		Page:     maxInt(searchDTO.Page, 1),
		PageSize: params.PageSize,
		Profiles: toProfileDTOs(profiles),
	}
	if result.PageSize <= 0 {
		result.PageSize = 20
	}

	if key != "" {
		if data, err := json.Marshal(result); err == nil {
			_ = s.store.Set(ctx, key, string(data), searchCacheTTL)
		}
	}
	return result, nil
}

func (s *ProfileServiceImpl) ListRecent(ctx context.Context, limit int) ([]*dto.ProfileDTO, error) {
	if cached, err := s.store.Get(ctx, consts.ProfileRecentKey); err == nil && cached != "" {
		profiles := make([]*dto.ProfileDTO, 0)
		if err = json.Unmarshal([]byte(cached), &profiles); err == nil {
			return profiles, nil
		}
	}

	profiles, err := s.profileRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := toProfileDTOs(profiles)
	if data, err := json.Marshal(result); err == nil {
		_ = s.store.Set(ctx, consts.ProfileRecentKey, string(data), recentCacheTTL)
	}
	return result, nil
}

func (s *ProfileServiceImpl) GetStats(ctx context.Context) (*dto.ProfileStatsDTO, error) {
	if cached, err := s.store.Get(ctx, consts.ProfileStatsKey); err == nil && cached != "" {
		stats := &dto.ProfileStatsDTO{}
		if err = json.Unmarshal([]byte(cached), stats); err == nil {
			return stats, nil
		}
	}

	stats, err := s.loadStats(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheStats(ctx, stats)
	return stats, nil
}

// RefreshStats 由定时任务调用，主动重算并回填统计缓存
func (s *ProfileServiceImpl) RefreshStats(ctx context.Context) error {
	stats, err := s.loadStats(ctx)
	if err != nil {
		return err
	}
	s.cacheStats(ctx, stats)
	return nil
}

// TouchLastOnline 刷新在线时间，失败只记日志不阻塞主流程
func (s *ProfileServiceImpl) TouchLastOnline(ctx context.Context, userID uint64) {
	if err := s.profileRepo.TouchLastOnline(ctx, userID); err != nil {
		log.WarnContext(ctx, "touch last online failed", "uid", userID, "err", err)
	}
}

func (s *ProfileServiceImpl) loadStats(ctx context.Context) (*dto.ProfileStatsDTO, error) {
	genderStats, err := s.profileRepo.CountByGender(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.ProfileStatsDTO{
		ByGender: make(map[string]int64, len(genderStats)),
	}
	for _, gs := range genderStats {
		stats.ByGender[gs.Gender] = gs.Count
		stats.Total += gs.Count
	}
	return stats, nil
}

func (s *ProfileServiceImpl) cacheStats(ctx context.Context, stats *dto.ProfileStatsDTO) {
	if data, err := json.Marshal(stats); err == nil {
		_ = s.store.Set(ctx, consts.ProfileStatsKey, string(data), statsCacheTTL)
	}
}

func (s *ProfileServiceImpl) invalidateProfile(ctx context.Context, userID uint64) {
	_ = s.store.Delete(ctx, consts.ProfileKey+formatUint(userID))
	_ = s.store.Delete(ctx, consts.ProfileRecentKey)
}

func (s *ProfileServiceImpl) bumpSearchVersion(ctx context.Context) {
	if _, err := s.store.Incr(ctx, consts.SearchVersionKey); err != nil {
		log.WarnContext(ctx, "bump search version failed", "err", err)
	}
}

// searchCacheKey 过滤条件序列化后取 MD5，再拼接当前搜索版本号
func (s *ProfileServiceImpl) searchCacheKey(ctx context.Context, searchDTO *dto.SearchProfileDTO) string {
	data, err := json.Marshal(searchDTO)
	if err != nil {
		return ""
	}
	version, err := s.store.Get(ctx, consts.SearchVersionKey)
	if err != nil {
		return ""
	}
	if version == "" {
		version = "0"
	}
	sum := md5.Sum(data)
	return fmt.Sprintf("%s%s:%s", consts.SearchResultKey, version, hex.EncodeToString(sum[:]))
}

func toProfileDTO(profile *model.Profile) *dto.ProfileDTO {
	profileDTO := &dto.ProfileDTO{
		ID:               profile.ID,
		UserID:           profile.UserID,
		Nickname:         profile.Nickname,
		Age:              profile.Age,
		Height:           profile.Height,
		Weight:           profile.Weight,
		Gender:           profile.Gender,
		City:             profile.City,
		MaritalStatus:    profile.MaritalStatus,
		Education:        profile.Education,
		Employment:       profile.Employment,
		Smoking:          profile.Smoking,
		Alcohol:          profile.Alcohol,
		Goal:             profile.Goal,
		LookingFor:       profile.LookingFor,
		DesiredAgeMin:    profile.DesiredAgeMin,
		DesiredAgeMax:    profile.DesiredAgeMax,
		DesiredHeightMin: profile.DesiredHeightMin,
		DesiredHeightMax: profile.DesiredHeightMax,
		HasChildren:      profile.HasChildren,
		PhotoRequired:    profile.PhotoRequired,
		LastOnline:       profile.LastOnline,
		IsActive:         profile.IsActive,
	}
	for _, photo := range profile.Photos {
		profileDTO.Photos = append(profileDTO.Photos, dto.PhotoDTO{
			ID:         photo.ID,
			URL:        minio.GetPublicURL(photo.ObjectName),
			IsPrimary:  photo.IsPrimary,
			IsVerified: photo.IsVerified,
			CreatedAt:  photo.CreatedAt,
		})
	}
	return profileDTO
}

func toProfileDTOs(profiles []*model.Profile) []*dto.ProfileDTO {
	result := make([]*dto.ProfileDTO, 0, len(profiles))
	for _, p := range profiles {
		result = append(result, toProfileDTO(p))
	}
	return result
}

func formatUint(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
