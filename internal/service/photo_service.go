package service

import (
	"Amoria/internal/api/dto"
	"Amoria/internal/model"
	"Amoria/internal/pkg/cache"
	"Amoria/internal/pkg/consts"
	"Amoria/internal/pkg/minio"
	"Amoria/internal/repository"
	"bytes"
	"context"
	"fmt"
	"image"
	log "log/slog"
	"mime/multipart"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

type PhotoService interface {
	Upload(ctx context.Context, userID uint64, fileHeader *multipart.FileHeader) (*dto.PhotoDTO, error)
	List(ctx context.Context, userID uint64) ([]*dto.PhotoDTO, error)
	SetPrimary(ctx context.Context, userID uint64, photoID uint64) error
	Delete(ctx context.Context, userID uint64, photoID uint64) error
}

type PhotoServiceImpl struct {
	photoRepo   repository.PhotoRepo
	profileRepo repository.ProfileRepo
	store       cache.Store
}

func NewPhotoService(photoRepo repository.PhotoRepo, profileRepo repository.ProfileRepo, store cache.Store) PhotoService {
	return &PhotoServiceImpl{
		photoRepo:   photoRepo,
		profileRepo: profileRepo,
		store:       store,
	}
}

// Upload 上传照片：校验 MIME 与最小尺寸，统一压缩后转存 MinIO
func (s *PhotoServiceImpl) Upload(ctx context.Context, userID uint64, fileHeader *multipart.FileHeader) (*dto.PhotoDTO, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	count, err := s.photoRepo.CountByProfile(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if count >= consts.MaxProfilePhotos {
		return nil, ErrPhotoLimit
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return nil, ErrFileNotSupported
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrFileNotSupported
	}

	bounds := img.Bounds()
	if bounds.Dx() < consts.PhotoMinDimension || bounds.Dy() < consts.PhotoMinDimension {
		return nil, ErrPhotoTooSmall
	}

	img = normalizePhoto(img)

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("photos/%d/%s.jpg", profile.ID, uuid.NewString())
	if _, err = minio.UploadPhoto(ctx, objectName, &buf, int64(buf.Len()), "image/jpeg"); err != nil {
		return nil, err
	}

	photo := &model.Photo{
		ProfileID:  profile.ID,
		ObjectName: objectName,
		IsPrimary:  count == 0, // 首张照片自动设为主照片
	}
	if err = s.photoRepo.Create(ctx, photo); err != nil {
		// 数据库失败时清理已上传的对象
		if delErr := minio.DeletePhoto(ctx, objectName); delErr != nil {
			log.ErrorContext(ctx, "orphan photo cleanup failed", "object", objectName, "err", delErr)
		}
		return nil, err
	}

	s.invalidateProfile(ctx, userID)
	return toPhotoDTO(photo), nil
}

func (s *PhotoServiceImpl) List(ctx context.Context, userID uint64) ([]*dto.PhotoDTO, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	photos, err := s.photoRepo.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PhotoDTO, 0, len(photos))
	for _, photo := range photos {
		result = append(result, toPhotoDTO(photo))
	}
	return result, nil
}

func (s *PhotoServiceImpl) SetPrimary(ctx context.Context, userID uint64, photoID uint64) error {
	profile, photo, err := s.ownedPhoto(ctx, userID, photoID)
	if err != nil {
		return err
	}
	if err = s.photoRepo.SetPrimary(ctx, profile.ID, photo.ID); err != nil {
		return err
	}
	s.invalidateProfile(ctx, userID)
	return nil
}

func (s *PhotoServiceImpl) Delete(ctx context.Context, userID uint64, photoID uint64) error {
	_, photo, err := s.ownedPhoto(ctx, userID, photoID)
	if err != nil {
		return err
	}

	if err = s.photoRepo.Delete(ctx, photo.ID); err != nil {
		return err
	}
	if err = minio.DeletePhoto(ctx, photo.ObjectName); err != nil {
		log.ErrorContext(ctx, "delete photo object failed", "object", photo.ObjectName, "err", err)
	}

	s.invalidateProfile(ctx, userID)
	return nil
}

// ownedPhoto 校验照片归属于当前用户的资料
func (s *PhotoServiceImpl) ownedPhoto(ctx context.Context, userID uint64, photoID uint64) (*model.Profile, *model.Photo, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if profile == nil {
		return nil, nil, ErrProfileNotFound
	}

	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return nil, nil, err
	}
	if photo == nil || photo.ProfileID != profile.ID {
		return nil, nil, ErrPhotoNotFound
	}
	return profile, photo, nil
}

func (s *PhotoServiceImpl) invalidateProfile(ctx context.Context, userID uint64) {
	_ = s.store.Delete(ctx, consts.ProfileKey+formatUint(userID))
	_ = s.store.Delete(ctx, consts.ProfileRecentKey)
}

// normalizePhoto 超过最长边限制时等比压缩
func normalizePhoto(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= consts.PhotoMaxDimension && bounds.Dy() <= consts.PhotoMaxDimension {
		return img
	}
	return imaging.Fit(img, consts.PhotoMaxDimension, consts.PhotoMaxDimension, imaging.Lanczos)
}

func toPhotoDTO(photo *model.Photo) *dto.PhotoDTO {
	return &dto.PhotoDTO{
		ID:         photo.ID,
		URL:        minio.GetPublicURL(photo.ObjectName),
		IsPrimary:  photo.IsPrimary,
		IsVerified: photo.IsVerified,
		CreatedAt:  photo.CreatedAt,
	}
}
