package handler

import (
	"Amoria/internal/pkg/response"
	"Amoria/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PhotoHandler struct {
	photoSvc service.PhotoService
}

func NewPhotoHandler(photoSvc service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoSvc: photoSvc}
}

func (s *PhotoHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	photo, err := s.photoSvc.Upload(c.Request.Context(), userID, fileHeader)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, photo)
}

func (s *PhotoHandler) List(c *gin.Context) {
	userID := c.GetUint64("user_id")
	photos, err := s.photoSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, photos)
}

func (s *PhotoHandler) SetPrimary(c *gin.Context) {
	photoID, err := strconv.ParseUint(c.Param("photo_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	if err = s.photoSvc.SetPrimary(c.Request.Context(), userID, photoID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PhotoHandler) Delete(c *gin.Context) {
	photoID, err := strconv.ParseUint(c.Param("photo_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	if err = s.photoSvc.Delete(c.Request.Context(), userID, photoID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
