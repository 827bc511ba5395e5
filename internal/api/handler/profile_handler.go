package handler

import (
	"Amoria/internal/api/dto"
	"Amoria/internal/pkg/response"
	"Amoria/internal/pkg/util"
	"Amoria/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileSvc service.ProfileService
}

func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

func (s *ProfileHandler) Create(c *gin.Context) {
	var createDTO dto.CreateProfileDTO
	if err := c.ShouldBindJSON(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	profile, err := s.profileSvc.CreateProfile(c.Request.Context(), userID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

func (s *ProfileHandler) GetSelf(c *gin.Context) {
	userID := c.GetUint64("user_id")
	profile, err := s.profileSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// GetByUserID 查看他人资料，同时刷新自己的在线时间
func (s *ProfileHandler) GetByUserID(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	profile, err := s.profileSvc.GetProfile(c.Request.Context(), targetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if viewerID := c.GetUint64("user_id"); viewerID > 0 {
		s.profileSvc.TouchLastOnline(c.Request.Context(), viewerID)
	}
	response.Success(c, profile)
}

func (s *ProfileHandler) Update(c *gin.Context) {
	var updateDTO dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	if err := s.profileSvc.UpdateProfile(c.Request.Context(), userID, &updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ProfileHandler) Search(c *gin.Context) {
	var searchDTO dto.SearchProfileDTO
	if err := c.ShouldBindQuery(&searchDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&searchDTO); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.profileSvc.Search(c.Request.Context(), &searchDTO)
	if err != nil {
		response.Error(c, err)
		return
	}

	if viewerID := c.GetUint64("user_id"); viewerID > 0 {
		s.profileSvc.TouchLastOnline(c.Request.Context(), viewerID)
	}
	response.Success(c, result)
}

func (s *ProfileHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	profiles, err := s.profileSvc.ListRecent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profiles)
}

func (s *ProfileHandler) Stats(c *gin.Context) {
	stats, err := s.profileSvc.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
