package dto

import "time"

// CreateProfileDTO 创建交友资料
type CreateProfileDTO struct {
	Nickname string `json:"nickname" binding:"required" validate:"min=1,max=50"`
	Age      int    `json:"age" binding:"required" validate:"min=18,max=100"`
	Height   int    `json:"height" binding:"required" validate:"min=100,max=250"`
	Weight   int    `json:"weight" binding:"required" validate:"min=30,max=300"`
	Gender   string `json:"gender" binding:"required" validate:"oneof=male female"`
	City     string `json:"city" binding:"required" validate:"min=1,max=50"`

	MaritalStatus string `json:"marital_status" validate:"omitempty,oneof=single married divorced widowed"`
	Education     string `json:"education" validate:"omitempty,oneof=higher secondary specialized"`
	Employment    string `json:"employment" validate:"omitempty,oneof=employed unemployed student"`
	Smoking       string `json:"smoking" validate:"omitempty,oneof=no yes quit"`
	Alcohol       string `json:"alcohol" validate:"omitempty,oneof=no rarely moderate"`
	Goal          string `json:"goal" validate:"omitempty,max=500"`
	LookingFor    string `json:"looking_for" validate:"omitempty,max=30"`

	DesiredAgeMin    *int `json:"desired_age_min" validate:"omitempty,min=18,max=100"`
	DesiredAgeMax    *int `json:"desired_age_max" validate:"omitempty,min=18,max=100"`
	DesiredHeightMin *int `json:"desired_height_min" validate:"omitempty,min=100,max=250"`
	DesiredHeightMax *int `json:"desired_height_max" validate:"omitempty,min=100,max=250"`

	HasChildren   bool `json:"has_children"`
	PhotoRequired bool `json:"photo_required"`
}

// UpdateProfileDTO 更新交友资料，指针字段为空表示不修改
type UpdateProfileDTO struct {
	Nickname *string `json:"nickname" validate:"omitempty,min=1,max=50"`
	Age      *int    `json:"age" validate:"omitempty,min=18,max=100"`
	Height   *int    `json:"height" validate:"omitempty,min=100,max=250"`
	Weight   *int    `json:"weight" validate:"omitempty,min=30,max=300"`
	City     *string `json:"city" validate:"omitempty,min=1,max=50"`

	MaritalStatus *string `json:"marital_status" validate:"omitempty,oneof=single married divorced widowed"`
	Education     *string `json:"education" validate:"omitempty,oneof=higher secondary specialized"`
	Employment    *string `json:"employment" validate:"omitempty,oneof=employed unemployed student"`
	Smoking       *string `json:"smoking" validate:"omitempty,oneof=no yes quit"`
	Alcohol       *string `json:"alcohol" validate:"omitempty,oneof=no rarely moderate"`
	Goal          *string `json:"goal" validate:"omitempty,max=500"`
	LookingFor    *string `json:"looking_for" validate:"omitempty,max=30"`

	DesiredAgeMin    *int `json:"desired_age_min" validate:"omitempty,min=18,max=100"`
	DesiredAgeMax    *int `json:"desired_age_max" validate:"omitempty,min=18,max=100"`
	DesiredHeightMin *int `json:"desired_height_min" validate:"omitempty,min=100,max=250"`
	DesiredHeightMax *int `json:"desired_height_max" validate:"omitempty,min=100,max=250"`

	HasChildren   *bool `json:"has_children"`
	PhotoRequired *bool `json:"photo_required"`
	IsActive      *bool `json:"is_active"`
}

// ProfileDTO 资料响应
type ProfileDTO struct {
	ID     uint64 `json:"id"`
	UserID uint64 `json:"user_id"`

	Nickname string `json:"nickname"`
	Age      int    `json:"age"`
	Height   int    `json:"height"`
	Weight   int    `json:"weight"`
	Gender   string `json:"gender"`
	City     string `json:"city"`

	MaritalStatus string `json:"marital_status,omitempty"`
	Education     string `json:"education,omitempty"`
	Employment    string `json:"employment,omitempty"`
	Smoking       string `json:"smoking,omitempty"`
	Alcohol       string `json:"alcohol,omitempty"`
	Goal          string `json:"goal,omitempty"`
	LookingFor    string `json:"looking_for,omitempty"`

	DesiredAgeMin    *int `json:"desired_age_min,omitempty"`
	DesiredAgeMax    *int `json:"desired_age_max,omitempty"`
	DesiredHeightMin *int `json:"desired_height_min,omitempty"`
	DesiredHeightMax *int `json:"desired_height_max,omitempty"`

	HasChildren   bool `json:"has_children"`
	PhotoRequired bool `json:"photo_required"`

	LastOnline time.Time  `json:"last_online"`
	IsActive   bool       `json:"is_active"`
	Photos     []PhotoDTO `json:"photos,omitempty"`
}

// SearchProfileDTO 资料检索请求
type SearchProfileDTO struct {
	Gender        string `form:"gender" json:"gender" validate:"omitempty,oneof=male female"`
	City          string `form:"city" json:"city" validate:"omitempty,max=50"`
	AgeMin        int    `form:"age_min" json:"age_min" validate:"omitempty,min=18,max=100"`
	AgeMax        int    `form:"age_max" json:"age_max" validate:"omitempty,min=18,max=100"`
	HeightMin     int    `form:"height_min" json:"height_min" validate:"omitempty,min=100,max=250"`
	HeightMax     int    `form:"height_max" json:"height_max" validate:"omitempty,min=100,max=250"`
	MaritalStatus string `form:"marital_status" json:"marital_status" validate:"omitempty,oneof=single married divorced widowed"`
	Education     string `form:"education" json:"education" validate:"omitempty,oneof=higher secondary specialized"`
	Smoking       string `form:"smoking" json:"smoking" validate:"omitempty,oneof=no yes quit"`
	Alcohol       string `form:"alcohol" json:"alcohol" validate:"omitempty,oneof=no rarely moderate"`
	HasChildren   *bool  `form:"has_children" json:"has_children"`
	WithPhoto     bool   `form:"with_photo" json:"with_photo"`
	OnlineDays    int    `form:"online_days" json:"online_days" validate:"omitempty,min=1,max=365"`

	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size" validate:"omitempty,max=100"`
}

// SearchResultDTO 检索结果页
type SearchResultDTO struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Profiles []*ProfileDTO `json:"profiles"`
}

// ProfileStatsDTO 资料统计
type ProfileStatsDTO struct {
	Total    int64            `json:"total"`
	ByGender map[string]int64 `json:"by_gender"`
}
