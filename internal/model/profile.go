package model

import "time"

// Profile 用户交友资料，每个用户仅有一份
type Profile struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint64 `gorm:"uniqueIndex;not null" json:"userId"`

	Nickname string `gorm:"type:varchar(50);not null" json:"nickname"`
	Age      int    `gorm:"not null" json:"age"`
	Height   int    `gorm:"not null" json:"height"` // cm
	Weight   int    `gorm:"not null" json:"weight"` // kg
	Gender   string `gorm:"type:varchar(10);not null;index" json:"gender"` // male / female
	City     string `gorm:"type:varchar(50);not null;index" json:"city"`

	MaritalStatus string `gorm:"type:varchar(20)" json:"maritalStatus"` // single / married / divorced / widowed
	Education     string `gorm:"type:varchar(20)" json:"education"`     // higher / secondary / specialized
	Employment    string `gorm:"type:varchar(20)" json:"employment"`    // employed / unemployed / student
	Smoking       string `gorm:"type:varchar(10)" json:"smoking"`       // no / yes / quit
	Alcohol       string `gorm:"type:varchar(20)" json:"alcohol"`       // no / rarely / moderate
	Goal          string `gorm:"type:varchar(500)" json:"goal"`
	LookingFor    string `gorm:"type:varchar(30)" json:"lookingFor"`

	DesiredAgeMin    *int `json:"desiredAgeMin"`
	DesiredAgeMax    *int `json:"desiredAgeMax"`
	DesiredHeightMin *int `json:"desiredHeightMin"`
	DesiredHeightMax *int `json:"desiredHeightMax"`

	HasChildren   bool `gorm:"type:tinyint(1);default:0" json:"hasChildren"`
	PhotoRequired bool `gorm:"type:tinyint(1);default:0" json:"photoRequired"`

	LastOnline time.Time `gorm:"index" json:"lastOnline"`
	// 不设 default，布尔零值配合 default 标签在 Create 时会被 GORM 跳过
	IsActive   bool      `gorm:"type:tinyint(1);index" json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Photos []Photo `gorm:"foreignKey:ProfileID;references:ID" json:"photos,omitempty"`
}

func (Profile) TableName() string { return "profiles" }
