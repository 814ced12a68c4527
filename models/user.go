package models

import (
	"encoding/json"
	"errors"
	"time"
)

const (
	UserTypeSeeker = "seeker" // ungdom som tilbyr tjenester
	UserTypePoster = "poster" // voksen som poster jobber
)

type User struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	Name          string          `gorm:"default:Ny bruker" json:"name"`
	Email         string          `gorm:"unique" json:"email"`
	Password      string          `json:"password"`
	Age           int             `json:"age"`
	Location      string          `json:"location"`
	UserType      string          `gorm:"default:seeker" json:"userType"` // seeker | poster
	Bio           string          `gorm:"type:text" json:"bio"`
	Skills        json.RawMessage `gorm:"type:json" json:"skills"`
	Experience    string          `gorm:"type:text" json:"experience"`
	Avatar        string          `json:"avatar"`
	AverageRating *float64        `json:"averageRating"`
	TotalRatings  int             `gorm:"default:0" json:"totalRatings"`
	IsVerified    bool            `gorm:"default:false" json:"is_verified"`
	Code          string          `json:"code"`
	CodeCreatedAt time.Time       `gorm:"autoCreateTime" json:"codeCreatedAt"`
	Role          int             `gorm:"default:0" json:"role"`   // 1: Admin - 0: User
	Status        int             `gorm:"default:0" json:"status"` // 0: active - 1: ban
}

func (u *User) ValidateUserType() error {
	if u.UserType != UserTypeSeeker && u.UserType != UserTypePoster {
		return errors.New("brukertype må være seeker eller poster")
	}
	return nil
}

func (u *User) ValidateAge() error {
	if u.UserType == UserTypeSeeker && (u.Age < 13 || u.Age > 25) {
		return errors.New("jobbsøkere må være mellom 13 og 25 år")
	}
	return nil
}
