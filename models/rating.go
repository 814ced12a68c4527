package models

import "time"

type Rating struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FromUserID uint      `json:"fromUserId" gorm:"uniqueIndex:idx_ratings_from_to"` // hvem som vurderer
	ToUserID   uint      `json:"toUserId" gorm:"index;uniqueIndex:idx_ratings_from_to"`
	Rating     int       `json:"rating" gorm:"check:rating >= 1 AND rating <= 5"`
	Comment    string    `json:"comment" gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	FromUser   User      `json:"fromUser" gorm:"foreignKey:FromUserID"`
}
