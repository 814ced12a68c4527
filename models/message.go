package models

import "time"

type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FromUserID uint      `gorm:"index" json:"fromUserId"`
	ToUserID   uint      `gorm:"index" json:"toUserId"`
	Message    string    `gorm:"type:text" json:"message"`
	Read       bool      `gorm:"default:false" json:"read"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
