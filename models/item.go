package models

import (
	"time"
)

// Item представляет отдельный ресурс REST API.
// Не связан с остальными моделями и не использует мягкое удаление.
type Item struct {
	ID      uint      `json:"id" gorm:"primarykey"`
	Text    string    `json:"text" gorm:"not null;type:text"`
	PubDate time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
}

// TableName задает имя таблицы для модели Item
func (Item) TableName() string {
	return "items"
}
