package models

import (
	"time"
)

type Subject struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:50"`
	Color       string    `json:"color" gorm:"size:20"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Subject) TableName() string {
	return "subjects"
}
