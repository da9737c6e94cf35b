package models

import "gorm.io/gorm"

// Customer dibuat/dicari by phone saat checkout (snapshot nama disimpan di order).
type Customer struct {
	gorm.Model
	Nama    string `json:"nama" gorm:"size:200;not null"`
	Phone   string `json:"phone" gorm:"uniqueIndex;size:32;not null"`
	Address string `json:"address" gorm:"size:300"`
}
