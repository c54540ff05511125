package models

import "time"

// AuditLog records mutating requests made by the operator.
// Path and action are stored AES encrypted.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	Subject   string    `gorm:"size:64;index"`
	PathEnc   string    `gorm:"size:1024"`
	Method    string    `gorm:"size:16;index"`
	ActionEnc string    `gorm:"size:4096"`
	Status    int
	IP        string    `gorm:"size:64"`
	UserAgent string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"index"`
}

// Backup indexes an encrypted snapshot file on disk.
type Backup struct {
	ID        uint   `gorm:"primaryKey"`
	FileName  string `gorm:"size:255;not null"`
	FilePath  string `gorm:"size:1024;not null"`
	Size      int64
	CreatedAt time.Time
}
