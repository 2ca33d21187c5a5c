package syncserver

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Account struct {
	ID           string    `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// AccountDocument is the single sync row per account: the serialized
// bundle document plus the server-side update stamp.
type AccountDocument struct {
	AccountID string    `gorm:"primaryKey"`
	Payload   string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func Connect(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := gdb.AutoMigrate(&Account{}, &AccountDocument{}); err != nil {
		return nil, err
	}
	return gdb, nil
}
