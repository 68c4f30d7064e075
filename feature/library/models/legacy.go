package models

// LegacyGame is a story row in the games table of older front-ends, which
// store the fingerprint as checksum and size.
type LegacyGame struct {
	ID       int    `gorm:"primaryKey;column:id"`
	Checksum string `gorm:"column:checksum;type:varchar(32)"`
	Size     int64  `gorm:"column:size;type:int"`
	Slug     string `gorm:"column:slug;type:varchar(50)"`
	Variant  string `gorm:"column:variant;type:varchar(50)"`
	Lang     string `gorm:"column:lang;type:varchar(8)"`
	Path     string `gorm:"column:path;type:varchar(255)"`
}

func (LegacyGame) TableName() string {
	return "games"
}
