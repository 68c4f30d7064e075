package models

import "time"

// StoryFile is a story registered in the native library schema.
type StoryFile struct {
	ID         int       `gorm:"primaryKey;column:id"`
	MD5        string    `gorm:"column:md5;type:char(32);not null;uniqueIndex:idx_story_fingerprint"`
	FileSize   int64     `gorm:"column:filesize;type:bigint;not null;uniqueIndex:idx_story_fingerprint"`
	GameID     string    `gorm:"column:game_id;type:varchar(64);not null;index"`
	Extra      string    `gorm:"column:extra;type:varchar(64)"`
	Language   string    `gorm:"column:language;type:varchar(16);default:en"`
	ObjectName *string   `gorm:"column:object_name;type:varchar(255);default:NULL"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (StoryFile) TableName() string {
	return "story_files"
}
