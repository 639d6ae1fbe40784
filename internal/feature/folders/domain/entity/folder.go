// Package entity はfoldersフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// Folder は要約を整理するユーザー所有のフォルダです。
type Folder struct {
	ID         uint      `gorm:"primaryKey"`
	OwnerEmail string    `gorm:"index;not null"`
	Name       string    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}
