package models

// Tag タグモデル
// エントリーとの関連は Entry.Tags (entry_tags) 側で持つ
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;uniqueIndex;not null"`
}
