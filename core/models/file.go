package models

// File records one uploaded blob. Key is the blob-store key the bytes were
// written under; Name keeps the original client filename for downloads.
type File struct {
	ID   string `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Type string `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Name string `gorm:"column:name;type:varchar(254);not null" json:"name"`
	Size int64  `gorm:"column:size;not null" json:"size"`
	Key  string `gorm:"column:key;type:varchar(254);not null" json:"key"`
}

func (File) TableName() string {
	return "files"
}
