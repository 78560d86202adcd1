package model

import "gorm.io/gorm"

// Tag name, color and slug must each be unique case-insensitively; the
// repository checks lowercased candidates before every write, the indexes
// below are the storage-level second line of defense. Color is normalized
// to lowercase before it is stored.
type Tag struct {
	gorm.Model
	Name  string `gorm:"uniqueIndex:idx_tag_name;uniqueIndex:idx_tag_name_color"`
	Color string `gorm:"size:7;uniqueIndex:idx_tag_color;uniqueIndex:idx_tag_name_color"`
	Slug  string `gorm:"uniqueIndex:idx_tag_slug"`
}
