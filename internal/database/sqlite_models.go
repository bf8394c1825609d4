package walletstatedb

import "gorm.io/gorm"

// SQLiteMetadata stores key/value state such as the active session
type SQLiteMetadata struct {
	gorm.Model
	Key   string `gorm:"uniqueIndex"`
	Value string
}
