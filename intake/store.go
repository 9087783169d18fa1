package intake

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&ProcessedDocument{}, &ArchiveRecord{}); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenQueryDB opens an existing archive DB for querying without mutating
// its schema.
func OpenQueryDB(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}
