package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func init() {
	Register("sqlite", sqlite.Open)
	Register("postgres", postgres.Open)
	Register("mysql", mysql.Open)
}

// Record is the single table every bucket maps onto.
type Record struct {
	Bucket    string `gorm:"primaryKey;size:64"`
	ID        string `gorm:"primaryKey;size:512"`
	Value     []byte
	UpdatedAt time.Time
}

// Repository is the GORM-backed Store. It works with any registered SQL
// dialect; sqlite is the default for a single-user install.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) DB() *gorm.DB {
	return r.db
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Record{})
}

func (r *Repository) Put(ctx context.Context, bucket, id string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return &StorageError{Op: "put", Bucket: bucket, ID: id, Err: err}
	}

	rec := Record{Bucket: bucket, ID: id, Value: raw, UpdatedAt: time.Now()}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "bucket"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return &StorageError{Op: "put", Bucket: bucket, ID: id, Err: err}
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, bucket, id string, dest any) (bool, error) {
	var rec Record
	err := r.db.WithContext(ctx).First(&rec, "bucket = ? AND id = ?", bucket, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, &StorageError{Op: "get", Bucket: bucket, ID: id, Err: err}
	}
	if err := json.Unmarshal(rec.Value, dest); err != nil {
		return false, &StorageError{Op: "get", Bucket: bucket, ID: id, Err: err}
	}
	return true, nil
}

func (r *Repository) Delete(ctx context.Context, bucket, id string) error {
	err := r.db.WithContext(ctx).Delete(&Record{}, "bucket = ? AND id = ?", bucket, id).Error
	if err != nil {
		return &StorageError{Op: "delete", Bucket: bucket, ID: id, Err: err}
	}
	return nil
}
