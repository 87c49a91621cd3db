package storage

import (
	"encoding/json"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/korjavin/pantrybot/pkg/logger"
)

// Record is the relational shape of a stored document. The document
// itself stays JSON so the three backends remain interchangeable.
type Record struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value []byte `gorm:"column:value"`
}

// TableName sets the table name for GORM
func (Record) TableName() string {
	return "pantrybot_records"
}

// PostgresStore is a Store backed by a Postgres database via GORM
type PostgresStore struct {
	db *gorm.DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore connects to Postgres and migrates the schema
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	logger.Global.Info("Postgres store connected and migrated")
	return &PostgresStore{db: db}, nil
}

// Set stores a value for a key, upserting on conflict
func (s *PostgresStore) Set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	record := Record{Key: key, Value: data}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}
	return nil
}

// SetBatch stores all entries in one database transaction
func (s *PostgresStore) SetBatch(entries []Entry) error {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		data, err := json.Marshal(e.Value)
		if err != nil {
			return fmt.Errorf("failed to marshal value for %s: %w", e.Key, err)
		}
		records = append(records, Record{Key: e.Key, Value: data})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&record).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store batch: %w", err)
	}
	return nil
}

// Get retrieves a value for a key
func (s *PostgresStore) Get(key string, value interface{}) error {
	var record Record
	err := s.db.First(&record, "key = ?", key).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		return fmt.Errorf("failed to get record: %w", err)
	}
	return json.Unmarshal(record.Value, value)
}

// Delete removes a key
func (s *PostgresStore) Delete(key string) error {
	return s.db.Delete(&Record{}, "key = ?", key).Error
}

// List returns all keys with a given prefix
func (s *PostgresStore) List(prefix string) ([]string, error) {
	var keys []string
	err := s.db.Model(&Record{}).
		Where("key LIKE ?", prefix+"%").
		Order("key").
		Pluck("key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

// Close closes the underlying database connection
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
