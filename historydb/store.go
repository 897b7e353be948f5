package historydb

import (
	"encoding/hex"
	"fmt"

	"stakeengine/stakehistory"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Store wraps a *gorm.DB with the operations this read-model supports.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) a sqlite-backed Store at path and
// migrates its schema. Use ":memory:" for an ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("historydb: open %s: %w", path, err)
	}
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("historydb: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenPostgres opens a postgres-backed Store at dsn and migrates its schema.
// It backs the same read-model as Open but against a durable shared
// database, the way the teacher points this same ORM at Postgres for its
// otc-gateway service rather than an embedded file.
func OpenPostgres(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("historydb: open postgres: %w", err)
	}
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("historydb: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// RecordEpochEntry upserts the aggregate totals for epoch.
func (s *Store) RecordEpochEntry(epoch uint64, entry stakehistory.Entry) error {
	row := EpochEntry{
		Epoch:        epoch,
		Effective:    entry.Effective,
		Activating:   entry.Activating,
		Deactivating: entry.Deactivating,
	}
	return s.db.Save(&row).Error
}

// EpochEntry loads the recorded aggregate for epoch, if any.
func (s *Store) EpochEntry(epoch uint64) (EpochEntry, error) {
	var row EpochEntry
	err := s.db.First(&row, "epoch = ?", epoch).Error
	return row, err
}

// RecordRedemption appends a redemption record for reporting.
func (s *Store) RecordRedemption(stakeAccount, voterAccount [20]byte, epoch, voterReward, stakerReward, creditsObserved uint64) error {
	row := Redemption{
		StakeAccount:    hex.EncodeToString(stakeAccount[:]),
		VoterAccount:    hex.EncodeToString(voterAccount[:]),
		Epoch:           epoch,
		VoterReward:     voterReward,
		StakerReward:    stakerReward,
		CreditsObserved: creditsObserved,
	}
	return s.db.Create(&row).Error
}

// RedemptionsForStake returns every recorded redemption for a stake account
// in ascending epoch order.
func (s *Store) RedemptionsForStake(stakeAccount [20]byte) ([]Redemption, error) {
	var rows []Redemption
	err := s.db.Where("stake_account = ?", hex.EncodeToString(stakeAccount[:])).Order("epoch asc").Find(&rows).Error
	return rows, err
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
