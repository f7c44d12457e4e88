package core

import (
	"fmt"
	"time"

	"github.com/evilsocket/islazy/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/evtriage/evtriage/models"
)

// Store keeps the alerts of previous runs in a local sqlite database so an
// analyst can query the triage history of a host. Engine state is never
// stored, only the findings.
type Store struct {
	db *gorm.DB
}

func OpenStore(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening alerts database %s: %v", path, err)
	}

	if err = db.AutoMigrate(&models.Alert{}); err != nil {
		return nil, fmt.Errorf("error performing database migration: %v", err)
	}

	log.Debug("connected to the alerts database %s", path)

	return &Store{db: db}, nil
}

func (s *Store) SaveAlerts(alerts []models.Alert) error {
	started := time.Now()

	for i := range alerts {
		if err := s.db.Create(&alerts[i]).Error; err != nil {
			return fmt.Errorf("error saving alert %s: %v", alerts[i].AlertID, err)
		}
	}

	log.Debug("%d alerts saved in %s", len(alerts), time.Since(started))
	return nil
}

func (s *Store) AlertsByAccount(account string) ([]models.Alert, error) {
	var alerts []models.Alert
	err := s.db.Where("account = ?", account).Order("id").Find(&alerts).Error
	return alerts, err
}

func (s *Store) CountByType(alertType models.AlertType) (int64, error) {
	var count int64
	err := s.db.Model(&models.Alert{}).Where("type = ?", alertType).Count(&count).Error
	return count, err
}
