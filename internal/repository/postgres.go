package repository

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"cryptoherald/internal/models"
	"cryptoherald/pkg/logger"
)

type PostgresDB struct {
	logger *logger.Logger

	Conn *gorm.DB
}

func NewPostgresDB(user, password, dbname, host string, port int, logger *logger.Logger) (models.Repository, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		host, user, password, dbname, port)

	// Configure GORM logger to suppress "record not found" messages
	gormLogger := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %s", err)
	}

	if err := db.AutoMigrate(&models.NotificationRecord{}, &models.MarketSnapshot{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate models: %s", err)
	}
	logger.Info("Successfully connected to PostgreSQL!")
	return &PostgresDB{Conn: db, logger: logger}, nil
}

func (db *PostgresDB) Close() error {
	sqlDB, err := db.Conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %s", err)
	}
	return sqlDB.Close()
}

func (db *PostgresDB) SaveNotification(record *models.NotificationRecord) error {
	if err := db.Conn.Create(record).Error; err != nil {
		return fmt.Errorf("failed to save notification record: %s", err)
	}
	return nil
}

func (db *PostgresDB) ListNotifications(symbol string, limit int) ([]*models.NotificationRecord, error) {
	var records []*models.NotificationRecord
	query := db.Conn.Order("sent_at DESC").Limit(limit)
	if symbol != "" {
		query = query.Where("symbol = ?", symbol)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list notification records: %s", err)
	}
	return records, nil
}

func (db *PostgresDB) SaveSnapshot(snapshot *models.MarketSnapshot) error {
	if err := db.Conn.Create(snapshot).Error; err != nil {
		return fmt.Errorf("failed to save market snapshot: %s", err)
	}
	return nil
}

func (db *PostgresDB) LatestSnapshots(symbol string, limit int) ([]*models.MarketSnapshot, error) {
	var snapshots []*models.MarketSnapshot
	if err := db.Conn.Where("symbol = ?", symbol).Order("timestamp DESC").Limit(limit).Find(&snapshots).Error; err != nil {
		return nil, fmt.Errorf("failed to get market snapshots: %s", err)
	}
	return snapshots, nil
}

func (db *PostgresDB) PruneNotifications(before time.Time) error {
	if err := db.Conn.Where("sent_at < ?", before).Delete(&models.NotificationRecord{}).Error; err != nil {
		return fmt.Errorf("failed to prune notification records: %s", err)
	}
	return nil
}

func (db *PostgresDB) PruneSnapshots(before time.Time) error {
	if err := db.Conn.Where("timestamp < ?", before).Delete(&models.MarketSnapshot{}).Error; err != nil {
		return fmt.Errorf("failed to prune market snapshots: %s", err)
	}
	return nil
}
