// internal/interface/repository/delivery_repo.go
package repository

import (
	"context"
	"time"

	"flightstatus-service/internal/domain/entity"
	"flightstatus-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements the DeliveryRepository interface
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GORM delivery repository and
// migrates its table.
func NewGormDeliveryRepository(db *gorm.DB) (repository.DeliveryRepository, error) {
	if err := db.AutoMigrate(&DeliveryAttempts{}); err != nil {
		return nil, err
	}
	return &GormDeliveryRepository{
		db: db,
	}, nil
}

// DeliveryAttempts GORM model for database mapping
type DeliveryAttempts struct {
	ID             uint   `gorm:"primaryKey"`
	NotificationID string `gorm:"column:notification_id;index"`
	FlightID       string `gorm:"column:flight_id;index"`
	Channel        string `gorm:"column:channel"`
	Recipient      string `gorm:"column:recipient"`
	Status         string `gorm:"column:status"`
	Attempts       int    `gorm:"column:attempts"`
	LastError      string `gorm:"column:last_error"`
	CreatedAt      time.Time
}

// TableName overrides the default table name
func (DeliveryAttempts) TableName() string {
	return "delivery_attempts"
}

// Record persists the final per-channel outcome of one delivery
func (r *GormDeliveryRepository) Record(ctx context.Context, attempt *entity.DeliveryAttempt) error {
	row := DeliveryAttempts{
		NotificationID: attempt.NotificationID,
		FlightID:       attempt.FlightID,
		Channel:        attempt.Channel,
		Recipient:      attempt.Recipient,
		Status:         attempt.Status,
		Attempts:       attempt.Attempts,
		LastError:      attempt.LastError,
	}

	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		return result.Error
	}

	attempt.ID = row.ID
	attempt.CreatedAt = row.CreatedAt
	return nil
}
