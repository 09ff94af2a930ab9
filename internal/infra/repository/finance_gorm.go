package repository

import (
	"context"

	"gorm.io/gorm"

	appointment "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/finance"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
)

type FinanceGormRepository struct {
	db *gorm.DB
}

func NewFinanceGormRepository(db *gorm.DB) *FinanceGormRepository {
	return &FinanceGormRepository{db: db}
}

func (r *FinanceGormRepository) GetHangarByID(ctx context.Context, id uint) (*models.Hangar, error) {
	var hangar models.Hangar
	if err := r.db.WithContext(ctx).First(&hangar, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &hangar, nil
}

func (r *FinanceGormRepository) ListFinishedAppointments(
	ctx context.Context,
	hangarID uint,
	from string,
	to string,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}
	err := r.db.WithContext(ctx).
		Select("id", "date", "time", "price", "status", "customer_id").
		Where(
			"hangar_id = ? AND status = ? AND date >= ? AND date <= ?",
			hangarID, string(appointment.StatusFinished), from, to,
		).
		Find(&apps).Error
	return apps, err
}

func (r *FinanceGormRepository) ListEntries(
	ctx context.Context,
	hangarID uint,
	from string,
	to string,
) ([]models.Expense, error) {

	entries := []models.Expense{}
	err := r.db.WithContext(ctx).
		Where("hangar_id = ? AND date >= ? AND date <= ?", hangarID, from, to).
		Order("date DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

func (r *FinanceGormRepository) CreateEntry(ctx context.Context, e *models.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *FinanceGormRepository) DeleteEntry(ctx context.Context, hangarID, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND hangar_id = ?", id, hangarID).
		Delete(&models.Expense{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Compile-time check
var _ domain.Repository = (*FinanceGormRepository)(nil)
