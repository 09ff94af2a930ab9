package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *AppointmentGormRepository) Atomic(
	ctx context.Context,
	fn func(repo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Hangar
// --------------------------------------------------

func (r *AppointmentGormRepository) GetHangarByID(
	ctx context.Context,
	id uint,
) (*models.Hangar, error) {

	var hangar models.Hangar
	if err := r.db.WithContext(ctx).
		Preload("OperatingRules").
		Preload("BlockedDates").
		First(&hangar, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &hangar, nil
}

// LockHangar serializa as admissões do hangar até o fim da transação.
func (r *AppointmentGormRepository) LockHangar(
	ctx context.Context,
	id uint,
) error {

	var hangar models.Hangar
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&hangar, id).Error
	return notFound(err)
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	hangarID uint,
	serviceID uint,
) (*models.ServiceItem, error) {

	var service models.ServiceItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND hangar_id = ?", serviceID, hangarID).
		First(&service).Error; err != nil {
		return nil, notFound(err)
	}
	return &service, nil
}

// --------------------------------------------------
// Customer / Vehicle
// --------------------------------------------------

func (r *AppointmentGormRepository) GetCustomer(
	ctx context.Context,
	hangarID uint,
	customerID uint,
) (*models.Customer, error) {

	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND hangar_id = ?", customerID, hangarID).
		First(&customer).Error; err != nil {
		return nil, notFound(err)
	}
	return &customer, nil
}

func (r *AppointmentGormRepository) FindCustomersByPhone(
	ctx context.Context,
	hangarID uint,
	phone string,
) ([]models.Customer, error) {

	var customers []models.Customer
	if err := r.db.WithContext(ctx).
		Where("hangar_id = ? AND phone = ?", hangarID, phone).
		Order("id ASC").
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *AppointmentGormRepository) CreateCustomer(
	ctx context.Context,
	customer *models.Customer,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(customer).Error
}

func (r *AppointmentGormRepository) ListVehicles(
	ctx context.Context,
	customerID uint,
) ([]models.Vehicle, error) {

	var vehicles []models.Vehicle
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *AppointmentGormRepository) CreateVehicle(
	ctx context.Context,
	vehicle *models.Vehicle,
) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

func (r *AppointmentGormRepository) CountActiveAtSlot(
	ctx context.Context,
	hangarID uint,
	date string,
	clock string,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"hangar_id = ? AND date = ? AND time = ? AND status <> ?",
			hangarID, date, clock, string(domain.StatusCancelled),
		).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	hangarID uint,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Vehicle").
		Where("id = ? AND hangar_id = ?", id, hangarID).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

// UpdateAppointmentStatus só grava se o status no banco ainda for `from`.
func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND hangar_id = ? AND status = ?", ap.ID, ap.HangarID, string(from)).
		Updates(map[string]any{
			"status":              ap.Status,
			"cancellation_reason": ap.CancellationReason,
			"confirmed_at":        ap.ConfirmedAt,
			"started_at":          ap.StartedAt,
			"finished_at":         ap.FinishedAt,
			"cancelled_at":        ap.CancelledAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	hangarID uint,
	id uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where("id = ? AND hangar_id = ?", id, hangarID).
		Delete(&models.Appointment{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsByDate(
	ctx context.Context,
	hangarID uint,
	date string,
) ([]models.Appointment, error) {
	return r.ListAppointmentsForPeriod(ctx, hangarID, date, date)
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	hangarID uint,
	from string,
	to string,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}

	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Vehicle").
		Where("hangar_id = ? AND date >= ? AND date <= ?", hangarID, from, to).
		Order("date ASC, time ASC, id ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListFinishedForCustomer(
	ctx context.Context,
	hangarID uint,
	customerID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"hangar_id = ? AND customer_id = ? AND status = ?",
			hangarID, customerID, string(domain.StatusFinished),
		).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
