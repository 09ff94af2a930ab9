package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
)

type Repository interface {
	// -------- Transaction --------
	Atomic(
		ctx context.Context,
		fn func(repo Repository) error,
	) error

	// -------- Hangar --------
	GetHangarByID(
		ctx context.Context,
		id uint,
	) (*models.Hangar, error)

	LockHangar(
		ctx context.Context,
		id uint,
	) error

	// -------- Service --------
	GetService(
		ctx context.Context,
		hangarID uint,
		serviceID uint,
	) (*models.ServiceItem, error)

	// -------- Customer / Vehicle --------
	GetCustomer(
		ctx context.Context,
		hangarID uint,
		customerID uint,
	) (*models.Customer, error)

	FindCustomersByPhone(
		ctx context.Context,
		hangarID uint,
		phone string,
	) ([]models.Customer, error)

	CreateCustomer(
		ctx context.Context,
		customer *models.Customer,
	) error

	ListVehicles(
		ctx context.Context,
		customerID uint,
	) ([]models.Vehicle, error)

	CreateVehicle(
		ctx context.Context,
		vehicle *models.Vehicle,
	) error

	// -------- Appointment (create / capacity) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	CountActiveAtSlot(
		ctx context.Context,
		hangarID uint,
		date string,
		clock string,
	) (int64, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		hangarID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	// UpdateAppointmentStatus grava somente se o status ainda for from.
	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) (bool, error)

	DeleteAppointment(
		ctx context.Context,
		hangarID uint,
		appointmentID uint,
	) (bool, error)

	// -------- Snapshot --------
	ListAppointmentsByDate(
		ctx context.Context,
		hangarID uint,
		date string,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		hangarID uint,
		from string,
		to string,
	) ([]models.Appointment, error)

	ListFinishedForCustomer(
		ctx context.Context,
		hangarID uint,
		customerID uint,
	) ([]models.Appointment, error)
}

// SlotLocker segura um horário enquanto a admissão roda.
type SlotLocker interface {
	Acquire(
		ctx context.Context,
		hangarID uint,
		date string,
		clock string,
	) (release func(), err error)
}

// ErrNotFound é devolvido pelos repositórios quando o registro não existe no hangar.
var ErrNotFound = errors.New("appointment: record not found")
