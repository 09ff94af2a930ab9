package appointment

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/hangar-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
	"github.com/BruksfildServices01/hangar-scheduler/internal/slotlock"
	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
	"github.com/BruksfildServices01/hangar-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type Source string

const (
	SourcePublic Source = "public"
	SourceAdmin  Source = "admin"
)

type SubmitBookingInput struct {
	HangarID uint
	UserID   *uint
	Source   Source

	ServiceID uint
	Date      string
	Time      string

	// CustomerID/VehicleID reaproveitam cadastros existentes (console).
	CustomerID    uint
	VehicleID     uint
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Vehicle       domain.VehicleInfo

	// Apenas no console.
	PriceOverride *float64
	BoxID         *uint

	Observation string
}

type SubmitBookingResult struct {
	Appointment *models.Appointment `json:"appointment"`
	Resolution  string              `json:"customer_resolution"`
	Day         DaySnapshot         `json:"day"`
}

// ======================================================
// USE CASE
// ======================================================

type SubmitBooking struct {
	repo   domain.Repository
	locker domain.SlotLocker
	audit  auditor
	clock  timezone.Clock
}

func NewSubmitBooking(
	repo domain.Repository,
	locker domain.SlotLocker,
	audit auditor,
	clock timezone.Clock,
) *SubmitBooking {
	return &SubmitBooking{
		repo:   repo,
		locker: locker,
		audit:  audit,
		clock:  clock,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SubmitBooking) Execute(
	ctx context.Context,
	in SubmitBookingInput,
) (*SubmitBookingResult, error) {

	res, err := uc.execute(ctx, in)
	if err != nil {
		if code, detail, ok := httperr.CodeOf(err); ok && code != domain.CodePersistenceFailure {
			uc.audit.Dispatch(audit.Event{
				HangarID: in.HangarID,
				UserID:   in.UserID,
				Action:   audit.ActionBookingRejected,
				Entity:   "appointment",
				Metadata: map[string]any{
					"code":   code,
					"detail": detail,
					"date":   in.Date,
					"time":   in.Time,
					"source": in.Source,
				},
			})
		}
		return nil, err
	}
	return res, nil
}

func (uc *SubmitBooking) execute(
	ctx context.Context,
	in SubmitBookingInput,
) (*SubmitBookingResult, error) {

	// --------------------------------------------------
	// 1️⃣ Validação de entrada (antes de qualquer I/O)
	// --------------------------------------------------
	clock, ok := domain.NormalizeClock(in.Time)
	if !ok || !domain.IsValidDate(in.Date) {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}
	in.Time = clock
	in.Vehicle = in.Vehicle.Normalized()

	if in.CustomerID == 0 {
		if strings.TrimSpace(in.CustomerName) == "" || !validators.IsGuestPhoneValid(in.CustomerPhone) {
			return nil, httperr.ErrBusiness(domain.CodeInvalidPhone)
		}
	}
	if in.VehicleID == 0 && !validators.IsPlateValid(in.Vehicle.Plate) {
		return nil, httperr.ErrBusiness(domain.CodeInvalidPlate)
	}

	// --------------------------------------------------
	// 2️⃣ Hangar
	// --------------------------------------------------
	hangar, err := loadHangar(ctx, uc.repo, in.HangarID)
	if err != nil {
		return nil, err
	}
	if in.Source == SourcePublic && !hangar.OnlineBookingEnabled {
		return nil, httperr.ErrBusiness(domain.CodeOnlineBookingDisabled)
	}

	// --------------------------------------------------
	// 3️⃣ Data bloqueada (revalidada na submissão)
	// --------------------------------------------------
	day, err := timezone.ParseDate(hangar.Timezone, in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}

	cal := domain.CalendarFor(hangar)
	if _, blocked := cal.IsBlocked(in.Date); blocked {
		return nil, httperr.ErrBusinessDetail(domain.CodeDateBlocked, in.Date)
	}
	if in.Source == SourcePublic && !cal.IsOpen(day) {
		return nil, httperr.ErrBusinessDetail(domain.CodeDateBlocked, in.Date)
	}

	// --------------------------------------------------
	// 4️⃣ Serviço ativo
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, hangar.ID, in.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(domain.CodeServiceUnavailable)
		}
		return nil, persistence(err)
	}
	if !service.Active {
		return nil, httperr.ErrBusiness(domain.CodeServiceUnavailable)
	}

	// --------------------------------------------------
	// 5️⃣ Horário pertence à grade (agenda pública) e não passou
	// --------------------------------------------------
	if in.Source == SourcePublic {
		if err := uc.checkSlot(cal, day, hangar, in.Time); err != nil {
			return nil, err
		}
	}
	if err := uc.checkNotPast(hangar, in.Date, in.Time); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Trava curta do horário
	// --------------------------------------------------
	release, err := uc.locker.Acquire(ctx, hangar.ID, in.Date, in.Time)
	switch {
	case errors.Is(err, slotlock.ErrHeld):
		return nil, httperr.ErrBusinessDetail(domain.CodeSlotBusy, in.Time)
	case err != nil:
		// a recontagem transacional continua garantindo a capacidade
		log.Ctx(ctx).Warn().Err(err).Uint("hangar_id", hangar.ID).Msg("slot lock unavailable")
	default:
		defer release()
	}

	// --------------------------------------------------
	// 7️⃣ Capacidade + identidade + criação (atômico)
	// --------------------------------------------------
	var (
		created    *models.Appointment
		resolution domain.CustomerResolution
	)

	err = uc.repo.Atomic(ctx, func(tx domain.Repository) error {
		if err := tx.LockHangar(ctx, hangar.ID); err != nil {
			return err
		}

		booked, err := tx.CountActiveAtSlot(ctx, hangar.ID, in.Date, in.Time)
		if err != nil {
			return err
		}
		if booked >= int64(hangar.BoxCapacity) {
			return httperr.ErrBusinessDetail(domain.CodeSlotFull, in.Time)
		}

		resolution, err = resolveCustomer(ctx, tx, hangar.ID, in)
		if err != nil {
			return err
		}

		customerID, err := ensureCustomer(ctx, tx, hangar.ID, resolution)
		if err != nil {
			return err
		}

		vehicleID, err := ensureVehicle(ctx, tx, hangar.ID, customerID, resolution, in)
		if err != nil {
			return err
		}

		price := service.Price
		if in.Source == SourceAdmin && in.PriceOverride != nil && *in.PriceOverride >= 0 {
			price = *in.PriceOverride
		}

		ap := &models.Appointment{
			HangarID:        hangar.ID,
			CustomerID:      customerID,
			VehicleID:       vehicleID,
			ServiceID:       &service.ID,
			ServiceType:     service.Name,
			Date:            in.Date,
			Time:            in.Time,
			DurationMinutes: service.DurationMinutes,
			Price:           price,
			Status:          string(domain.InitialStatus()),
			Observation:     strings.TrimSpace(in.Observation),
		}
		if in.Source == SourceAdmin {
			ap.BoxID = in.BoxID
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		created = ap
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, domain.CodeCustomerNotFound)
	}

	// --------------------------------------------------
	// 8️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		HangarID: hangar.ID,
		UserID:   in.UserID,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &created.ID,
		Metadata: map[string]any{
			"source":     in.Source,
			"resolution": resolution.Kind.String(),
		},
	})

	// --------------------------------------------------
	// 9️⃣ Releitura do dia
	// --------------------------------------------------
	snapshot, err := refreshDay(ctx, uc.repo, hangar, in.Date)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("appointment_id", created.ID).Msg("refresh after booking failed")
	}

	return &SubmitBookingResult{
		Appointment: created,
		Resolution:  resolution.Kind.String(),
		Day:         snapshot,
	}, nil
}

// checkSlot distingue horário fora da grade de horário que já passou.
func (uc *SubmitBooking) checkSlot(
	cal domain.Calendar,
	day time.Time,
	hangar *models.Hangar,
	clock string,
) error {

	w, ok := cal.WindowFor(day)
	if !ok {
		return httperr.ErrBusinessDetail(domain.CodeDateBlocked, day.Format(timezone.DateLayout))
	}

	grid := domain.GenerateSlots(day, w, hangar.SlotIntervalMinutes, time.Time{})
	if !slices.Contains(grid, clock) {
		return httperr.ErrBusinessDetail(domain.CodeInvalidSlot, clock)
	}

	return nil
}

// checkNotPast vale para qualquer origem: o console pode sair da grade,
// nunca do presente.
func (uc *SubmitBooking) checkNotPast(hangar *models.Hangar, date, clock string) error {
	start, err := timezone.ParseDateTime(hangar.Timezone, date, clock)
	if err != nil {
		return httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}
	if !start.After(timezone.NowIn(uc.clock, hangar.Timezone)) {
		return httperr.ErrBusinessDetail(domain.CodeSlotInPast, clock)
	}
	return nil
}
