package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/hangar-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
	"github.com/BruksfildServices01/hangar-scheduler/internal/slotlock"
	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
)

// ---------------------------------------------------------------------------
// in-memory repository
// ---------------------------------------------------------------------------

type memoryRepo struct {
	tx sync.Mutex // serializa Atomic como o lock da linha do hangar
	mu sync.Mutex

	hangars      map[uint]models.Hangar
	services     map[uint]models.ServiceItem
	customers    []models.Customer
	vehicles     []models.Vehicle
	appointments []models.Appointment
	nextID       uint

	createErr    error
	beforeUpdate func()
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		hangars:  map[uint]models.Hangar{},
		services: map[uint]models.ServiceItem{},
		nextID:   100,
	}
}

func (r *memoryRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *memoryRepo) Atomic(ctx context.Context, fn func(repo domain.Repository) error) error {
	r.tx.Lock()
	defer r.tx.Unlock()

	r.mu.Lock()
	customers := append([]models.Customer(nil), r.customers...)
	vehicles := append([]models.Vehicle(nil), r.vehicles...)
	appointments := append([]models.Appointment(nil), r.appointments...)
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.customers, r.vehicles, r.appointments = customers, vehicles, appointments
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *memoryRepo) GetHangarByID(_ context.Context, id uint) (*models.Hangar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hangars[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &h, nil
}

func (r *memoryRepo) LockHangar(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hangars[id]; !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (r *memoryRepo) GetService(_ context.Context, hangarID, serviceID uint) (*models.ServiceItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[serviceID]
	if !ok || s.HangarID != hangarID {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *memoryRepo) GetCustomer(_ context.Context, hangarID, customerID uint) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.ID == customerID && c.HangarID == hangarID {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) FindCustomersByPhone(_ context.Context, hangarID uint, phone string) ([]models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Customer
	for _, c := range r.customers {
		if c.HangarID == hangarID && c.Phone == phone {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryRepo) CreateCustomer(_ context.Context, c *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.id()
	r.customers = append(r.customers, *c)
	return nil
}

func (r *memoryRepo) ListVehicles(_ context.Context, customerID uint) ([]models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Vehicle
	for _, v := range r.vehicles {
		if v.CustomerID == customerID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *memoryRepo) CreateVehicle(_ context.Context, v *models.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v.ID = r.id()
	r.vehicles = append(r.vehicles, *v)
	return nil
}

func (r *memoryRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	ap.ID = r.id()
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *memoryRepo) CountActiveAtSlot(_ context.Context, hangarID uint, date, clock string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, ap := range r.appointments {
		if ap.HangarID == hangarID && ap.Date == date && ap.Time == clock && ap.Status != string(domain.StatusCancelled) {
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) hydrate(ap models.Appointment) models.Appointment {
	for _, c := range r.customers {
		if c.ID == ap.CustomerID {
			ap.Customer = c
		}
	}
	for _, v := range r.vehicles {
		if v.ID == ap.VehicleID {
			ap.Vehicle = v
		}
	}
	return ap
}

func (r *memoryRepo) GetAppointment(_ context.Context, hangarID, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.appointments {
		if ap.ID == id && ap.HangarID == hangarID {
			out := r.hydrate(ap)
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) UpdateAppointmentStatus(_ context.Context, ap *models.Appointment, from domain.Status) (bool, error) {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.appointments {
		cur := &r.appointments[i]
		if cur.ID != ap.ID || cur.HangarID != ap.HangarID {
			continue
		}
		if cur.Status != string(from) {
			return false, nil
		}
		cur.Status = ap.Status
		cur.CancellationReason = ap.CancellationReason
		cur.ConfirmedAt, cur.StartedAt, cur.FinishedAt, cur.CancelledAt = ap.ConfirmedAt, ap.StartedAt, ap.FinishedAt, ap.CancelledAt
		return true, nil
	}
	return false, nil
}

func (r *memoryRepo) DeleteAppointment(_ context.Context, hangarID, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ap := range r.appointments {
		if ap.ID == id && ap.HangarID == hangarID {
			r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) ListAppointmentsByDate(ctx context.Context, hangarID uint, date string) ([]models.Appointment, error) {
	return r.ListAppointmentsForPeriod(ctx, hangarID, date, date)
}

func (r *memoryRepo) ListAppointmentsForPeriod(_ context.Context, hangarID uint, from, to string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.HangarID == hangarID && ap.Date >= from && ap.Date <= to {
			out = append(out, r.hydrate(ap))
		}
	}
	return out, nil
}

func (r *memoryRepo) ListFinishedForCustomer(_ context.Context, hangarID, customerID uint) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.HangarID == hangarID && ap.CustomerID == customerID && ap.Status == string(domain.StatusFinished) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *memoryRepo) setStatus(id uint, st domain.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.appointments {
		if r.appointments[i].ID == id {
			r.appointments[i].Status = string(st)
		}
	}
}

func (r *memoryRepo) statusOf(id uint) domain.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.appointments {
		if ap.ID == id {
			return domain.Status(ap.Status)
		}
	}
	return ""
}

var _ domain.Repository = (*memoryRepo)(nil)

// ---------------------------------------------------------------------------
// collaborators
// ---------------------------------------------------------------------------

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAuditor) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

type heldLocker struct{}

func (heldLocker) Acquire(context.Context, uint, string, string) (func(), error) {
	return nil, slotlock.ErrHeld
}

// ---------------------------------------------------------------------------
// fixtures
// ---------------------------------------------------------------------------

const (
	testHangarID  = uint(1)
	washServiceID = uint(10)
	oldServiceID  = uint(11)
	bookingDate   = "2026-03-10" // terça-feira
)

// 07:00 em São Paulo no dia do agendamento
var fixedClock = timezone.ClockFunc(func() time.Time {
	return time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
})

func seededRepo(capacity int) *memoryRepo {
	repo := newMemoryRepo()
	repo.hangars[testHangarID] = models.Hangar{
		ID:                    testHangarID,
		Name:                  "Hangar Detail",
		Slug:                  "hangar-detail",
		Timezone:              "America/Sao_Paulo",
		BoxCapacity:           capacity,
		SlotIntervalMinutes:   30,
		LoyaltyProgramEnabled: true,
		OnlineBookingEnabled:  true,
		OperatingRules:        domain.DefaultOperatingRules(testHangarID),
		BlockedDates: []models.BlockedDate{
			{HangarID: testHangarID, Date: "2026-03-12", Reason: "Manutenção"},
		},
	}
	repo.services[washServiceID] = models.ServiceItem{
		ID: washServiceID, HangarID: testHangarID, Name: "Lavagem completa",
		DurationMinutes: 90, Price: 120, Active: true,
	}
	repo.services[oldServiceID] = models.ServiceItem{
		ID: oldServiceID, HangarID: testHangarID, Name: "Cera de carnaúba",
		DurationMinutes: 60, Price: 80, Active: false,
	}
	return repo
}

func guestBooking(clock, phone, plate string) SubmitBookingInput {
	return SubmitBookingInput{
		HangarID:      testHangarID,
		Source:        SourcePublic,
		ServiceID:     washServiceID,
		Date:          bookingDate,
		Time:          clock,
		CustomerName:  "Marina Souza",
		CustomerPhone: phone,
		Vehicle:       domain.VehicleInfo{Brand: "Honda", Model: "Civic", Plate: plate, Type: "carro"},
	}
}
