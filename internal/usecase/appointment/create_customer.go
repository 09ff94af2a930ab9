package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/hangar-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
	"github.com/BruksfildServices01/hangar-scheduler/internal/validators"
)

type CreateCustomerInput struct {
	HangarID uint
	UserID   *uint

	Name     string
	Phone    string
	Email    string
	Vehicles []domain.VehicleInfo
}

// CreateCustomer é o cadastro manual do console. Disputa a mesma trava do
// hangar que a admissão, então telefone duplicado não passa nem em corrida.
type CreateCustomer struct {
	repo  domain.Repository
	audit auditor
}

func NewCreateCustomer(
	repo domain.Repository,
	audit auditor,
) *CreateCustomer {
	return &CreateCustomer{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateCustomer) Execute(
	ctx context.Context,
	in CreateCustomerInput,
) (*models.Customer, error) {

	// --------------------------------------------------
	// 1️⃣ Validação
	// --------------------------------------------------
	if strings.TrimSpace(in.Name) == "" || !validators.IsGuestPhoneValid(in.Phone) {
		return nil, httperr.ErrBusiness(domain.CodeInvalidPhone)
	}

	vehicles := make([]domain.VehicleInfo, 0, len(in.Vehicles))
	seen := map[string]bool{}
	for _, v := range in.Vehicles {
		info := v.Normalized()
		if !validators.IsPlateValid(info.Plate) {
			return nil, httperr.ErrBusiness(domain.CodeInvalidPlate)
		}
		if seen[info.Plate] {
			continue
		}
		seen[info.Plate] = true
		vehicles = append(vehicles, info)
	}

	res := domain.NewCustomer(in.Name, in.Phone, in.Email)

	customer := &models.Customer{
		HangarID: in.HangarID,
		Name:     res.Name,
		Phone:    res.Phone,
		Email:    res.Email,
	}

	// --------------------------------------------------
	// 2️⃣ Dedupe por telefone + criação (atômico)
	// --------------------------------------------------
	err := uc.repo.Atomic(ctx, func(tx domain.Repository) error {
		if err := tx.LockHangar(ctx, in.HangarID); err != nil {
			return err
		}

		matches, err := tx.FindCustomersByPhone(ctx, in.HangarID, customer.Phone)
		if err != nil {
			return err
		}
		if len(matches) > 0 {
			return httperr.ErrBusinessDetail(domain.CodeIdentityConflict, "phone")
		}

		if err := tx.CreateCustomer(ctx, customer); err != nil {
			return err
		}

		for _, info := range vehicles {
			v := info.ToModel(in.HangarID, customer.ID)
			if err := tx.CreateVehicle(ctx, &v); err != nil {
				return err
			}
			customer.Vehicles = append(customer.Vehicles, v)
		}
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, domain.CodeHangarNotFound)
	}

	// --------------------------------------------------
	// 3️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		HangarID: in.HangarID,
		UserID:   in.UserID,
		Action:   audit.ActionCustomerCreated,
		Entity:   "customer",
		EntityID: &customer.ID,
		Metadata: map[string]any{
			"vehicles": len(customer.Vehicles),
		},
	})

	return customer, nil
}
