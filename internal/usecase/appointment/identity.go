package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
	"github.com/BruksfildServices01/hangar-scheduler/internal/validators"
)

// resolveCustomer: id informado > telefone exato > cliente novo.
func resolveCustomer(
	ctx context.Context,
	repo domain.Repository,
	hangarID uint,
	in SubmitBookingInput,
) (domain.CustomerResolution, error) {

	if in.CustomerID != 0 {
		if _, err := repo.GetCustomer(ctx, hangarID, in.CustomerID); err != nil {
			return domain.CustomerResolution{}, err
		}
		return domain.Existing(in.CustomerID), nil
	}

	phone := validators.NormalizePhone(in.CustomerPhone)
	matches, err := repo.FindCustomersByPhone(ctx, hangarID, phone)
	if err != nil {
		return domain.CustomerResolution{}, err
	}

	return domain.ResolveByPhone(matches, in.CustomerName, phone, in.CustomerEmail)
}

func ensureCustomer(
	ctx context.Context,
	repo domain.Repository,
	hangarID uint,
	res domain.CustomerResolution,
) (uint, error) {

	if !res.IsNew() {
		return res.CustomerID, nil
	}

	c := &models.Customer{
		HangarID: hangarID,
		Name:     res.Name,
		Phone:    res.Phone,
		Email:    res.Email,
	}
	if err := repo.CreateCustomer(ctx, c); err != nil {
		return 0, err
	}
	return c.ID, nil
}

// ensureVehicle reaproveita a placa já cadastrada para o cliente ou cria o veículo.
func ensureVehicle(
	ctx context.Context,
	repo domain.Repository,
	hangarID uint,
	customerID uint,
	res domain.CustomerResolution,
	in SubmitBookingInput,
) (uint, error) {

	if res.IsNew() {
		return createVehicle(ctx, repo, hangarID, customerID, in.Vehicle)
	}

	vehicles, err := repo.ListVehicles(ctx, customerID)
	if err != nil {
		return 0, err
	}

	if in.VehicleID != 0 {
		for _, v := range vehicles {
			if v.ID == in.VehicleID {
				return v.ID, nil
			}
		}
		return 0, httperr.ErrBusiness(domain.CodeVehicleNotFound)
	}

	match, err := domain.MatchVehicle(vehicles, in.Vehicle.Plate)
	if err != nil {
		return 0, err
	}
	if match != nil {
		return match.ID, nil
	}

	return createVehicle(ctx, repo, hangarID, customerID, in.Vehicle)
}

func createVehicle(
	ctx context.Context,
	repo domain.Repository,
	hangarID uint,
	customerID uint,
	info domain.VehicleInfo,
) (uint, error) {

	if !validators.IsPlateValid(info.Plate) {
		return 0, httperr.ErrBusiness(domain.CodeInvalidPlate)
	}

	v := info.ToModel(hangarID, customerID)
	if err := repo.CreateVehicle(ctx, &v); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, httperr.ErrBusiness(domain.CodeCustomerNotFound)
		}
		return 0, err
	}
	return v.ID, nil
}
