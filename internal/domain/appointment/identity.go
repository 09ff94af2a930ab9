package appointment

import (
	"strings"

	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
	"github.com/BruksfildServices01/hangar-scheduler/internal/validators"
)

// ResolutionKind identifica de onde veio o cliente do agendamento.
type ResolutionKind int

const (
	ResolvedExisting ResolutionKind = iota + 1
	ResolvedByPhone
	ResolvedNew
)

func (k ResolutionKind) String() string {
	switch k {
	case ResolvedExisting:
		return "existing"
	case ResolvedByPhone:
		return "matched_by_phone"
	case ResolvedNew:
		return "new"
	}
	return "unknown"
}

// CustomerResolution é decidida uma vez no início da admissão e depois só
// repassada adiante.
type CustomerResolution struct {
	Kind       ResolutionKind
	CustomerID uint

	// preenchidos apenas em ResolvedNew
	Name  string
	Phone string
	Email string
}

func Existing(id uint) CustomerResolution {
	return CustomerResolution{Kind: ResolvedExisting, CustomerID: id}
}

func MatchedByPhone(id uint) CustomerResolution {
	return CustomerResolution{Kind: ResolvedByPhone, CustomerID: id}
}

func NewCustomer(name, phone, email string) CustomerResolution {
	return CustomerResolution{
		Kind:  ResolvedNew,
		Name:  strings.TrimSpace(name),
		Phone: validators.NormalizePhone(phone),
		Email: strings.TrimSpace(email),
	}
}

func (r CustomerResolution) IsNew() bool { return r.Kind == ResolvedNew }

// ResolveByPhone aplica a regra de deduplicação: telefone exato dentro do hangar.
func ResolveByPhone(matches []models.Customer, name, phone, email string) (CustomerResolution, error) {
	switch len(matches) {
	case 0:
		return NewCustomer(name, phone, email), nil
	case 1:
		return MatchedByPhone(matches[0].ID), nil
	}
	return CustomerResolution{}, httperr.ErrBusinessDetail(CodeIdentityConflict, "phone")
}

var VehicleTypes = []string{"CARRO", "SUV", "MOTO", "UTILITARIO"}

type VehicleInfo struct {
	Brand string
	Model string
	Plate string
	Color string
	Type  string
}

func (v VehicleInfo) Normalized() VehicleInfo {
	v.Brand = strings.TrimSpace(v.Brand)
	v.Model = strings.TrimSpace(v.Model)
	v.Color = strings.TrimSpace(v.Color)
	v.Plate = validators.NormalizePlate(v.Plate)
	v.Type = NormalizeVehicleType(v.Type)
	return v
}

func NormalizeVehicleType(t string) string {
	t = strings.ToUpper(strings.TrimSpace(t))
	for _, known := range VehicleTypes {
		if t == known {
			return t
		}
	}
	return VehicleTypes[0]
}

// MatchVehicle devolve nil quando a placa ainda não existe para o cliente.
func MatchVehicle(vehicles []models.Vehicle, plate string) (*models.Vehicle, error) {
	plate = validators.NormalizePlate(plate)

	var found *models.Vehicle
	for i := range vehicles {
		if validators.NormalizePlate(vehicles[i].Plate) != plate {
			continue
		}
		if found != nil {
			return nil, httperr.ErrBusinessDetail(CodeIdentityConflict, "plate")
		}
		found = &vehicles[i]
	}
	return found, nil
}

func (v VehicleInfo) ToModel(hangarID, customerID uint) models.Vehicle {
	return models.Vehicle{
		HangarID:   hangarID,
		CustomerID: customerID,
		Brand:      v.Brand,
		Model:      v.Model,
		Plate:      v.Plate,
		Color:      v.Color,
		Type:       v.Type,
	}
}
