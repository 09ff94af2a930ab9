package appointment

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
)

func TestCreateCustomerWithVehicles(t *testing.T) {
	repo := seededRepo(1)
	aud := &recordingAuditor{}
	uc := NewCreateCustomer(repo, aud)

	cu, err := uc.Execute(context.Background(), CreateCustomerInput{
		HangarID: testHangarID,
		Name:     " Marina Souza ",
		Phone:    "(11) 98765-4321",
		Vehicles: []domain.VehicleInfo{
			{Model: "Civic", Plate: "abc-1d23"},
			{Model: "Civic", Plate: "ABC1D23"},
			{Model: "Hilux", Plate: "xyz9a87", Type: "suv"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Marina Souza", cu.Name)
	assert.Equal(t, "11987654321", cu.Phone)
	require.Len(t, cu.Vehicles, 2)
	assert.Equal(t, "ABC1D23", cu.Vehicles[0].Plate)
	assert.Equal(t, "SUV", cu.Vehicles[1].Type)
	assert.Len(t, repo.vehicles, 2)
	assert.Equal(t, []string{"customer_created"}, aud.actions())
}

func TestCreateCustomerRejections(t *testing.T) {
	tests := []struct {
		name string
		in   CreateCustomerInput
		code string
	}{
		{"short phone", CreateCustomerInput{Name: "Ana", Phone: "9876-5432"}, domain.CodeInvalidPhone},
		{"no name", CreateCustomerInput{Name: "  ", Phone: "11987654321"}, domain.CodeInvalidPhone},
		{"blank plate", CreateCustomerInput{
			Name: "Ana", Phone: "11987654321",
			Vehicles: []domain.VehicleInfo{{Model: "Gol", Plate: "---"}},
		}, domain.CodeInvalidPlate},
		{"unknown hangar", CreateCustomerInput{HangarID: 99, Name: "Ana", Phone: "11987654321"}, domain.CodeHangarNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := seededRepo(1)
			if tc.in.HangarID == 0 {
				tc.in.HangarID = testHangarID
			}

			_, err := NewCreateCustomer(repo, &recordingAuditor{}).Execute(context.Background(), tc.in)
			requireCode(t, err, tc.code)
			assert.Empty(t, repo.customers)
		})
	}
}

func TestCreateCustomerDuplicatePhone(t *testing.T) {
	repo := seededRepo(1)
	uc := NewCreateCustomer(repo, &recordingAuditor{})
	ctx := context.Background()

	_, err := uc.Execute(ctx, CreateCustomerInput{HangarID: testHangarID, Name: "Ana", Phone: "11987654321"})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, CreateCustomerInput{HangarID: testHangarID, Name: "Ana B.", Phone: "(11) 98765-4321"})
	requireCode(t, err, domain.CodeIdentityConflict)
	assert.Len(t, repo.customers, 1)
}

func TestCreateCustomerRacingPublicBooking(t *testing.T) {
	const rounds = 10
	const phone = "11987654321"

	repo := seededRepo(rounds)
	create := NewCreateCustomer(repo, &recordingAuditor{})
	submit, _ := newSubmit(repo)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = create.Execute(ctx, CreateCustomerInput{HangarID: testHangarID, Name: "Ana", Phone: phone})
		}()
		go func() {
			defer wg.Done()
			_, _ = submit.Execute(ctx, guestBooking("10:00", phone, "ABC1D23"))
		}()
	}
	wg.Wait()

	matches, err := repo.FindCustomersByPhone(ctx, testHangarID, phone)
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	// o telefone continua agendável depois da disputa
	res, err := submit.Execute(ctx, guestBooking("11:00", phone, "ABC1D23"))
	require.NoError(t, err)
	assert.Equal(t, "matched_by_phone", res.Resolution)
}
