package finance

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/hangar-scheduler/internal/audit"
	appointment "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/finance"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
)

const CodeInvalidEntry = "invalid_ledger_entry"

type auditor interface {
	Dispatch(ev audit.Event)
}

type EntryInput struct {
	HangarID      uint
	UserID        *uint
	Description   string
	Amount        float64
	Category      string
	Date          string
	Type          string
	PaymentMethod string
}

// Entries cuida dos lançamentos manuais do caixa.
type Entries struct {
	repo  domain.Repository
	audit auditor
}

func NewEntries(repo domain.Repository, audit auditor) *Entries {
	return &Entries{repo: repo, audit: audit}
}

func (uc *Entries) Create(ctx context.Context, in EntryInput) (*models.Expense, error) {
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" || in.Amount <= 0 || !appointment.IsValidDate(in.Date) {
		return nil, httperr.ErrBusiness(CodeInvalidEntry)
	}

	entry := &models.Expense{
		HangarID:      in.HangarID,
		Description:   in.Description,
		Amount:        in.Amount,
		Category:      strings.TrimSpace(in.Category),
		Date:          in.Date,
		Type:          domain.NormalizeType(in.Type),
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
	}
	if err := uc.repo.CreateEntry(ctx, entry); err != nil {
		return nil, classify(err, "")
	}

	uc.audit.Dispatch(audit.Event{
		HangarID: in.HangarID,
		UserID:   in.UserID,
		Action:   audit.ActionLedgerEntryCreated,
		Entity:   "expense",
		EntityID: &entry.ID,
		Metadata: map[string]any{
			"type":   entry.Type,
			"amount": entry.Amount,
		},
	})

	return entry, nil
}

func (uc *Entries) List(ctx context.Context, hangarID uint, from, to string) ([]models.Expense, error) {
	if !appointment.IsValidDate(from) || !appointment.IsValidDate(to) || from > to {
		return nil, httperr.ErrBusiness(appointment.CodeInvalidDateOrTime)
	}
	entries, err := uc.repo.ListEntries(ctx, hangarID, from, to)
	if err != nil {
		return nil, classify(err, "")
	}
	domain.SortEntries(entries)
	return entries, nil
}

func (uc *Entries) Delete(ctx context.Context, hangarID uint, userID *uint, id uint) error {
	deleted, err := uc.repo.DeleteEntry(ctx, hangarID, id)
	if err != nil {
		return classify(err, "")
	}
	if !deleted {
		return httperr.ErrBusiness("ledger_entry_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		HangarID: hangarID,
		UserID:   userID,
		Action:   audit.ActionLedgerEntryDeleted,
		Entity:   "expense",
		EntityID: &id,
	})
	return nil
}
