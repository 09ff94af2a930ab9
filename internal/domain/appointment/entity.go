package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition aplica a mudança de status e os carimbos de data correspondentes.
// Em caso de recusa o agendamento não é alterado.
func Transition(ap *models.Appointment, to Status, reason string, now time.Time) (Status, error) {
	from := Status(ap.Status)
	if err := CanTransition(from, to); err != nil {
		return from, err
	}

	ap.Status = string(to)

	switch to {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusInProgress:
		ap.StartedAt = &now
	case StatusFinished:
		ap.FinishedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
		ap.CancellationReason = strings.TrimSpace(reason)
	}

	return from, nil
}
