package appointment

import "github.com/BruksfildServices01/hangar-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusNew        Status = "NOVO"
	StatusConfirmed  Status = "CONFIRMADO"
	StatusInProgress Status = "EM_EXECUCAO"
	StatusFinished   Status = "FINALIZADO"
	StatusCancelled  Status = "CANCELADO"
)

var transitions = map[Status][]Status{
	StatusNew:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusFinished, StatusCancelled},
}

// ===============================
// Validations
// ===============================

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusNew, StatusConfirmed, StatusInProgress, StatusFinished, StatusCancelled:
		return st, true
	}
	return "", false
}

// IsTerminal indica FINALIZADO ou CANCELADO: nenhuma transição sai deles.
func (s Status) IsTerminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// CountsTowardOccupancy define se o agendamento ocupa um box.
func (s Status) CountsTowardOccupancy() bool {
	return s != StatusCancelled
}

// CanTransition recusa qualquer mudança fora do grafo, inclusive repetir o
// estado atual.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusinessDetail(CodeIllegalTransition, string(from)+"->"+string(to))
}

func InitialStatus() Status {
	return StatusNew
}
