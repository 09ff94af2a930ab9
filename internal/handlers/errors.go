package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/middleware"
	ucFinance "github.com/BruksfildServices01/hangar-scheduler/internal/usecase/finance"
)

type errorView struct {
	status  int
	message string
}

// Toda recusa de negócio vira um código estável + mensagem em português.
var businessErrors = map[string]errorView{
	domain.CodeDateBlocked:           {http.StatusConflict, "Data indisponível para agendamento."},
	domain.CodeSlotFull:              {http.StatusConflict, "Horário lotado. Escolha outro horário."},
	domain.CodeSlotBusy:              {http.StatusConflict, "Outro agendamento está sendo concluído neste horário. Tente novamente."},
	domain.CodeIdentityConflict:      {http.StatusConflict, "Mais de um cadastro corresponde aos dados informados."},
	domain.CodeIllegalTransition:     {http.StatusConflict, "Mudança de status não permitida."},
	domain.CodeServiceUnavailable:    {http.StatusUnprocessableEntity, "Serviço indisponível."},
	domain.CodeInvalidSlot:           {http.StatusUnprocessableEntity, "Horário fora da grade de atendimento."},
	domain.CodeSlotInPast:            {http.StatusUnprocessableEntity, "Esse horário já passou."},
	domain.CodeOnlineBookingDisabled: {http.StatusUnprocessableEntity, "Agendamento online desativado."},
	domain.CodeDeleteNotConfirmed:    {http.StatusUnprocessableEntity, "Confirme a exclusão do agendamento."},
	domain.CodeInvalidOperatingRules: {http.StatusUnprocessableEntity, "Horários de funcionamento inválidos."},
	ucFinance.CodeInvalidEntry:       {http.StatusUnprocessableEntity, "Lançamento inválido."},
	domain.CodeInvalidDateOrTime:     {http.StatusBadRequest, "Data ou horário inválido."},
	domain.CodeInvalidPhone:          {http.StatusBadRequest, "Informe nome e telefone válidos."},
	domain.CodeInvalidPlate:          {http.StatusBadRequest, "Informe a placa do veículo."},
	domain.CodeHangarNotFound:        {http.StatusNotFound, "Hangar não encontrado."},
	domain.CodeAppointmentNotFound:   {http.StatusNotFound, "Agendamento não encontrado."},
	domain.CodeCustomerNotFound:      {http.StatusNotFound, "Cliente não encontrado."},
	domain.CodeVehicleNotFound:       {http.StatusNotFound, "Veículo não encontrado."},
	"ledger_entry_not_found":         {http.StatusNotFound, "Lançamento não encontrado."},
	domain.CodePersistenceFailure:    {http.StatusServiceUnavailable, "Não foi possível salvar agora. Tente novamente."},
}

// respondError traduz o erro do use case. Falhas técnicas são logadas e viram 500.
func respondError(c *gin.Context, err error) {
	code, detail, ok := httperr.CodeOf(err)
	if !ok {
		middleware.RequestLogger(c).Error().Err(err).Msg("unexpected error")
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	view, known := businessErrors[code]
	if !known {
		view = errorView{http.StatusUnprocessableEntity, "Operação recusada."}
	}

	if view.status >= http.StatusInternalServerError {
		middleware.RequestLogger(c).Error().Err(err).Str("error_code", code).Msg("persistence failure")
	}

	httperr.WriteDetail(c, view.status, code, view.message, detail)
}
