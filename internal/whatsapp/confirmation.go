package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
	"github.com/BruksfildServices01/hangar-scheduler/internal/validators"
)

const chatBaseURL = "https://wa.me/"

type Confirmation struct {
	HangarName   string
	CustomerName string
	Date         string // YYYY-MM-DD
	Time         string // HH:MM
	VehicleModel string
	VehiclePlate string
	ServiceName  string
}

// Offer é apresentado ao operador após a confirmação; o envio é sempre manual.
type Offer struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

func ConfirmationMessage(c Confirmation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Olá %s! 👋\n\n", firstName(c.CustomerName))
	fmt.Fprintf(&b, "Seu agendamento na *%s* está confirmado! ✅\n\n", c.HangarName)
	fmt.Fprintf(&b, "📅 Data: %s\n", brazilianDate(c.Date))
	fmt.Fprintf(&b, "⏰ Horário: %s\n", c.Time)
	fmt.Fprintf(&b, "🚗 Veículo: %s\n", vehicleLabel(c.VehicleModel, c.VehiclePlate))
	fmt.Fprintf(&b, "🛠 Serviço: %s\n\n", c.ServiceName)
	b.WriteString("Qualquer imprevisto, é só responder esta mensagem. Até breve!")

	return b.String()
}

// ChatLink monta o deep link wa.me; devolve vazio sem telefone utilizável.
func ChatLink(phone, message string) string {
	digits := validators.InternationalPhone(phone)
	if digits == "" {
		return ""
	}
	return chatBaseURL + digits + "?text=" + escapeText(message)
}

// escapeText codifica espaço como %20, não como "+".
func escapeText(message string) string {
	return strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

func NewOffer(phone string, c Confirmation) Offer {
	msg := ConfirmationMessage(c)
	return Offer{
		Phone:   validators.InternationalPhone(phone),
		Message: msg,
		Link:    ChatLink(phone, msg),
	}
}

func brazilianDate(date string) string {
	t, err := timezone.ParseDate("UTC", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "cliente"
	}
	return fields[0]
}

func vehicleLabel(model, plate string) string {
	model = strings.TrimSpace(model)
	switch {
	case model == "" && plate == "":
		return "-"
	case plate == "":
		return model
	case model == "":
		return plate
	}
	return model + " (" + plate + ")"
}
