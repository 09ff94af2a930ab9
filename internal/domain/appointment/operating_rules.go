package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/models"
	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
)

// ValidateOperatingRules é aplicada na escrita; o Calendar continua fechando
// o dia caso algo inválido já esteja gravado.
func ValidateOperatingRules(rules []models.OperatingRule) error {
	seen := make(map[int]bool, len(rules))

	for _, r := range rules {
		if r.Weekday < 0 || r.Weekday > 6 {
			return httperr.ErrBusinessDetail(CodeInvalidOperatingRules, fmt.Sprintf("weekday %d", r.Weekday))
		}
		if seen[r.Weekday] {
			return httperr.ErrBusinessDetail(CodeInvalidOperatingRules, fmt.Sprintf("weekday %d duplicated", r.Weekday))
		}
		seen[r.Weekday] = true

		if !r.IsOpen {
			continue
		}
		if _, ok := windowOf(r); !ok {
			return httperr.ErrBusinessDetail(
				CodeInvalidOperatingRules,
				fmt.Sprintf("weekday %d: %s-%s", r.Weekday, r.OpenTime, r.CloseTime),
			)
		}
	}

	return nil
}

// DefaultOperatingRules: segunda a sábado 08:00–18:00, domingo fechado.
func DefaultOperatingRules(hangarID uint) []models.OperatingRule {
	rules := make([]models.OperatingRule, 0, 7)
	for d := 0; d <= 6; d++ {
		rules = append(rules, models.OperatingRule{
			HangarID:  hangarID,
			Weekday:   d,
			IsOpen:    d != 0,
			OpenTime:  "08:00",
			CloseTime: "18:00",
		})
	}
	return rules
}

func IsValidDate(date string) bool {
	_, err := timezone.ParseDate("UTC", date)
	return err == nil
}
