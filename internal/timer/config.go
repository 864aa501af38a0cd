package timer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"pausepad/internal/model"
)

var (
	ErrInvalidConfig = errors.New("invalid timer config")
	ErrInvalidMode   = errors.New("invalid timer mode")
	ErrTimerBusy     = errors.New("timer is not idle")
	ErrDisposed      = errors.New("timer disposed")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateConfig rejects configurations that cannot drive the machine, such
// as non-positive durations or a zero long-break cycle.
func ValidateConfig(cfg model.TimerConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s must be %s %s", lowerFirst(fe.Field()), describeTag(fe.Tag()), fe.Param()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}

func describeTag(tag string) string {
	switch tag {
	case "gt":
		return ">"
	case "gte":
		return ">="
	case "lte":
		return "<="
	default:
		return tag
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
