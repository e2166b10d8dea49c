package validation

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	setOptionsMu sync.RWMutex
	// setOptions records the allowed values for tags registered with RegisterStringSet.
	setOptions = map[string][]string{}
)

// RegisterStringSet registers tag as a validator that only accepts the given values.
// Unlike oneof, values may contain spaces.
func RegisterStringSet(v *validator.Validate, tag string, allowed []string) {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}

	setOptionsMu.Lock()
	setOptions[tag] = append([]string(nil), allowed...)
	setOptionsMu.Unlock()

	_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		_, ok := set[fl.Field().String()]
		return ok
	})
}

func stringSetOptions(tag string) ([]string, bool) {
	setOptionsMu.RLock()
	defer setOptionsMu.RUnlock()
	options, ok := setOptions[tag]
	return options, ok
}
