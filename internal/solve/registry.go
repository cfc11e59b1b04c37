package solve

import (
	"fmt"
	"sort"

	"github.com/qs-lab/qdyn/internal/ode"
)

// methodExpm is the LMDE-specific matrix exponential method; it has no
// stepper factory and is dispatched inside LMDE.
const methodExpm = "expm"

var steppers = map[string]func() ode.Stepper{
	"euler": func() ode.Stepper { return ode.NewEuler() },
	"rk4":   func() ode.Stepper { return ode.NewRK4() },
	"dp54":  func() ode.Stepper { return ode.NewDP54() },
}

// NewStepper returns a fresh stepper for a registered method name.
func NewStepper(name string) (ode.Stepper, error) {
	fn, ok := steppers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
	return fn(), nil
}

// Methods lists the available method names, including the LMDE-specific
// exponential method.
func Methods() []string {
	names := make([]string, 0, len(steppers)+1)
	for name := range steppers {
		names = append(names, name)
	}
	names = append(names, methodExpm)
	sort.Strings(names)
	return names
}
