package scenario

import (
	"sort"
)

// Step is one logical operation in a scenario, plus its assertions.
type Step struct {
	Name string

	// Ordinal determines execution order. It must be unique within the scenario.
	Ordinal int

	// DependsOnPriorSuccess causes the step to be skipped if its required predecessor did
	// not pass. The required predecessor is the step named by DependsOn, or else the
	// nearest step with a lower ordinal.
	DependsOnPriorSuccess bool

	// DependsOn optionally names an earlier step as the required predecessor.
	DependsOn string

	Action func(t *T)
}

// Scenario is an ordered chain of dependent steps sharing one State.
type Scenario struct {
	Name string

	// Setup, if not nil, runs before the first step. It can seed the state, for instance
	// with data loaded from a fixture file. If it returns an error, the scenario is aborted
	// before any step runs.
	Setup func(state *State) error

	Steps []Step
}

// orderedSteps validates the step declarations and returns the steps sorted by ordinal.
func (s Scenario) orderedSteps() ([]Step, error) {
	steps := append([]Step(nil), s.Steps...)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Ordinal < steps[j].Ordinal })

	names := make(map[string]int)
	for i, step := range steps {
		if step.Name == "" {
			return nil, configError("step with ordinal %d has no name", step.Ordinal)
		}
		if step.Action == nil {
			return nil, configError("step %q has no action", step.Name)
		}
		if i > 0 && steps[i-1].Ordinal == step.Ordinal {
			return nil, configError("steps %q and %q have the same ordinal %d",
				steps[i-1].Name, step.Name, step.Ordinal)
		}
		if _, ok := names[step.Name]; ok {
			return nil, configError("more than one step is named %q", step.Name)
		}
		names[step.Name] = i
	}
	for i, step := range steps {
		if step.DependsOn == "" {
			continue
		}
		if !step.DependsOnPriorSuccess {
			return nil, configError("step %q names a dependency but is not marked DependsOnPriorSuccess", step.Name)
		}
		j, ok := names[step.DependsOn]
		if !ok {
			return nil, configError("step %q depends on unknown step %q", step.Name, step.DependsOn)
		}
		if j >= i {
			return nil, configError("step %q depends on %q, which does not run before it", step.Name, step.DependsOn)
		}
	}
	return steps, nil
}

func requiredPredecessor(steps []Step, i int) string {
	if steps[i].DependsOn != "" {
		return steps[i].DependsOn
	}
	if i == 0 {
		return ""
	}
	return steps[i-1].Name
}
