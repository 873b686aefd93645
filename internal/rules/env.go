package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"
)

// Registry manages the CEL environment used by data-driven move preconditions
// and caches compiled programs by formula.
type Registry struct {
	env      *cel.Env
	programs map[string]cel.Program
}

// NewRegistry initializes the CEL environment with the battle variables.
func NewRegistry() (*Registry, error) {
	env, err := cel.NewEnv(
		ext.Strings(),

		cel.Variable("user", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("target", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("field", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Registry{env: env, programs: make(map[string]cel.Program)}, nil
}

// Compile checks a formula and caches its program. Formulas coming from the
// static data are compiled once at load time so broken data fails early.
func (r *Registry) Compile(formula string) error {
	_, err := r.program(formula)
	return err
}

// Eval executes a CEL expression against the provided context.
func (r *Registry) Eval(formula string, context map[string]any) (any, error) {
	prg, err := r.program(formula)
	if err != nil {
		return nil, err
	}
	out, _, err := prg.Eval(context)
	if err != nil {
		return nil, fmt.Errorf("CEL eval error in %q: %w", formula, err)
	}
	return out.Value(), nil
}

// Check evaluates a formula that must produce a boolean.
func (r *Registry) Check(formula string, context map[string]any) (bool, error) {
	out, err := r.Eval(formula, context)
	if err != nil {
		return false, err
	}
	passed, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("formula %q returned %T, expected bool", formula, out)
	}
	return passed, nil
}

func (r *Registry) program(formula string) (cel.Program, error) {
	if prg, ok := r.programs[formula]; ok {
		return prg, nil
	}
	ast, iss := r.env.Compile(formula)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("CEL compile error in %q: %w", formula, iss.Err())
	}
	prg, err := r.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("CEL program error in %q: %w", formula, err)
	}
	r.programs[formula] = prg
	return prg, nil
}
