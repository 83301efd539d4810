package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Violation is a single failed rule on a request field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// Error aggregates every violation found by a pipeline run.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}

// Is lets callers match any validation failure with errors.Is(err, ErrInvalid).
func (e *Error) Is(target error) bool { return target == ErrInvalid }

// ErrInvalid matches every *Error.
var ErrInvalid = errors.New("validation failed")

// rejection is returned by checks to record a violation instead of aborting.
type rejection struct{ msg string }

func (r *rejection) Error() string { return r.msg }

// Reject turns msg into a violation for the field the check is registered on.
func Reject(format string, args ...any) error {
	return &rejection{msg: fmt.Sprintf(format, args...)}
}

// CheckFunc is an I/O-backed rule such as a uniqueness lookup. It returns
// Reject(...) to record a violation; any other error aborts the pipeline.
type CheckFunc func(ctx context.Context) error

type step struct {
	field string
	run   func(ctx context.Context, failed map[string]bool) ([]Violation, error)
}

// Pipeline runs an ordered list of validation steps. Every step runs, the
// first failure per field is kept and later rules on a failed field are
// skipped.
type Pipeline struct {
	val   *Validator
	steps []step
}

// NewPipeline starts an empty pipeline backed by val.
func (val *Validator) NewPipeline() *Pipeline {
	return &Pipeline{val: val}
}

// Struct adds the tag rules of s.
func (p *Pipeline) Struct(s any) *Pipeline {
	p.steps = append(p.steps, step{run: func(context.Context, map[string]bool) ([]Violation, error) {
		return p.val.Struct(s), nil
	}})
	return p
}

// Partial adds the tag rules of the named Go fields of s.
func (p *Pipeline) Partial(s any, fields ...string) *Pipeline {
	p.steps = append(p.steps, step{run: func(context.Context, map[string]bool) ([]Violation, error) {
		return p.val.Partial(s, fields...), nil
	}})
	return p
}

// Var adds a tag rule on a standalone value.
func (p *Pipeline) Var(field string, value any, tag string) *Pipeline {
	p.steps = append(p.steps, step{field: field, run: func(_ context.Context, failed map[string]bool) ([]Violation, error) {
		if failed[field] {
			return nil, nil
		}
		if v := p.val.Var(field, value, tag); v != nil {
			return []Violation{*v}, nil
		}
		return nil, nil
	}})
	return p
}

// Check adds a custom rule on field. It is skipped when field already failed.
func (p *Pipeline) Check(field string, fn CheckFunc) *Pipeline {
	p.steps = append(p.steps, step{field: field, run: func(ctx context.Context, failed map[string]bool) ([]Violation, error) {
		if failed[field] {
			return nil, nil
		}
		err := fn(ctx)
		if err == nil {
			return nil, nil
		}
		var rj *rejection
		if errors.As(err, &rj) {
			return []Violation{{Field: field, Message: rj.msg}}, nil
		}
		return nil, err
	}})
	return p
}

// Run executes every step in order. It returns *Error when any violation was
// recorded, or the first non-validation error raised by a check.
func (p *Pipeline) Run(ctx context.Context) error {
	failed := make(map[string]bool)
	var all []Violation
	for _, s := range p.steps {
		vs, err := s.run(ctx, failed)
		if err != nil {
			return err
		}
		for _, v := range vs {
			if failed[v.Field] {
				continue
			}
			failed[v.Field] = true
			all = append(all, v)
		}
	}
	if len(all) > 0 {
		return &Error{Violations: all}
	}
	return nil
}
