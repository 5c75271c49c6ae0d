// Package prompt defines the questions nodestarter asks and the answers it collects.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

type (
	Kind byte

	// Answers is the flat key-value result of a prompt session. It is never mutated after
	// collection; [Answers.With] returns a copy.
	Answers struct {
		values map[string]string
	}

	// Question describes one prompt. Message, Default and When see the answers collected so far.
	Question struct {
		Key      string
		Kind     Kind
		Message  func(Answers) string
		Default  func(Answers) string
		When     func(Answers) bool
		Validate func(string) error
		Choices  []string
	}

	// Collector runs a sequence of questions.
	Collector interface {
		Ask(ctx context.Context, questions []Question) (Answers, error)
	}

	// Defaults answers every visible question with its default value, for non-interactive runs.
	// Seed values win over defaults.
	Defaults struct {
		Seed map[string]string
	}
)

const (
	Input Kind = iota
	Select
	Confirm
)

const (
	Yes = "yes"
	No  = "no"
)

var (
	ErrAborted = errors.New("prompt aborted")
	ErrInvalid = errors.New("invalid answer")
)

func NewAnswers(values map[string]string) Answers {
	return Answers{values: maps.Clone(values)}
}

func (a Answers) String(key string) string {
	return a.values[key]
}

// Bool reports whether the answer at key is an affirmative confirm answer.
func (a Answers) Bool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(a.values[key])) {
	case Yes, "y", "true":
		return true
	default:
		return false
	}
}

func (a Answers) Has(key string) bool {
	_, ok := a.values[key]

	return ok
}

// List splits a comma or whitespace separated answer.
func (a Answers) List(key string) []string {
	return strings.FieldsFunc(a.values[key], func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func (a Answers) With(key, value string) Answers {
	values := maps.Clone(a.values)
	if values == nil {
		values = make(map[string]string, 1)
	}

	values[key] = value

	return Answers{values: values}
}

func (a Answers) Keys() []string {
	return slices.Sorted(maps.Keys(a.values))
}

func (a Answers) Map() map[string]string {
	return maps.Clone(a.values)
}

func (q Question) Visible(a Answers) bool {
	return q.When == nil || q.When(a)
}

func (q Question) Prompt(a Answers) string {
	if q.Message == nil {
		return q.Key
	}

	return q.Message(a)
}

func (q Question) DefaultValue(a Answers) string {
	if q.Default == nil {
		if q.Kind == Select && len(q.Choices) > 0 {
			return q.Choices[0]
		}

		return ""
	}

	return q.Default(a)
}

// Check runs the question's validator and, for select questions, checks membership in Choices.
// Non-nil returned error wraps [ErrInvalid].
func (q Question) Check(value string) error {
	if q.Kind == Select && len(q.Choices) > 0 && !slices.Contains(q.Choices, value) {
		return fmt.Errorf("%w: %q is not one of %s", ErrInvalid, value, strings.Join(q.Choices, ", "))
	}

	if q.Kind == Confirm && value != Yes && value != No {
		return fmt.Errorf("%w: %q is neither %q nor %q", ErrInvalid, value, Yes, No)
	}

	if q.Validate == nil {
		return nil
	}

	if err := q.Validate(value); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err.Error())
	}

	return nil
}

// Ask implements [Collector].
// Non-nil returned error wraps [ErrInvalid] when a default does not pass validation.
func (d Defaults) Ask(ctx context.Context, questions []Question) (Answers, error) {
	answers := NewAnswers(nil)

	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return answers, err
		}

		if !q.Visible(answers) {
			continue
		}

		value, ok := d.Seed[q.Key]
		if !ok {
			value = q.DefaultValue(answers)
		}

		if err := q.Check(value); err != nil {
			return answers, fmt.Errorf("question %q: %w", q.Key, err)
		}

		answers = answers.With(q.Key, value)
	}

	return answers, nil
}
