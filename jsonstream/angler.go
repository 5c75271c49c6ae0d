package jsonstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Angler walks a JSON stream token by token down a dotted key path, e.g. ".repository.url",
// without decoding the parts of the document it does not need.
type Angler struct {
	dec         *json.Decoder
	keys        []string
	currentPath strings.Builder
}

var (
	ErrPathNotFound = errors.New("JSON path not found")
)

func isObjectStart(t json.Token) bool {
	d, ok := t.(json.Delim)

	return ok && d == '{'
}

func isStartingDelim(t json.Token) bool {
	d, ok := t.(json.Delim)

	return ok && (d == '{' || d == '[')
}

func isEndingDelim(t json.Token) bool {
	d, ok := t.(json.Delim)

	return ok && (d == '}' || d == ']')
}

func NewAngler(stream io.Reader, path string) (*Angler, error) {
	if !strings.HasPrefix(path, ".") {
		return nil, errors.New(`path must start with the dot character "."`)
	}

	if strings.HasSuffix(path, ".") {
		return nil, errors.New(`path must not end with the dot character "."`)
	}

	return &Angler{dec: json.NewDecoder(stream), keys: strings.Split(path, ".")[1:]}, nil
}

// Land returns the scalar at the end of the path.
// Non-nil returned error wraps [ErrPathNotFound] when some key on the path is absent.
func (a *Angler) Land(ctx context.Context) (value any, err error) {
	a.currentPath.WriteString(".")

	for _, key := range a.keys {
		if err = a.toKey(ctx, key); err != nil {
			return nil, err
		}
	}

	t, err := a.dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read the value at path %q: %w", a.currentPath.String(), err)
	}

	if d, ok := t.(json.Delim); ok {
		return nil, fmt.Errorf("the value at path %q is the delimiter %v, not a scalar", a.currentPath.String(), d)
	}

	return t, nil
}

// LandString is Land for values that must be strings.
func (a *Angler) LandString(ctx context.Context) (string, error) {
	v, err := a.Land(ctx)
	if err != nil {
		return "", err
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("the value at path %q is not a string", a.currentPath.String())
	}

	return s, nil
}

func (a *Angler) toKey(ctx context.Context, key string) (err error) {
	t, err := a.dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read JSON token: %w", err)
	}

	if !isObjectStart(t) {
		return fmt.Errorf("the value at path %q is not a JSON object", a.currentPath.String())
	}

	if a.currentPath.Len() > 1 {
		a.currentPath.WriteString(".")
	}

	a.currentPath.WriteString(key)

	done := ctx.Done()

	// depth of nesting below the object we are scanning
	level := 0
	// whether the next level-zero token is a key
	expectKey := true

	for {
		select {
		case <-done:
			return fmt.Errorf("stopped looking for %q: %w", a.currentPath.String(), context.Cause(ctx))
		default:
		}

		if t, err = a.dec.Token(); err != nil {
			return fmt.Errorf("failed to read JSON token: %w", err)
		}

		switch {
		case isStartingDelim(t):
			level += 1
		case isEndingDelim(t) && level == 0:
			return fmt.Errorf("%w: %q", ErrPathNotFound, a.currentPath.String())
		case isEndingDelim(t):
			level -= 1
		}

		if level > 0 || isStartingDelim(t) || isEndingDelim(t) {
			if level == 0 {
				expectKey = true
			}

			continue
		}

		if expectKey {
			if s, ok := t.(string); ok && s == key {
				return nil
			}

			expectKey = false

			continue
		}

		expectKey = true
	}
}
