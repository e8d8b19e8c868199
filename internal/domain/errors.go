package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched with errors.Is for every missing change or schema
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when creating something whose name is taken
var ErrAlreadyExists = errors.New("already exists")

// Kinds of named things that can be missing or duplicated
const (
	KindChange = "Change"
	KindSchema = "Schema"
)

// NotFoundError names the missing entity
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFound builds a NotFoundError
func NewNotFound(kind, name string) error {
	return &NotFoundError{Kind: kind, Name: name}
}

// ExistsError names the entity that is already present
type ExistsError struct {
	Kind string
	Name string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.Name)
}

func (e *ExistsError) Unwrap() error {
	return ErrAlreadyExists
}

// NewExists builds an ExistsError
func NewExists(kind, name string) error {
	return &ExistsError{Kind: kind, Name: name}
}
