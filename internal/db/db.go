package db

import (
	"context"
	"errors"

	"github.com/sidereusnuntius/gofinger/internal/webfinger"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

//go:generate mockgen -destination=../mocks/db.go -package=mocks . DB
type DB interface {
	Descriptors
}

// Descriptors stores the JRD documents a server answers with, keyed by subject.
type Descriptors interface {
	// GetDescriptor returns the descriptor whose subject or one of whose aliases is resource.
	GetDescriptor(ctx context.Context, resource string) (webfinger.Response, error)
	// PutDescriptor inserts the descriptor, replacing any stored descriptor with the same subject. Fails
	// with ErrConflict if one of its aliases already belongs to another subject.
	PutDescriptor(ctx context.Context, descriptor webfinger.Response) error
	DeleteDescriptor(ctx context.Context, subject string) error
	// ListSubjects returns every stored subject in lexical order.
	ListSubjects(ctx context.Context) ([]string, error)
}
