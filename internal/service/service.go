package service

import (
	"context"
	"errors"

	"github.com/sidereusnuntius/gofinger/internal/webfinger"
)

var ErrInvalidInput = errors.New("invalid")

// Directory answers WebFinger requests from the stored descriptors and manages them.
type Directory interface {
	// Resolve returns the descriptor of the requested resource, matched by subject or alias, with its
	// links restricted to the requested rels. Fails with db.ErrNotFound for unknown resources.
	Resolve(ctx context.Context, req webfinger.Request) (webfinger.Response, error)
	// Publish validates and stores a descriptor, replacing the previous one with the same subject.
	Publish(ctx context.Context, descriptor webfinger.Response) error
	// AddLink appends a link to an existing descriptor.
	AddLink(ctx context.Context, subject string, link webfinger.Link) error
	// AddAlias adds an alias to an existing descriptor; adding an alias twice is a no-op.
	AddAlias(ctx context.Context, subject, alias string) error
	Remove(ctx context.Context, subject string) error
	Subjects(ctx context.Context) ([]string, error)
}
