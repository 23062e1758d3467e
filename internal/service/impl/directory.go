package impl

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gofinger/internal/service"
	"github.com/sidereusnuntius/gofinger/internal/validate"
	"github.com/sidereusnuntius/gofinger/internal/webfinger"
)

func (s *DirectoryService) Resolve(ctx context.Context, req webfinger.Request) (webfinger.Response, error) {
	descriptor, err := s.DB.GetDescriptor(ctx, req.Resource())
	if err != nil {
		return webfinger.Response{}, err
	}
	return webfinger.FilterRels(descriptor, req.Rels()), nil
}

func (s *DirectoryService) Publish(ctx context.Context, descriptor webfinger.Response) error {
	if err := validate.Descriptor(descriptor); err != nil {
		return fmt.Errorf("%w: %w", service.ErrInvalidInput, err)
	}

	unlock := s.locks.Lock(descriptor.Subject)
	if unlock == nil {
		return errors.New("lock failed")
	}
	defer unlock()

	if err := s.DB.PutDescriptor(ctx, descriptor); err != nil {
		return err
	}
	log.Debug().Str("subject", descriptor.Subject).Int("links", len(descriptor.Links)).Msg("published descriptor")
	return nil
}

func (s *DirectoryService) AddLink(ctx context.Context, subject string, link webfinger.Link) error {
	if err := validate.Link(link, 0); err != nil {
		return fmt.Errorf("%w: %w", service.ErrInvalidInput, err)
	}

	return s.modify(ctx, subject, func(d *webfinger.Response) bool {
		d.Links = append(d.Links, link)
		return true
	})
}

func (s *DirectoryService) AddAlias(ctx context.Context, subject, alias string) error {
	if alias == "" {
		return fmt.Errorf("%w: empty alias", service.ErrInvalidInput)
	}

	return s.modify(ctx, subject, func(d *webfinger.Response) bool {
		if slices.Contains(d.Aliases, alias) {
			return false
		}
		d.Aliases = append(d.Aliases, alias)
		return true
	})
}

// modify loads the descriptor stored under subject, applies f and stores the result if f reports a
// change. Lookups by alias are not allowed here, the subject must match exactly.
func (s *DirectoryService) modify(ctx context.Context, subject string, f func(d *webfinger.Response) bool) error {
	unlock := s.locks.Lock(subject)
	if unlock == nil {
		return errors.New("lock failed")
	}
	defer unlock()

	descriptor, err := s.DB.GetDescriptor(ctx, subject)
	if err != nil {
		return err
	}
	if descriptor.Subject != subject {
		return fmt.Errorf("%w: %s is an alias of %s", service.ErrInvalidInput, subject, descriptor.Subject)
	}

	if !f(&descriptor) {
		return nil
	}
	return s.DB.PutDescriptor(ctx, descriptor)
}

func (s *DirectoryService) Remove(ctx context.Context, subject string) error {
	unlock := s.locks.Lock(subject)
	if unlock == nil {
		return errors.New("lock failed")
	}
	defer unlock()

	return s.DB.DeleteDescriptor(ctx, subject)
}

func (s *DirectoryService) Subjects(ctx context.Context) ([]string, error) {
	return s.DB.ListSubjects(ctx)
}
