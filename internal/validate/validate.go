package validate

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/sidereusnuntius/gofinger/internal/webfinger"
)

// Descriptor checks what a server must not publish: a subject that is not an absolute URI, empty
// aliases, links without a relation type and titles without a language.
func Descriptor(d webfinger.Response) error {
	var errs = []error{}

	errs = append(errs, Subject(d.Subject))

	for i, alias := range d.Aliases {
		if alias == "" {
			errs = append(errs, fmt.Errorf("alias %d: empty", i))
		}
	}

	for i, link := range d.Links {
		errs = append(errs, Link(link, i))
	}

	return errors.Join(errs...)
}

func Subject(subject string) error {
	if subject == "" {
		return errors.New("empty subject")
	}
	u, err := url.Parse(subject)
	if err != nil {
		return fmt.Errorf("subject: %w", err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("subject %q is not an absolute URI", subject)
	}
	return nil
}

func Link(l webfinger.Link, i int) error {
	var errs = []error{}
	if l.Rel == "" {
		errs = append(errs, fmt.Errorf("link %d: %w", i, webfinger.ErrInvalidRel))
	}
	for j, title := range l.Titles {
		if title.Language == "" {
			errs = append(errs, fmt.Errorf("link %d: title %d: empty language", i, j))
		}
	}
	return errors.Join(errs...)
}
