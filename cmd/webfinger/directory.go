package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/sidereusnuntius/gofinger/internal/config"
	dbimpl "github.com/sidereusnuntius/gofinger/internal/db/impl"
	"github.com/sidereusnuntius/gofinger/internal/initialization"
	"github.com/sidereusnuntius/gofinger/internal/service"
	serviceimpl "github.com/sidereusnuntius/gofinger/internal/service/impl"
	"github.com/sidereusnuntius/gofinger/internal/webfinger"
)

// The commands below edit the descriptor database of a gofinger server. They use the same
// configuration file and environment as the server.

type PublishCmd struct {
	File string `arg:"" type:"existingfile" help:"JSON array of JRD documents to store"`

	out io.Writer `kong:"-"`
}

func (p *PublishCmd) Run(ctx context.Context, dir service.Directory) error {
	n, err := initialization.Seed(ctx, dir, p.File)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(writer(p.out), "published %d descriptors\n", n)
	return err
}

type AliasCmd struct {
	Subject string `arg:"" help:"Subject of the descriptor"`
	Alias   string `arg:"" help:"URI to add as an alias"`
}

func (a *AliasCmd) Run(ctx context.Context, dir service.Directory) error {
	return dir.AddAlias(ctx, a.Subject, a.Alias)
}

type LinkCmd struct {
	Subject      string            `arg:"" help:"Subject of the descriptor"`
	Rel          string            `arg:"" help:"Link relation type"`
	Href         string            `help:"Target URI of the link"`
	Type         string            `help:"Media type of the target"`
	Title        map[string]string `help:"Title of the link, as language=value; repeat for several"`
	Property     map[string]string `help:"Link property, as uri=value; repeat for several"`
	NullProperty []string          `name:"null-property" help:"Link property whose value is null"`
}

func (l *LinkCmd) Run(ctx context.Context, dir service.Directory) error {
	return dir.AddLink(ctx, l.Subject, l.link())
}

func (l *LinkCmd) link() webfinger.Link {
	b := webfinger.NewLinkBuilder(webfinger.Rel(l.Rel)).Href(l.Href).Type(l.Type)
	for _, lang := range slices.Sorted(maps.Keys(l.Title)) {
		b.Title(lang, l.Title[lang])
	}
	for k, v := range l.Property {
		b.Property(k, v)
	}
	for _, k := range l.NullProperty {
		b.NullProperty(k)
	}
	return b.Build()
}

type RemoveCmd struct {
	Subject string `arg:"" help:"Subject of the descriptor to delete"`
}

func (r *RemoveCmd) Run(ctx context.Context, dir service.Directory) error {
	return dir.Remove(ctx, r.Subject)
}

type ListCmd struct {
	out io.Writer `kong:"-"`
}

func (l *ListCmd) Run(ctx context.Context, dir service.Directory) error {
	subjects, err := dir.Subjects(ctx)
	if err != nil {
		return err
	}
	out := writer(l.out)
	for _, s := range subjects {
		if _, err = fmt.Fprintln(out, s); err != nil {
			return err
		}
	}
	return nil
}

// openDirectory opens the database named by the configuration, running migrations first when the
// configuration asks for it.
func openDirectory(path string) (service.Directory, func() error, error) {
	var (
		cfg config.Configuration
		err error
	)
	if path != "" {
		cfg, err = config.ReadConfigFile(path)
	} else {
		cfg, err = config.ReadConfig()
	}
	if err != nil {
		return nil, nil, err
	}

	d, err := initialization.OpenDB(cfg.DbUrl)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Setup {
		if err = initialization.SetupDB(d, cfg.MigrationsFolder, cfg.DbUrl); err != nil {
			d.Close()
			return nil, nil, err
		}
	}
	return serviceimpl.New(dbimpl.New(d)), d.Close, nil
}

func writer(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
