package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gofinger/internal/service"
)

var CLI struct {
	Verbose bool   `short:"v" help:"Log requests and responses"`
	Config  string `short:"c" help:"Server configuration file, for the commands that edit the descriptor database"`

	Fetch   FetchCmd   `cmd:"" help:"Fetch a webfinger resource"`
	Publish PublishCmd `cmd:"" help:"Store descriptors from a JSON file"`
	Alias   AliasCmd   `cmd:"" help:"Add an alias to a stored descriptor"`
	Link    LinkCmd    `cmd:"" help:"Add a link to a stored descriptor"`
	Remove  RemoveCmd  `cmd:"" help:"Delete a stored descriptor"`
	List    ListCmd    `cmd:"" help:"List the subjects of the stored descriptors"`
}

func main() {
	appCtx := context.Background()

	// The database is only opened by commands that take a service.Directory.
	closeDB := func() error { return nil }
	ctx := kong.Parse(&CLI,
		kong.Name("webfinger"),
		kong.Description("WebFinger (RFC 7033) command-line client and descriptor editor"),
		kong.UsageOnError(),
		kong.BindTo(appCtx, (*context.Context)(nil)),
		kong.BindToProvider(func() (service.Directory, error) {
			dir, closer, err := openDirectory(CLI.Config)
			if err != nil {
				return nil, err
			}
			closeDB = closer
			return dir, nil
		}),
	)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if CLI.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	err := ctx.Run()
	if cerr := closeDB(); cerr != nil {
		log.Error().Err(cerr).Msg("failed to close database")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
