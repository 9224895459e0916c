package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/meigma/ar/cmd/ar/command"
)

const (
	name = "ar"
)

var (
	version = "undefined"
	build   = "undefined"
)

func main() {
	parser := flags.NewNamedParser(name, flags.Default)

	parser.AddCommand("list", command.ListDescription, command.ListHelp,
		&command.List{})

	parser.AddCommand("extract", command.ExtractDescription, command.ExtractHelp,
		&command.Extract{})

	parser.AddCommand("create", command.CreateDescription, command.CreateHelp,
		&command.Create{})

	parser.AddCommand("index", command.IndexDescription, command.IndexHelp,
		&command.Index{})

	parser.AddCommand("verify", command.VerifyDescription, command.VerifyHelp,
		&command.Verify{})

	parser.AddCommand("version", command.VersionDescription, command.VersionHelp,
		&command.Version{
			Name:    name,
			Version: version,
			Build:   build,
		})

	_, err := parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrCommandRequired {
			parser.WriteHelp(os.Stdout)
		}

		os.Exit(1)
	}
}
