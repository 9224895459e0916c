package command

import (
	"github.com/meigma/ar"
)

const (
	CreateDescription = "Create an archive from files"
	CreateHelp        = CreateDescription + "\n\n" +
		"Each source becomes one member, in the order given. The member name\n" +
		"is the source path as written, which must fit in 16 bytes; use\n" +
		"--base-name to store only the file name."
)

// Create represents the `create` command of the ar cli tool.
type Create struct {
	common

	BaseName bool `short:"b" long:"base-name" description:"Store only the last element of each source path"`

	Args struct {
		Archive string   `positional-arg-name:"archive"`
		Sources []string `positional-arg-name:"source" required:"1"`
	} `positional-args:"yes" required:"yes"`
}

// Execute writes the archive, it honors the go-flags.Commander interface.
func (c *Create) Execute(args []string) error {
	logger, err := c.logger()
	if err != nil {
		return err
	}
	ctx, stop := c.context()
	defer stop()

	return ar.CreateFromSources(ctx, c.Args.Archive, c.Args.Sources,
		ar.PackWithBaseName(c.BaseName),
		ar.PackWithLogger(logger.With("archive", c.Args.Archive)),
	)
}
