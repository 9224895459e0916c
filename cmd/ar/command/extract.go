package command

import (
	"fmt"

	"github.com/meigma/ar"
)

const (
	ExtractDescription = "Extract every member of an archive"
	ExtractHelp        = ExtractDescription + "\n\n" +
		"Members are written under the destination directory using their\n" +
		"stored names. A member whose payload is cut short by the end of the\n" +
		"archive is written as far as it goes and reported as a warning;\n" +
		"extraction then continues with the next member."
)

// Extract represents the `extract` command of the ar cli tool.
type Extract struct {
	common

	Directory    string `short:"C" long:"directory" default:"." description:"Destination directory"`
	SkipExisting bool   `long:"skip-existing" description:"Leave existing files untouched instead of replacing them"`
	PreserveMode bool   `long:"preserve-mode" description:"Apply the permission bits stored in each header"`

	Args struct {
		Archive string `positional-arg-name:"archive"`
	} `positional-args:"yes" required:"yes"`
}

// Execute extracts the archive, it honors the go-flags.Commander interface.
func (c *Extract) Execute(args []string) error {
	logger, err := c.logger()
	if err != nil {
		return err
	}
	ctx, stop := c.context()
	defer stop()

	a, err := c.open(ctx, c.Args.Archive, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.BuildIndex(); err != nil {
		return err
	}

	stats, err := a.ExtractAll(ctx, c.Directory,
		ar.ExtractWithSkipExisting(c.SkipExisting),
		ar.ExtractWithPreserveMode(c.PreserveMode),
	)
	if err != nil {
		return err
	}
	for _, w := range stats.Warnings {
		logger.Warn("incomplete member", "error", w)
	}
	logger.Info("extracted",
		"archive", c.Args.Archive,
		"files", stats.FileCount,
		"bytes", stats.TotalBytes,
		"skipped", stats.Skipped,
	)
	if stats.Skipped > 0 {
		_, err = fmt.Fprintf(c.stdout(), "skipped %d existing file(s)\n", stats.Skipped)
	}
	return err
}
