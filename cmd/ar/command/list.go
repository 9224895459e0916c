package command

import (
	"fmt"
	"os"

	"github.com/meigma/ar"
)

const (
	ListDescription = "List the members of an archive"
	ListHelp        = ListDescription + "\n\n" +
		"Prints the name, timestamp, owner, group, mode, size and payload\n" +
		"offset of every member in archive order. The archive may be a local\n" +
		"path or an http(s) URL served with range support."
)

// List represents the `list` command of the ar cli tool.
type List struct {
	common

	Digest bool   `long:"digest" description:"Print the sha256 digest and name of each member instead"`
	Index  string `short:"i" long:"index" description:"Read the member list from a snapshot written by 'ar index' instead of scanning"`

	Args struct {
		Archive string `positional-arg-name:"archive"`
	} `positional-args:"yes" required:"yes"`
}

// Execute lists the archive members, it honors the go-flags.Commander
// interface.
func (c *List) Execute(args []string) error {
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

	if c.Index != "" {
		if err := useSnapshot(a, c.Index); err != nil {
			return err
		}
	} else if err := a.BuildIndex(); err != nil {
		return err
	}

	if !c.Digest {
		return a.List(c.stdout())
	}
	for _, e := range a.Entries() {
		dg, err := a.Digest(e)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(c.stdout(), "%s  %s\n", dg, e.TrimmedName()); err != nil {
			return err
		}
	}
	return nil
}

func useSnapshot(a *ar.Archive, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	snap, err := ar.LoadIndex(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := a.UseSnapshot(snap); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
