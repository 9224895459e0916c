package command

import (
	"bytes"
	"errors"
	"os"
)

const (
	IndexDescription = "Save a snapshot of an archive's member list"
	IndexHelp        = IndexDescription + "\n\n" +
		"The snapshot is a FlatBuffers file recording every header together\n" +
		"with the archive size and digest. 'ar list --index' reads it back and\n" +
		"refuses it if the archive has changed since."
)

// Index represents the `index` command of the ar cli tool.
type Index struct {
	common

	Output string `short:"o" long:"output" description:"Snapshot path, defaults to the archive path with an .idx suffix"`

	Args struct {
		Archive string `positional-arg-name:"archive"`
	} `positional-args:"yes" required:"yes"`
}

// Execute writes the snapshot, it honors the go-flags.Commander interface.
func (c *Index) Execute(args []string) error {
	logger, err := c.logger()
	if err != nil {
		return err
	}
	ctx, stop := c.context()
	defer stop()

	output := c.Output
	if output == "" {
		if isRemote(c.Args.Archive) {
			return errors.New("--output is required for remote archives")
		}
		output = c.Args.Archive + ".idx"
	}

	a, err := c.open(ctx, c.Args.Archive, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.BuildIndex(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := a.SaveIndex(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil { //nolint:gosec // snapshots are not secret
		return err
	}
	logger.Info("index written", "archive", c.Args.Archive, "output", output, "members", len(a.Entries()))
	return nil
}
