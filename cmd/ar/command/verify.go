package command

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

const (
	VerifyDescription = "Check that archives are well formed and complete"
	VerifyHelp        = VerifyDescription + "\n\n" +
		"Each archive is indexed and every member payload is read and hashed,\n" +
		"so a corrupt header or a member cut short is reported. Several\n" +
		"archives are checked in parallel; each one is read by a single worker."
)

// Verify represents the `verify` command of the ar cli tool.
type Verify struct {
	common

	Jobs int `short:"j" long:"jobs" default:"4" description:"Number of archives checked at the same time"`

	Args struct {
		Archives []string `positional-arg-name:"archive" required:"1"`
	} `positional-args:"yes" required:"yes"`
}

type verifyResult struct {
	members int
	bytes   int64
	err     error
}

// Execute verifies every archive and prints one line per archive, it honors
// the go-flags.Commander interface.
func (c *Verify) Execute(args []string) error {
	logger, err := c.logger()
	if err != nil {
		return err
	}
	ctx, stop := c.context()
	defer stop()

	results := make([]verifyResult, len(c.Args.Archives))
	var g errgroup.Group
	g.SetLimit(max(c.Jobs, 1))
	for i, location := range c.Args.Archives {
		g.Go(func() error {
			results[i] = c.verify(ctx, location, logger)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers record failures in results

	failed := 0
	for i, location := range c.Args.Archives {
		r := results[i]
		if r.err != nil {
			failed++
			fmt.Fprintf(c.stdout(), "%s: FAILED: %v\n", location, r.err)
			continue
		}
		fmt.Fprintf(c.stdout(), "%s: OK (%d members, %d bytes)\n", location, r.members, r.bytes)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d archives failed verification", failed, len(c.Args.Archives))
	}
	return nil
}

func (c *Verify) verify(ctx context.Context, location string, logger *slog.Logger) verifyResult {
	a, err := c.open(ctx, location, logger)
	if err != nil {
		return verifyResult{err: err}
	}
	defer a.Close()

	if err := a.BuildIndex(); err != nil {
		return verifyResult{err: err}
	}
	var r verifyResult
	for _, e := range a.Entries() {
		if err := ctx.Err(); err != nil {
			return verifyResult{err: err}
		}
		dg, err := a.Digest(e)
		if err != nil {
			return verifyResult{err: err}
		}
		logger.Debug("member verified", "archive", location, "name", e.TrimmedName(), "digest", dg)
		r.members++
		r.bytes += e.Size
	}
	return r
}
