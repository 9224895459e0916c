package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/meigma/ar"
	arhttp "github.com/meigma/ar/http"
	"github.com/meigma/ar/internal/blockcache"
)

// common holds the options shared by every archive command.
type common struct {
	LogLevel  string `long:"log-level" env:"AR_LOG_LEVEL" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"warn" description:"logging level"`
	MaxEntry  int64  `long:"max-entry-size" env:"AR_MAX_ENTRY_SIZE" description:"Reject members whose header claims more than this many bytes, 0 disables the limit"`
	BlockSize int64  `long:"block-size" env:"AR_BLOCK_SIZE" default:"65536" description:"Size of the blocks fetched from remote archives"`

	// Stdout receives command output. It defaults to os.Stdout.
	Stdout io.Writer
	// Stderr receives log output. It defaults to os.Stderr.
	Stderr io.Writer
}

func (c *common) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

func (c *common) logger() (*slog.Logger, error) {
	var level slog.Level
	if c.LogLevel != "" {
		if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
			return nil, fmt.Errorf("cannot parse log level: %w", err)
		}
	} else {
		level = slog.LevelWarn
	}
	w := c.Stderr
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// context returns a context canceled on interrupt.
func (c *common) context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// open opens a local archive or, for http and https locations, a remote one
// read with range requests through a block cache.
func (c *common) open(ctx context.Context, location string, logger *slog.Logger) (*ar.Archive, error) {
	opts := []ar.Option{ar.WithLogger(logger), ar.WithMaxEntrySize(c.MaxEntry)}
	if isRemote(location) {
		src, err := arhttp.NewSource(ctx, location)
		if err != nil {
			return nil, err
		}
		var cacheOpts []blockcache.Option
		if c.BlockSize > 0 {
			cacheOpts = append(cacheOpts, blockcache.WithBlockSize(c.BlockSize))
		}
		cached, err := blockcache.New(src, src.Size(), cacheOpts...)
		if err != nil {
			return nil, err
		}
		return ar.OpenReaderAt(cached, cached.Size(), opts...), nil
	}
	return ar.Open(location, opts...)
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
