package runner

import (
	"bufio"
	"context"
	"io"
	"log/slog"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// ChannelSource adapts an already-open channel of trees to SnapshotSource.
// The producer owns the channel and must close it when done.
type ChannelSource struct {
	C <-chan *domain.Node
}

func (s ChannelSource) Snapshots(ctx context.Context) (<-chan *domain.Node, error) {
	return s.C, nil
}

// JSONLSource replays captured trees from a stream of newline-delimited
// JSON documents, one tree per line. Used by the CLI to run recorded
// capture sessions through the pipeline. Malformed lines are logged and
// skipped so one bad capture does not end the replay.
type JSONLSource struct {
	R      io.Reader
	Logger *slog.Logger
}

func (s JSONLSource) Snapshots(ctx context.Context) (<-chan *domain.Node, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	out := make(chan *domain.Node)
	go func() {
		defer close(out)

		scanner := bufio.NewScanner(s.R)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

		line := 0
		for scanner.Scan() {
			line++
			raw := scanner.Bytes()
			if len(raw) == 0 {
				continue
			}
			root, err := domain.DecodeTree(raw)
			if err != nil {
				logger.Warn("skipping malformed snapshot", "line", line, "err", err)
				continue
			}
			select {
			case out <- root:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Error("snapshot stream read failed", "err", err)
		}
	}()

	return out, nil
}
