package pusher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// BroadcastResult contains the results of a TriggerMany call
type BroadcastResult struct {
	Requested int
	Delivered []string
	Failed    []ChunkError
}

// Err joins the chunk failures, or returns nil when every chunk went through
func (r *BroadcastResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failed))
	for i := range r.Failed {
		errs[i] = r.Failed[i]
	}
	return errors.Join(errs...)
}

// ChunkError contains information about a chunk that could not be triggered
type ChunkError struct {
	Channels []string
	Err      error
}

// Error implements the error interface
func (e ChunkError) Error() string {
	return fmt.Sprintf("failed to trigger on %d channels (%s...): %v", len(e.Channels), e.Channels[0], e.Err)
}

func (e ChunkError) Unwrap() error {
	return e.Err
}

// TriggerMany publishes an event on any number of channels by splitting them into
// chunks of MaxChannelsPerEvent and triggering the chunks concurrently.
// A failed chunk does not stop the others; check BroadcastResult.Failed.
func (c *Client) TriggerMany(ctx context.Context, ev Event) (*BroadcastResult, error) {
	channels, err := uniqueChannels(ev.Channels)
	if err != nil {
		return nil, err
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: an event needs at least one channel", ErrInvalidArgument)
	}

	result := &BroadcastResult{Requested: len(channels)}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.fanOutLimit)

	var mu sync.Mutex

	for _, chunk := range chunkChannels(channels, MaxChannelsPerEvent) {
		g.Go(func() error {
			part := ev
			part.Channels = chunk

			_, err := c.Trigger(ctx, part)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				c.logger.Debug().
					Err(err).
					Str("event", ev.Name).
					Str("channels", strings.Join(chunk, ",")).
					Msg("Failed to trigger chunk")
				result.Failed = append(result.Failed, ChunkError{Channels: chunk, Err: err})
				return nil // keep going with other chunks
			}
			result.Delivered = append(result.Delivered, chunk...)
			return nil
		})
	}

	// goroutines never return an error
	_ = g.Wait()

	return result, nil
}

// chunkChannels splits channels into slices of at most size entries
func chunkChannels(channels []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(channels); start += size {
		end := min(start+size, len(channels))
		chunks = append(chunks, channels[start:end])
	}
	return chunks
}
