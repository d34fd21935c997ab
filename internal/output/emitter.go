package output

import (
	"fmt"
	"io"
	"log/slog"

	"steamfeeds/internal/domain"
	"steamfeeds/internal/ports"
)

// NoFeedsMessage is printed when nothing survives the pipeline.
const NoFeedsMessage = "No feeds found."

// Emitter writes feeds as plain URLs or, with an encoder, as one document.
type Emitter struct {
	out     io.Writer
	diag    io.Writer
	encoder func() ports.Encoder
	logger  *slog.Logger
}

var _ ports.Emitter = (*Emitter)(nil)

// NewEmitter writes results to out and the empty-result notice to diag.
// A nil encoder selects newline-delimited URLs.
func NewEmitter(out, diag io.Writer, encoder func() ports.Encoder, log *slog.Logger) *Emitter {
	return &Emitter{out: out, diag: diag, encoder: encoder, logger: log}
}

// Emit renders feeds in order. An empty list is not an error.
func (e *Emitter) Emit(feeds []domain.FeedCandidate) error {
	if len(feeds) == 0 {
		_, err := fmt.Fprintln(e.diag, NoFeedsMessage)
		return err
	}

	if e.encoder == nil {
		for _, feed := range feeds {
			if _, err := fmt.Fprintln(e.out, feed.URL); err != nil {
				return fmt.Errorf("write url: %w", err)
			}
		}
		return nil
	}

	enc := e.encoder()
	for _, feed := range feeds {
		enc.Add(feed.Title(), feed.URL)
	}
	if e.logger != nil {
		e.logger.Debug("encoding document", "feeds", len(feeds))
	}
	return enc.Encode(e.out)
}
