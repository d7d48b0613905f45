// Package pipeline orchestrates the fetch → compose → deliver run.
package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/apodwall/apodwall/pkg/apod"
	"github.com/apodwall/apodwall/pkg/caption"
	"github.com/apodwall/apodwall/pkg/caption/fonts"
	"github.com/apodwall/apodwall/pkg/destination"
)

// Fetcher is the upstream collaborator: entry metadata plus media bytes.
// *apod.Client satisfies it; tests substitute fakes.
type Fetcher interface {
	FetchEntry(ctx context.Context, date string) (*apod.Entry, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// Stats records per-stage durations for one run.
type Stats struct {
	FetchTime   time.Duration
	ComposeTime time.Duration
	DeliverTime time.Duration
}

// Result is the outcome of one run. Skipped means the day's media was not
// an image, which is a defined no-op rather than a failure.
type Result struct {
	Skipped    bool
	MediaType  string
	Title      string
	OutputPath string
	Stats      Stats
}

// Runner executes the pipeline once. It is stateless across runs; each
// invocation is independent.
type Runner struct {
	Fetcher  Fetcher
	Loader   fonts.Loader
	Resolver *destination.Resolver
	Logger   *log.Logger

	SaveDir string // configured directory, possibly foreign notation
	Date    string // YYYY-MM-DD override, empty means today
}

// NewRunner wires a runner from its collaborators.
// A nil logger falls back to log.Default().
func NewRunner(f Fetcher, loader fonts.Loader, resolver *destination.Resolver, logger *log.Logger, saveDir, date string) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Fetcher:  f,
		Loader:   loader,
		Resolver: resolver,
		Logger:   logger,
		SaveDir:  saveDir,
		Date:     date,
	}
}

// Run performs one fetch-and-render pass. Any stage failure aborts the
// run; a non-image day returns a skipped Result and a nil error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	// Stage 1: fetch
	fetchStart := time.Now()
	entry, err := r.Fetcher.FetchEntry(ctx, r.Date)
	if err != nil {
		return nil, err
	}
	result.MediaType = entry.MediaType
	result.Title = entry.Title

	if !entry.IsImage() {
		result.Skipped = true
		result.Stats.FetchTime = time.Since(fetchStart)
		r.Logger.Info("media is not an image, nothing to do today",
			"date", entry.Date,
			"media_type", entry.MediaType)
		return result, nil
	}

	data, err := r.Fetcher.Download(ctx, entry.ImageURL())
	if err != nil {
		return nil, err
	}
	result.Stats.FetchTime = time.Since(fetchStart)
	r.Logger.Info("fetched entry",
		"date", entry.Date,
		"title", entry.Title,
		"bytes", len(data),
		"duration", result.Stats.FetchTime.Round(time.Millisecond))

	// Stage 2: compose
	composeStart := time.Now()
	composed, bounds, err := caption.Compose(data, entry.Explanation, r.Loader)
	if err != nil {
		return nil, err
	}
	result.Stats.ComposeTime = time.Since(composeStart)
	r.Logger.Info("composited caption",
		"width", bounds.Dx(),
		"height", bounds.Dy(),
		"duration", result.Stats.ComposeTime.Round(time.Millisecond))

	// Stage 3: deliver
	deliverStart := time.Now()
	// Some responses omit the date field; key the file name on the
	// requested date, or today, rather than producing ".jpg".
	dateKey := entry.Date
	if dateKey == "" {
		dateKey = r.Date
	}
	if dateKey == "" {
		dateKey = time.Now().Format("2006-01-02")
	}
	target, err := r.Resolver.Resolve(r.SaveDir, dateKey)
	if err != nil {
		return nil, err
	}
	if err := destination.Write(target, composed); err != nil {
		return nil, err
	}
	result.OutputPath = target
	result.Stats.DeliverTime = time.Since(deliverStart)
	r.Logger.Info("saved image",
		"path", target,
		"duration", result.Stats.DeliverTime.Round(time.Millisecond))

	return result, nil
}
