package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/apodwall/apodwall/pkg/apod"
	"github.com/apodwall/apodwall/pkg/caption/fonts"
	"github.com/apodwall/apodwall/pkg/destination"
	"github.com/apodwall/apodwall/pkg/errors"
)

type fakeFetcher struct {
	entry       *apod.Entry
	entryErr    error
	payload     []byte
	downloadErr error
	downloaded  string
}

func (f *fakeFetcher) FetchEntry(ctx context.Context, date string) (*apod.Entry, error) {
	return f.entry, f.entryErr
}

func (f *fakeFetcher) Download(ctx context.Context, url string) ([]byte, error) {
	f.downloaded = url
	return f.payload, f.downloadErr
}

func pngPayload(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 160, 120))
	for y := 0; y < 120; y++ {
		for x := 0; x < 160; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 40, B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func imageEntry() *apod.Entry {
	return &apod.Entry{
		Date:        "2026-08-29",
		Title:       "The Veil Nebula",
		Explanation: "Wisps of an ancient supernova drift across Cygnus.",
		MediaType:   "image",
		URL:         "https://example.com/veil.jpg",
		HDURL:       "https://example.com/veil_hd.jpg",
	}
}

func newTestRunner(f Fetcher, dir string) *Runner {
	return NewRunner(f, fonts.Fixed{}, destination.NewResolver(nil), quietLogger(), dir, "")
}

func TestRunSavesCaptionedImage(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeFetcher{entry: imageEntry(), payload: pngPayload(t)}

	result, err := newTestRunner(fetcher, dir).Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if result.Skipped {
		t.Error("Skipped = true, want false")
	}
	want := filepath.Join(dir, "2026-08-29.jpg")
	if result.OutputPath != want {
		t.Errorf("OutputPath = %q, want %q", result.OutputPath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("output file missing: %v", err)
	}
	if fetcher.downloaded != "https://example.com/veil_hd.jpg" {
		t.Errorf("downloaded %q, want the hdurl", fetcher.downloaded)
	}
}

func TestRunDatelessEntryKeyedOnRequestedDate(t *testing.T) {
	dir := t.TempDir()
	entry := imageEntry()
	entry.Date = ""
	fetcher := &fakeFetcher{entry: entry, payload: pngPayload(t)}
	r := NewRunner(fetcher, fonts.Fixed{}, destination.NewResolver(nil), quietLogger(), dir, "2026-02-03")

	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	want := filepath.Join(dir, "2026-02-03.jpg")
	if result.OutputPath != want {
		t.Errorf("OutputPath = %q, want %q", result.OutputPath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestRunSkipsVideoDay(t *testing.T) {
	dir := t.TempDir()
	entry := imageEntry()
	entry.MediaType = "video"
	entry.URL = "https://example.com/clip"
	fetcher := &fakeFetcher{entry: entry}

	result, err := newTestRunner(fetcher, dir).Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v, skip must not be a failure", err)
	}

	if !result.Skipped {
		t.Error("Skipped = false, want true")
	}
	if result.MediaType != "video" {
		t.Errorf("MediaType = %q", result.MediaType)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("skip wrote %d files, want none", len(entries))
	}
}

func TestRunPropagatesFetchError(t *testing.T) {
	fetcher := &fakeFetcher{entryErr: errors.New(errors.ErrCodeNetwork, "no route")}

	_, err := newTestRunner(fetcher, t.TempDir()).Run(context.Background())
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Fatalf("err = %v, want NETWORK_ERROR", err)
	}
}

func TestRunPropagatesDownloadError(t *testing.T) {
	fetcher := &fakeFetcher{
		entry:       imageEntry(),
		downloadErr: errors.New(errors.ErrCodeUpstream, "status 503"),
	}

	_, err := newTestRunner(fetcher, t.TempDir()).Run(context.Background())
	if !errors.Is(err, errors.ErrCodeUpstream) {
		t.Fatalf("err = %v, want UPSTREAM_ERROR", err)
	}
}

func TestRunUndecodablePayload(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeFetcher{entry: imageEntry(), payload: []byte("not an image")}

	_, err := newTestRunner(fetcher, dir).Run(context.Background())
	if !errors.Is(err, errors.ErrCodeDecode) {
		t.Fatalf("err = %v, want DECODE_ERROR", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("failed run wrote %d files, want none", len(entries))
	}
}

func TestRunUntranslatablePath(t *testing.T) {
	fetcher := &fakeFetcher{entry: imageEntry(), payload: pngPayload(t)}
	r := NewRunner(fetcher, fonts.Fixed{}, &destination.Resolver{Rules: destination.Rules{}}, quietLogger(), `Q:\nowhere`, "")

	_, err := r.Run(context.Background())
	if !errors.Is(err, errors.ErrCodePathTranslation) {
		t.Fatalf("err = %v, want PATH_TRANSLATION_ERROR", err)
	}
}
