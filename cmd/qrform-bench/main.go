// Command qrform-bench measures build latency of the in-process pipeline.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-qrform/internal/config"
	"github.com/goliatone/go-qrform/internal/logging"
	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/dispatcher"
	"github.com/goliatone/go-qrform/pkg/style"
)

// samples are representative requests keyed by type.
var samples = map[content.TypeID]content.Values{
	content.Text:        {"text": "The quick brown fox jumps over the lazy dog"},
	content.Link:        {"url": "https://example.com/products/42?ref=qr"},
	content.Email:       {"email": "team@example.com", "subject": "Hello", "body": "Sent from a QR code"},
	content.Phone:       {"phone": "+14155550100"},
	content.SMS:         {"phone": "+14155550100", "message": "Meet at the lobby"},
	content.Geolocation: {"latitude": "48.8584", "longitude": "2.2945"},
	content.WiFi:        {"ssid": "Office", "encryption": "WPA", "password": "s3cr3t;pass", "hidden": false},
	content.VCard:       {"firstName": "Ada", "lastName": "Lovelace", "phone": "+441234567", "email": "ada@example.com"},
}

type options struct {
	requests    int
	concurrency int
	typeName    string
	in          string
	jsonOut     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "qrform-bench: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var opts options
	fs := flag.NewFlagSet("qrform-bench", flag.ContinueOnError)
	fs.IntVar(&opts.requests, "n", 1000, "number of builds")
	fs.IntVar(&opts.concurrency, "c", 8, "concurrent builds")
	fs.StringVar(&opts.typeName, "type", "text", "content type to build when -in is empty")
	fs.StringVar(&opts.in, "in", "", "JSON build request file")
	fs.BoolVar(&opts.jsonOut, "json", false, "print the summary as JSON")
	cfg.BindEncoderFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.requests < 1 || opts.concurrency < 1 {
		return fmt.Errorf("-n and -c must be positive")
	}

	req, err := loadRequest(opts)
	if err != nil {
		return err
	}
	raster, err := cfg.Encoder.Raster()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.AppEnv, os.Stderr)
	disp := dispatcher.New(raster, dispatcher.WithLogger(logger))

	// Fail fast on a request that can never build.
	if _, err := disp.Build(ctx, req); err != nil {
		return err
	}

	summary, err := bench(ctx, disp, req, opts.requests, opts.concurrency)
	if err != nil {
		return err
	}
	if opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	summary.Print(out)
	return nil
}

func loadRequest(opts options) (dispatcher.Request, error) {
	if opts.in != "" {
		f, err := os.Open(opts.in)
		if err != nil {
			return dispatcher.Request{}, err
		}
		defer f.Close()
		return dispatcher.DecodeRequest(f, style.DefaultPalettes())
	}
	id, err := content.ParseTypeID(opts.typeName)
	if err != nil {
		return dispatcher.Request{}, err
	}
	return dispatcher.Request{Type: id, Values: samples[id], Style: style.Default()}, nil
}

// recorder collects latencies in microseconds.
type recorder struct {
	mu       sync.Mutex
	hist     *hdrhistogram.Histogram
	bytes    int64
	failures int64
}

func newRecorder() *recorder {
	// 1us to 60s at 3 significant figures.
	return &recorder{hist: hdrhistogram.New(1, 60_000_000, 3)}
}

func (r *recorder) record(elapsed time.Duration, size int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.failures++
		return
	}
	us := elapsed.Microseconds()
	if us < 1 {
		us = 1
	}
	_ = r.hist.RecordValue(us)
	r.bytes += int64(size)
}

// Summary is the outcome of one bench run. Latencies are in milliseconds.
type Summary struct {
	Type        string        `json:"type"`
	Requests    int64         `json:"requests"`
	Failures    int64         `json:"failures"`
	Concurrency int           `json:"concurrency"`
	Duration    time.Duration `json:"duration"`
	Throughput  float64       `json:"builds_per_second"`
	MeanBytes   float64       `json:"mean_bytes"`
	P50         float64       `json:"p50_ms"`
	P90         float64       `json:"p90_ms"`
	P99         float64       `json:"p99_ms"`
	Max         float64       `json:"max_ms"`
}

func (r *recorder) summary(id content.TypeID, concurrency int, duration time.Duration) Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	if duration <= 0 {
		duration = time.Millisecond
	}
	ok := r.hist.TotalCount()
	s := Summary{
		Type:        id.String(),
		Requests:    ok + r.failures,
		Failures:    r.failures,
		Concurrency: concurrency,
		Duration:    duration,
		Throughput:  float64(ok) / duration.Seconds(),
		P50:         float64(r.hist.ValueAtPercentile(50)) / 1000.0,
		P90:         float64(r.hist.ValueAtPercentile(90)) / 1000.0,
		P99:         float64(r.hist.ValueAtPercentile(99)) / 1000.0,
		Max:         float64(r.hist.Max()) / 1000.0,
	}
	if ok > 0 {
		s.MeanBytes = float64(r.bytes) / float64(ok)
	}
	return s
}

// Print writes a human readable report.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "type:        %s\n", s.Type)
	fmt.Fprintf(w, "builds:      %d (%d failed, concurrency %d)\n", s.Requests, s.Failures, s.Concurrency)
	fmt.Fprintf(w, "duration:    %s\n", s.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "throughput:  %.1f builds/s\n", s.Throughput)
	fmt.Fprintf(w, "image size:  %.0f bytes avg\n", s.MeanBytes)
	fmt.Fprintln(w, strings.Repeat("-", 32))
	fmt.Fprintf(w, "p50 %8.3f ms\n", s.P50)
	fmt.Fprintf(w, "p90 %8.3f ms\n", s.P90)
	fmt.Fprintf(w, "p99 %8.3f ms\n", s.P99)
	fmt.Fprintf(w, "max %8.3f ms\n", s.Max)
}

type builder interface {
	Build(ctx context.Context, req dispatcher.Request) (dispatcher.Result, error)
}

func bench(ctx context.Context, b builder, req dispatcher.Request, n, concurrency int) (Summary, error) {
	rec := newRecorder()
	var g errgroup.Group
	g.SetLimit(concurrency)

	start := time.Now()
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			t0 := time.Now()
			res, err := b.Build(ctx, req)
			rec.record(time.Since(t0), len(res.Data), err)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	return rec.summary(req.Type, concurrency, time.Since(start)), nil
}
