package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/drainplan/pkg/cache"
	"github.com/matzehuels/drainplan/pkg/errors"
	"github.com/matzehuels/drainplan/pkg/profile"
)

// memCache is a map-backed cache that counts writes.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"txt", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestSortFormats(t *testing.T) {
	got := SortFormats([]string{"json", "bogus", "svg", "json", "txt"})
	want := []string{"svg", "json", "txt"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("SortFormats() = %v, want %v", got, want)
	}
}

func TestContentType(t *testing.T) {
	for format := range ValidFormats {
		if ContentType(format) == "" {
			t.Errorf("ContentType(%q) is empty", format)
		}
	}
	if ContentType("gif") != "" {
		t.Error("ContentType(gif) should be empty")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %f, got %f", DefaultHeight, opts.Height)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	opts := Options{Params: profile.Params{Length: 3, MaxSpacing: 0.65, MinSpacing: 0.45, MullionCount: 2}}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatalf("ValidateForLayout() error: %v", err)
	}
	if opts.Params.Strategy != profile.StrategyEdgeSymmetric {
		t.Errorf("Strategy should default to %s, got %s", profile.StrategyEdgeSymmetric, opts.Params.Strategy)
	}

	opts = Options{Params: profile.Default(), MaxIterations: -1}
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative MaxIterations: got %v, want INVALID_INPUT", err)
	}

	opts = Options{Params: profile.Params{Length: -1}}
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("negative length: got %v, want INVALID_CONFIGURATION", err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Params: profile.Default()}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalFormats := strings.Join(opts.Formats, ",")
	originalWidth := opts.Width

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if strings.Join(opts.Formats, ",") != originalFormats {
		t.Error("Formats changed on second call")
	}
	if opts.Width != originalWidth {
		t.Error("Width changed on second call")
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	a := (&Options{}).LayoutKeyOpts()
	b := (&Options{MaxIterations: 16}).LayoutKeyOpts()
	if a != b {
		t.Errorf("default and explicit iteration bound should share a key: %+v vs %+v", a, b)
	}
}

func TestArtifactKeyOptsIgnoresUnusedSettings(t *testing.T) {
	a := Options{Title: "north", Width: 900}
	b := Options{Title: "south", Width: 1200}
	if a.ArtifactKeyOpts(FormatText) != b.ArtifactKeyOpts(FormatText) {
		t.Error("text artifacts should not depend on title or width")
	}
	if a.ArtifactKeyOpts(FormatSVG) == b.ArtifactKeyOpts(FormatSVG) {
		t.Error("svg artifacts should depend on title and width")
	}
}

func TestRender(t *testing.T) {
	l, err := ComputeLayout(Options{Params: profile.Default()})
	if err != nil {
		t.Fatalf("ComputeLayout() error: %v", err)
	}

	artifacts, err := Render(l, Options{Formats: []string{"svg", "json", "txt", "svg"}, Name: "north"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if len(artifacts) != 3 {
		t.Errorf("Render() produced %d artifacts, want 3", len(artifacts))
	}
	if !bytes.HasPrefix(artifacts["svg"], []byte("<svg")) {
		t.Error("svg artifact is not an SVG document")
	}
	if !bytes.Contains(artifacts["json"], []byte(`"name": "north"`)) {
		t.Errorf("json artifact misses the frame name:\n%s", artifacts["json"])
	}

	if _, err := Render(l, Options{Formats: []string{"gif"}}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(gif) error = %v, want INVALID_FORMAT", err)
	}
}

func TestRunnerExecute(t *testing.T) {
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)
	ctx := context.Background()
	opts := Options{Params: profile.Default(), Formats: []string{"svg", "json"}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss the cache: %+v", first.CacheInfo)
	}
	if first.Stats.Drainage != 7 || first.Stats.Mullions != 4 {
		t.Errorf("Stats = %+v, want 4 mullions and 7 drainage points", first.Stats)
	}
	if first.LayoutHash == "" {
		t.Error("LayoutHash is empty")
	}
	if mc.sets != 3 {
		t.Errorf("cache writes = %d, want 3 (layout + 2 artifacts)", mc.sets)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if second.LayoutHash != first.LayoutHash {
		t.Error("cached layout hashes differently")
	}
	if !bytes.Equal(second.Artifacts["svg"], first.Artifacts["svg"]) {
		t.Error("cached svg differs from rendered svg")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh should bypass the cache: %+v", third.CacheInfo)
	}
}

func TestRunnerPartialRenderHit(t *testing.T) {
	r := NewRunner(newMemCache(), nil, nil)
	ctx := context.Background()

	l, err := r.Layout(ctx, Options{Params: profile.Default()})
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	if _, err := r.Render(ctx, l, Options{Formats: []string{"svg"}}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	artifacts, hit, err := r.RenderWithCacheInfo(ctx, l, Options{Formats: []string{"svg", "txt"}})
	if err != nil {
		t.Fatalf("RenderWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("partial hit reported as full hit")
	}
	if len(artifacts) != 2 {
		t.Errorf("artifacts = %d, want 2", len(artifacts))
	}
}

func TestRunnerFileCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := NewRunner(fc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "test:"), nil)
	defer r.Close()

	ctx := context.Background()
	p := profile.Default()
	p.MinSpacing = 0.6
	opts := Options{Params: p, Formats: []string{"txt"}}
	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !res.CacheInfo.LayoutHit {
		t.Error("second run should hit the file cache")
	}
	if len(res.Layout.Violations) != 1 {
		t.Errorf("cached layout lost violations: %v", res.Layout.Violations)
	}
}

func TestRunnerInvalidParams(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	p := profile.Default()
	p.MinSpacing = 1
	_, err := r.Execute(context.Background(), Options{Params: p})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Execute() error = %v, want INVALID_CONFIGURATION", err)
	}
}

func TestBatch(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	bad := profile.Default()
	bad.Strategy = "random"
	jobs := []Job{
		{ID: "north", Options: Options{Params: profile.Default(), Formats: []string{"json"}}},
		{Options: Options{Params: bad}},
		{Options: Options{Params: profile.Params{Length: 2.2, MullionCount: 1, MaxSpacing: 0.65, MinSpacing: 0.45}}},
	}

	results, err := r.Batch(context.Background(), jobs, 2)
	if err != nil {
		t.Fatalf("Batch() error: %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("Batch() returned %d results, want %d", len(results), len(jobs))
	}

	if results[0].Job.ID != "north" || results[0].Err != nil || results[0].Result == nil {
		t.Errorf("job 0 = %+v, want success with ID north", results[0])
	}
	if results[1].Job.ID == "" {
		t.Error("job 1 should get a generated ID")
	}
	if !errors.Is(results[1].Err, errors.ErrCodeInvalidStrategy) {
		t.Errorf("job 1 error = %v, want INVALID_STRATEGY", results[1].Err)
	}
	if results[2].Err != nil {
		t.Errorf("job 2 error = %v", results[2].Err)
	}
}

func TestBatchCancelled(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := r.Batch(ctx, []Job{{Options: Options{Params: profile.Default()}}}, 1)
	if err == nil {
		t.Fatal("Batch() with cancelled context should fail")
	}
	if results[0].Err == nil {
		t.Error("job should record the cancellation")
	}
}
