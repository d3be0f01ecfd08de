package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/drainplan/pkg/layout"
	"github.com/matzehuels/drainplan/pkg/render/sink"
)

// runCLI executes the root command with args against an isolated cache.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	_, err := captureCLI(t, args...)
	return err
}

// captureCLI is runCLI returning the status output.
func captureCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(envRedisAddr, "")

	var out bytes.Buffer
	prevOut, prevErr := stdout, stderr
	stdout, stderr = &out, io.Discard
	defer func() { stdout, stderr = prevOut, prevErr }()

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "svg"},
		{"svg", "svg"},
		{"SVG, png ,,json", "svg,png,json"},
	}
	for _, tt := range tests {
		if got := strings.Join(parseFormats(tt.in), ","); got != tt.want {
			t.Errorf("parseFormats(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "", defaultOutputBase},
		{"out/frame.svg", "", "out/frame"},
		{"out/frame", "", "out/frame"},
		{"out/frame.v2", "", "out/frame.v2"},
		{"", "north.layout.json", "north"},
		{"", "plans/north.json", "plans/north"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	single := outputPaths("frame.image", "", []string{"svg"})
	if single["svg"] != "frame.image" {
		t.Errorf("single format should keep -o as given, got %q", single["svg"])
	}

	multi := outputPaths("out/frame.svg", "", []string{"svg", "json"})
	if multi["svg"] != "out/frame.svg" || multi["json"] != "out/frame.json" {
		t.Errorf("outputPaths() = %v", multi)
	}
}

func TestLayoutCommand(t *testing.T) {
	out, err := captureCLI(t, "layout")
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	for _, want := range []string{"0.16", "0.64", "1.09", "1.54", "1.99", "2.44", "2.89", "4 mullions", "7 drainage"} {
		if !strings.Contains(out, want) {
			t.Errorf("layout output missing %q:\n%s", want, out)
		}
	}
}

func TestLayoutCommandJSON(t *testing.T) {
	out, err := captureCLI(t, "layout", "--json", "--name", "south")
	if err != nil {
		t.Fatalf("layout --json error: %v", err)
	}
	l, err := sink.ParseJSON([]byte(out))
	if err != nil {
		t.Fatalf("ParseJSON: %v\n%s", err, out)
	}
	if len(l.Drainage) != 5 || len(l.Mullions) != 4 {
		t.Errorf("layout --json = %+v", l)
	}
}

func TestSummaryLine(t *testing.T) {
	l := layout.Layout{
		Mullions:   []float64{1, 2},
		Drainage:   []float64{0.5, 1.5, 2.5},
		Iterations: 16,
		Violations: []layout.Violation{{}},
	}
	got := summaryLine(l, true)
	for _, want := range []string{"2 mullions", "3 drainage", "not converged after 16 iterations", "1 violations", "cached"} {
		if !strings.Contains(got, want) {
			t.Errorf("summaryLine() = %q, missing %q", got, want)
		}
	}

	l.Converged, l.Violations = true, nil
	got = summaryLine(l, false)
	if strings.Contains(got, "converged") || strings.Contains(got, "violations") || !strings.Contains(got, "fresh") {
		t.Errorf("summaryLine() = %q", got)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "north")

	err := runCLI(t, "render", "-o", base, "-f", "svg,json", "--length", "2.4", "--mullions", "2", "--name", "north")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Error("svg output is not an SVG document")
	}

	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	l, err := sink.ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if l.Params.Length != 2.4 || len(l.Mullions) != 2 {
		t.Errorf("layout params not applied: %+v", l.Params)
	}
}

func TestRenderFromLayout(t *testing.T) {
	dir := t.TempDir()
	layoutPath := filepath.Join(dir, "north.layout.json")

	if err := runCLI(t, "layout", "-o", layoutPath); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	if err := runCLI(t, "render", "--from", layoutPath, "-f", "txt"); err != nil {
		t.Fatalf("render --from error: %v", err)
	}

	out, err := os.ReadFile(filepath.Join(dir, "north.txt"))
	if err != nil {
		t.Fatalf("read txt: %v", err)
	}
	if !strings.Contains(string(out), "drainage") {
		t.Errorf("text output misses drainage rows:\n%s", out)
	}
}

func TestRenderFromRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	layoutPath := filepath.Join(dir, "north.json")

	if err := runCLI(t, "layout", "-o", layoutPath); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	if err := runCLI(t, "render", "--from", layoutPath, "-f", "json"); err == nil {
		t.Error("render should refuse to overwrite its input")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := [][]string{
		{"render", "-f", "gif"},
		{"render", "--strategy", "random"},
		{"render", "--mullions", "0"},
		{"render", "--from", "missing.json"},
		{"layout", "--min-spacing", "0.9"},
	}
	for _, args := range tests {
		if err := runCLI(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	frames := filepath.Join(dir, "frames.toml")
	content := `
length = 2.4

[output]
formats = ["json"]

[[frame]]
name = "north"

[[frame]]
name = "door"
mullion_count = 1
`
	if err := os.WriteFile(frames, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "plans")
	if err := runCLI(t, "batch", frames, "-o", out, "-j", "2"); err != nil {
		t.Fatalf("batch error: %v", err)
	}

	for _, name := range []string{"north.json", "door.json"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestBatchCommandFailingFrame(t *testing.T) {
	dir := t.TempDir()
	frames := filepath.Join(dir, "frames.toml")
	content := `
[[frame]]
name = "ok"

[[frame]]
name = "broken"
strategy = "random"
`
	if err := os.WriteFile(frames, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := runCLI(t, "batch", frames, "-o", dir); err == nil {
		t.Error("batch with an invalid frame should fail")
	}
}

func TestCacheClear(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv(envRedisAddr, "")

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs([]string{"layout", "--json"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("layout error: %v", err)
	}

	entries, _ := os.ReadDir(filepath.Join(cacheHome, appName))
	if len(entries) == 0 {
		t.Fatal("layout should populate the cache")
	}

	root = c.RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	entries, _ = os.ReadDir(filepath.Join(cacheHome, appName))
	if len(entries) != 0 {
		t.Errorf("cache not empty after clear: %d entries", len(entries))
	}
}

func TestCompleteFormats(t *testing.T) {
	got, _ := completeFormats(nil, nil, "")
	if strings.Join(got, ",") != "svg,png,pdf,json,txt" {
		t.Errorf("completeFormats(\"\") = %v", got)
	}

	got, _ = completeFormats(nil, nil, "svg,pn")
	for _, c := range got {
		if !strings.HasPrefix(c, "svg,") {
			t.Errorf("completion %q lost the typed prefix", c)
		}
		if c == "svg,svg" {
			t.Error("completion repeats an already listed format")
		}
	}
}

func TestRegisterCompletions(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	render, _, err := root.Find([]string{"render"})
	if err != nil {
		t.Fatalf("Find(render) error: %v", err)
	}
	for _, name := range []string{"strategy", "edge-policy", "target", "clamp", "format"} {
		if _, ok := render.GetFlagCompletionFunc(name); !ok {
			t.Errorf("render --%s has no completion", name)
		}
	}
}
