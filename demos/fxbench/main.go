// fxbench runs every built-in preset headless for a fixed number of frames
// and writes per-frame counters as CSV, one file per preset. It needs no
// window, so it is handy for comparing modifier costs between commits.
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/phanxgames/ember"
	"github.com/phanxgames/ember/telemetry"
)

// sizedTexture stands in for a real image; nothing is drawn.
type sizedTexture struct{}

func (sizedTexture) Bounds() image.Rectangle { return image.Rect(0, 0, 16, 16) }

func main() {
	frames := flag.Int("frames", 600, "frames to simulate per preset")
	outDir := flag.String("out", "fxbench-out", "directory for CSV output")
	burst := flag.Int("burst", 200, "particles burst every second into presets with no spawn rate")
	debug := flag.Bool("debug", false, "log emitter stats every frame")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	ember.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*frames, *burst, *outDir, *debug); err != nil {
		fmt.Fprintln(os.Stderr, "fxbench:", err)
		os.Exit(1)
	}
}

func run(frames, burst int, outDir string, debug bool) error {
	presets, err := ember.DefaultPresets()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	textures := []ember.Texture{sizedTexture{}}
	for _, name := range presets.Names() {
		p := presets[name]
		p.Debug = debug
		fx, err := p.Build(textures)
		if err != nil {
			return err
		}

		rec := telemetry.NewRecorder(name)
		const dt = 1.0 / 60
		for i := range frames {
			if fx.Config().SpawnRate == 0 && i%60 == 0 {
				fx.Burst(burst)
			}
			start := time.Now()
			fx.Update(dt)
			rec.Record(fx.Stats(), nil, time.Since(start))
		}

		if err := writeCSV(filepath.Join(outDir, name+".csv"), rec); err != nil {
			return err
		}
		ember.Logger().Info("fxbench: preset done", "preset", name, "summary", rec.Summary())
	}
	return nil
}

func writeCSV(path string, rec *telemetry.Recorder) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if err := rec.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
