package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-light-simulator/pkg/core"
	"github.com/df07/go-light-simulator/pkg/display"
	"github.com/df07/go-light-simulator/pkg/scene"
	"github.com/df07/go-light-simulator/pkg/simulator"
	"github.com/df07/go-light-simulator/pkg/surface"
)

func main() {
	sceneType := flag.String("scene", "default", "Scene type: 'default' or 'prism'")
	workers := flag.Int("workers", 2, "Number of tracer threads")
	segments := flag.Int("segments", 20000, "Light segments to trace per frame")
	width := flag.Int("width", 800, "Output width in pixels")
	height := flag.Int("height", 800, "Output height in pixels")
	live := flag.Bool("live", false, "Open an interactive window instead of rendering a PNG")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Light Ray Simulator")
		fmt.Println("Usage: lightsim [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  default - Emitter with a mirror wall, a diffuse block and a glass circle")
		fmt.Println("  prism   - White emitter shining through a glass triangle")
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene_type>/frame_<timestamp>.png")
		return
	}

	config := simulator.DefaultConfig()
	config.NumTracers = *workers
	config.SegmentBudget = *segments

	if *live {
		app := display.NewApp(*width, *height, config, core.NewStdoutLogger())
		if err := app.Run("Light Ray Simulator"); err != nil {
			fmt.Printf("Error running window: %v\n", err)
			os.Exit(1)
		}
		return
	}

	selectedScene, err := createScene(*sceneType)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Tracing %d segments with %d workers...\n", *segments, *workers)

	target := surface.NewCPUSurface(*width, *height, core.NewVec2(-50, -50), core.NewVec2(50, 50))
	sim := simulator.New(target, config, core.NewStdoutLogger())

	startTime := time.Now()
	sim.Reset(selectedScene)

	// Wait for the pool to drain the snapshot's budget; Stop then blocks
	// until in-flight jobs have committed.
	for sim.PendingWork() > 0 {
		time.Sleep(time.Millisecond)
	}
	sim.Stop()
	traceTime := time.Since(startTime)

	fmt.Printf("Trace completed in %v (%d segments committed)\n", traceTime, target.SegmentCount())

	filename, err := savePNG(target, *sceneType)
	if err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Frame saved as %s\n", filename)
}

// createScene builds one of the built-in demo scenes by name
func createScene(sceneType string) (*scene.Scene, error) {
	switch sceneType {
	case "default":
		return scene.NewDefaultScene(), nil
	case "prism":
		return scene.NewPrismScene(), nil
	default:
		return nil, fmt.Errorf("unknown scene type: %s", sceneType)
	}
}

// savePNG rasterizes the surface and writes it under output/<sceneType>/
func savePNG(target *surface.CPUSurface, sceneType string) (string, error) {
	outputDir := filepath.Join("output", sceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("frame_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, target.Image()); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}
