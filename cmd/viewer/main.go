package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/leterax/go-fpcam/internal/config"
	"github.com/leterax/go-fpcam/pkg/render"
)

func init() {
	// This is needed to ensure that OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Camera settings file (YAML); defaults are used when empty")
	watch := flag.Bool("watch", false, "Reload the settings file when it changes")
	mode := flag.String("mode", "", "Override the camera mode: first_person, arc_ball or fixed")
	width := flag.Int("width", 800, "Window width")
	height := flag.Int("height", 600, "Window height")
	title := flag.String("title", "Camera Viewer", "Window title")
	vsync := flag.Bool("vsync", true, "Enable vsync")
	printConfig := flag.Bool("print-config", false, "Print the effective settings as YAML and exit")
	flag.Parse()

	settings := config.Default()
	if *configPath != "" {
		var err error
		settings, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load camera settings: %v", err)
		}
	}
	if *mode != "" {
		settings.Mode = *mode
		if err := settings.Validate(); err != nil {
			log.Fatalf("Invalid -mode: %v", err)
		}
	}

	if *printConfig {
		data, err := settings.Marshal()
		if err != nil {
			log.Fatalf("Failed to encode settings: %v", err)
		}
		if _, err := os.Stdout.Write(data); err != nil {
			log.Fatalf("Failed to write settings: %v", err)
		}
		return
	}

	renderer, err := render.NewRenderer(render.Options{
		Width:      *width,
		Height:     *height,
		Title:      *title,
		VSync:      *vsync,
		ConfigPath: *configPath,
		Watch:      *watch,
	}, settings)
	if err != nil {
		log.Fatalf("Failed to initialize renderer: %v", err)
	}

	log.Printf("Controls: left drag look, right drag pan, scroll dolly, arrows move, M next camera, C capture mouse, Esc quit")
	renderer.Run()
}
