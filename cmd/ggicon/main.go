// Command ggicon renders the MMV application icon to a PNG or SVG file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/gogpu/ggicon"
)

// settings holds environment defaults. Flags override them.
type settings struct {
	Preset  string `env:"GGICON_PRESET" envDefault:"fixed"`
	Config  string `env:"GGICON_CONFIG"`
	Output  string `env:"GGICON_OUTPUT" envDefault:"icon.png"`
	Size    int    `env:"GGICON_SIZE"`
	Verbose bool   `env:"GGICON_VERBOSE"`
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		log.Fatalf("ggicon: %v", err)
	}
}

func run(args []string, stderr io.Writer) error {
	var s settings
	if err := env.Parse(&s); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("ggicon", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&s.Preset, "preset", s.Preset,
		"built-in icon ("+strings.Join(ggicon.PresetNames(), ", ")+")")
	fs.StringVar(&s.Config, "config", s.Config, "TOML icon description (overrides -preset)")
	fs.StringVar(&s.Output, "output", s.Output, "output file (.png or .svg)")
	fs.IntVar(&s.Size, "size", s.Size, "canvas size in pixels (0 keeps the icon's size)")
	fs.BoolVar(&s.Verbose, "v", s.Verbose, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelWarn
	if s.Verbose {
		level = slog.LevelDebug
	}
	ggicon.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	icon, err := load(s)
	if err != nil {
		return err
	}
	if s.Size != 0 {
		icon = icon.Scaled(s.Size)
		icon.Size = s.Size
	}

	save := ggicon.Save
	if strings.EqualFold(filepath.Ext(s.Output), ".svg") {
		save = ggicon.SaveSVG
	}
	if err := save(s.Output, icon); err != nil {
		return err
	}

	log.Printf("Icon saved to %s (%dx%d)\n", s.Output, icon.Size, icon.Size)
	return nil
}

func load(s settings) (ggicon.Icon, error) {
	if s.Config != "" {
		return ggicon.LoadConfig(s.Config)
	}
	return ggicon.Preset(s.Preset)
}
