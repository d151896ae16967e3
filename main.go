package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/denizsincar29/goerror"
	"golang.org/x/term"

	"go-piano/audio"
	"go-piano/config"
	"go-piano/debug"
	"go-piano/synth"
	"go-piano/theme"
	"go-piano/tui"
)

func main() {
	mute := flag.Bool("mute", false, "run without an audio device")
	debugLog := flag.Bool("debug", false, "write ~/.config/go-piano/debug.log")
	toneMs := flag.Int("tone", 0, "tone length in milliseconds (overrides config)")
	save := flag.Bool("save", false, "write the effective settings to the config file and exit")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	e := goerror.NewError(logger)

	cfg, err := config.Load()
	e.Must(err, "Failed to load config")

	if *toneMs != 0 {
		cfg.Audio.ToneMs = *toneMs
	}
	if *mute {
		cfg.Audio.Mute = true
	}
	if *debugLog {
		cfg.Debug = true
	}
	e.Must(cfg.Validate(), "Invalid settings")

	if *save {
		e.Must(cfg.Save(), "Failed to save config")
		path, _ := config.ConfigPath()
		fmt.Printf("Saved %s\n", path)
		return
	}

	if err := requireTerminal(os.Stdin); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func requireTerminal(f *os.File) error {
	if !term.IsTerminal(int(f.Fd())) {
		return errors.New("go-piano needs an interactive terminal")
	}
	return nil
}

// run owns the debug log, the audio sink and the program. Errors are
// returned so deferred teardown runs before the process exits.
func run(cfg *config.Config, logger *slog.Logger) error {
	if cfg.Debug {
		if dir, err := config.ConfigDir(); err == nil {
			if err := debug.Enable(dir); err != nil {
				logger.Warn("debug log unavailable", "error", err)
			}
		}
		defer debug.Disable()
	}

	palette := theme.DefaultPalette()
	if cfg.UI.Palette != "" {
		var err error
		palette, err = theme.LoadGPL(cfg.UI.Palette)
		if err != nil {
			return fmt.Errorf("load palette: %w", err)
		}
	}
	th := theme.New(palette)

	// The audio device is required unless the user asked for silence
	var sink audio.Sink
	if cfg.Audio.Mute {
		sink = audio.NewHeadlessKeep(synth.SampleRate, 1)
	} else {
		otoSink, err := audio.NewOtoSink(synth.SampleRate, cfg.Audio.Workers)
		if err != nil {
			return fmt.Errorf("open audio device: %w", err)
		}
		sink = otoSink
	}

	debug.Log("main", "starting: tone=%dms workers=%d mute=%v", cfg.Audio.ToneMs, cfg.Audio.Workers, cfg.Audio.Mute)

	m := tui.NewModel(sink, th, time.Duration(cfg.Audio.ToneMs)*time.Millisecond)
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, runErr := p.Run()

	// Let tones already sounding finish before the process exits
	if err := sink.Close(); err != nil {
		debug.Log("audio", "close: %v", err)
	}
	return runErr
}
