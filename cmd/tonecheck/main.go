package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/denizsincar29/goerror"

	"go-piano/audio"
	"go-piano/keymap"
	"go-piano/synth"
	"go-piano/widgets"
)

const defaultToneMs = 500

var e = goerror.NewError(slog.New(slog.NewTextHandler(os.Stderr, nil)))

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "keys":
		listKeys()
	case "tone":
		playTone(os.Args[2:])
	case "scale":
		playScale()
	case "dump":
		dumpTone(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Println(usageText())
}

func usageText() string {
	rows := keymap.Octaves()
	return "Tone Check\n\n" + widgets.RenderKeyHelp([]widgets.KeySection{
		{Title: "Commands", Keys: []widgets.KeyBinding{
			{Key: "keys", Desc: "List the key to note table"},
			{Key: "tone <key> [ms]", Desc: "Play one key through the audio device"},
			{Key: "scale", Desc: "Play all keys in pitch order"},
			{Key: "dump <key> [ms]", Desc: "Print tone statistics without playing"},
		}},
		{Title: "Keys", Keys: []widgets.KeyBinding{
			{Key: string(rows[0]), Desc: "C4-B4"},
			{Key: string(rows[1]), Desc: "C5-G5"},
		}},
	})
}

func listKeys() {
	fmt.Println("=== Key Map ===")
	for _, k := range keymap.Keys() {
		color := "white"
		if k.Black {
			color = "black"
		}
		fmt.Printf("  %c  %-4s %3d  %7.2f Hz  %s\n", k.Char, k.Name, k.Note, k.Frequency, color)
	}
}

// parseArgs reads "<key> [ms]"
func parseArgs(args []string) (keymap.Key, int, bool) {
	if len(args) < 1 || len([]rune(args[0])) != 1 {
		fmt.Println("expected a single key, e.g. 'a'")
		return keymap.Key{}, 0, false
	}
	k, ok := keymap.Lookup([]rune(args[0])[0])
	if !ok {
		fmt.Printf("%q is not a note key\n", args[0])
		return keymap.Key{}, 0, false
	}

	ms := defaultToneMs
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v <= 0 {
			fmt.Printf("bad duration %q\n", args[1])
			return keymap.Key{}, 0, false
		}
		ms = v
	}
	return k, ms, true
}

func dumpTone(args []string) {
	k, ms, ok := parseArgs(args)
	if !ok {
		return
	}

	buf, err := synth.GenerateTone(k.Frequency, ms)
	e.Must(err, "Failed to generate tone")

	fmt.Printf("%c %s %.2f Hz\n", k.Char, k.Name, k.Frequency)
	fmt.Printf("  samples:  %d @ %d Hz\n", len(buf.Samples), buf.SampleRate)
	fmt.Printf("  duration: %v\n", buf.Duration())
	fmt.Printf("  peak:     %.4f\n", buf.Peak())
}

func playTone(args []string) {
	k, ms, ok := parseArgs(args)
	if !ok {
		return
	}

	sink := openSink()
	buf, err := synth.GenerateTone(k.Frequency, ms)
	e.Must(err, "Failed to generate tone")

	fmt.Printf("Playing %c (%s) for %dms...\n", k.Char, k.Name, ms)
	e.Must(sink.Play(buf), "Failed to play tone")
	e.Must(sink.Close(), "Playback failed")
}

func playScale() {
	sink := openSink()

	fmt.Println("Playing scale...")
	for _, k := range keymap.Keys() {
		buf, err := synth.GenerateTone(k.Frequency, 250)
		e.Must(err, "Failed to generate tone")
		fmt.Printf("  %c %s\n", k.Char, k.Name)
		if err := sink.Play(buf); err != nil {
			fmt.Printf("  dropped: %v\n", err)
		}
		time.Sleep(200 * time.Millisecond)
	}
	e.Must(sink.Close(), "Playback failed")
}

func openSink() *audio.OtoSink {
	sink, err := audio.NewOtoSink(synth.SampleRate, audio.DefaultWorkers)
	e.Must(err, "Failed to open audio device")
	return sink
}
