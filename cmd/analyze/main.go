// Command analyze runs a single analysis from the terminal.
//
//	analyze -file notes.txt -top 5
//	echo "Me encanta este producto" | analyze -speak verdict.mp3
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spacesedan/sentilens/config"
	"github.com/spacesedan/sentilens/internal/analysis"
	"github.com/spacesedan/sentilens/internal/clients"
	"github.com/spacesedan/sentilens/internal/logging"
	"github.com/spacesedan/sentilens/internal/models"
	"github.com/spacesedan/sentilens/internal/wordfreq"
)

func main() {
	var (
		file   = flag.String("file", "", "analyze this .txt, .csv or .md file instead of stdin")
		speak  = flag.String("speak", "", "write the spoken verdict as MP3 to this path")
		asJSON = flag.Bool("json", false, "print the result as JSON")
		topN   = flag.Int("top", 10, "number of frequent words to show")
		logLvl = flag.String("log-level", "warn", "log level")
	)
	flag.Parse()

	config.LoadEnv(config.AppEnv())
	logging.InitLogger(*logLvl)

	if err := run(*file, *speak, *asJSON, *topN); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(file, speakPath string, asJSON bool, topN int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	text, err := readInput(file)
	if err != nil {
		return err
	}

	pipeline, err := clients.NewPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	result, err := pipeline.Analyzer.Analyze(ctx, text)
	if err != nil {
		return err
	}

	if asJSON {
		err = writeJSON(os.Stdout, result, topN)
	} else {
		err = render(os.Stdout, result, topN)
	}
	if err != nil {
		return err
	}

	if speakPath == "" {
		return nil
	}
	audio, err := pipeline.Analyzer.Speak(ctx, result)
	if err != nil {
		return fmt.Errorf("speak: %w", err)
	}
	return os.WriteFile(speakPath, audio, 0o644)
}

func readInput(file string) (string, error) {
	if file == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	text, err := analysis.ReadDocument(f, file)
	if errors.Is(err, analysis.ErrUnsupportedDocument) {
		return "", fmt.Errorf("%w (accepted: .txt, .csv, .md)", err)
	}
	return text, err
}

func writeJSON(w io.Writer, result *models.AnalysisResult, topN int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*models.AnalysisResult
		TopWords wordfreq.Table `json:"top_words"`
	}{result, result.Frequencies.Top(topN)})
}
