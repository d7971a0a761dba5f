package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kingshuk-14/sathiAI/internal/analysis"
	"github.com/kingshuk-14/sathiAI/internal/config"
	"github.com/kingshuk-14/sathiAI/pkg/answer"
	"github.com/kingshuk-14/sathiAI/pkg/llm"
	"github.com/kingshuk-14/sathiAI/pkg/ocr"
	"github.com/kingshuk-14/sathiAI/pkg/prompt"
)

// analyze explains one message from the command line. The text comes from
// the arguments, or stdin when there are none.
func main() {

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	slog.SetDefault(cfg.Log.Logger(os.Stderr))

	promptOnly := flag.Bool("prompt", false, "print the classification and prompt without calling the relay")
	relayURL := flag.String("relay", cfg.Relay.URL, "chat relay endpoint")
	timeout := flag.Duration("timeout", cfg.Relay.Timeout, "relay request timeout")
	modelName := flag.String("model", cfg.Relay.Model, "model the relay should use")
	imagePath := flag.String("image", "", "screenshot to read with OCR instead of text")
	ocrURL := flag.String("ocr", cfg.OCR.URL, "OCR service base URL")
	flag.Parse()

	text := strings.Join(flag.Args(), " ")
	if text == "" && *imagePath == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("error reading stdin: %v", err)
		}
		text = string(b)
	}

	if *promptOnly {
		c, p := prompt.Select(text)
		fmt.Printf("category:    %s\nhas_link:    %t\nhas_urgency: %t\n\n%s\n", c.Category, c.HasLink, c.HasUrgency, p)
		return
	}

	if *modelName == "" {
		*modelName = llm.HuggingFaceModel
	}

	sub := analysis.Submission{Text: text}
	deps := analysis.Deps{
		Completer: llm.NewRelayClient(*relayURL, *timeout).
			WithModel(*modelName, cfg.Relay.MaxTokens, cfg.Relay.Temperature),
		ModelName: *modelName,
	}

	if *imagePath != "" {
		image, err := os.ReadFile(*imagePath)
		if err != nil {
			log.Fatalf("error reading image: %v", err)
		}
		sub.Image = image
		sub.ImageName = filepath.Base(*imagePath)

		if *ocrURL != "" {
			deps.Extractor = ocr.NewTesseractClient(*ocrURL, cfg.OCR.LanguageList()...)
		}
	}

	res, err := analysis.NewService(deps).Analyze(context.Background(), sub)
	if err != nil {
		log.Fatalf("error analyzing message: %v", err)
	}

	if res.ExtractedText != "" {
		fmt.Printf("Extracted text:\n%s\n\n", res.ExtractedText)
	}

	fmt.Printf("category: %s  risk: %s  urgency: %s\n\n", res.Classification.Category, res.Risk, res.Urgency)

	if res.Degraded {
		slog.Warn("answer did not follow the expected structure")
	}

	for i, s := range answer.AllSections() {
		fmt.Printf("%d. %s\n%s\n\n", i+1, s.Heading(), res.Sections.Get(s))
	}
}
