package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kingshuk-14/sathiAI/internal/guard"
	"github.com/kingshuk-14/sathiAI/internal/metrics"
	"github.com/kingshuk-14/sathiAI/internal/model"
	"github.com/kingshuk-14/sathiAI/pkg/answer"
	"github.com/kingshuk-14/sathiAI/pkg/llm"
	"github.com/kingshuk-14/sathiAI/pkg/message"
	"github.com/kingshuk-14/sathiAI/pkg/ocr"
	"github.com/kingshuk-14/sathiAI/pkg/prompt"
)

// Submission is one request to analyze a message. Text typed by the user
// wins over ExtractedText, which wins over OCR of Image.
type Submission struct {
	SessionKey    string
	Text          string
	ExtractedText string
	Image         []byte
	ImageName     string
}

type Result struct {
	Classification message.Classification
	Sections       answer.Sections
	Risk           message.RiskLevel
	Urgency        answer.UrgencyLevel
	// Degraded is set when the answer had none of the section headers.
	Degraded      bool
	ExtractedText string
	Duration      time.Duration
}

type Recorder interface {
	SaveAnalysis(rec *model.AnalysisRecord) error
}

// Deps wires a Service. Only Completer is required; a nil Extractor, Guard
// or Recorder switches that step off.
type Deps struct {
	Completer llm.Completer
	Extractor ocr.Extractor
	Guard     guard.Guard
	Recorder  Recorder
	ModelName string
}

type Service struct {
	completer llm.Completer
	extractor ocr.Extractor
	guard     guard.Guard
	recorder  Recorder
	modelName string
	now       func() time.Time
}

func NewService(d Deps) *Service {
	return &Service{
		completer: d.Completer,
		extractor: d.Extractor,
		guard:     d.Guard,
		recorder:  d.Recorder,
		modelName: d.ModelName,
		now:       time.Now,
	}
}

// Analyze runs one submission through the pipeline. Nothing outlives the
// call: the session guard is released on every return path.
func (s *Service) Analyze(ctx context.Context, sub Submission) (*Result, error) {
	start := s.now()

	res, err := s.analyze(ctx, sub)
	if err != nil {
		reason := Reason(err)
		metrics.AnalysisFailures.WithLabelValues(reason).Inc()
		slog.Warn("analysis failed", "reason", reason, "session_id", sub.SessionKey, "error", err)
		return nil, err
	}

	res.Duration = s.now().Sub(start)

	metrics.AnalysesTotal.WithLabelValues(
		res.Classification.Category.String(), string(res.Risk), string(res.Urgency),
	).Inc()

	slog.Info("analysis completed",
		"category", res.Classification.Category.String(),
		"risk", res.Risk,
		"urgency", res.Urgency,
		"degraded", res.Degraded,
		"duration_ms", res.Duration.Milliseconds(),
	)

	s.record(res)
	return res, nil
}

func (s *Service) analyze(ctx context.Context, sub Submission) (*Result, error) {
	if s.guard != nil && sub.SessionKey != "" {
		token, ok, err := s.guard.Acquire(ctx, sub.SessionKey)
		if err != nil {
			return nil, fmt.Errorf("acquire session guard: %w", err)
		}
		if !ok {
			return nil, ErrBusy
		}
		defer func() {
			if err := s.guard.Release(context.WithoutCancel(ctx), sub.SessionKey, token); err != nil {
				slog.Error("error releasing session guard", "session_id", sub.SessionKey, "error", err)
			}
		}()
	}

	text, extracted, err := s.resolveText(ctx, sub)
	if err != nil {
		return nil, err
	}

	cls := message.Classify(text)
	p := prompt.Build(cls.Category, text)

	slog.Debug("prompt selected", "category", cls.Category.String(), "preview", preview(text, 60))

	raw, err := s.completer.Complete(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("model call: %w", err)
	}

	sections := answer.Sectionize(raw)
	if sections.Empty() {
		slog.Warn("model answer had no section headers", "category", cls.Category.String(), "answer_length", len(raw))
	}

	return &Result{
		Classification: cls,
		Sections:       sections,
		Risk:           answer.InferRisk(sections.Scam),
		Urgency:        answer.InferUrgency(sections.Importance),
		Degraded:       sections.Empty(),
		ExtractedText:  extracted,
	}, nil
}

// resolveText picks the message to analyze. OCR only runs when neither text
// field has content, so it always finishes before the prompt is built.
func (s *Service) resolveText(ctx context.Context, sub Submission) (text, extracted string, err error) {
	if strings.TrimSpace(sub.Text) != "" {
		return sub.Text, "", nil
	}
	if strings.TrimSpace(sub.ExtractedText) != "" {
		return sub.ExtractedText, "", nil
	}
	if len(sub.Image) == 0 {
		return "", "", ErrEmptyInput
	}

	if s.extractor == nil {
		return "", "", fmt.Errorf("%w: ocr is not configured", ErrOCRFailed)
	}

	extracted, err = s.extractor.Extract(ctx, sub.Image, sub.ImageName)
	if err != nil {
		slog.Error("error extracting text from image", "extractor", s.extractor.Name(), "image", ocr.Digest(sub.Image), "error", err)
		return "", "", fmt.Errorf("%w: %w", ErrOCRFailed, err)
	}
	if strings.TrimSpace(extracted) == "" {
		return "", "", fmt.Errorf("%w: %w", ErrOCRFailed, ocr.ErrNoText)
	}

	return extracted, extracted, nil
}

func (s *Service) record(res *Result) {
	if s.recorder == nil {
		return
	}

	rec := &model.AnalysisRecord{
		Category:    res.Classification.Category.String(),
		HasLink:     res.Classification.HasLink,
		HasUrgency:  res.Classification.HasUrgency,
		RiskDefault: string(res.Classification.RiskDefault),
		Risk:        string(res.Risk),
		Urgency:     string(res.Urgency),
		Degraded:    res.Degraded,
		ModelUsed:   s.modelName,
		DurationMS:  res.Duration.Milliseconds(),
	}

	if err := s.recorder.SaveAnalysis(rec); err != nil {
		slog.Error("error saving analysis log", "category", rec.Category, "error", err)
	}
}

func preview(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n]) + "..."
}
