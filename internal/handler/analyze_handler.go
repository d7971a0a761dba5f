package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kingshuk-14/sathiAI/internal/analysis"
	"github.com/kingshuk-14/sathiAI/pkg/llm"
	"github.com/kingshuk-14/sathiAI/pkg/message"
	"github.com/kingshuk-14/sathiAI/pkg/ocr"
	"github.com/kingshuk-14/sathiAI/pkg/prompt"
)

type Analyzer interface {
	Analyze(ctx context.Context, sub analysis.Submission) (*analysis.Result, error)
}

type AnalyzeHandler struct {
	service Analyzer
}

func NewAnalyzeHandler(service Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{service: service}
}

// Analyze accepts either a JSON body or a multipart form with an optional
// "image" file.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	sub, err := readSubmission(c)
	if err != nil {
		if errors.Is(err, ocr.ErrImageTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image is too large."})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	sub.SessionKey = sessionKey(c)

	res, err := h.service.Analyze(c.Request.Context(), sub)
	if err != nil {
		status, msg := analysisError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		Category:      res.Classification.Category,
		HasLink:       res.Classification.HasLink,
		HasUrgency:    res.Classification.HasUrgency,
		Sections:      res.Sections,
		Risk:          res.Risk,
		Urgency:       res.Urgency,
		Degraded:      res.Degraded,
		ExtractedText: res.ExtractedText,
	})
}

func readSubmission(c *gin.Context) (analysis.Submission, error) {
	var req AnalyzeRequest
	var sub analysis.Submission

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindJSON(&req); err != nil {
			return sub, err
		}
		return analysis.Submission{Text: req.Text, ExtractedText: req.ExtractedText}, nil
	}

	if err := c.ShouldBind(&req); err != nil {
		return sub, err
	}
	sub = analysis.Submission{Text: req.Text, ExtractedText: req.ExtractedText}

	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return sub, nil
	}
	if err != nil {
		return sub, err
	}
	if fh.Size > ocr.MaxImageBytes {
		return sub, ocr.ErrImageTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return sub, err
	}
	defer f.Close()

	sub.Image, err = io.ReadAll(io.LimitReader(f, ocr.MaxImageBytes+1))
	if err != nil {
		return sub, err
	}
	sub.ImageName = fh.Filename
	return sub, nil
}

// analysisError maps a pipeline error to the status and message shown to
// the reader.
func analysisError(err error) (int, string) {
	var relayErr *llm.RelayError
	switch {
	case errors.Is(err, analysis.ErrEmptyInput):
		return http.StatusBadRequest, "Please enter text or upload an image."
	case errors.Is(err, analysis.ErrOCRFailed):
		return http.StatusUnprocessableEntity, "Failed to read image. Please try again or paste text instead."
	case errors.Is(err, analysis.ErrBusy):
		return http.StatusConflict, "An analysis is already running for this session."
	case errors.Is(err, llm.ErrInvalidResponse):
		return http.StatusBadGateway, "Error: Invalid response format from API"
	case errors.As(err, &relayErr):
		return http.StatusBadGateway, "Error: " + relayErr.Error()
	default:
		slog.Error("error analyzing message", "error", err)
		return http.StatusInternalServerError, "Something went wrong. Please try again."
	}
}

// Classify previews the category and prompt for a message without calling
// the model.
func Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cls := message.Classify(req.Text)
	c.JSON(http.StatusOK, ClassifyResponse{
		Category:   cls.Category,
		HasLink:    cls.HasLink,
		HasUrgency: cls.HasUrgency,
		Prompt:     prompt.Build(cls.Category, req.Text),
	})
}
