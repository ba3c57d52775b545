package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/padwhen/language-learning-app/internal/config"
	"github.com/padwhen/language-learning-app/internal/core"
	"github.com/padwhen/language-learning-app/internal/core/interpret"
	"github.com/padwhen/language-learning-app/internal/core/model"
	"github.com/padwhen/language-learning-app/internal/core/validation"
	"github.com/padwhen/language-learning-app/internal/driver"
	"github.com/padwhen/language-learning-app/internal/llm"
)

const maxBatchItems = 20

// HistoryReader lists stored translations.
type HistoryReader interface {
	RecentTranslations(ctx context.Context, language string, limit int) ([]driver.TranslationEntry, error)
}

type Server struct {
	Translator  *core.Translator
	Interpreter interpret.Interpreter
	History     HistoryReader
	BatchLimit  int
	Logger      *slog.Logger

	closers []func(context.Context) error
}

// NewServer wires the model client, the optional Memgraph history store and
// the translator from cfg. History is disabled when Memgraph is not
// configured or cannot be reached.
func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	s := &Server{
		Interpreter: interpret.Interpreter{MaxBytes: cfg.Interpreter.MaxResponseBytes},
		BatchLimit:  cfg.Concurrency.BatchTranslate,
		Logger:      logger,
	}
	if c, ok := llmClient.(interface{ Close() error }); ok {
		s.closers = append(s.closers, func(context.Context) error { return c.Close() })
	}

	var saver core.HistorySaver
	if cfg.Memgraph.URI != "" {
		d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, logger)
		if err != nil {
			logger.Warn("memgraph unavailable, translation history disabled", "uri", cfg.Memgraph.URI, "error", err)
		} else {
			store := driver.NewHistoryStore(d)
			if err := store.BuildIndices(ctx); err != nil {
				logger.Warn("failed to build indices", "error", err)
			}
			saver = store
			s.History = store
			s.closers = append(s.closers, d.Close)
		}
	}

	s.Translator = core.NewTranslator(llmClient, cfg, saver, logger)
	return s, nil
}

// Close releases the model client and the database connection.
func (s *Server) Close(ctx context.Context) error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c(ctx))
	}
	return errors.Join(errs...)
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/languages", s.Languages)
	r.GET("/history", s.ListHistory)
	r.POST("/interpret", s.Interpret)
	r.POST("/translate", s.Translate)
	r.POST("/translate/stream", s.TranslateStream)
	r.POST("/translate/batch", s.TranslateBatch)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": validation.Supported()})
}

type InterpretRequest struct {
	Text string `json:"text"`
	// Partial marks text that is still streaming in.
	Partial bool `json:"partial"`
}

// Interpret runs the interpreter on a model response the client already has.
func (s *Server) Interpret(c *gin.Context) {
	var req InterpretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result := s.Interpreter.ApplyChunk(model.NewResult(""), model.RawChunk{Text: req.Text, Final: !req.Partial})
	c.JSON(http.StatusOK, result)
}

func (s *Server) Translate(c *gin.Context) {
	var req core.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := s.Translator.Translate(c.Request.Context(), req)
	if err != nil {
		s.translateError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// TranslateStream sends every intermediate result as a server-sent "result"
// event. The last event carries the final, complete result.
func (s *Server) TranslateStream(c *gin.Context) {
	var req core.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if _, err := s.Translator.Validate(req); err != nil {
		s.translateError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	_, err := s.Translator.TranslateStream(c.Request.Context(), req, func(r model.TranslationResult) {
		c.SSEvent("result", r)
		c.Writer.Flush()
	})
	if err != nil {
		s.Logger.Error("streaming translation failed", "error", err)
		c.SSEvent("error", gin.H{"error": "Failed to translate"})
		c.Writer.Flush()
	}
}

type BatchRequest struct {
	Items []core.Request `json:"items" binding:"required,min=1,dive"`
}

type BatchItem struct {
	Result *model.TranslationResult `json:"result,omitempty"`
	Error  string                   `json:"error,omitempty"`
	Reason validation.Reason        `json:"reason,omitempty"`
}

// TranslateBatch translates items concurrently. Results keep the request
// order and one failing item does not fail the others.
func (s *Server) TranslateBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if len(req.Items) > maxBatchItems {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("At most %d items per batch", maxBatchItems)})
		return
	}

	items := make([]BatchItem, len(req.Items))
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.SetLimit(max(s.BatchLimit, 1))
	for i, item := range req.Items {
		i, item := i, item
		g.Go(func() error {
			result, err := s.Translator.Translate(ctx, item)
			switch ve, ok := validation.IsValidationError(err); {
			case err == nil:
				items[i] = BatchItem{Result: &result}
			case ok:
				items[i] = BatchItem{Error: ve.Message, Reason: ve.Reason}
			default:
				s.Logger.Error("batch item failed", "index", i, "error", err)
				items[i] = BatchItem{Error: "Failed to translate"}
			}
			return nil
		})
	}
	_ = g.Wait()

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ListHistory returns recent translations, optionally for one language.
func (s *Server) ListHistory(c *gin.Context) {
	if s.History == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Translation history is not enabled"})
		return
	}

	language := c.Query("language")
	if language != "" {
		lang, ok := validation.Lookup(language)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported language"})
			return
		}
		language = lang.Code
	}

	limit := driver.DefaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	entries, err := s.History.RecentTranslations(c.Request.Context(), language, limit)
	if err != nil {
		s.Logger.Error("failed to list history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"translations": entries})
}

func (s *Server) translateError(c *gin.Context, err error) {
	if ve, ok := validation.IsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "reason": ve.Reason})
		return
	}
	s.Logger.Error("translation failed", "error", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to translate"})
}
