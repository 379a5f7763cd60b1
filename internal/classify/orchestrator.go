package classify

import (
	"context"
	"log/slog"
	"time"

	"pictura/internal/config"
	"pictura/internal/imagefiles"
	"pictura/internal/library"
	"pictura/internal/logging"
	"pictura/internal/services"
	"pictura/internal/services/ollama"
)

// CaptionClient is the captioning-service surface the orchestrator needs.
type CaptionClient interface {
	Describe(ctx context.Context, imageBase64, prompt string) (string, error)
	Model() string
}

// Classifier drives the classification pipeline for single images and
// batches.
type Classifier struct {
	cfg    *config.Config
	store  *library.Store
	client CaptionClient
	pacer  *Pacer
	logger *slog.Logger
	now    func() time.Time
}

// Option customizes a Classifier.
type Option func(*Classifier)

// WithClient overrides the captioning client, used by tests.
func WithClient(client CaptionClient) Option {
	return func(c *Classifier) {
		c.client = client
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) {
		c.now = now
	}
}

// New builds a Classifier over the given store and configuration.
func New(cfg *config.Config, store *library.Store, logger *slog.Logger, opts ...Option) *Classifier {
	classifier := &Classifier{
		cfg:    cfg,
		store:  store,
		logger: logging.NewComponentLogger(logger, "classify"),
		pacer:  NewPacer(cfg.RateLimitInterval()),
		now:    time.Now,
	}
	if cfg.Ollama.Enabled {
		classifier.client = ollama.NewClient(ollama.Config{
			BaseURL: cfg.Ollama.BaseURL,
			Model:   cfg.Ollama.Model,
			Timeout: cfg.RequestTimeout(),
		})
	}
	for _, opt := range opts {
		opt(classifier)
	}
	return classifier
}

// Process classifies a single image and persists the result. A valid cached
// classification is returned untouched unless forceRefresh is set. The
// record is classified by the slot prompt when possible, the legacy prompt
// when the slot response is incomplete, and the local heuristic when the
// service is disabled or failing. Persistence failures are logged; the
// in-memory record is still returned.
func (c *Classifier) Process(ctx context.Context, path string, forceRefresh bool) (*library.Record, error) {
	record, err := c.store.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	if record != nil && !forceRefresh && CacheValid(record, c.cfg.CacheWindow(), c.now()) {
		c.logger.InfoContext(ctx, "using cached classification", logging.String(logging.FieldPath, path))
		return record, nil
	}

	if record == nil {
		record, err = imagefiles.Probe(path)
		if err != nil {
			return nil, err
		}
	}

	outcome, err := c.classify(ctx, path, record)
	if err != nil {
		return nil, err
	}

	blob, err := outcome.Blob()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "classify", "encode blob", path, err)
	}
	record.Classification = blob
	record.MarkCached(c.now())

	if err := c.store.Put(ctx, record); err != nil {
		c.logger.WarnContext(ctx, "failed to persist classification",
			logging.String(logging.FieldPath, path), logging.Error(err))
	}
	return record, nil
}

// classify runs the remote-then-local decision chain and applies the
// winning result to the record. A context error aborts the chain instead of
// degrading to the heuristic.
func (c *Classifier) classify(ctx context.Context, path string, record *library.Record) (Outcome, error) {
	if c.client != nil && c.cfg.Ollama.Enabled {
		encoded, err := imagefiles.EncodeForUpload(path, c.cfg.Ollama.MaxUploadDimension, c.cfg.Ollama.JPEGQuality)
		if err != nil {
			c.logger.WarnContext(ctx, "upload encoding failed, using local classification",
				logging.String(logging.FieldPath, path), logging.Error(err))
			return c.applyHeuristic(path, record), nil
		}

		outcome, ok, err := c.tryRemote(ctx, path, record, encoded)
		if err != nil {
			return Outcome{}, err
		}
		if ok {
			return outcome, nil
		}
	}
	return c.applyHeuristic(path, record), nil
}

func (c *Classifier) tryRemote(ctx context.Context, path string, record *library.Record, encoded string) (Outcome, bool, error) {
	raw, err := c.describe(ctx, encoded, ollama.SlotPrompt)
	if err != nil {
		if ctx.Err() != nil {
			return Outcome{}, false, ctx.Err()
		}
		c.logger.InfoContext(ctx, "captioning unavailable, using local classification",
			logging.String(logging.FieldPath, path), logging.Error(err))
		return Outcome{}, false, nil
	}

	timestamp := c.now().Format(time.RFC3339)
	slots := ParseSlots(raw)
	if slots.Present() {
		record.Description = slots.Description()
		record.SetTags(slots.Tags)
		record.SetKeywords(slots.Keywords())
		record.SetCategories(slots.Categories())
		record.SetProvenance(raw, "ollama", c.client.Model(), timestamp)
		return Outcome{
			Format:    FormatSlots,
			Model:     c.client.Model(),
			Timestamp: timestamp,
			Raw:       raw,
			Slots:     &slots,
		}, true, nil
	}

	c.logger.InfoContext(ctx, "incomplete slot response, retrying with legacy prompt",
		logging.String(logging.FieldPath, path))

	rawLegacy, err := c.describe(ctx, encoded, ollama.LegacyPrompt)
	if err != nil {
		if ctx.Err() != nil {
			return Outcome{}, false, ctx.Err()
		}
		c.logger.InfoContext(ctx, "legacy captioning unavailable, using local classification",
			logging.String(logging.FieldPath, path), logging.Error(err))
		return Outcome{}, false, nil
	}

	timestamp = c.now().Format(time.RFC3339)
	legacy := ParseLegacy(rawLegacy)
	record.Description = legacy.BestDescription()
	record.SetTags(legacy.Tags)
	record.SetKeywords(legacy.Keywords)
	record.SetCategories(legacy.Categories)
	record.SetProvenance(rawLegacy, "ollama", c.client.Model(), timestamp)
	return Outcome{
		Format:    FormatLegacy,
		Model:     c.client.Model(),
		Timestamp: timestamp,
		Raw:       rawLegacy,
		Legacy:    &legacy,
	}, true, nil
}

// describe paces and issues one captioning call. A blank response is a
// valid response; the slot presence gate decides what to do with it.
func (c *Classifier) describe(ctx context.Context, encoded, prompt string) (string, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return "", err
	}
	return c.client.Describe(ctx, encoded, prompt)
}

// applyHeuristic is the terminal fallback: derive metadata from pixel
// statistics and clear any remote attribution.
func (c *Classifier) applyHeuristic(path string, record *library.Record) Outcome {
	stats, err := imagefiles.Load(path)
	if err != nil {
		stats = imagefiles.DefaultStats()
	}

	result := Heuristic(stats)
	extracted := ExtractKeywords(result.Description, 10)
	record.Description = result.Description
	record.SetTags(extracted)
	record.SetKeywords(extracted)
	record.SetCategories([]string{result.Scene})
	record.ClearProvenance()

	return Outcome{
		Timestamp: c.now().Format(time.RFC3339),
		Heuristic: &result,
	}
}
