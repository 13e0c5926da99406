package extension

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/tsconv/internal/cachemanager"
	"github.com/zjrosen/tsconv/internal/clipboard"
	"github.com/zjrosen/tsconv/internal/flags"
	"github.com/zjrosen/tsconv/internal/history"
	"github.com/zjrosen/tsconv/internal/log"
	"github.com/zjrosen/tsconv/internal/timestamp"
	"github.com/zjrosen/tsconv/internal/tracing"
	"github.com/zjrosen/tsconv/internal/ui/toaster"
)

// Source says where pipeline input came from.
type Source string

const (
	SourceClipboard Source = "clipboard"
	SourceSelection Source = "selection"
)

const (
	// ResultDuration is how long a successful conversion stays on screen.
	ResultDuration = 8 * time.Second
)

// Presenter shows a toast. *toaster.Notifier satisfies it.
type Presenter interface {
	Show(message string, opts toaster.Options) int
}

// Recorder persists a conversion. *history.Store satisfies it.
type Recorder interface {
	Append(ctx context.Context, r history.Record) error
}

// Result is a successful conversion.
type Result struct {
	Source     Source
	Candidate  timestamp.Candidate
	Conversion timestamp.Conversion
	Record     history.Record
}

// Body renders the result toast text.
func (r Result) Body() string {
	return fmt.Sprintf("Original: %d\nConverted: %s\nRelative: %s",
		r.Candidate.Value, r.Conversion.Formatted, r.Conversion.Relative)
}

// Pipeline runs extract, format, present and record for one trigger.
// Runs are independent; concurrent runs race on the recorder.
type Pipeline struct {
	presenter Presenter
	recorder  Recorder
	clipboard clipboard.Reader
	extractor *timestamp.Extractor
	formatter *timestamp.Formatter
	clock     timestamp.Clock
	flags     *flags.Registry
	tracer    trace.Tracer

	extractCache *cachemanager.ReadThroughCache[string, timestamp.Candidate, string]
	cacheTTL     time.Duration

	resultDuration time.Duration
	errorDuration  time.Duration
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithClipboard sets the clipboard reader (default clipboard.System).
func WithClipboard(r clipboard.Reader) PipelineOption {
	return func(p *Pipeline) { p.clipboard = r }
}

// WithClock sets the clock used for relative times and record stamps.
func WithClock(c timestamp.Clock) PipelineOption {
	return func(p *Pipeline) { p.clock = c }
}

// WithFlags sets the feature flag registry.
func WithFlags(f *flags.Registry) PipelineOption {
	return func(p *Pipeline) { p.flags = f }
}

// WithTracer sets the tracer for pipeline spans.
func WithTracer(t trace.Tracer) PipelineOption {
	return func(p *Pipeline) { p.tracer = t }
}

// WithExtractor replaces the default extractor.
func WithExtractor(e *timestamp.Extractor) PipelineOption {
	return func(p *Pipeline) { p.extractor = e }
}

// WithExtractCache memoises extraction results per input text.
func WithExtractCache(cache cachemanager.CacheManager[string, timestamp.Candidate], ttl time.Duration) PipelineOption {
	return func(p *Pipeline) {
		p.cacheTTL = ttl
		p.extractCache = cachemanager.NewReadThroughCache[string, timestamp.Candidate, string](cache, p.extract, ttl <= 0)
	}
}

// WithDurations sets toast durations for results and errors.
func WithDurations(result, errs time.Duration) PipelineOption {
	return func(p *Pipeline) {
		p.resultDuration = result
		p.errorDuration = errs
	}
}

// NewPipeline creates a pipeline. A nil recorder disables history.
func NewPipeline(presenter Presenter, recorder Recorder, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		presenter:      presenter,
		recorder:       recorder,
		clipboard:      clipboard.System{},
		extractor:      timestamp.NewExtractor(),
		clock:          timestamp.RealClock{},
		tracer:         noop.NewTracerProvider().Tracer(tracing.ServiceName),
		resultDuration: ResultDuration,
		errorDuration:  toaster.DefaultDuration,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.formatter = timestamp.NewFormatter(p.clock)
	return p
}

// ConvertClipboard reads the clipboard and converts its text.
func (p *Pipeline) ConvertClipboard(ctx context.Context) (Result, error) {
	ctx, span := p.tracer.Start(ctx, tracing.SpanConvert,
		trace.WithAttributes(attribute.String(tracing.AttrSource, string(SourceClipboard))))
	defer span.End()

	text, err := p.clipboard.ReadText(ctx)
	switch {
	case err != nil:
		err = &ClipboardError{Cause: err}
	case text == "":
		err = &ClipboardError{Cause: ErrClipboardEmpty}
	}
	if err != nil {
		return Result{}, p.failed(span, err)
	}

	return p.run(ctx, span, SourceClipboard, text)
}

// ConvertText converts a selection. Empty text is ignored without a toast.
func (p *Pipeline) ConvertText(ctx context.Context, text string) (Result, error) {
	if text == "" {
		log.Debug(log.CatExtension, "Ignoring empty selection")
		return Result{}, nil
	}

	ctx, span := p.tracer.Start(ctx, tracing.SpanConvert,
		trace.WithAttributes(attribute.String(tracing.AttrSource, string(SourceSelection))))
	defer span.End()

	return p.run(ctx, span, SourceSelection, text)
}

func (p *Pipeline) run(ctx context.Context, span trace.Span, source Source, text string) (Result, error) {
	span.SetAttributes(attribute.Int(tracing.AttrTextLength, len(text)))

	c, err := p.candidate(ctx, text)
	if err != nil {
		return Result{}, p.failed(span, &ExtractionError{Source: source, Cause: err})
	}
	span.SetAttributes(
		attribute.String(tracing.AttrPattern, c.Pattern),
		attribute.String(tracing.AttrUnit, c.Unit.String()),
		attribute.Int64(tracing.AttrValue, c.Value),
	)

	conv, err := p.format(c)
	if err != nil {
		return Result{}, p.failed(span, err)
	}

	res := Result{
		Source:     source,
		Candidate:  c,
		Conversion: conv,
		Record:     history.NewRecord(p.clock.Now(), c.Value, conv.String()),
	}
	log.Info(log.CatExtension, "Converted timestamp", "source", source, "value", c.Value, "pattern", c.Pattern)

	// The toaster holds one element, so a failed write is reported in the
	// same toast as the result.
	if err := p.record(ctx, res.Record); err != nil {
		p.report(span, err)
		p.presenter.Show(res.Body()+"\n"+err.Error(),
			toaster.Options{Kind: toaster.KindError, Duration: p.resultDuration})
		return res, err
	}

	p.presenter.Show(res.Body(), toaster.Options{Kind: toaster.KindInfo, Duration: p.resultDuration})
	span.SetStatus(codes.Ok, "")
	return res, nil
}

func (p *Pipeline) candidate(ctx context.Context, text string) (timestamp.Candidate, error) {
	_, span := p.tracer.Start(ctx, tracing.SpanExtract)
	defer span.End()

	if p.extractCache == nil {
		return p.extract(ctx, text)
	}
	return p.extractCache.Get(ctx, cacheKey(text), text, p.cacheTTL)
}

func (p *Pipeline) extract(_ context.Context, text string) (timestamp.Candidate, error) {
	return p.extractor.Extract(text)
}

// format renders c. With legacy-units the raw value is always read as
// seconds, so 13-digit values land tens of thousands of years ahead.
func (p *Pipeline) format(c timestamp.Candidate) (timestamp.Conversion, error) {
	if p.flags.Enabled(flags.FlagLegacyUnits) {
		return p.formatter.Format(c.Value)
	}
	return p.formatter.FormatTime(c.Time())
}

func (p *Pipeline) record(ctx context.Context, r history.Record) error {
	if p.recorder == nil || p.flags.Enabled(flags.FlagNoRecord) {
		return nil
	}

	ctx, span := p.tracer.Start(ctx, tracing.SpanHistoryRecord)
	defer span.End()

	if err := p.recorder.Append(ctx, r); err != nil {
		span.RecordError(err)
		return &RecordError{Cause: err}
	}
	return nil
}

// failed presents err as the single error toast of this run.
func (p *Pipeline) failed(span trace.Span, err error) error {
	p.report(span, err)
	p.presenter.Show(err.Error(), toaster.Options{Kind: toaster.KindError, Duration: p.errorDuration})
	return err
}

// report marks span failed and logs err with its cause.
func (p *Pipeline) report(span trace.Span, err error) {
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String(tracing.AttrErrorMessage, err.Error()))

	var convErr *timestamp.ConversionError
	if errors.As(err, &convErr) {
		log.Warn(log.CatExtension, "Pipeline failed", "error", convErr.Detail())
	} else {
		log.Warn(log.CatExtension, "Pipeline failed", "error", fmt.Sprintf("%v (%v)", err, errors.Unwrap(err)))
	}
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
