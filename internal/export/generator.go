// Package export renders game-system records and design documents into
// the team's export formats.
package export

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rogue-resident/rogue-docs/internal/logger"
	"github.com/rogue-resident/rogue-docs/internal/model"
	"github.com/rogue-resident/rogue-docs/internal/records"
)

// timestampLayout is ISO-8601 in UTC with milliseconds.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DocumentSource supplies content documents in encounter order.
type DocumentSource interface {
	Load(ctx context.Context) model.Ordered[model.ContentDocument]
}

// input is everything a renderer may read. Renderers must not modify it.
type input struct {
	data        model.Dataset
	docs        model.Ordered[model.ContentDocument]
	generatedAt time.Time
}

func (in *input) timestamp() string {
	return in.generatedAt.Format(timestampLayout)
}

type renderFunc func(in *input) string

// renderers holds one entry per supported format.
var renderers = map[model.Format]renderFunc{
	model.FormatClaudeContext:  renderClaudeContext,
	model.FormatCursorDev:      renderCursorDev,
	model.FormatTeamReview:     renderTeamReview,
	model.FormatSystemOverview: renderSystemOverview,
}

// Generator produces exports from a record store and a document source.
type Generator struct {
	agg  *records.Aggregator
	docs DocumentSource
	log  *zap.Logger
	now  func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New returns a generator. docs may be nil when related documents are
// never requested.
func New(store records.Store, docs DocumentSource, log *zap.Logger, opts ...Option) *Generator {
	log = logger.OrNop(log)
	g := &Generator{
		agg:  records.NewAggregator(store, log),
		docs: docs,
		log:  log,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders req. An unsupported format fails before any data is
// read. Missing categories and unreadable documents render as empty.
// The result is all-or-nothing: a cancelled context yields no content.
func (g *Generator) Generate(ctx context.Context, req model.ExportRequest) (*model.ExportResult, error) {
	render, ok := renderers[req.Format]
	if !ok {
		return nil, &UnknownFormatError{Format: string(req.Format)}
	}

	data, err := g.agg.Aggregate(ctx, req.IncludeSystems)
	if err != nil {
		return nil, err
	}

	var docs model.Ordered[model.ContentDocument]
	if req.IncludeRelated && g.docs != nil {
		docs = g.docs.Load(ctx)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in := &input{data: data, docs: docs, generatedAt: g.now().UTC()}
	content := render(in)

	g.log.Debug("export rendered",
		zap.String("format", string(req.Format)),
		zap.Strings("systems", req.IncludeSystems),
		zap.Int("documents", docs.Len()),
		zap.Int("bytes", len(content)))

	return &model.ExportResult{
		Content:      content,
		Format:       req.Format,
		GeneratedAt:  in.generatedAt,
		Systems:      append([]string(nil), req.IncludeSystems...),
		ApproxTokens: ApproxTokens(content),
	}, nil
}

// ApproxTokens estimates the token count of s at four characters per token.
func ApproxTokens(s string) int {
	return len(s) / 4
}

// header writes the title line and generation note shared by all formats.
func header(b *strings.Builder, title, note string, in *input) {
	b.WriteString("# " + title + "\n")
	b.WriteString("*" + note + " - " + in.timestamp() + "*\n\n")
}
