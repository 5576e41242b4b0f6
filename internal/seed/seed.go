// Package seed generates the sample tags used to populate an empty store.
package seed

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/tagdesk/tagdesk-server/internal/domain"
	"github.com/tagdesk/tagdesk-server/internal/id"
	"github.com/tagdesk/tagdesk-server/internal/slug"
)

// Defaults for generated tags.
const (
	DefaultCount   = 100
	WordsPerTitle  = 2
	MinVideoAmount = 1
	MaxVideoAmount = 1000
)

// Generator builds lorem-ipsum tags. It satisfies store.Seeder.
type Generator struct {
	count int

	mu    sync.Mutex // guards faker
	faker *gofakeit.Faker
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes generated titles and counts reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.faker = gofakeit.New(seed)
	}
}

// New returns a generator producing count tags per call.
// A negative count is treated as zero.
func New(count int, opts ...Option) *Generator {
	g := &Generator{
		count: max(count, 0),
		faker: gofakeit.New(0),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Count returns how many tags each Generate call produces.
func (g *Generator) Count() int {
	return g.count
}

// Generate returns a fresh batch of tags with unique ids.
func (g *Generator) Generate(ctx context.Context) ([]domain.Tag, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	tags := make([]domain.Tag, 0, g.count)
	for range g.count {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tagID, err := id.NewTagID()
		if err != nil {
			return nil, fmt.Errorf("generate tag id: %w", err)
		}

		title := g.title()
		tags = append(tags, domain.Tag{
			ID:             tagID,
			Title:          title,
			Slug:           slug.Derive(title),
			AmountOfVideos: g.faker.IntRange(MinVideoAmount, MaxVideoAmount),
		})
	}
	return tags, nil
}

func (g *Generator) title() string {
	words := make([]string, WordsPerTitle)
	for i := range words {
		words[i] = g.faker.LoremIpsumWord()
	}
	return strings.Join(words, " ")
}
