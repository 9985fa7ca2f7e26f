// Package filterindex builds the tag/year/month posting index consumed by
// the filter engine.
package filterindex

import (
	"fmt"
	"log/slog"

	"github.com/newechoes/necmp/internal/indexmodel"
)

// Builder accumulates articles before assembling a FilterIndex.
type Builder struct {
	articles []indexmodel.ArticleMetadata
	logger   *slog.Logger
}

// NewBuilder constructs a Builder. A nil logger falls back to slog.Default().
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger}
}

// Add appends an article to the builder.
func (b *Builder) Add(article indexmodel.ArticleMetadata) {
	b.articles = append(b.articles, article)
}

// Build assembles the FilterIndex from the accumulated articles.
func (b *Builder) Build() (indexmodel.FilterIndex, error) {
	if len(b.articles) == 0 {
		return indexmodel.FilterIndex{}, fmt.Errorf("filterindex: %w", indexmodel.ErrEmptyInput)
	}

	tagIndex := make(map[string]indexmodel.IntSet)
	yearIndex := make(map[int]indexmodel.IntSet)
	monthIndex := make(map[string]indexmodel.IntSet)

	for i, article := range b.articles {
		for _, tag := range article.Tags {
			set, ok := tagIndex[tag]
			if !ok {
				set = indexmodel.NewIntSet()
				tagIndex[tag] = set
			}
			set.Add(i)
		}

		year := article.Date.Year()
		yearSet, ok := yearIndex[year]
		if !ok {
			yearSet = indexmodel.NewIntSet()
			yearIndex[year] = yearSet
		}
		yearSet.Add(i)

		monthKey := fmt.Sprintf("%04d-%02d", year, int(article.Date.Month()))
		monthSet, ok := monthIndex[monthKey]
		if !ok {
			monthSet = indexmodel.NewIntSet()
			monthIndex[monthKey] = monthSet
		}
		monthSet.Add(i)
	}

	b.logger.Info("filter index built",
		"articles", len(b.articles),
		"tags", len(tagIndex),
		"years", len(yearIndex),
		"months", len(monthIndex),
	)

	return indexmodel.FilterIndex{
		Articles:   append([]indexmodel.ArticleMetadata(nil), b.articles...),
		TagIndex:   tagIndex,
		YearIndex:  yearIndex,
		MonthIndex: monthIndex,
	}, nil
}

// Stats summarizes the built index for CLI status lines.
func Stats(idx indexmodel.FilterIndex) indexmodel.BuildStats {
	return indexmodel.BuildStats{
		ArticleCount: len(idx.Articles),
		TagCount:     len(idx.TagIndex),
	}
}
