package ingest

import (
	"lemmyharvest/internal/core/textclean"
	"lemmyharvest/internal/core/wordseg"
	"lemmyharvest/internal/services/harvest/domain"
)

// cleaner satisfies domain.Cleaner with the textclean pipeline
type cleaner struct{}

// NewCleaner constructs the content cleaner port
func NewCleaner() domain.Cleaner { return cleaner{} }

func (cleaner) Clean(s string) string { return textclean.Clean(s) }

func (cleaner) CleanText(s string) string { return textclean.CleanText(s) }

// segmenter satisfies domain.Segmenter with the wordseg splitter
type segmenter struct{}

// NewSegmenter constructs the slug segmenter port
func NewSegmenter() domain.Segmenter { return segmenter{} }

func (segmenter) Segment(slug string) string { return wordseg.Segment(slug) }
