// Package lesson provides the read-only HTTP endpoints of the lesson catalog.
package lesson

import (
	"fmt"
	"time"

	"pycourse/internal/domain/entity"
	"pycourse/internal/utils/text"
)

// DTO is the full lesson representation.
type DTO struct {
	ID          string    `json:"id"`
	Module      int       `json:"module"`
	Lesson      int       `json:"lesson"`
	ModuleTitle string    `json:"module_title"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Checksum    string    `json:"checksum"`
	PublishedAt time.Time `json:"published_at"`

	WordCount      int `json:"word_count"`
	ReadingMinutes int `json:"reading_minutes"`
}

// SummaryDTO is a lesson without its body, used in listings.
type SummaryDTO struct {
	ID          string `json:"id"`
	Module      int    `json:"module"`
	Lesson      int    `json:"lesson"`
	ModuleTitle string `json:"module_title"`
	Title       string `json:"title"`
	URL         string `json:"url"`
}

// ModuleDTO summarizes one module.
type ModuleDTO struct {
	Module      int    `json:"module"`
	Title       string `json:"title"`
	LessonCount int    `json:"lesson_count"`
	URL         string `json:"url"`
}

func toDTO(l *entity.Lesson) DTO {
	words := text.CountWords(l.Body)
	return DTO{
		ID:          l.ID().String(),
		Module:      l.ModuleNumber,
		Lesson:      l.LessonNumber,
		ModuleTitle: l.ModuleTitle,
		Title:       l.Title,
		Body:        l.Body,
		Checksum:    l.Checksum,
		PublishedAt: l.PublishedAt,

		WordCount:      words,
		ReadingMinutes: text.ReadingMinutes(words),
	}
}

func toSummaries(lessons []*entity.Lesson) []SummaryDTO {
	out := make([]SummaryDTO, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, SummaryDTO{
			ID:          l.ID().String(),
			Module:      l.ModuleNumber,
			Lesson:      l.LessonNumber,
			ModuleTitle: l.ModuleTitle,
			Title:       l.Title,
			URL:         lessonURL(l.ModuleNumber, l.LessonNumber),
		})
	}
	return out
}

func toModules(modules []entity.Module) []ModuleDTO {
	out := make([]ModuleDTO, 0, len(modules))
	for _, m := range modules {
		out = append(out, ModuleDTO{
			Module:      m.Number,
			Title:       m.Title,
			LessonCount: m.LessonCount,
			URL:         fmt.Sprintf("/modules/%d/lessons", m.Number),
		})
	}
	return out
}

func lessonURL(module, lesson int) string {
	return fmt.Sprintf("/modules/%d/lessons/%d", module, lesson)
}
