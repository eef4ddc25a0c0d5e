// Package content holds the lesson chunks of the course and loads them into
// an immutable Bundle.
//
// Each lesson is one markdown file. catalog.yaml decides which files are
// published; anything else in the tree is a draft and is never served.
package content

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"pycourse/internal/domain/entity"
)

// Bundle is a validated, read-only set of published lessons.
// All methods are safe for concurrent use because nothing is mutated after Load.
type Bundle struct {
	course  string
	lessons []*entity.Lesson
	index   map[entity.LessonID]*entity.Lesson
	release string
}

// Load reads the manifest and every published lesson from fsys.
// All problems are collected and returned together.
func Load(fsys fs.FS) (*Bundle, error) {
	raw, err := fs.ReadFile(fsys, ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	manifest, err := ParseManifest(raw)
	if err != nil {
		return nil, err
	}
	publishedAt, err := manifest.PublishedAt()
	if err != nil {
		return nil, err
	}

	var problems []error
	index := make(map[entity.LessonID]*entity.Lesson)
	lessons := make([]*entity.Lesson, 0, 32)
	seenModules := make(map[int]bool)

	for _, mod := range manifest.Modules {
		if seenModules[mod.Number] {
			problems = append(problems, fmt.Errorf("module %d: listed more than once", mod.Number))
			continue
		}
		seenModules[mod.Number] = true

		for _, ml := range mod.Lessons {
			lesson, err := loadLesson(fsys, mod, ml)
			if err != nil {
				problems = append(problems, err)
				continue
			}
			lesson.PublishedAt = publishedAt

			id := lesson.ID()
			if _, dup := index[id]; dup {
				problems = append(problems, fmt.Errorf("%s: duplicate lesson", id))
				continue
			}
			index[id] = lesson
			lessons = append(lessons, lesson)
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("load bundle: %w", errors.Join(problems...))
	}

	sort.Slice(lessons, func(i, j int) bool {
		return lessons[i].ID().Less(lessons[j].ID())
	})

	return &Bundle{
		course:  manifest.Course,
		lessons: lessons,
		index:   index,
		release: releaseOf(lessons),
	}, nil
}

func loadLesson(fsys fs.FS, mod ManifestModule, ml ManifestLesson) (*entity.Lesson, error) {
	id := entity.LessonID{Module: mod.Number, Lesson: ml.Number}
	if err := id.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	body, err := fs.ReadFile(fsys, ml.File)
	if err != nil {
		return nil, fmt.Errorf("%s: read %s: %w", id, ml.File, err)
	}

	headingText, err := extractHeading(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", id, ml.File, err)
	}
	h, err := entity.ParseHeading(headingText)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", id, ml.File, err)
	}
	if mod.Title != "" && h.ModuleTitle != mod.Title {
		return nil, fmt.Errorf("%s: %s: module title %q does not match manifest %q",
			id, ml.File, h.ModuleTitle, mod.Title)
	}

	lesson := &entity.Lesson{
		ModuleNumber: mod.Number,
		LessonNumber: ml.Number,
		ModuleTitle:  h.ModuleTitle,
		Title:        h.LessonTitle,
		Heading:      h.String(),
		Body:         string(body),
		Checksum:     entity.Checksum(string(body)),
	}
	if err := entity.ValidateLesson(lesson); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", id, ml.File, err)
	}
	return lesson, nil
}

// releaseOf derives a stable release id from the ordered lesson checksums.
func releaseOf(lessons []*entity.Lesson) string {
	h := sha256.New()
	for _, l := range lessons {
		fmt.Fprintf(h, "%s:%s\n", l.ID(), l.Checksum)
	}
	return hex.EncodeToString(h.Sum(nil))[:12]
}

// Course returns the course title from the manifest.
func (b *Bundle) Course() string { return b.course }

// Release returns the deterministic release id of the bundle.
func (b *Bundle) Release() string { return b.release }

// Len returns the number of published lessons.
func (b *Bundle) Len() int { return len(b.lessons) }

// Lessons returns copies of all published lessons ordered by (module, lesson).
func (b *Bundle) Lessons() []*entity.Lesson {
	out := make([]*entity.Lesson, len(b.lessons))
	for i, l := range b.lessons {
		c := *l
		out[i] = &c
	}
	return out
}

// Lookup returns a copy of the lesson with the given id.
func (b *Bundle) Lookup(id entity.LessonID) (*entity.Lesson, bool) {
	l, ok := b.index[id]
	if !ok {
		return nil, false
	}
	c := *l
	return &c, true
}

// Modules summarizes the modules of the bundle in order.
func (b *Bundle) Modules() []entity.Module {
	return entity.SummarizeModules(b.lessons)
}
