// Package entity defines the core domain entities and validation logic for the application.
// It contains the Lesson content record, the LessonID identifier pair and the Module
// summary, along with their validation rules and domain-specific errors.
package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LessonID identifies a lesson by its module and lesson sequence numbers.
type LessonID struct {
	Module int
	Lesson int
}

// NewLessonID builds a LessonID and validates it.
func NewLessonID(module, lesson int) (LessonID, error) {
	id := LessonID{Module: module, Lesson: lesson}
	if err := id.Validate(); err != nil {
		return LessonID{}, err
	}
	return id, nil
}

// Validate returns ErrInvalidLessonID if either number is not positive.
func (id LessonID) Validate() error {
	if id.Module <= 0 || id.Lesson <= 0 {
		return ErrInvalidLessonID
	}
	return nil
}

// String returns the compact "m<module>-l<lesson>" form, e.g. "m1-l1".
func (id LessonID) String() string {
	return fmt.Sprintf("m%d-l%d", id.Module, id.Lesson)
}

// Less orders ids by module first, then lesson.
func (id LessonID) Less(other LessonID) bool {
	if id.Module != other.Module {
		return id.Module < other.Module
	}
	return id.Lesson < other.Lesson
}

// ParseLessonID parses the form produced by LessonID.String.
func ParseLessonID(s string) (LessonID, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "m")
	if !ok {
		return LessonID{}, ErrInvalidLessonID
	}
	modStr, lessonStr, ok := strings.Cut(rest, "-l")
	if !ok {
		return LessonID{}, ErrInvalidLessonID
	}
	module, err := strconv.Atoi(modStr)
	if err != nil {
		return LessonID{}, ErrInvalidLessonID
	}
	lesson, err := strconv.Atoi(lessonStr)
	if err != nil {
		return LessonID{}, ErrInvalidLessonID
	}
	return NewLessonID(module, lesson)
}

// Lesson is a published lesson content record.
// Body is the full markdown document and never changes after publication;
// a new build replaces the whole record instead.
type Lesson struct {
	ModuleNumber int
	LessonNumber int
	ModuleTitle  string
	Title        string
	Heading      string
	Body         string
	Checksum     string
	PublishedAt  time.Time
}

// ID returns the identifier pair of the lesson.
func (l *Lesson) ID() LessonID {
	return LessonID{Module: l.ModuleNumber, Lesson: l.LessonNumber}
}

// Module summarizes one course module.
type Module struct {
	Number      int
	Title       string
	LessonCount int
}

// Checksum returns the hex encoded sha256 of a lesson body.
func Checksum(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}

// SummarizeModules groups lessons, which must already be ordered by id,
// into module summaries.
func SummarizeModules(lessons []*Lesson) []Module {
	modules := make([]Module, 0, 8)
	for _, l := range lessons {
		n := len(modules)
		if n > 0 && modules[n-1].Number == l.ModuleNumber {
			modules[n-1].LessonCount++
			continue
		}
		modules = append(modules, Module{
			Number:      l.ModuleNumber,
			Title:       l.ModuleTitle,
			LessonCount: 1,
		})
	}
	return modules
}
