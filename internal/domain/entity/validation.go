package entity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// maxBodyLength caps a single lesson body. Lessons are short documents;
// anything larger is almost certainly a packaging mistake.
const maxBodyLength = 256 << 10

// headingPattern matches "Module X: <module title> - Lesson Y: <lesson title>".
// The leading "# " is stripped before matching.
var headingPattern = regexp.MustCompile(`^Module (\d+): (.+?) - Lesson (\d+): (.+)$`)

// Heading is the parsed form of a lesson's first line.
type Heading struct {
	Module      int
	ModuleTitle string
	Lesson      int
	LessonTitle string
}

// ParseHeading parses a lesson heading, with or without the leading "# ".
// Returns a ValidationError if the line does not follow the heading format.
func ParseHeading(line string) (Heading, error) {
	text := strings.TrimSpace(line)
	text = strings.TrimSpace(strings.TrimPrefix(text, "# "))

	m := headingPattern.FindStringSubmatch(text)
	if m == nil {
		return Heading{}, &ValidationError{
			Field:   "heading",
			Message: fmt.Sprintf("must be formatted as 'Module X: ... - Lesson Y: ...', got %q", text),
		}
	}

	module, err := strconv.Atoi(m[1])
	if err != nil || module <= 0 {
		return Heading{}, &ValidationError{Field: "heading", Message: "module number must be positive"}
	}
	lesson, err := strconv.Atoi(m[3])
	if err != nil || lesson <= 0 {
		return Heading{}, &ValidationError{Field: "heading", Message: "lesson number must be positive"}
	}

	return Heading{
		Module:      module,
		ModuleTitle: strings.TrimSpace(m[2]),
		Lesson:      lesson,
		LessonTitle: strings.TrimSpace(m[4]),
	}, nil
}

// String renders the heading text without the markdown marker.
func (h Heading) String() string {
	return fmt.Sprintf("Module %d: %s - Lesson %d: %s", h.Module, h.ModuleTitle, h.Lesson, h.LessonTitle)
}

// FirstLine returns the first line of a markdown body without the trailing newline.
func FirstLine(body string) string {
	line, _, _ := strings.Cut(body, "\n")
	return strings.TrimRight(line, "\r")
}

// ValidateLesson checks the invariants of a lesson content record:
// a non-empty body, a first line in heading format, and heading numbers
// that agree with the record's identifier.
func ValidateLesson(l *Lesson) error {
	if l == nil {
		return ErrInvalidInput
	}
	if err := l.ID().Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(l.Body) == "" {
		return &ValidationError{Field: "body", Message: "is required"}
	}
	if len(l.Body) > maxBodyLength {
		return &ValidationError{
			Field:   "body",
			Message: fmt.Sprintf("must not exceed %d bytes", maxBodyLength),
		}
	}

	first := FirstLine(l.Body)
	if !strings.HasPrefix(first, "# ") {
		return &ValidationError{Field: "body", Message: "must start with a level-1 heading"}
	}
	h, err := ParseHeading(first)
	if err != nil {
		return err
	}
	if h.Module != l.ModuleNumber || h.Lesson != l.LessonNumber {
		return &ValidationError{
			Field: "heading",
			Message: fmt.Sprintf("numbers %s do not match record %s",
				LessonID{Module: h.Module, Lesson: h.Lesson}, l.ID()),
		}
	}
	return nil
}
