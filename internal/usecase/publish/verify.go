package publish

import (
	"fmt"
	"sort"

	"pycourse/internal/content"
	"pycourse/internal/domain/entity"
)

// Severity grades a verification problem.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Problem is one verification finding. Lesson is the zero value for
// module-level findings.
type Problem struct {
	Severity Severity
	Lesson   entity.LessonID
	Message  string
}

func (p Problem) String() string {
	if p.Lesson == (entity.LessonID{}) {
		return fmt.Sprintf("%s: %s", p.Severity, p.Message)
	}
	return fmt.Sprintf("%s: %s: %s", p.Severity, p.Lesson, p.Message)
}

// HasErrors reports whether any problem has SeverityError.
func HasErrors(problems []Problem) bool {
	for _, p := range problems {
		if p.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Verify checks every lesson of b. See VerifyLessons.
func Verify(b *content.Bundle) []Problem {
	return VerifyLessons(b.Lessons())
}

// VerifyLessons re-validates lessons before they are published.
// Format errors, checksum mismatches and duplicate pairs are errors;
// gaps in module or lesson numbering are warnings.
func VerifyLessons(lessons []*entity.Lesson) []Problem {
	var problems []Problem
	seen := make(map[entity.LessonID]bool, len(lessons))
	byModule := make(map[int][]int)

	for _, l := range lessons {
		id := l.ID()
		if err := entity.ValidateLesson(l); err != nil {
			problems = append(problems, Problem{SeverityError, id, err.Error()})
			continue
		}
		if l.Checksum != entity.Checksum(l.Body) {
			problems = append(problems, Problem{SeverityError, id, "checksum does not match body"})
		}
		if seen[id] {
			problems = append(problems, Problem{SeverityError, id, "duplicate lesson"})
			continue
		}
		seen[id] = true
		byModule[id.Module] = append(byModule[id.Module], id.Lesson)
	}

	modules := make([]int, 0, len(byModule))
	for m := range byModule {
		modules = append(modules, m)
	}
	sort.Ints(modules)

	if len(modules) > 0 {
		for m := 1; m < modules[len(modules)-1]; m++ {
			if _, ok := byModule[m]; !ok {
				problems = append(problems, Problem{
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("module %d is missing", m),
				})
			}
		}
	}

	for _, m := range modules {
		nums := byModule[m]
		sort.Ints(nums)
		next := 1
		for _, n := range nums {
			for ; next < n; next++ {
				problems = append(problems, Problem{
					Severity: SeverityWarning,
					Lesson:   entity.LessonID{Module: m, Lesson: next},
					Message:  "lesson is missing",
				})
			}
			next = n + 1
		}
	}
	return problems
}
