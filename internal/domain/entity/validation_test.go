package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeading(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Heading
		wantErr bool
	}{
		{
			name: "with marker",
			line: "# Module 1: Introduction to Python - Lesson 1: What is Python?",
			want: Heading{Module: 1, ModuleTitle: "Introduction to Python", Lesson: 1, LessonTitle: "What is Python?"},
		},
		{
			name: "without marker",
			line: "Module 2: Variables and Data Types - Lesson 3: Strings",
			want: Heading{Module: 2, ModuleTitle: "Variables and Data Types", Lesson: 3, LessonTitle: "Strings"},
		},
		{
			name: "dash inside lesson title",
			line: "# Module 4: Functions - Lesson 2: Arguments - positional and keyword",
			want: Heading{Module: 4, ModuleTitle: "Functions", Lesson: 2, LessonTitle: "Arguments - positional and keyword"},
		},
		{name: "plain title", line: "# What is Python?", wantErr: true},
		{name: "zero lesson", line: "# Module 1: Intro - Lesson 0: Nothing", wantErr: true},
		{name: "empty", line: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHeading(tt.line)
			if tt.wantErr {
				var ve *ValidationError
				assert.True(t, errors.As(err, &ve))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeading_String(t *testing.T) {
	h := Heading{Module: 1, ModuleTitle: "Introduction to Python", Lesson: 1, LessonTitle: "What is Python?"}
	assert.Equal(t, "Module 1: Introduction to Python - Lesson 1: What is Python?", h.String())
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "# A", FirstLine("# A\nbody"))
	assert.Equal(t, "# A", FirstLine("# A\r\nbody"))
	assert.Equal(t, "only", FirstLine("only"))
	assert.Equal(t, "", FirstLine(""))
}

func TestValidateLesson(t *testing.T) {
	valid := func() *Lesson {
		return &Lesson{
			ModuleNumber: 1,
			LessonNumber: 2,
			Body:         "# Module 1: Introduction to Python - Lesson 2: Installing Python\n\nText.\n",
		}
	}

	tests := []struct {
		name    string
		mutate  func(l *Lesson)
		wantErr error
		field   string
	}{
		{name: "valid", mutate: func(*Lesson) {}},
		{name: "invalid id", mutate: func(l *Lesson) { l.LessonNumber = 0 }, wantErr: ErrInvalidLessonID},
		{name: "empty body", mutate: func(l *Lesson) { l.Body = "  \n" }, field: "body"},
		{name: "no heading marker", mutate: func(l *Lesson) { l.Body = "Module 1: X - Lesson 2: Y\n" }, field: "body"},
		{name: "bad heading", mutate: func(l *Lesson) { l.Body = "# Installing Python\n" }, field: "heading"},
		{name: "mismatched numbers", mutate: func(l *Lesson) { l.LessonNumber = 3 }, field: "heading"},
		{name: "too large", mutate: func(l *Lesson) { l.Body += strings.Repeat("x", maxBodyLength) }, field: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid()
			tt.mutate(l)
			err := ValidateLesson(l)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.field != "":
				var ve *ValidationError
				require.True(t, errors.As(err, &ve), "got %v", err)
				assert.Equal(t, tt.field, ve.Field)
			default:
				assert.NoError(t, err)
			}
		})
	}

	assert.ErrorIs(t, ValidateLesson(nil), ErrInvalidInput)
}
