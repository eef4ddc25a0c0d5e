package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLessonID(t *testing.T) {
	tests := []struct {
		name    string
		module  int
		lesson  int
		wantErr bool
	}{
		{name: "first lesson", module: 1, lesson: 1},
		{name: "large numbers", module: 12, lesson: 30},
		{name: "zero module", module: 0, lesson: 1, wantErr: true},
		{name: "zero lesson", module: 1, lesson: 0, wantErr: true},
		{name: "negative", module: -1, lesson: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewLessonID(tt.module, tt.lesson)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLessonID)
				assert.Equal(t, LessonID{}, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, LessonID{Module: tt.module, Lesson: tt.lesson}, id)
		})
	}
}

func TestLessonID_StringRoundTrip(t *testing.T) {
	id := LessonID{Module: 3, Lesson: 14}
	assert.Equal(t, "m3-l14", id.String())

	parsed, err := ParseLessonID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParseLessonID_Invalid(t *testing.T) {
	for _, in := range []string{"", "1-1", "m1", "m1-", "m-l1", "mx-l1", "m1-lx", "m0-l1", "m1-l-2"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseLessonID(in)
			assert.True(t, errors.Is(err, ErrInvalidLessonID), "input %q", in)
		})
	}
}

func TestLessonID_Less(t *testing.T) {
	assert.True(t, LessonID{1, 2}.Less(LessonID{1, 3}))
	assert.True(t, LessonID{1, 9}.Less(LessonID{2, 1}))
	assert.False(t, LessonID{2, 1}.Less(LessonID{1, 9}))
	assert.False(t, LessonID{1, 1}.Less(LessonID{1, 1}))
}

func TestChecksum_Deterministic(t *testing.T) {
	a := Checksum("# Module 1: Intro - Lesson 1: Hi\n")
	b := Checksum("# Module 1: Intro - Lesson 1: Hi\n")
	c := Checksum("# Module 1: Intro - Lesson 1: Hi!\n")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestSummarizeModules(t *testing.T) {
	lessons := []*Lesson{
		{ModuleNumber: 1, LessonNumber: 1, ModuleTitle: "Introduction to Python"},
		{ModuleNumber: 1, LessonNumber: 2, ModuleTitle: "Introduction to Python"},
		{ModuleNumber: 2, LessonNumber: 1, ModuleTitle: "Variables and Data Types"},
	}

	got := SummarizeModules(lessons)

	assert.Equal(t, []Module{
		{Number: 1, Title: "Introduction to Python", LessonCount: 2},
		{Number: 2, Title: "Variables and Data Types", LessonCount: 1},
	}, got)
	assert.Empty(t, SummarizeModules(nil))
}
