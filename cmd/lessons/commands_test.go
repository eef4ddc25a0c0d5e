package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pycourse/internal/domain/entity"
	"pycourse/internal/usecase/lesson"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9, "header plus every published lesson")
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "m1-l1")
	assert.Contains(t, lines[1], "What is Python?")
}

func TestList_Module(t *testing.T) {
	out, err := run(t, "list", "--module", "3")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "\n"), "header plus two lessons")
	assert.NotContains(t, out, "m1-")

	_, err = run(t, "list", "-m", "9")
	assert.ErrorIs(t, err, lesson.ErrModuleNotFound)
}

func TestShow(t *testing.T) {
	t.Run("raw", func(t *testing.T) {
		out, err := run(t, "show", "1", "1", "--raw")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "# Module 1: Introduction to Python - Lesson 1: What is Python?\n"))
		assert.Contains(t, out, "Guido van Rossum")

		again, err := run(t, "show", "1", "1", "--raw")
		require.NoError(t, err)
		assert.Equal(t, out, again)
	})

	t.Run("html", func(t *testing.T) {
		out, err := run(t, "show", "1", "1", "--html")
		require.NoError(t, err)
		assert.Contains(t, out, "<h1 id=")
		assert.Contains(t, out, "Lesson 1: What is Python?</h1>")
	})

	t.Run("terminal", func(t *testing.T) {
		out, err := run(t, "show", "1", "1", "--style", "notty", "--width", "60")
		require.NoError(t, err)
		assert.Contains(t, out, "Guido")
		assert.Contains(t, out, "What is Python?")
	})

	t.Run("raw and html are exclusive", func(t *testing.T) {
		_, err := run(t, "show", "1", "1", "--raw", "--html")
		assert.Error(t, err)
	})

	t.Run("unpublished", func(t *testing.T) {
		_, err := run(t, "show", "3", "3", "--raw")
		assert.ErrorIs(t, err, lesson.ErrLessonNotFound)
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := run(t, "show", "one", "1")
		assert.ErrorIs(t, err, entity.ErrInvalidLessonID)
	})

	t.Run("not positive", func(t *testing.T) {
		_, err := run(t, "show", "0", "1")
		assert.ErrorIs(t, err, entity.ErrInvalidLessonID)
	})
}

func TestSearch(t *testing.T) {
	out, err := run(t, "search", "guido", "rossum")
	require.NoError(t, err)
	assert.Contains(t, out, "m1-l1")

	out, err = run(t, "search", "xyzzy-not-a-word")
	require.NoError(t, err)
	assert.Equal(t, "no lessons found\n", out)

	_, err = run(t, "search")
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	out, err := run(t, "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "8 lessons ok")
}

func TestPublish(t *testing.T) {
	dsn := "sqlite:" + filepath.Join(t.TempDir(), "cli.db")

	_, err := run(t, "publish")
	assert.ErrorContains(t, err, "DATABASE_URL")

	out, err := run(t, "publish", "--database-url", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "published release")
	assert.Contains(t, out, "8 lessons")

	out, err = run(t, "publish", "--database-url", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "already published")

	out, err = run(t, "show", "1", "1", "--raw", "--database-url", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "Guido van Rossum")
}
