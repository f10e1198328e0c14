package browse

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cqusn/smartcar/pkg/model"
	"github.com/cqusn/smartcar/pkg/sample"
)

func runSession(t *testing.T, n int, input string) (*Session, string) {
	t.Helper()
	cars, students := sample.Generate(n)
	var out bytes.Buffer
	s, err := NewSession(cars, students, strings.NewReader(input), &out)
	require.NoError(t, err)
	require.NoError(t, s.Run())
	return s, out.String()
}

func TestSession_Navigation(t *testing.T) {
	s, out := runSession(t, 3, "n n n p q")

	assert.Equal(t, 1, s.Navigator().Index())
	assert.Equal(t, 1, strings.Count(out, MsgLast))
	assert.Zero(t, strings.Count(out, MsgFirst))
	// initial view, n, n, n (stays), p
	assert.Equal(t, 5, strings.Count(out, separator))
	assert.Equal(t, 5, strings.Count(out, Prompt))
}

func TestSession_FirstRecordAndInvalid(t *testing.T) {
	s, out := runSession(t, 2, "p\nx\nq\n")

	assert.Equal(t, 0, s.Navigator().Index())
	assert.Contains(t, out, MsgFirst)
	assert.Contains(t, out, MsgInvalid)
	assert.Equal(t, 3, strings.Count(out, "小车编号: cqusn100000"))
}

func TestSession_CommandsWithoutSpaces(t *testing.T) {
	s, out := runSession(t, 4, "nnnq")
	assert.Equal(t, 3, s.Navigator().Index())
	assert.Contains(t, out, "小车编号: cqusn100003")
}

func TestSession_EndOfInput(t *testing.T) {
	s, out := runSession(t, 2, "n")
	assert.Equal(t, 1, s.Navigator().Index())
	assert.True(t, strings.HasSuffix(out, Prompt+"\n"))
}

func TestSession_Empty(t *testing.T) {
	_, out := runSession(t, 0, "n")
	assert.Equal(t, MsgNoRecords+"\n", out)
}

func TestSession_Unaligned(t *testing.T) {
	cars, students := sample.Generate(2)
	_, err := NewSession(cars, students[:1], strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, model.ErrLengthMismatch)
}

// failingWriter accepts limit bytes and then fails
type failingWriter struct {
	limit int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		return 0, errors.New("write failed")
	}
	w.limit -= len(p)
	return len(p), nil
}

func TestSession_NoticeWriteError(t *testing.T) {
	cars, students := sample.Generate(1)

	var view bytes.Buffer
	require.NoError(t, Render(&view, cars[0], students[0]))
	budget := view.Len() + len(Prompt)

	for _, input := range []string{"n", "p", "x"} {
		t.Run(input, func(t *testing.T) {
			s, err := NewSession(cars, students, strings.NewReader(input), &failingWriter{limit: budget})
			require.NoError(t, err)
			assert.EqualError(t, s.Run(), "write failed")
		})
	}
}
