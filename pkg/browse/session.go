package browse

import (
	"bufio"
	"fmt"
	"io"
	"unicode"

	"github.com/cqusn/smartcar/pkg/model"
)

// Prompts and notices shown by a Session
const (
	Prompt       = "按 'n' 查看下一辆小车, 按 'p' 查看上一辆小车, 按 'q' 退出: "
	MsgLast      = "这是最后一辆小车。"
	MsgFirst     = "这是第一辆小车。"
	MsgInvalid   = "无效命令，请重试。"
	MsgNoRecords = "没有小车记录。"
)

// Session runs the interactive next/previous/quit loop
type Session struct {
	cars     []model.Car
	students []model.Student
	nav      *Navigator
	in       *bufio.Reader
	out      io.Writer
}

// NewSession creates a session over aligned cars and students
func NewSession(cars []model.Car, students []model.Student, in io.Reader, out io.Writer) (*Session, error) {
	if len(cars) != len(students) {
		return nil, fmt.Errorf("%w: %d cars, %d students", model.ErrLengthMismatch, len(cars), len(students))
	}
	return &Session{
		cars:     cars,
		students: students,
		nav:      NewNavigator(len(cars)),
		in:       bufio.NewReader(in),
		out:      out,
	}, nil
}

// Navigator exposes the session cursor
func (s *Session) Navigator() *Navigator {
	return s.nav
}

// Run shows the current record and reads single-character commands until 'q'
// or end of input. Whitespace between commands is ignored.
func (s *Session) Run() error {
	if s.nav.Len() == 0 {
		_, err := fmt.Fprintln(s.out, MsgNoRecords)
		return err
	}

	for {
		i := s.nav.Index()
		if err := Render(s.out, s.cars[i], s.students[i]); err != nil {
			return err
		}
		if _, err := io.WriteString(s.out, Prompt); err != nil {
			return err
		}

		cmd, err := s.readCommand()
		if err == io.EOF {
			_, err = fmt.Fprintln(s.out)
			return err
		}
		if err != nil {
			return err
		}

		var notice string
		switch cmd {
		case 'n':
			if !s.nav.Next() {
				notice = MsgLast
			}
		case 'p':
			if !s.nav.Prev() {
				notice = MsgFirst
			}
		case 'q':
			return nil
		default:
			notice = MsgInvalid
		}
		if notice != "" {
			if _, err := fmt.Fprintln(s.out, notice); err != nil {
				return err
			}
		}
	}
}

func (s *Session) readCommand() (rune, error) {
	for {
		r, _, err := s.in.ReadRune()
		if err != nil {
			return 0, err
		}
		if !unicode.IsSpace(r) {
			return r, nil
		}
	}
}
