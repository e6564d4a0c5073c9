// Package term содержит интерактивные запросы к пользователю в терминале.
package term

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/xerrors"
)

// ErrNotInteractive возвращается, когда стандартный ввод не является терминалом.
var ErrNotInteractive = xerrors.New("stdin is not a terminal")

// Terminal задает вопросы пользователю и читает ответы.
type Terminal struct {
	in      *bufio.Reader
	out     io.Writer
	stdinfd int
}

// NewTerminal создает новый экземпляр Terminal для stdin/stdout.
func NewTerminal() *Terminal {
	return &Terminal{
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		stdinfd: int(os.Stdin.Fd()),
	}
}

// NewTerminalWith создает Terminal поверх произвольных потоков. Такой терминал
// считается интерактивным.
func NewTerminalWith(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:      bufio.NewReader(in),
		out:     out,
		stdinfd: -1,
	}
}

// IsInteractive сообщает, можно ли задавать вопросы пользователю.
func (t *Terminal) IsInteractive() bool {
	if t.stdinfd < 0 {
		return true
	}
	return term.IsTerminal(t.stdinfd)
}

// Confirm задает вопрос с ответом y/N. Пустой ответ означает "нет".
func (t *Terminal) Confirm(question string) (bool, error) {
	if !t.IsInteractive() {
		return false, ErrNotInteractive
	}

	fmt.Fprintf(t.out, "%s [y/N]: ", question)
	answer, err := t.in.ReadString('\n')
	if err != nil && !(xerrors.Is(err, io.EOF) && answer != "") {
		return false, xerrors.Errorf("failed to read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "д", "да":
		return true, nil
	default:
		return false, nil
	}
}
