// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

// Package prompt is the operator-facing side of a session: one question, one
// line of input.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const affirmative = "yes"

// Prompter reads answers line by line and writes operator text.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Ask prints question and returns the next line trimmed and lowercased.
// io.EOF is returned only when no input was left at all.
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return Normalize(line), nil
		}
		// keep the transcript readable when input ran out mid-prompt
		fmt.Fprintln(p.out)
		return "", err
	}
	return Normalize(line), nil
}

// Confirm asks a yes/no question. Only "yes" counts; read errors count as no.
func (p *Prompter) Confirm(question string) bool {
	answer, err := p.Ask(question + " (yes/no): ")
	if err != nil {
		return false
	}
	return IsYes(answer)
}

func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Out exposes the writer so callers can render tables or blocks of text.
func (p *Prompter) Out() io.Writer {
	return p.out
}

// Normalize trims surrounding whitespace and lowercases an answer.
func Normalize(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// IsYes reports whether answer is the affirmative token.
func IsYes(answer string) bool {
	return Normalize(answer) == affirmative
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
