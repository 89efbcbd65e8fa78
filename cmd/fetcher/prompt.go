package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// prompter asks for values that were not configured.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

// fill asks for each empty target in order; prefilled targets are skipped.
func (p *prompter) fill(header string, fields ...promptField) error {
	printed := false
	for _, f := range fields {
		if *f.target != "" {
			continue
		}
		if !printed {
			fmt.Fprintf(p.out, "%s\n\n", header)
			printed = true
		}
		v, err := p.ask(f.label)
		if err != nil {
			return err
		}
		*f.target = v
	}
	return nil
}

type promptField struct {
	label  string
	target *string
}
