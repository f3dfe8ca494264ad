// Package prompt runs the interactive yes/no tree and event menu on a terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Console reads answers line by line and writes prompts
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewConsole creates a console over in and out
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{scanner: bufio.NewScanner(in), out: out}
}

// Ask prints question and returns the trimmed answer line.
// io.EOF is returned when input ends.
func (c *Console) Ask(question string) (string, error) {
	c.Println(question)
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

// Println writes one line to the output
func (c *Console) Println(text string) {
	fmt.Fprintln(c.out, text)
}

// Confirm asks a yes/no question until it gets y, yes, n or no
func (c *Console) Confirm(question string) (bool, error) {
	for {
		answer, err := c.Ask(question)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		c.Println("Please answer yes or no.")
	}
}
