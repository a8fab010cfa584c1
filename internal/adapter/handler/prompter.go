package handler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

// ErrAborted is returned when the user types the cancel sentinel or the
// input stream ends.
var ErrAborted = errors.New("input cancelled")

const cancelInput = "0"

// Prompter reads validated values from a line-oriented console. Invalid
// input is reported and asked for again; "0" cancels any prompt.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Line returns the next trimmed line without validation.
func (p *Prompter) Line(label string) (string, error) {
	p.Printf("%s: ", label)
	if !p.in.Scan() {
		p.Println()
		return "", ErrAborted
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *Prompter) read(label string) (string, error) {
	s, err := p.Line(label)
	if err != nil {
		return "", err
	}
	if s == cancelInput {
		return "", ErrAborted
	}
	return s, nil
}

// Text asks until a non-empty value free of the storage delimiter is given.
func (p *Prompter) Text(label string) (string, error) {
	for {
		s, err := p.read(label)
		if err != nil {
			return "", err
		}
		switch {
		case s == "":
			p.Println("  A value is required.")
		case strings.Contains(s, "|"):
			p.Println("  The '|' character is not allowed.")
		default:
			return s, nil
		}
	}
}

// Optional returns ok == false when the user just presses enter.
func (p *Prompter) Optional(label string) (string, bool, error) {
	for {
		s, err := p.read(label + " (enter to keep)")
		if err != nil {
			return "", false, err
		}
		if s == "" {
			return "", false, nil
		}
		if strings.Contains(s, "|") {
			p.Println("  The '|' character is not allowed.")
			continue
		}
		return s, true, nil
	}
}

func (p *Prompter) Int(label string, lo, hi int) (int, error) {
	for {
		s, err := p.read(fmt.Sprintf("%s (%d-%d)", label, lo, hi))
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(s)
		if err != nil || v < lo || v > hi {
			p.Printf("  Enter a whole number between %d and %d.\n", lo, hi)
			continue
		}
		return v, nil
	}
}

// Float asks for a number of at least lo.
func (p *Prompter) Float(label string, lo float64) (float64, error) {
	for {
		s, err := p.read(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < lo {
			p.Printf("  Enter a number of at least %s.\n", money(lo))
			continue
		}
		return v, nil
	}
}

func (p *Prompter) Date(label string) (domain.Date, error) {
	for {
		s, err := p.read(label + " (YYYY-MM-DD)")
		if err != nil {
			return domain.Date{}, err
		}
		d, err := domain.ParseDate(s)
		if err != nil {
			p.Println("  Enter a real calendar date such as 2025-10-01.")
			continue
		}
		return d, nil
	}
}

func (p *Prompter) Confirm(label string) (bool, error) {
	for {
		s, err := p.Line(label + " (y/n)")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(s) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.Println("  Answer y or n.")
	}
}

// Menu prints numbered options and returns the pick; 0 means back.
func (p *Prompter) Menu(title string, options ...string) int {
	p.Printf("\n=== %s ===\n", title)
	for i, o := range options {
		p.Printf("%2d. %s\n", i+1, o)
	}
	p.Println(" 0. Back")
	for {
		s, err := p.Line("Choice")
		if err != nil {
			return 0
		}
		v, err := strconv.Atoi(s)
		if err == nil && v >= 0 && v <= len(options) {
			return v
		}
		p.Printf("  Choose 0-%d.\n", len(options))
	}
}

// Pick lets the user choose one of labels by number and returns its index.
func (p *Prompter) Pick(label string, labels []string) (int, error) {
	for i, l := range labels {
		p.Printf("%2d. %s\n", i+1, l)
	}
	v, err := p.Int(label, 1, len(labels))
	if err != nil {
		return 0, err
	}
	return v - 1, nil
}
