package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/myrjola/gymplan/internal/workout"
)

// Prompter asks for input until it is valid. It only gives up when the input ends, returning io.EOF.
type Prompter struct {
	scanner  *bufio.Scanner
	out      io.Writer
	renderer Renderer
}

func NewPrompter(in io.Reader, out io.Writer, renderer Renderer) *Prompter {
	return &Prompter{
		scanner:  bufio.NewScanner(in),
		out:      out,
		renderer: renderer,
	}
}

// Text returns the next line with surrounding whitespace removed.
func (p *Prompter) Text(prompt string) (string, error) {
	_, _ = fmt.Fprint(p.out, prompt)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// ask re-prompts until parse accepts the answer.
func ask[T any](p *Prompter, prompt string, parse func(string) (T, error)) (T, error) {
	for {
		answer, err := p.Text(prompt)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(answer)
		if err == nil {
			return v, nil
		}
		p.renderer.Error(err.Error())
	}
}

// Int asks for an integer within [minimum, maximum].
func (p *Prompter) Int(prompt string, minimum, maximum int) (int, error) {
	return ask(p, prompt, func(answer string) (int, error) {
		n, err := strconv.Atoi(answer)
		if err != nil {
			return 0, errors.New("please enter a valid number")
		}
		if n < minimum || n > maximum {
			return 0, fmt.Errorf("please choose a number between %d and %d", minimum, maximum)
		}
		return n, nil
	})
}

// Name asks for a name made of letters and spaces.
func (p *Prompter) Name(prompt string) (string, error) {
	return ask(p, prompt, func(answer string) (string, error) {
		if err := workout.ValidateName(answer); err != nil {
			return "", errors.New("only alphabetical characters and spaces allowed")
		}
		return answer, nil
	})
}

// Gender asks for female or male.
func (p *Prompter) Gender(prompt string) (workout.Gender, error) {
	return ask(p, prompt, func(answer string) (workout.Gender, error) {
		g, err := workout.ParseGender(answer)
		if err != nil {
			return "", errors.New("please enter 'female' or 'male'")
		}
		return g, nil
	})
}

// Weight asks for a positive number.
func (p *Prompter) Weight(prompt string) (float64, error) {
	return ask(p, prompt, func(answer string) (float64, error) {
		w, err := strconv.ParseFloat(answer, 64)
		if err != nil || w <= 0 {
			return 0, errors.New("invalid weight value")
		}
		return w, nil
	})
}

// Unit asks for kg or lbs. An empty answer selects kg.
func (p *Prompter) Unit(prompt string) (workout.Unit, error) {
	return ask(p, prompt, func(answer string) (workout.Unit, error) {
		u, err := workout.ParseUnit(answer)
		if err != nil {
			return "", errors.New("please enter 'kg' or 'lbs'")
		}
		return u, nil
	})
}
