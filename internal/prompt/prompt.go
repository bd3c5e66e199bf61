// Package prompt asks the user for firing parameters on a line based terminal,
// re-asking until an accepted answer is given.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"firing_curve/internal/builder"
	"firing_curve/internal/glass"
)

// ErrNoInput is returned when the input ends before a question was answered.
var ErrNoInput = errors.New("input closed before an answer was given")

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", ErrNoInput
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Choose lists options numbered from 1 and returns the index of the chosen one.
func (p *Prompter) Choose(question string, options []string) (int, error) {
	for {
		fmt.Fprintln(p.out, question)
		for i, o := range options {
			fmt.Fprintf(p.out, "%d. %s\n", i+1, o)
		}
		fmt.Fprint(p.out, "Enter a number: ")
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintf(p.out, "Invalid choice, enter a number from 1 to %d.\n", len(options))
	}
}

// Int asks for a whole number contained in allowed.
func (p *Prompter) Int(question string, allowed []int) (int, error) {
	for {
		fmt.Fprintln(p.out, question)
		fmt.Fprint(p.out, "Enter a number: ")
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && slices.Contains(allowed, n) {
			return n, nil
		}
		fmt.Fprintf(p.out, "Invalid value, allowed: %s.\n", joinInts(allowed))
	}
}

// Params walks through every question needed to build a curve.
func (p *Prompter) Params(tables *glass.Tables) (builder.Params, error) {
	var out builder.Params

	types := tables.Types()
	names := make([]string, len(types))
	for i, g := range types {
		names[i] = g.Name
	}
	i, err := p.Choose("Which glass will you fire?", names)
	if err != nil {
		return out, err
	}
	g := types[i]
	out.Glass = g.Name

	ovens := glass.AllowedOvens(g.Category)
	if len(ovens) == 1 {
		out.Oven = ovens[0]
		fmt.Fprintf(p.out, "Only a %s oven can be used for %s (%s).\n", glass.OvenName(out.Oven), g.Name, g.Category)
	} else {
		display := make([]string, len(ovens))
		for i, o := range ovens {
			display[i] = glass.OvenName(o)
		}
		i, err := p.Choose("Which oven do you have?", display)
		if err != nil {
			return out, err
		}
		out.Oven = ovens[i]
	}

	if out.Radius, err = p.Int("What is the largest radius (cm)?", builder.ValidRadii); err != nil {
		return out, err
	}
	if out.Layers, err = p.Int("How many layers at most?", builder.ValidLayers); err != nil {
		return out, err
	}
	if out.HoldMinutes, err = p.Int("How many minutes at top temperature?", intRange(builder.MinHoldMinutes, builder.MaxHoldMinutes)); err != nil {
		return out, err
	}
	if out.RoomTemp, err = p.Int("What is the room temperature of the workshop?", intRange(builder.MinRoomTemp, builder.MaxRoomTemp)); err != nil {
		return out, err
	}

	firings := []string{builder.FiringFull, builder.FiringSlump, builder.FiringTack}
	i, err = p.Choose("Which firing do you want?", []string{"full fuse", "slump", "tack fuse"})
	if err != nil {
		return out, err
	}
	out.Firing = firings[i]
	return out, nil
}

func intRange(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, v)
	}
	return out
}

func joinInts(vs []int) string {
	if len(vs) > 6 && vs[len(vs)-1]-vs[0] == len(vs)-1 {
		return fmt.Sprintf("%d to %d", vs[0], vs[len(vs)-1])
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
