// Package prompt implements the interactive filter menu. It reads the
// user's choices and values from an input stream and produces the
// narrowing criteria for the filter pipeline.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/imdbsieve/internal/filter"
)

// ErrNoInput is returned when the input ends before the menu is answered.
var ErrNoInput = errors.New("no input")

// Menu choices.
const (
	ChoiceVotes  = "1"
	ChoiceRating = "2"
	ChoiceGenre  = "3"
	ChoiceNone   = "4"
)

const menu = `Welcome to the Interactive Movie and TV Filter!
Choose filters to apply (e.g., 1,3):
1. Filter by Minimum Votes
2. Filter by Minimum Rating
3. Filter by Genre
4. No Filters (Proceed with all data)
`

// Prompter drives the menu over a reader and a writer.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter reading answers from in and writing prompts to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Run shows the menu and asks for the value of each selected filter.
// Choices are processed in the order given; 4 stops processing the
// remaining choices and unknown choices are reported and skipped. A
// repeated choice narrows further: thresholds keep the stricter value and
// every genre answer adds a genre the titles must match.
func (p *Prompter) Run(ctx context.Context) (filter.Criteria, error) {
	var (
		c      filter.Criteria
		votes  int64
		rating float64
		genre  string
	)

	fmt.Fprint(p.out, menu)

	line, err := p.ask(ctx, "Enter your choices (comma-separated): ")
	if err != nil {
		return c, err
	}

	for _, choice := range strings.Split(line, ",") {
		choice = strings.TrimSpace(choice)

		switch choice {
		case ChoiceVotes:
			votes, err = askValue(ctx, p, "Enter the minimum number of votes required (e.g., 5000): ", filter.ParseMinVotes)
			c.MinVotes = max(c.MinVotes, votes)
		case ChoiceRating:
			rating, err = askValue(ctx, p, "Enter the minimum rating (e.g., 7.5): ", filter.ParseMinRating)
			c.MinRating = max(c.MinRating, rating)
		case ChoiceGenre:
			genre, err = askValue(ctx, p, "Enter the genre (e.g., Comedy): ", parseGenre)
			if err == nil {
				c.Genres = append(c.Genres, genre)
			}
		case ChoiceNone:
			fmt.Fprintln(p.out, "Proceeding without additional filters.")
			return c, nil
		default:
			fmt.Fprintf(p.out, "Invalid choice: %s. Skipping...\n", choice)
		}

		if err != nil {
			return c, err
		}
	}

	return c, nil
}

// askValue prompts until parse accepts the answer.
func askValue[T any](ctx context.Context, p *Prompter, question string, parse func(string) (T, error)) (T, error) {
	for {
		answer, err := p.ask(ctx, question)
		if err != nil {
			var zero T
			return zero, err
		}

		v, err := parse(answer)
		if err == nil {
			return v, nil
		}

		fmt.Fprintf(p.out, "%v. Please try again.\n", err)
	}
}

// ask writes question and reads one line of input.
func (p *Prompter) ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}

		if line == "" {
			fmt.Fprintln(p.out)
			return "", ErrNoInput
		}
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func parseGenre(s string) (string, error) {
	g := strings.TrimSpace(s)
	if g == "" {
		return "", errors.New("genre must not be empty")
	}

	return g, nil
}
