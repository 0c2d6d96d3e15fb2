// Package presentation renders a run as plain line output for terminals
// where the full screen UI is unwanted, with selection read from stdin.
package presentation

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"garmail/internal/domain"
	"garmail/internal/pipeline"
)

type Printer struct {
	Writer  io.Writer
	Reader  io.Reader
	Verbose bool
}

// Run starts one acquisition run and prints its events until a terminal
// one arrives. It returns the error message on failure, empty on success.
func (p Printer) Run(sup *pipeline.Supervisor, params pipeline.Params) (string, error) {
	if err := sup.Start(params); err != nil {
		return "", err
	}

	lastCountdown := -1
	for ev := range sup.Events() {
		switch e := ev.(type) {
		case pipeline.Step:
			fmt.Fprintln(p.Writer, e.Text)

		case pipeline.Countdown:
			if e.Hidden || e.SecondsLeft == lastCountdown {
				continue
			}
			lastCountdown = e.SecondsLeft
			if p.Verbose {
				fmt.Fprintf(p.Writer, "  %ds left\n", e.SecondsLeft)
			}

		case pipeline.AskSelection:
			e.Reply <- p.choose(e.Candidates, e.Preselect)

		case pipeline.Done:
			fmt.Fprintln(p.Writer, e.Message)
			if e.DestDir != "" {
				fmt.Fprintln(p.Writer, "Files are in "+e.DestDir)
			}
			fmt.Fprint(p.Writer, "\a")
			return "", nil

		case pipeline.Error:
			fmt.Fprintln(p.Writer, "Error: "+e.Message)
			fmt.Fprint(p.Writer, "\a")
			return e.Message, nil
		}
	}
	return "", nil
}

// choose lists the candidates and reads the operator's pick. An empty
// answer takes the preselection when one exists.
func (p Printer) choose(candidates []domain.ActivityFile, preselect bool) []domain.ActivityFile {
	fmt.Fprintln(p.Writer)
	fmt.Fprintln(p.Writer, "Activity files:")
	for i, f := range candidates {
		fmt.Fprintln(p.Writer, formatCandidate(i+1, f))
	}
	prompt := "Select files (e.g. 1,3 or a for all): "
	if preselect {
		prompt = "Select files (Enter keeps the marked pick, e.g. 1,3 or a for all): "
	}
	fmt.Fprint(p.Writer, prompt)

	scanner := bufio.NewScanner(p.Reader)
	if !scanner.Scan() {
		return nil
	}
	return pickCandidates(candidates, scanner.Text(), preselect)
}

func formatCandidate(ordinal int, f domain.ActivityFile) string {
	return fmt.Sprintf("%3d. %-24s %s  %s",
		ordinal, f.Name, f.ModTime.Format("2006-01-02 15:04"), domain.FormatSize(f.Size))
}

// pickCandidates parses an answer like "1,3" into the chosen subset.
// Out-of-range ordinals are ignored rather than failing the run.
func pickCandidates(candidates []domain.ActivityFile, answer string, preselect bool) []domain.ActivityFile {
	answer = strings.TrimSpace(strings.ToLower(answer))
	switch answer {
	case "a", "all":
		return candidates
	case "":
		if preselect {
			return candidates
		}
		return nil
	}

	chosen := make([]domain.ActivityFile, 0, len(candidates))
	seen := make(map[int]bool)
	for _, tok := range strings.FieldsFunc(answer, func(r rune) bool { return r == ',' || r == ' ' }) {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 || n > len(candidates) || seen[n] {
			continue
		}
		seen[n] = true
		chosen = append(chosen, candidates[n-1])
	}
	return chosen
}
