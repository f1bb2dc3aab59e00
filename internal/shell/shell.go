// Package shell is the interactive prompt: sentences are translated or
// interpreted depending on the mode, lines starting with ! are commands.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/samber/lo"

	"github.com/vic/montague/internal/log"
	"github.com/vic/montague/pkg/combinator"
	"github.com/vic/montague/pkg/lambda"
	"github.com/vic/montague/pkg/montague"
)

// Mode selects what the shell does with a sentence.
type Mode string

const (
	Translate Mode = "translate"
	Interpret Mode = "interpret"
)

var modes = []Mode{Translate, Interpret}

const (
	prompt      = ">>> "
	historyFile = ".montague_history"
)

const helpMessage = `Available commands:
    !mode          Display the current operating mode.
    !mode <mode>   Switch the operating mode.
    !words         List all words in the lexicon.
    !help          Display this help message.
    Ctrl+D         Exit the program.

Available modes:
    translate      Translate English text into logic.
    interpret      Evaluate English text in the world model.
`

// Shell holds the state of one interactive session.
type Shell struct {
	session *montague.Session
	mode    Mode
	ascii   bool
}

func New(session *montague.Session, ascii bool) *Shell {
	return &Shell{session: session, mode: Translate, ascii: ascii}
}

func (sh *Shell) Mode() Mode { return sh.mode }

// Execute handles one line of input and returns the response; empty input
// gets an empty response.
func (sh *Shell) Execute(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	if cmd, ok := strings.CutPrefix(line, "!"); ok {
		return sh.command(cmd)
	}

	tokens := strings.Fields(line)
	switch sh.mode {
	case Interpret:
		res, err := sh.session.Interpret(tokens)
		if err != nil {
			return "Error: " + err.Error()
		}
		return FormatResult(res, sh.ascii)
	default:
		cands, err := sh.session.Translate(tokens)
		if err != nil {
			return "Error: " + err.Error()
		}
		return FormatCandidates(cands, sh.ascii)
	}
}

func (sh *Shell) command(cmd string) string {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return fmt.Sprintf("Unrecognized command %s.", cmd)
	}
	switch {
	case fields[0] == "mode" && len(fields) == 1:
		return fmt.Sprintf("You are currently in %s mode.", sh.mode)
	case fields[0] == "mode" && len(fields) == 2:
		m := Mode(fields[1])
		if !lo.Contains(modes, m) {
			names := lo.Map(modes, func(m Mode, _ int) string { return string(m) })
			return fmt.Sprintf("%s is not a recognized mode. Available modes are: %s.\nRemaining in %s mode.",
				m, strings.Join(names, ", "), sh.mode)
		}
		sh.mode = m
		return fmt.Sprintf("Switched to %s mode.", m)
	case fields[0] == "words" && len(fields) == 1:
		return strings.Join(sh.session.Lexicon().Words(), " ")
	case fields[0] == "help" && len(fields) == 1:
		return helpMessage + fmt.Sprintf("\nYou are currently in %s mode.", sh.mode)
	}
	return fmt.Sprintf("Unrecognized command %s.", cmd)
}

// Run reads lines until end of input, printing each response to out.
// History is kept in $HOME/.montague_history.
func (sh *Shell) Run(out io.Writer) error {
	fmt.Fprintf(out, "%s\n", helpMessage)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	var histPath string
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if resp := sh.Execute(line); resp != "" {
			fmt.Fprintln(out, resp)
		}
		log.Debug("session %s: %d translations cached", sh.session.ID, sh.session.Cached())
	}
}

func formatTerm(t lambda.Term, ascii bool) string {
	if ascii {
		return lambda.ASCII(t)
	}
	return t.String()
}

// FormatCandidates prints each reading as a denotation and its type,
// separated by blank lines.
func FormatCandidates(cands []combinator.Candidate, ascii bool) string {
	parts := lo.Map(cands, func(c combinator.Candidate, _ int) string {
		return fmt.Sprintf("Denotation: %s\nType: %s", formatTerm(c.Term, ascii), c.Type)
	})
	return strings.Join(parts, "\n\n")
}

// FormatResult prints each truth-valued reading with its value in the model.
func FormatResult(res *montague.Result, ascii bool) string {
	parts := lo.Map(res.Readings, func(r montague.Reading, _ int) string {
		return fmt.Sprintf("Denotation: %s\nType: %s\nValue: %s", formatTerm(r.Term, ascii), r.Type, r.Value)
	})
	out := strings.Join(parts, "\n\n")
	if res.Ambiguous() {
		out = fmt.Sprintf("%s\n\n(%d readings)", out, len(res.Readings))
	}
	return out
}
