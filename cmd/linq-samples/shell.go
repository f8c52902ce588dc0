package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const shellPrompt = "linq> "

const shellHelp = `Commands:
  list [category]     list samples
  run <sample...>     run samples by name
  search <term>       find samples by name or title
  explain on|off      toggle plan output
  join hash|nested    choose the join strategy
  help                show this help
  quit                leave the shell
`

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Browse and run samples interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.shell()
		},
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".linq_samples_history")
}

func (a *app) shell() error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(a.complete)

	history := historyPath()
	if history != "" {
		if f, err := os.Open(history); err == nil { //nolint:gosec // fixed path under the home directory
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Fprint(a.out, shellHelp)
	for {
		input, err := line.Prompt(shellPrompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)

		quit, err := a.execLine(input)
		if err != nil {
			a.failure.Fprintln(a.out, err)
		}
		if quit {
			break
		}
	}

	if history != "" {
		if f, err := os.Create(history); err == nil { //nolint:gosec // fixed path under the home directory
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}
	return nil
}

// execLine runs one shell command and reports whether the shell should exit.
func (a *app) execLine(input string) (bool, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprint(a.out, shellHelp)
	case "list":
		a.list(strings.Join(args, " "))
	case "search":
		if len(args) == 0 {
			return false, fmt.Errorf("usage: search <term>")
		}
		for _, s := range a.registry.Search(strings.Join(args, " ")) {
			fmt.Fprintf(a.out, "  %-20s %s\n", s.Name, s.Title)
		}
	case "run":
		selected, err := a.selectSamples(args, "", false)
		if err != nil {
			return false, err
		}
		return false, a.runAll(selected)
	case "explain":
		on, err := parseSwitch(args)
		if err != nil {
			return false, err
		}
		a.opts.explain = on
		fmt.Fprintf(a.out, "explain %s\n", onOff(on))
	case "join":
		if len(args) != 1 || (args[0] != "hash" && args[0] != "nested") {
			return false, fmt.Errorf("usage: join hash|nested")
		}
		a.setJoinOptimization(args[0] == "hash")
		fmt.Fprintf(a.out, "join strategy %s\n", args[0])
	default:
		return false, fmt.Errorf("unknown command: %s (type help)", cmd)
	}
	return false, nil
}

func (a *app) complete(input string) []string {
	commands := []string{"list", "run", "search", "explain", "join", "help", "quit"}
	fields := strings.Fields(input)

	var candidates []string
	switch {
	case len(fields) == 0 || (len(fields) == 1 && !strings.HasSuffix(input, " ")):
		for _, c := range commands {
			if strings.HasPrefix(c, strings.ToLower(input)) {
				candidates = append(candidates, c)
			}
		}
	case fields[0] == "run":
		prefix := ""
		if !strings.HasSuffix(input, " ") {
			prefix = fields[len(fields)-1]
			input = strings.TrimSuffix(input, prefix)
		}
		for _, s := range a.registry.All() {
			if strings.HasPrefix(s.Name, prefix) {
				candidates = append(candidates, input+s.Name)
			}
		}
	}
	sort.Strings(candidates)
	return candidates
}

func parseSwitch(args []string) (bool, error) {
	if len(args) == 1 {
		switch strings.ToLower(args[0]) {
		case "on", "true":
			return true, nil
		case "off", "false":
			return false, nil
		}
	}
	return false, fmt.Errorf("usage: explain on|off")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
