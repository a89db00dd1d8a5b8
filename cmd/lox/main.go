// Command lox runs Lox scripts and hosts the interactive prompt.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/loxlang/lox"
)

const (
	appName     = "lox"
	historyFile = ".lox_history"
	promptMain  = "> "
	promptCont  = ". "
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// errDiagnostics signals a run that finished with a non-empty diagnostic
// list; the diagnostics were already printed.
var errDiagnostics = errors.New("diagnostics reported")

type cli struct {
	Debug bool `help:"Enable debug logging." short:"d"`

	Run  runCmd  `cmd:"" help:"Run a script file."`
	Repl replCmd `cmd:"" default:"1" help:"Start the interactive prompt."`
}

type runCmd struct {
	Path string `arg:"" type:"existingfile" help:"Script to run."`
}

type replCmd struct{}

func main() {
	var c cli
	ktx := kong.Parse(&c,
		kong.Name(appName),
		kong.Description("A scripting language front end and tree-walking evaluator."),
		kong.UsageOnError(),
	)

	level := slog.LevelWarn
	if c.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := ktx.Run(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		}
		os.Exit(1)
	}
}

// ─── run ────────────────────────────────────────────────────────────────────

func (c *runCmd) Run() error {
	src, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", c.Path, err)
	}

	start := time.Now()
	diags := lox.Run(string(src), os.Stdout)
	slog.Debug("script finished",
		slog.String("path", c.Path),
		slog.Int("diagnostics", len(diags)),
		slog.Duration("elapsed", time.Since(start)),
	)

	if len(diags) > 0 {
		fmt.Fprint(os.Stderr, errorStyle.Render(lox.FormatDiags(diags, string(src))))
		return errDiagnostics
	}
	return nil
}

// ─── repl ───────────────────────────────────────────────────────────────────

func (c *replCmd) Run() error {
	fmt.Println(bannerStyle.Render("Lox REPL"))
	fmt.Println(hintStyle.Render("Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit."))

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := lox.NewInterpreter(os.Stdout)

	for {
		code, ok := readByParseProbe(ln)
		if !ok {
			fmt.Println()
			return nil
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return nil
			default:
				fmt.Println(hintStyle.Render("unknown command. Type :quit to exit."))
			}
			continue
		}

		diags := ip.RunSource(code)
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, errorStyle.Render(d.Error()))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readByParseProbe reads one unit of source, prompting for continuation lines
// while the buffered input merely ends mid-construct (unclosed brace, paren,
// or string). Returns ok=false on end of input.
func readByParseProbe(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if lox.IsIncomplete(lox.Check(src)) {
			continue
		}
		return src, true
	}
}
