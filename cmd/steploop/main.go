// Steploop is an interactive coding assistant driven by a step protocol.
//
// It reads queries from stdin, sends them to a configured model provider,
// and executes the tool actions the model requests (weather lookup, shell
// commands, file writes, AI-assisted file repair) until the model produces
// a final answer. Configuration is loaded from a single YAML file
// discovered automatically (see [config.DefaultSearchPaths]).
//
// Usage:
//
//	steploop                  Start the interactive prompt loop
//	steploop -config p.yaml   Use an explicit config file
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/martinemde/steploop/config"
	"github.com/martinemde/steploop/llm"
	"github.com/martinemde/steploop/loop"
	"github.com/martinemde/steploop/tools"
	"github.com/martinemde/steploop/transcript"
)

// main constructs the OS-level environment and delegates to run so the
// startup path stays testable.
func main() {
	if err := run(context.Background(), os.Stdin, os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdin io.Reader, stdout io.Writer, args []string) error {
	fs := flag.NewFlagSet("steploop", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if path, err := config.FindConfig(*configPath); err == nil {
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("load config %s: %w", path, err)
		}
	} else if *configPath != "" {
		// An explicit -config that does not exist is fatal; silent
		// defaults would hide the typo.
		return err
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	client, err := buildClient(cfg, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	policy := buildPolicy(cfg)
	registry := tools.NewRegistry(
		weatherTool(cfg),
		buildShellTool(cfg, policy),
		tools.NewWriteFileTool(policy),
		tools.NewRepairFileTool(policy, client, cfg.Model.Provider, cfg.Model.Name),
	)

	var opts []loop.Option
	if cfg.DataDir != "" {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		store, err := transcript.NewStore(cfg.DataDir + "/transcript.db")
		if err != nil {
			return fmt.Errorf("open transcript store: %w", err)
		}
		defer store.Close()
		opts = append(opts, loop.WithRecorder(store))
	}

	session := loop.NewSession(client, registry, loop.Config{
		MaxRounds: cfg.MaxRounds,
		Model:     cfg.Model.Name,
		Provider:  cfg.Model.Provider,
	}, opts...)
	defer session.Close()

	fmt.Fprintln(stdout, "Welcome! I'm your coding assistant. Type 'exit' to quit.")

	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(stdout, "> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if strings.EqualFold(query, "exit") {
			fmt.Fprintln(stdout, "Goodbye! Happy coding!")
			break
		}

		answer, err := session.Ask(ctx, query)
		// Progress events print before the answer so the console stays in
		// protocol order.
		renderPending(stdout, session.Events())
		if err != nil {
			logger.Warn("query failed", "error", err)
			fmt.Fprintf(stdout, "Sorry, something went wrong: %v\n", err)
			continue
		}
		fmt.Fprintln(stdout, answer)
	}

	return scanner.Err()
}

// buildClient wires the gollm adapter into the llm client with logging and
// retry middleware. A missing API key is not checked here; it surfaces as
// the first model-call failure.
func buildClient(cfg *config.Config, logger *slog.Logger) (*llm.Client, error) {
	var adapterOpts []llm.GollmAdapterOption
	if cfg.Model.Name != "" {
		adapterOpts = append(adapterOpts, llm.WithModel(cfg.Model.Name))
	}

	adapter, err := llm.NewGollmAdapter(cfg.Model.Provider, cfg.Model.APIKey, adapterOpts...)
	if err != nil {
		return nil, fmt.Errorf("configure %s provider: %w", cfg.Model.Provider, err)
	}

	return llm.NewClient(
		llm.WithProvider(adapter.Name(), adapter),
		llm.WithMiddleware(
			llm.LoggingMiddleware(logger),
			llm.RetryMiddleware(llm.DefaultRetryPolicy()),
		),
	), nil
}

func buildPolicy(cfg *config.Config) tools.Policy {
	if cfg.ShellExec.Restricted {
		root := cfg.Workspace.Path
		if root == "" {
			root = "."
		}
		return tools.RestrictedPolicy{
			Root:            root,
			DeniedPatterns:  cfg.ShellExec.DeniedPatterns,
			AllowedPrefixes: cfg.ShellExec.AllowedPrefixes,
		}
	}
	return tools.PermissivePolicy{WorkDir: cfg.Workspace.Path}
}

// buildShellTool wires the shell executor with the configured timeout and
// working directory. The workspace path is the fallback working dir so
// shell commands and file tools operate in the same place by default.
func buildShellTool(cfg *config.Config, policy tools.Policy) *tools.ShellTool {
	t := tools.NewShellTool(policy, time.Duration(cfg.ShellExec.DefaultTimeoutSec)*time.Second)
	t.WorkDir = cfg.ShellExec.WorkingDir
	if t.WorkDir == "" {
		t.WorkDir = cfg.Workspace.Path
	}
	return t
}

func weatherTool(cfg *config.Config) *tools.WeatherTool {
	t := tools.NewWeatherTool()
	if cfg.Weather.Endpoint != "" {
		t.Endpoint = cfg.Weather.Endpoint
	}
	return t
}

// renderPending drains the buffered session events and prints them as plain
// console lines. Final answers are printed by the prompt loop, not here, so
// they are skipped.
func renderPending(w io.Writer, events <-chan loop.SessionEvent) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			renderEvent(w, ev)
		default:
			return
		}
	}
}

func renderEvent(w io.Writer, ev loop.SessionEvent) {
	switch ev.Kind {
	case loop.EventPlan:
		fmt.Fprintf(w, "[plan] %v\n", ev.Data["content"])
	case loop.EventAction:
		fmt.Fprintf(w, "[action] %v(%v)\n", ev.Data["function"], ev.Data["input"])
	case loop.EventToolOutput:
		fmt.Fprintf(w, "[tool] %v\n", ev.Data["output"])
	case loop.EventObservation:
		fmt.Fprintf(w, "[observe] %v\n", ev.Data["content"])
	case loop.EventParseFailure:
		fmt.Fprintf(w, "[note] the model replied outside the step format\n")
	case loop.EventRoundLimit:
		fmt.Fprintf(w, "[note] stopped after %v model rounds\n", ev.Data["rounds"])
	}
}
