package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/caarlos0/env/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/calclab/arith"
)

var (
	// Version is set at build time
	Version = "dev"
)

var cli struct {
	In    string   `help:"Input file ('-' for stdin)." placeholder:"FILE"`
	Fmt   string   `help:"Result formatting verb." default:"%g"`
	Lines bool     `help:"Parse separate input lines as separate expressions."`
	Echo  bool     `help:"Print parse trees."`
	Exprs []string `arg:"" optional:"" name:"expr" help:"Expressions to evaluate."`
}

// config holds settings read from the environment.
type config struct {
	LogLevel string `env:"ARITH_LOG_LEVEL" envDefault:"warn"`
	Prompt   string `env:"ARITH_PROMPT" envDefault:">>> "`
}

func loadConfig() (*config, error) {
	cfg := &config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("ARITH_LOG_LEVEL must be one of: debug, info, warn, error")
	}
}

func main() {
	kong.Parse(&cli,
		kong.Name("arith"),
		kong.Description("Evaluate infix arithmetic expressions."),
	)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("starting",
		zap.String("version", Version),
		zap.String("log_level", cfg.LogLevel),
	)

	r := &runner{verb: cli.Fmt, echo: cli.Echo, logger: logger}

	if cli.In == "" && len(cli.Exprs) == 0 {
		if err := r.interact(os.Stdin, os.Stdout, cfg.Prompt); err != nil {
			logger.Fatal("reading input", zap.Error(err))
		}
		return
	}

	var ins []io.RuneScanner
	if cli.In != "" {
		f, err := infile(cli.In)
		if err != nil {
			logger.Fatal("opening input", zap.Error(err))
		}
		ins = append(ins, f)
	}
	for _, arg := range cli.Exprs {
		ins = append(ins, strings.NewReader(arg))
	}
	if err := r.batch(ins, os.Stdout, cli.Lines); err != nil {
		logger.Fatal("evaluating input", zap.Error(err))
	}
}

// runner evaluates expressions and writes results.
type runner struct {
	verb   string
	echo   bool
	logger *zap.Logger
}

// interact reads expressions line by line until EOF or a line that is exactly
// "quit", writing a result or a readable error message for each. A failing
// expression never ends the session.
func (r *runner) interact(in io.Reader, out io.Writer, prompt string) error {
	fmt.Fprintln(out, "Welcome! Enter expressions to evaluate ('quit' to exit)")
	verb := r.verb + "\n"
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "quit" {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := arith.Parse(strings.NewReader(line))
		if err != nil {
			r.logger.Debug("parse failed", zap.String("expr", line), zap.Error(err))
			fmt.Fprintln(out, "error:", err)
			continue
		}
		if r.echo {
			fmt.Fprintf(out, "%v : ", e)
		}
		v, err := e.Eval()
		if err != nil {
			r.logger.Debug("evaluation failed", zap.String("expr", line), zap.Error(err))
			fmt.Fprintln(out, "error:", err)
			continue
		}
		fmt.Fprintf(out, verb, v)
	}
	return scanner.Err()
}

// batch parses every expression from every input, then evaluates them in
// order. Parse errors abort; evaluation errors are reported per expression.
func (r *runner) batch(ins []io.RuneScanner, out io.Writer, lines bool) error {
	var opts []arith.ParseOption
	if lines {
		opts = append(opts, arith.StopOn('\n'))
	}
	var exprs []*arith.Expr
	for _, in := range ins {
		for {
			// First check whether we're done with the input.
			if _, _, err := in.ReadRune(); err != nil {
				if err == io.EOF {
					break
				}
				return err
			}
			if err := in.UnreadRune(); err != nil {
				return err
			}
			e, err := arith.Parse(in, opts...)
			if err != nil {
				return err
			}
			exprs = append(exprs, e)
		}
	}
	verb := r.verb + "\n"
	for _, e := range exprs {
		if r.echo {
			fmt.Fprintf(out, "%v : ", e)
		}
		v, err := e.Eval()
		if err != nil {
			r.logger.Debug("evaluation failed", zap.Stringer("expr", e), zap.Error(err))
			fmt.Fprintln(out, "error:", err)
			continue
		}
		fmt.Fprintf(out, verb, v)
	}
	return nil
}

// initLogger initializes the logger.
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.WarnLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

func infile(inname string) (io.RuneScanner, error) {
	if inname == "-" {
		return bufio.NewReader(os.Stdin), nil
	}
	f, err := os.Open(inname)
	if err != nil {
		return nil, err
	}
	return bufio.NewReader(f), nil
}
