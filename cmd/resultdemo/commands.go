package main

import (
	"context"
	"crypto/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/Lvzhenqian/library/configs"
	"github.com/Lvzhenqian/library/groupsync"
	"github.com/Lvzhenqian/library/log"
	"github.com/Lvzhenqian/library/result"
)

var Run = cli.Command{
	Name:   "run",
	Usage:  "composes addPositive, intToString and validatePositive",
	Action: runCompose,
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "a", Value: 10},
		&cli.IntFlag{Name: "b", Value: 20},
		&cli.IntFlag{Name: "n", Value: 5},
		&cli.BoolFlag{Name: "peek", Usage: "read the value even when the chain failed"},
	},
}

var ConvertCmd = cli.Command{
	Name:      "convert",
	Usage:     "sums key = value lines, converting parse errors to application errors",
	ArgsUsage: "<line>...",
	Action:    runConvert,
}

var Parallel = cli.Command{
	Name:   "parallel",
	Usage:  "runs many chains concurrently on a worker pool",
	Action: runParallel,
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "chains", Value: 100},
		&cli.IntFlag{Name: "workers", Value: 8},
	},
}

var Watch = cli.Command{
	Name:   "watch",
	Usage:  "reloads --config on change and applies its policy and log level",
	Action: runWatch,
	Flags: []cli.Flag{
		&cli.DurationFlag{Name: "interval", Usage: "how often to run a probe chain", Value: time.Second},
	},
}

// withTrace tags the logger with a fresh trace id for one command run.
func withTrace(ctx context.Context, logger *log.ZeroLogger) *log.ZeroLogger {
	var traceID trace.TraceID
	var spanID trace.SpanID
	_, _ = rand.Read(traceID[:])
	_, _ = rand.Read(spanID[:])
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	return logger.WithCtx(trace.ContextWithSpanContext(ctx, sc))
}

func runCompose(c *cli.Context) error {
	logger := withTrace(c.Context, loggerFrom(c))
	start := time.Now()
	r := compose(c.Int("a"), c.Int("b"), c.Int("n"))
	logger.Result("compose", r)
	logger.TimeRecord(start, "compose(%d, %d, %d)", c.Int("a"), c.Int("b"), c.Int("n"))

	if c.Bool("peek") {
		// triggers BadValueAccess on failure, handled per the access policy
		logger.Infof("peeked value %d", r.Value())
	}
	_, err := os.Stdout.WriteString(r.String() + "\n")
	return err
}

func runConvert(c *cli.Context) error {
	logger := withTrace(c.Context, loggerFrom(c))
	lines := c.Args().Slice()
	if len(lines) == 0 {
		lines = []string{"a = 1", "b = 2"}
	}
	logger.Debugf("converters: %s", strings.Join(result.Converters(), ", "))

	r := sumSettings(lines)
	logger.Result("sum settings", r)
	if r.HasError() {
		return logger.WithWrapf(r.Err(), "sum %d lines", len(lines))
	}
	_, err := os.Stdout.WriteString(strconv.Itoa(r.Value()) + "\n")
	return err
}

func runParallel(c *cli.Context) error {
	logger := withTrace(c.Context, loggerFrom(c))
	g, err := groupsync.NewGroup[result.Result[int, ErrorCode]](
		groupsync.WithLimit(c.Int("workers")),
		groupsync.WithPanicHandler(func(p interface{}) {
			logger.Errorf("chain panicked: %v", p)
		}),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	for i := 0; i < c.Int("chains"); i++ {
		i := i
		// every third chain fails
		a := i
		if i%3 == 0 {
			a = -i - 1
		}
		if err := g.Go(func() result.Result[int, ErrorCode] { return compose(a, i, i+1) }); err != nil {
			return err
		}
	}

	failed := 0
	for _, r := range g.Wait() {
		if r.HasError() {
			failed++
		}
	}
	logger.TimeRecord(start, "%d chains, %d failed", c.Int("chains"), failed)
	return nil
}

type policyModule struct {
	logger *log.ZeroLogger
	done   chan struct{}
}

func (m *policyModule) Name() string { return "access-policy" }

func (m *policyModule) Watch(ch <-chan Config) {
	for cfg := range ch {
		if err := applyConfig(m.logger, cfg); err != nil {
			m.logger.WithError(err, "config rejected")
			continue
		}
		m.logger.Infof("config applied: policy %s, level %s", result.AccessPolicy(), m.logger.GetLevel())
	}
	close(m.done)
}

func runWatch(c *cli.Context) error {
	logger := loggerFrom(c)
	path := c.String(configFlag.Name)
	if path == "" {
		return cli.Exit("watch needs --config", 2)
	}

	manager, err := configs.NewFileManager[Config](configs.TOMLFile[Config]{Path: path},
		configs.WithErrorHandler(func(err error) {
			logger.WithError(err, "config reload failed")
		}))
	if err != nil {
		return err
	}
	module := &policyModule{logger: logger, done: make(chan struct{})}
	manager.AddModule(module)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(c.Duration("interval"))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return manager.Close()
		case <-module.done:
			return nil
		case <-ticker.C:
			logger.Result("probe", compose(1, 2, 3))
		}
	}
}
