// Command apiglot is Apiglot's official CLI to help you implement i18n in your projects.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/apiglot/apiglot"
	"github.com/apiglot/apiglot/cache"
	"github.com/apiglot/apiglot/client"
	"github.com/apiglot/apiglot/config"
	"github.com/spf13/cobra"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = apiglot.FullVersion()
	commit    = apiglot.GitCommit
	buildDate = apiglot.BuildDate
)

// annotationNoConfigNotice marks commands that do not need a config file.
const annotationNoConfigNotice = "apiglot/no-config-notice"

// reportedError has already been printed; main only sets the exit code.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

var errInvalidCommand = errors.New("invalid command")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
		}
		os.Exit(1)
	}
}

// app carries what every command shares: the streams, the working
// directory and the config loaded once before any command runs.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	dir     string
	cfg     *config.Config
	closers []io.Closer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	defer a.close()

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           apiglot.Name,
		Short:         apiglot.Description,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			fmt.Fprintf(a.stderr, "%s\n", red("\nInvalid command: "+strings.Join(args, " ")+"\n"))
			fmt.Fprintln(a.stdout, "See --help for a list of available commands.")
			return reportedError{errInvalidCommand}
		},
		Annotations: map[string]string{annotationNoConfigNotice: "true"},
	}
	root.SetVersionTemplate(versionTemplate())
	root.PersistentFlags().StringVarP(&a.dir, "dir", "C", ".", "Project directory")

	root.AddCommand(
		a.initCommand(),
		a.generateCommand(),
		a.projectCommand(),
		a.infoCommand(),
		a.translateCommand(),
	)
	return root
}

func versionTemplate() string {
	v := "{{.Name}} {{.Version}}\n"
	if commit != "unknown" && commit != "" {
		v += "  commit:  " + commit + "\n"
	}
	if buildDate != "unknown" && buildDate != "" {
		v += "  built:   " + buildDate + "\n"
	}
	return v
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(a.dir)
	if err != nil {
		return err
	}
	if !cfg.Found && cmd.Annotations[annotationNoConfigNotice] == "" {
		fmt.Fprintln(a.stderr, "No config file found, using defaults.")
	}
	a.cfg = cfg
	return nil
}

// newClient builds the API client for the loaded config, with a project
// info cache when one can be opened.
func (a *app) newClient() (*client.Client, error) {
	var opts []client.Option

	c, err := cache.New(cache.Config{
		RedisURL:   a.cfg.Cache.RedisURL,
		TTLSeconds: a.cfg.Cache.TTLSeconds,
		KeyPrefix:  a.cfg.Cache.KeyPrefix,
	})
	if err != nil {
		fmt.Fprintf(a.stderr, "%s project info cache disabled: %v\n", yellow("warning:"), err)
	} else {
		opts = append(opts, client.WithCache(c))
		if closer, ok := c.(io.Closer); ok {
			a.closers = append(a.closers, closer)
		}
	}

	return client.New(client.Options{Host: a.cfg.Host, APIKey: a.cfg.APIKey}, opts...)
}

// path resolves p against the project directory.
func (a *app) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.dir, p)
}

func (a *app) close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
}
