package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jacoelho/xmlns"
	"github.com/jacoelho/xmlns/internal/debug"
)

type app struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: viper.New(), stdout: stdout, stderr: stderr}
	a.v.SetEnvPrefix("XMLNS")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	a.v.SetConfigName(".xmlns")
	a.v.SetConfigType("yaml")
	a.v.AddConfigPath(".")

	cmd := &cobra.Command{
		Use:   "xmlns",
		Short: "Inspect namespace vocabularies",
		Long: `xmlns loads a namespace vocabulary into a root configuration and
inspects the tokens, tries and parse events derived from it.

Flags can also be set with XMLNS_* environment variables or a .xmlns.yaml
file in the working directory.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return a.setup() },
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.String("vocab", "", "vocabulary file the root configuration is loaded from")
	flags.Bool("debug", false, "write debug logs to stderr")
	flags.Bool("no-color", false, "disable colored output")
	_ = a.v.BindPFlags(flags)

	cmd.AddCommand(a.tokensCmd(), a.trieCmd(), a.parseCmd(), a.exportCmd())
	return cmd
}

func (a *app) setup() error {
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	debug.InitWriter(a.stderr, a.v.GetBool("debug"))
	return nil
}

// rootConfig builds the Config every command starts from.
func (a *app) rootConfig() (*xmlns.Config, error) {
	opts := xmlns.Options{Logger: debug.Logger()}
	path := a.v.GetString("vocab")
	if path == "" {
		return xmlns.NewConfigWithOptions(opts), nil
	}
	return xmlns.LoadConfigFile(path, opts)
}

type palette struct {
	name  *color.Color
	uri   *color.Color
	text  *color.Color
	fail  *color.Color
	label *color.Color
}

func (a *app) palette() palette {
	p := palette{
		name:  color.New(color.FgCyan, color.Bold),
		uri:   color.New(color.Faint),
		text:  color.New(color.FgGreen),
		fail:  color.New(color.FgRed, color.Bold),
		label: color.New(color.FgYellow),
	}
	if a.v.GetBool("no-color") {
		for _, c := range []*color.Color{p.name, p.uri, p.text, p.fail, p.label} {
			c.DisableColor()
		}
	}
	return p
}
