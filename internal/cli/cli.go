package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/profilegrid/internal/app"
	"github.com/specialistvlad/profilegrid/internal/registry"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Exit codes.
const (
	CodeFailure = 1
	CodeUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: CodeUsage, Message: err.Error()}
}

// flagKeys maps flag names onto configuration keys.
var flagKeys = map[string]string{
	"hierarchy":      "hierarchy",
	"profile":        "profiles",
	"format":         "format",
	"output":         "output",
	"only":           "only",
	"strict":         "strict",
	"noop":           "noop",
	"exec-path":      "exec_path",
	"fact":           "facts",
	"env-file":       "env_file",
	"agent-url":      "agent_url",
	"agent-timeout":  "agent_timeout",
	"agent-insecure": "agent_insecure",
	"log-format":     "log_format",
	"log-level":      "log_level",
}

// Execute runs the command line in args. Catalogs and listings go to outW,
// logs to errW. When modules is empty the core modules are used.
func Execute(ctx context.Context, args []string, outW, errW io.Writer, modules ...registry.Module) error {
	root := NewRootCmd(outW, errW, modules...)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCmd builds the profilegrid command tree.
func NewRootCmd(outW, errW io.Writer, modules ...registry.Module) *cobra.Command {
	root := &cobra.Command{
		Use:   "profilegrid",
		Short: "Resolve layered profile configuration into a resource catalog",
		Long: `profilegrid merges hierarchical configuration data for component
profiles and resolves it into the concrete resources to declare.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	root.PersistentFlags().String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	root.PersistentFlags().String("log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")

	root.AddCommand(
		newResolveCmd(outW, errW, modules),
		newProfilesCmd(outW, errW, modules),
	)
	return root
}

func newResolveCmd(outW, errW io.Writer, modules []registry.Module) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [HIERARCHY]",
		Short: "Resolve profiles and print the resulting catalog",
		Long: `Resolve profiles against HIERARCHY, a hierarchy.yaml file or a directory
of data files, and print the catalog of declared resources.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usageError(fmt.Errorf("accepts at most one HIERARCHY argument, received %d", len(args)))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			set := overrides(cmd)
			if _, ok := set["hierarchy"]; !ok && len(args) == 1 {
				set["hierarchy"] = args[0]
			}

			cfg, err := app.LoadConfig(set)
			if err != nil {
				return usageError(err)
			}

			a, err := newApp(outW, errW, cfg, modules)
			if err != nil {
				return err
			}
			if err := a.Run(cmd.Context()); err != nil {
				return &ExitError{Code: CodeFailure, Message: err.Error()}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("hierarchy", "c", "", "Path to hierarchy.yaml or a directory of data files.")
	f.StringSliceP("profile", "p", nil, "Profiles to resolve. Defaults to every registered profile.")
	f.StringP("format", "f", "hcl", "Catalog format. Options: 'hcl', 'json' or 'yaml'.")
	f.StringP("output", "o", "", "Write the catalog to this file instead of stdout.")
	f.StringSlice("only", nil, "Only render these resource addresses, e.g. 'file[/etc/motd]'.")
	f.Bool("strict", false, "Fail on resource types without state defaults.")
	f.Bool("noop", false, "Declare resources in noop mode.")
	f.String("exec-path", app.DefaultExecPath, "Command search path given to exec resources.")
	f.StringArray("fact", nil, "Set a fact as name=value. Repeatable.")
	f.String("env-file", "", "Read facts from a dotenv file.")
	f.String("agent-url", "", "Also forward declarations to the socket.io agent at this URL.")
	f.Duration("agent-timeout", 0, "Wait at most this long for each agent reply.")
	f.Bool("agent-insecure", false, "Skip TLS verification when connecting to the agent.")
	return cmd
}

func newProfilesCmd(outW, errW io.Writer, modules []registry.Module) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the available profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.DefaultConfig()
			if v, err := cmd.Flags().GetString("log-format"); err == nil {
				cfg.LogFormat = v
			}
			if v, err := cmd.Flags().GetString("log-level"); err == nil {
				cfg.LogLevel = v
			}

			a, err := newApp(outW, errW, &cfg, modules)
			if err != nil {
				return err
			}
			for _, d := range a.Registry().All() {
				types := "any"
				if len(d.ResourceTypes) > 0 {
					types = strings.Join(d.ResourceTypes, ", ")
				}
				fmt.Fprintf(outW, "%-12s %s (%s)\n", d.Name, d.Description, types)
			}
			return nil
		},
	}
}

// overrides collects the flags the user actually set, keyed by
// configuration key. Values stay strings or string slices; LoadConfig
// converts them.
func overrides(cmd *cobra.Command) map[string]any {
	set := map[string]any{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			set[key] = sv.GetSlice()
			return
		}
		set[key] = f.Value.String()
	})
	return set
}

// newApp builds the app and turns a startup panic into an error.
func newApp(outW, errW io.Writer, cfg *app.Config, modules []registry.Module) (a *app.App, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ExitError{Code: CodeFailure, Message: fmt.Sprintf("application startup panicked: %v", r)}
		}
	}()
	return app.NewApp(outW, errW, cfg, modules...), nil
}
