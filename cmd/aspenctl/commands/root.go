package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/aspen/aspen"
	"github.com/kbukum/aspen/config"
	"github.com/kbukum/aspen/errors"
	"github.com/kbukum/aspen/logger"
	"github.com/kbukum/aspen/observability"
	"github.com/kbukum/aspen/util"
	"github.com/kbukum/aspen/version"
)

const serviceName = "aspenctl"

// Config is the aspenctl configuration file layout.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Aspen                aspen.Config         `yaml:"aspen" mapstructure:"aspen"`
	Observability        observability.Config `yaml:"observability" mapstructure:"observability"`
}

// env is the state shared by subcommands once the root command has run.
type env struct {
	cfg      Config
	log      *logger.Logger
	client   *aspen.Client
	shutdown func(context.Context) error
}

var (
	configFile string
	envFile    string
	async      bool
	jsonErrors bool

	docType   string
	docNumber string
	password  string

	app *env
)

// Execute runs the CLI.
func Execute() error {
	return executeRoot(newRootCmd())
}

func executeRoot(root *cobra.Command) error {
	err := root.Execute()
	if err != nil {
		reportError(root.ErrOrStderr(), err)
	}
	return err
}

// reportError writes err as text, or as an error document when --json is set
// and err carries an error code.
func reportError(w io.Writer, err error) {
	if appErr, ok := errors.AsAppError(err); ok && jsonErrors {
		_ = json.NewEncoder(w).Encode(appErr.ToResponse())
		return
	}
	_, _ = fmt.Fprintln(w, "Error:", err)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Command-line client for the Aspen service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			app = e
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if app == nil {
				return nil
			}
			_ = app.client.Close(cmd.Context())
			return app.shutdown(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./aspenctl.yml)")
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "env file (default ./.env)")
	root.PersistentFlags().BoolVar(&async, "async", false, "use the non-blocking API")
	root.PersistentFlags().BoolVar(&jsonErrors, "json", false, "report errors as JSON")

	root.AddCommand(signInCmd(), activationCodeCmd(), pinCmd(), tokenCmd(), versionCmd())
	return root
}

func setup(ctx context.Context) (*env, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}

	cfg := Config{}
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Name = util.Coalesce(cfg.Name, serviceName)
	cfg.ApplyDefaults()
	if err := cfg.ServiceConfig.Validate(); err != nil {
		return nil, err
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	logger.SetGlobalLogger(log)

	if cfg.Observability.ServiceVersion == "" {
		cfg.Observability.ServiceVersion = version.Version
	}
	cfg.Observability.ApplyDefaults(cfg.Name)
	shutdown, err := observability.Init(ctx, cfg.Observability)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	clientOpts := []aspen.Option{aspen.WithLogger(log)}
	if cfg.Observability.Enabled {
		metrics, err := observability.NewMetrics(observability.Meter(serviceName))
		if err != nil {
			_ = shutdown(ctx)
			return nil, err
		}
		clientOpts = append(clientOpts, aspen.WithMetrics(metrics))
	}

	client, err := aspen.New(cfg.Aspen, clientOpts...)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return &env{cfg: cfg, log: log, client: client, shutdown: shutdown}, nil
}

// addCredentialFlags registers the sign-in flags on user commands.
func addCredentialFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&docType, "doc-type", "", "document type used to sign in (e.g. CC)")
	cmd.Flags().StringVar(&docNumber, "doc-number", "", "document number used to sign in")
	cmd.Flags().StringVar(&password, "password", "", "password used to sign in")
}

// userClient returns a client bound to a user session, signing in when
// credentials were given on the command line.
func userClient(ctx context.Context) (*aspen.Client, error) {
	if docNumber == "" {
		if !app.client.Context().Authenticated() {
			return nil, fmt.Errorf("no session: set aspen.token in the config or pass --doc-type, --doc-number and --password")
		}
		return app.client, nil
	}
	return app.client.Session().SignIn(ctx, docType, docNumber, password)
}

// run executes op in the blocking or non-blocking style.
func run(ctx context.Context, sync func() (*aspen.Response, error), pending func() *aspen.Future[*aspen.Response]) (*aspen.Response, error) {
	if async {
		return pending().Await(ctx)
	}
	return sync()
}

func printResponse(w io.Writer, resp *aspen.Response) {
	_, _ = fmt.Fprintf(w, "%d %s\n", resp.StatusCode, resp.RequestID)
	if len(resp.Body) > 0 {
		_, _ = fmt.Fprintln(w, string(resp.Body))
	}
}
