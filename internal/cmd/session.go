package cmd

import (
	"context"
	stderrors "errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/devportal/adminapi"
	"github.com/kbukum/devportal/bootstrap"
	"github.com/kbukum/devportal/component"
	"github.com/kbukum/devportal/config"
	"github.com/kbukum/devportal/credentials"
	"github.com/kbukum/devportal/errors"
	"github.com/kbukum/devportal/httpclient"
	"github.com/kbukum/devportal/httpclient/rest"
	"github.com/kbukum/devportal/jira"
	"github.com/kbukum/devportal/logger"
	"github.com/kbukum/devportal/observability"
	"github.com/kbukum/devportal/result"
	"github.com/kbukum/devportal/servicedata"
	"github.com/kbukum/devportal/version"
)

const envPrefix = "DEVPORTAL_"

// session is what a command task works with once configuration is loaded
// and the transports are started.
type session struct {
	cfg     *config.Config
	log     *logger.Logger
	keyring *credentials.Keyring
	secrets credentials.Provider
	metrics *observability.Metrics

	components *component.Registry
	transports map[string]*httpclient.Component

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

// task is the body of a command. The value it returns is printed.
type task func(ctx context.Context, rt *session) (any, error)

// run loads the configuration, registers one transport per client in
// clients and runs fn inside the application lifecycle.
func (c *cli) run(ctx context.Context, clients []string, fn task) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	app, err := bootstrap.NewApp(cfg,
		bootstrap.WithLogger(c.newLogger(cfg)),
		bootstrap.WithGracefulTimeout(cfg.Base.ShutdownTimeout),
	)
	if err != nil {
		return err
	}

	rt := &session{
		cfg:        cfg,
		log:        app.Logger,
		keyring:    c.openKeyring(cfg.Keyring),
		components: app.Components,
		transports: make(map[string]*httpclient.Component, len(clients)),
	}
	rt.secrets = credentials.Chain{credentials.NewEnv(envPrefix), rt.keyring}

	for _, name := range clients {
		transport := httpclient.NewComponent(rt.httpConfig(name))
		if err := app.RegisterComponent(transport); err != nil {
			return err
		}
		rt.transports[name] = transport
	}
	if cfg.Tracing.Enabled {
		app.OnStart(rt.startTelemetry)
	}
	app.OnStop(rt.stopTelemetry, func(context.Context) error { return rt.keyring.Close() })

	var value any
	err = app.RunTask(ctx, func(ctx context.Context) error {
		v, err := fn(ctx, rt)
		value = v
		return err
	})
	if err != nil {
		return err
	}
	return c.printer().Print(value)
}

func (c *cli) loadConfig() (*config.Config, error) {
	opts := []config.LoaderOption{config.WithEnvPrefix(envPrefix)}
	if c.configFile != "" {
		opts = append(opts, config.WithConfigFile(c.configFile))
	}
	if c.envFile != "" {
		opts = append(opts, config.WithEnvFile(c.envFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}
	if c.debug {
		cfg.Base.Debug = true
		cfg.Logging.Level = "debug"
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// newLogger writes to the command's streams. logging.output selects
// stdout or stderr.
func (c *cli) newLogger(cfg *config.Config) *logger.Logger {
	w := c.errOut
	if cfg.Logging.Output == "stdout" {
		w = c.out
	}
	return logger.NewWithWriter(&cfg.Logging, cfg.Base.Name, w)
}

// httpConfig returns the transport settings of a client section.
func (rt *session) httpConfig(client string) httpclient.Config {
	var cfg httpclient.Config
	switch client {
	case adminapi.ClientName:
		cfg = rt.cfg.AdminAPI.HTTP
	case jira.ClientName:
		cfg = rt.cfg.Jira.HTTP
	case servicedata.ClientName:
		cfg = rt.cfg.ServiceData.HTTP
	}
	cfg.Name = client
	if cfg.UserAgent == "" {
		cfg.UserAgent = version.UserAgent()
	}
	return cfg
}

func (rt *session) startTelemetry(ctx context.Context) error {
	tp, err := observability.InitTracer(ctx, rt.cfg.Tracing, rt.log)
	if err != nil {
		return err
	}
	rt.tracerProvider = tp

	meterCfg := observability.MeterConfigFrom(rt.cfg.Tracing)
	mp, err := observability.InitMeter(ctx, &meterCfg, rt.log)
	if err != nil {
		return err
	}
	rt.meterProvider = mp

	metrics, err := observability.NewMetrics(observability.Meter(rt.cfg.Base.Name))
	if err != nil {
		return err
	}
	rt.metrics = metrics
	return nil
}

func (rt *session) stopTelemetry(ctx context.Context) error {
	var errs []error
	if rt.meterProvider != nil {
		errs = append(errs, rt.meterProvider.Shutdown(ctx))
	}
	if rt.tracerProvider != nil {
		errs = append(errs, rt.tracerProvider.Shutdown(ctx))
	}
	return stderrors.Join(errs...)
}

// secret resolves a credential: the configured value first, then the
// environment, then the keyring.
func (rt *session) secret(ctx context.Context, name, configured string) (string, error) {
	value, err := credentials.Resolve(ctx, rt.secrets, name, configured)
	if stderrors.Is(err, credentials.ErrNotFound) {
		msg := fmt.Sprintf("missing credential %s: set %s or run 'devportal secret set %s'",
			name, credentials.NewEnv(envPrefix).Variable(name), name)
		return "", errors.InvalidRequest(msg, nil).WithCause(err)
	}
	return value, err
}

func (rt *session) adminAPI(ctx context.Context) (*adminapi.Client, error) {
	cfg := rt.cfg.AdminAPI
	key, err := rt.secret(ctx, credentials.AdminSubscriptionKey, cfg.SubscriptionKey)
	if err != nil {
		return nil, err
	}
	cfg.SubscriptionKey = key
	return adminapi.New(cfg,
		adminapi.WithTransport(rt.transports[adminapi.ClientName]),
		adminapi.WithLogger(rt.log.WithComponent(adminapi.ClientName)),
		adminapi.WithMetrics(rt.metrics),
	)
}

func (rt *session) jiraClient(ctx context.Context) (*jira.Client, error) {
	cfg := rt.cfg.Jira
	token, err := rt.secret(ctx, credentials.JiraToken, cfg.Token)
	if err != nil {
		return nil, err
	}
	cfg.Token = token
	return jira.New(cfg,
		jira.WithTransport(rt.transports[jira.ClientName]),
		jira.WithLogger(rt.log.WithComponent(jira.ClientName)),
		jira.WithMetrics(rt.metrics),
	)
}

func (rt *session) serviceData(ctx context.Context) (*servicedata.Client, error) {
	cfg := rt.cfg.ServiceData
	key, err := rt.secret(ctx, credentials.ServiceDataAPIKey, cfg.APIKey)
	if err != nil {
		return nil, err
	}
	cfg.APIKey = key
	return servicedata.New(cfg,
		servicedata.WithTransport(rt.transports[servicedata.ClientName]),
		servicedata.WithLogger(rt.log.WithComponent(servicedata.ClientName)),
		servicedata.WithMetrics(rt.metrics),
	)
}

// valueOf runs task and returns the decoded value of a 200 or 201 response.
func valueOf[T any](ctx context.Context, task result.Task[rest.Response[T]]) (any, error) {
	return adminapi.ValueOf(task.Run(ctx)).Unwrap()
}
