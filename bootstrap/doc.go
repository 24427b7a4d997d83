// Package bootstrap runs a finite devportal task inside a managed
// lifecycle: components are started, hooks run, the task executes with
// signal-based cancellation, and everything is stopped in reverse order.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(cfg)
//	if err != nil {
//	    return err
//	}
//	_ = app.RegisterComponent(httpclient.NewComponent(cfg.AdminAPI.HTTP))
//	return app.RunTask(ctx, func(ctx context.Context) error {
//	    return doWork(ctx)
//	})
package bootstrap
