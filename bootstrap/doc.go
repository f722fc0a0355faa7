// Package bootstrap runs a configured binary through a uniform lifecycle:
// start registered components, run hooks, execute a task, then stop
// everything in reverse order.
//
//	app, err := bootstrap.NewApp(cfg)
//	app.RegisterComponent(apiComponent)
//	app.OnStop(shutdownTelemetry)
//	err = app.RunTask(ctx, func(ctx context.Context) error { ... })
package bootstrap
