// Package observability provides OpenTelemetry tracing and metrics for
// upstream calls.
//
// Every executed request opens an "http.request" client span through an
// OperationContext. Without InitTracer the global provider is a no-op, so
// spans cost nothing.
//
//	tp, err := observability.InitTracer(ctx, cfg.Tracing, log)
//	defer tp.Shutdown(ctx)
//
//	mp, err := observability.InitMeter(ctx, &meterCfg, log)
//	metrics, err := observability.NewMetrics(observability.Meter("devportal"))
package observability
