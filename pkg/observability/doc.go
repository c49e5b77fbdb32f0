/*
Package observability exposes Prometheus metrics for pipeline traversals.

Metrics implements domain.LifecycleHooks, so wiring it up is one option on
the engine plus one on the HTTP server:

	m := observability.NewMetrics(prometheus.NewRegistry())
	eng := conduit.New(conduit.WithLifecycleHooks(m.Hooks()))
	srv := conduithttp.NewServer(eng, conduithttp.WithMetricsHandler(m.Handler()))
*/
package observability
