/*
Package monitoring provides Prometheus metrics for the calculator service.

# Overview

Each Metrics value owns a private registry holding HTTP request metrics,
per-category prompt counts, failure counts by class, expression evaluation
latency and process uptime. Metrics satisfies the responder's Recorder
interface.

# Usage

	metrics := monitoring.NewMetrics()

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", metrics.GinHandler())

	r := responder.New(ev, responder.WithRecorder(metrics))
*/
package monitoring
