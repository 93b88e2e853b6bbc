// Package server wires the calculator together and runs the HTTP server.
//
// NewServer builds, in order:
//  1. Logger from configuration (unless one is supplied)
//  2. Prometheus metrics and the request tracer
//  3. Expression evaluator and responder
//  4. Bigram generator trained on the built-in corpus
//  5. Gin router with recovery, tracing, metrics, CORS, optional rate
//     limiting and compression
//
// A panic anywhere in the handler chain is answered with a JSON 500.
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	go srv.Run()
//	...
//	srv.Shutdown(ctx)
package server
