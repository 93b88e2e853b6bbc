/*
Package resilience provides a circuit breaker for calls to the calculator API.

# Overview

The HTTP client wraps every request in a Breaker so a stopped or failing
server is reported immediately instead of after a full retry cycle.

# Usage

	breaker := resilience.New("sadhak-api", resilience.Settings{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	err := breaker.Execute(ctx, func(ctx context.Context) error {
		return call(ctx)
	})

Errors wrapped with Permanent (a 400 for a missing prompt, say) are
returned to the caller but do not count against the remote.

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open
*/
package resilience
