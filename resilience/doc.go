// Package resilience provides the retry and circuit breaker policies the
// HTTP adapter can wrap around outbound calls.
//
// Both policies are opt-in: the testimonial feed performs no retries unless
// the api.retry section of the configuration enables them, and every feed
// failure stays retryable by user action regardless.
//
//	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("testimonials"))
//	page, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func() (Page, error) {
//	    var p Page
//	    err := cb.Execute(func() (err error) { p, err = fetch(ctx); return })
//	    return p, err
//	})
package resilience
