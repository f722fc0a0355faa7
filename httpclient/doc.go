// Package httpclient provides the HTTP adapter used to talk to the site's
// REST API: base URL resolution, default headers, optional auth, a
// per-request timeout, typed error classification, and opt-in retry and
// circuit breaking from the resilience package.
//
//	a, err := httpclient.New(httpclient.Config{
//	    Name:    "testimonials",
//	    BaseURL: "http://localhost:8000",
//	    Timeout: 10 * time.Second,
//	})
//	resp, err := a.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/testimonials",
//	    Query:  map[string]string{"featured_only": "true"},
//	})
package httpclient
