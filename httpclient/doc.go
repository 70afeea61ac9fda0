// Package httpclient provides a small, configurable HTTP client with
// authentication and classified errors.
//
// The client performs a single attempt per call: no retry, no backoff.
// Failures are classified into a typed *Error: connection and timeout
// faults carry no status code, non-2xx responses carry the status code and
// body, and JSON decode failures are reported as decode errors. Callers
// branch on the classification helpers (IsTimeout, IsStatus, StatusCode)
// rather than string matching.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://jsonplaceholder.typicode.com/",
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "posts",
//	})
//
// # Typed Requests
//
//	posts, err := httpclient.Get[[]Post](client, ctx, "posts")
package httpclient
