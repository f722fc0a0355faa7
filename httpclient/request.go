package httpclient

// Request is one call against the adapter's BaseURL. Method defaults to
// GET. A Path that is already an absolute http(s) URL bypasses BaseURL.
// Body is resent unchanged on every retry attempt.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string // merged over Config.Headers
	Query   map[string]string
	Body    []byte
	Auth    *AuthConfig // replaces Config.Auth when set
}

// Response holds a fully read body. Multi-valued headers keep their first
// value only.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode/100 == 2
}
