package httpclient

import "net/http"

// AuthType selects how credentials are attached to a request.
type AuthType int

const (
	AuthNone AuthType = iota
	AuthBearer
	AuthAPIKey
)

const defaultAPIKeyHeader = "X-API-Key"

// AuthConfig carries a credential for the testimonials API. The site's
// public endpoints need none; a token is only configured for private
// deployments.
type AuthConfig struct {
	Type   AuthType
	Token  string
	Header string // API key header, X-API-Key when empty
}

func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

func APIKeyAuth(key, header string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Token: key, Header: header}
}

// apply sets the credential header on req. A nil config is a no-op.
func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Token == "" {
		return
	}
	switch a.Type {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthAPIKey:
		header := a.Header
		if header == "" {
			header = defaultAPIKeyHeader
		}
		req.Header.Set(header, a.Token)
	}
}
