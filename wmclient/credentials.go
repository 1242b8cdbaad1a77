package wmclient

import "os"

// Environment variables the platform's login tooling exports.
const (
	EnvRootURL     = "TASKCLUSTER_ROOT_URL"
	EnvClientID    = "TASKCLUSTER_CLIENT_ID"
	EnvAccessToken = "TASKCLUSTER_ACCESS_TOKEN"
)

// Credentials locate and authenticate against one deployment. Token
// negotiation happens in the external login flow; poolwatch only
// forwards what the environment provides.
type Credentials struct {
	RootURL     string
	ClientID    string
	AccessToken string
}

// CredentialsFromEnv reads credentials exported by the login tooling.
func CredentialsFromEnv() Credentials {
	return Credentials{
		RootURL:     os.Getenv(EnvRootURL),
		ClientID:    os.Getenv(EnvClientID),
		AccessToken: os.Getenv(EnvAccessToken),
	}
}

// Configured reports whether a root URL is known. Anonymous access is
// fine for read-only queries on open deployments, so only the root URL
// is required.
func (c Credentials) Configured() bool {
	return c.RootURL != ""
}
