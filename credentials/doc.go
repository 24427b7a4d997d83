// Package credentials resolves the secrets devportal clients need
// (subscription keys, API tokens) from where operators keep them.
//
// Clients never read secrets themselves: they receive plain strings. The
// CLI resolves those strings through a Provider, usually a Chain of the
// environment followed by the OS keyring:
//
//	p := credentials.Chain{
//	    credentials.NewEnv("DEVPORTAL_"),
//	    credentials.NewKeyring(credentials.KeyringConfig{}),
//	}
//	token, err := p.Secret(ctx, credentials.JiraToken)
//
// Token acquisition flows (OAuth service principals, managed identity) are
// out of scope; a Provider only returns secrets that already exist.
package credentials
