package perms

import "fmt"

// Credential is an AWS access key pair with an optional session token.
type Credential struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string // empty for long-lived keys
}

// Temporary reports whether the credential carries a session token. Tokens
// are only issued for STS/instance-profile credentials, never for root.
func (c Credential) Temporary() bool {
	return c.SessionToken != ""
}

// String prints the access key id only.
func (c Credential) String() string {
	if c.Temporary() {
		return fmt.Sprintf("%s (temporary)", c.AccessKeyID)
	}
	return c.AccessKeyID
}
