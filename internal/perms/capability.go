package perms

import "context"

// IdentityService is the subset of IAM the resolver needs.
type IdentityService interface {
	// GetAccountSummary fetches the account-level IAM summary.
	GetAccountSummary(ctx context.Context) error
	// FindUserByAccessKey walks every user's access keys looking for
	// accessKeyID. found is false when no user owns the key.
	FindUserByAccessKey(ctx context.Context, accessKeyID string) (userName string, found bool, err error)
	// CurrentUserName resolves the user the calling credentials belong to.
	CurrentUserName(ctx context.Context, accessKeyID string) (string, error)
	ListInlinePolicyNames(ctx context.Context, userName string) ([]string, error)
	// GetInlinePolicy returns the URL-encoded policy document.
	GetInlinePolicy(ctx context.Context, userName, policyName string) (string, error)
}

// Connector opens identity-management sessions for a credential.
type Connector interface {
	ConnectIdentity(ctx context.Context, cred Credential) (IdentityService, error)
}

// Probe is a single read-only call whose success confirms Action.
type Probe struct {
	Action string
	Call   func(ctx context.Context) error
}

// ProbeGroup connects to one service and returns its probes bound to that
// connection.
type ProbeGroup struct {
	Service string
	Connect func(ctx context.Context, cred Credential) ([]Probe, error)
}
