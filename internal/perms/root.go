package perms

import (
	"context"

	"github.com/hashicorp/go-hclog"
)

// RootDetector decides whether a credential belongs to the account root.
//
// Root always has IAM access but has no IAM user object, so two successful
// privileged IAM calls followed by a key that no user owns is treated as root.
// See https://docs.aws.amazon.com/general/latest/gr/root-vs-iam.html
type RootDetector struct {
	connector Connector
	logger    hclog.Logger
}

func NewRootDetector(connector Connector, logger hclog.Logger) *RootDetector {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &RootDetector{connector: connector, logger: logger.Named("root-check")}
}

// IsRoot never fails; every error counts as "not root".
func (d *RootDetector) IsRoot(ctx context.Context, cred Credential) bool {
	if cred.Temporary() {
		d.logger.Debug("session token present, temporary credentials cannot be root")
		return false
	}

	svc, err := d.connector.ConnectIdentity(ctx, cred)
	if err != nil {
		d.logger.Debug("failed to connect to IAM, not a root account", "kind", Classify(err), "error", err)
		return false
	}

	if err := svc.GetAccountSummary(ctx); err != nil {
		d.logger.Debug("failed to retrieve IAM account summary, not a root account", "kind", Classify(err), "error", err)
		return false
	}

	user, found, err := svc.FindUserByAccessKey(ctx, cred.AccessKeyID)
	if err != nil {
		d.logger.Debug("failed to enumerate users and access keys, not a root account", "kind", Classify(err), "error", err)
		return false
	}
	if found {
		d.logger.Debug("credentials belong to an IAM user, not the root account", "user", user)
		return false
	}
	return true
}
