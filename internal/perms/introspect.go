package perms

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Introspector reads the caller's inline user policies through IAM.
type Introspector struct {
	connector Connector
	logger    hclog.Logger
}

func NewIntrospector(connector Connector, logger hclog.Logger) *Introspector {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Introspector{connector: connector, logger: logger.Named("iam")}
}

// Introspect returns the decoded inline policies of the calling user, in the
// order IAM lists them. It is all-or-nothing: any failure discards what was
// fetched so far. A nil error with no documents means the user has no inline
// policies.
func (in *Introspector) Introspect(ctx context.Context, cred Credential) ([]PolicyDocument, string, error) {
	svc, err := in.connector.ConnectIdentity(ctx, cred)
	if err != nil {
		in.logger.Debug("failed to connect to IAM", "error", err)
		return nil, "", newError("ConnectIdentity", err)
	}

	user, err := svc.CurrentUserName(ctx, cred.AccessKeyID)
	if err != nil {
		in.logger.Debug("could not resolve the current IAM user", "kind", Classify(err), "error", err)
		return nil, "", newError("CurrentUserName", err)
	}
	in.logger.Debug("resolved current user", "user", user)

	names, err := svc.ListInlinePolicyNames(ctx, user)
	if err != nil {
		in.logger.Debug("no privileges to list user policies", "user", user, "kind", Classify(err), "error", err)
		return nil, user, newError("ListInlinePolicyNames", err)
	}

	docs := make([]PolicyDocument, 0, len(names))
	for _, name := range names {
		encoded, err := svc.GetInlinePolicy(ctx, user, name)
		if err != nil {
			in.logger.Debug("no privileges to get user policy", "user", user, "policy", name, "kind", Classify(err), "error", err)
			return nil, user, newError(fmt.Sprintf("GetInlinePolicy(%s)", name), err)
		}

		doc, err := DecodePolicyDocument(encoded)
		if err != nil {
			in.logger.Debug("failed to decode user policy", "user", user, "policy", name, "error", err)
			return nil, user, &Error{Kind: KindDecode, Op: fmt.Sprintf("DecodePolicyDocument(%s)", name), Err: err}
		}
		docs = append(docs, doc)
	}

	return docs, user, nil
}
