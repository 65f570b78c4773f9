package perms

import (
	"context"
	"errors"

	"github.com/aws/smithy-go"
)

var (
	errAccessDenied = &smithy.GenericAPIError{Code: "AccessDenied", Message: "User is not authorized"}
	errUnreachable  = errors.New("dial tcp: lookup iam.amazonaws.com: no such host")
)

type mockIdentity struct {
	getAccountSummaryFunc     func(ctx context.Context) error
	findUserByAccessKeyFunc   func(ctx context.Context, accessKeyID string) (string, bool, error)
	currentUserNameFunc       func(ctx context.Context, accessKeyID string) (string, error)
	listInlinePolicyNamesFunc func(ctx context.Context, userName string) ([]string, error)
	getInlinePolicyFunc       func(ctx context.Context, userName, policyName string) (string, error)
}

func (m *mockIdentity) GetAccountSummary(ctx context.Context) error {
	return m.getAccountSummaryFunc(ctx)
}

func (m *mockIdentity) FindUserByAccessKey(ctx context.Context, accessKeyID string) (string, bool, error) {
	return m.findUserByAccessKeyFunc(ctx, accessKeyID)
}

func (m *mockIdentity) CurrentUserName(ctx context.Context, accessKeyID string) (string, error) {
	return m.currentUserNameFunc(ctx, accessKeyID)
}

func (m *mockIdentity) ListInlinePolicyNames(ctx context.Context, userName string) ([]string, error) {
	return m.listInlinePolicyNamesFunc(ctx, userName)
}

func (m *mockIdentity) GetInlinePolicy(ctx context.Context, userName, policyName string) (string, error) {
	return m.getInlinePolicyFunc(ctx, userName, policyName)
}

type mockConnector struct {
	calls   int
	svc     IdentityService
	connErr error
}

func (m *mockConnector) ConnectIdentity(ctx context.Context, cred Credential) (IdentityService, error) {
	m.calls++
	if m.connErr != nil {
		return nil, m.connErr
	}
	return m.svc, nil
}

// deniedIdentity fails every call with AccessDenied.
func deniedIdentity() *mockIdentity {
	return &mockIdentity{
		getAccountSummaryFunc: func(ctx context.Context) error { return errAccessDenied },
		findUserByAccessKeyFunc: func(ctx context.Context, accessKeyID string) (string, bool, error) {
			return "", false, errAccessDenied
		},
		currentUserNameFunc: func(ctx context.Context, accessKeyID string) (string, error) {
			return "", errAccessDenied
		},
		listInlinePolicyNamesFunc: func(ctx context.Context, userName string) ([]string, error) {
			return nil, errAccessDenied
		},
		getInlinePolicyFunc: func(ctx context.Context, userName, policyName string) (string, error) {
			return "", errAccessDenied
		},
	}
}

// probeGroup builds a group whose probes succeed when the matching entry in
// allowed is true.
func probeGroup(service string, actions []string, allowed []bool) ProbeGroup {
	return ProbeGroup{
		Service: service,
		Connect: func(ctx context.Context, cred Credential) ([]Probe, error) {
			probes := make([]Probe, len(actions))
			for i := range actions {
				ok := allowed[i]
				probes[i] = Probe{
					Action: actions[i],
					Call: func(ctx context.Context) error {
						if ok {
							return nil
						}
						return &smithy.GenericAPIError{Code: "UnauthorizedOperation"}
					},
				}
			}
			return probes, nil
		},
	}
}

var ec2Actions = []string{"ec2:DescribeImages", "ec2:DescribeInstances", "ec2:DescribeInstanceStatus"}
