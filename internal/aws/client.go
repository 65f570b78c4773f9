package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/hashicorp/go-hclog"

	awsiam "tasnim.dev/aws-perms/internal/aws/iam"
	awssts "tasnim.dev/aws-perms/internal/aws/sts"
	"tasnim.dev/aws-perms/internal/perms"
)

// ErrUserNotFound means no lookup could tie the access key to an IAM user.
var ErrUserNotFound = errors.New("no IAM user found for access key")

// Connector opens IAM sessions for the resolver.
type Connector struct {
	opts Options
}

func NewConnector(opts Options) *Connector {
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	return &Connector{opts: opts}
}

func (c *Connector) ConnectIdentity(ctx context.Context, cred perms.Credential) (perms.IdentityService, error) {
	cfg, err := LoadConfig(ctx, cred, c.opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to IAM: %w", err)
	}
	return NewIdentityService(
		awsiam.NewClient(iam.NewFromConfig(cfg)),
		awssts.NewClient(sts.NewFromConfig(cfg)),
		c.opts.Logger,
	), nil
}

// IdentityService adapts the IAM and STS clients to perms.IdentityService.
type IdentityService struct {
	iam    *awsiam.Client
	sts    *awssts.Client
	logger hclog.Logger
}

func NewIdentityService(iamClient *awsiam.Client, stsClient *awssts.Client, logger hclog.Logger) *IdentityService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &IdentityService{iam: iamClient, sts: stsClient, logger: logger.Named("identity")}
}

func (s *IdentityService) GetAccountSummary(ctx context.Context) error {
	summary, err := s.iam.GetAccountSummary(ctx)
	if err != nil {
		return err
	}
	s.logger.Trace("account summary", "users", summary["Users"])
	return nil
}

func (s *IdentityService) FindUserByAccessKey(ctx context.Context, accessKeyID string) (string, bool, error) {
	return s.iam.FindUserByAccessKey(ctx, accessKeyID)
}

// CurrentUserName tries iam:GetUser, then the STS caller ARN, then a full
// user/key enumeration. The returned error is the last lookup failure.
func (s *IdentityService) CurrentUserName(ctx context.Context, accessKeyID string) (string, error) {
	var lastErr error

	user, err := s.iam.GetCurrentUser(ctx)
	if err == nil && user.Name != "" {
		return user.Name, nil
	}
	if err != nil {
		s.logger.Debug("GetUser failed", "error", err)
		lastErr = err
	}

	if s.sts != nil {
		id, err := s.sts.GetCallerIdentity(ctx)
		if err != nil {
			s.logger.Debug("GetCallerIdentity failed", "error", err)
			lastErr = err
		} else if name, ok := id.UserName(); ok {
			return name, nil
		} else {
			s.logger.Debug("caller is not an IAM user", "arn", id.ARN)
		}
	}

	name, found, err := s.iam.FindUserByAccessKey(ctx, accessKeyID)
	if err != nil {
		s.logger.Debug("failed to enumerate users and access keys", "error", err)
		lastErr = err
	} else if found {
		return name, nil
	}

	if lastErr != nil {
		return "", lastErr
	}
	return "", &perms.Error{Kind: perms.KindAuthorization, Op: "CurrentUserName", Err: ErrUserNotFound}
}

func (s *IdentityService) ListInlinePolicyNames(ctx context.Context, userName string) ([]string, error) {
	return s.iam.ListUserPolicies(ctx, userName)
}

func (s *IdentityService) GetInlinePolicy(ctx context.Context, userName, policyName string) (string, error) {
	return s.iam.GetUserPolicy(ctx, userName, policyName)
}
