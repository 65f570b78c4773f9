package aws

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/smithy-go/middleware"
	"github.com/hashicorp/go-hclog"

	"tasnim.dev/aws-perms/internal/perms"
)

// DefaultRegion is used when neither flags, config nor the environment name
// one. IAM is global, so this only matters for regional probes.
const DefaultRegion = "us-east-1"

// ErrMissingKeys is returned when a credential has no access or secret key.
var ErrMissingKeys = errors.New("access key and secret key are required")

// Options control how SDK configs are built.
type Options struct {
	Region      string
	EndpointURL string // overrides every service endpoint, e.g. LocalStack
	Logger      hclog.Logger
}

func (o Options) region() string {
	if o.Region != "" {
		return o.Region
	}
	if r := os.Getenv("AWS_REGION"); r != "" {
		return r
	}
	return DefaultRegion
}

func (o Options) endpoint() string {
	if o.EndpointURL != "" {
		return o.EndpointURL
	}
	return os.Getenv("AWS_ENDPOINT_URL")
}

// LoadConfig builds an AWS config that signs with exactly the given
// credential. Shared config files and AWS_PROFILE are never read, so the
// session depends only on the credential, region and endpoint. Retries are
// disabled so each call is attempted once.
func LoadConfig(ctx context.Context, cred perms.Credential, opts Options) (aws.Config, error) {
	if cred.AccessKeyID == "" || cred.SecretAccessKey == "" {
		return aws.Config{}, ErrMissingKeys
	}

	cfg := aws.Config{
		Region: opts.region(),
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cred.AccessKeyID,
			cred.SecretAccessKey,
			cred.SessionToken,
		)),
		Retryer: func() aws.Retryer { return aws.NopRetryer{} },
	}
	if endpoint := opts.endpoint(); endpoint != "" {
		cfg.BaseEndpoint = aws.String(endpoint)
	}

	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		return aws.Config{}, fmt.Errorf("retrieving credentials: %w", err)
	}

	if opts.Logger != nil && opts.Logger.IsTrace() {
		cfg.APIOptions = append(cfg.APIOptions, traceMiddleware(opts.Logger.Named("sdk")))
	}
	return cfg, nil
}

// LoadProfileCredential resolves the credential stored for a shared-config
// profile (static keys, SSO, assume-role, ...).
func LoadProfileCredential(ctx context.Context, profile string) (perms.Credential, error) {
	opts := []func(*config.LoadOptions) error{}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return perms.Credential{}, fmt.Errorf("loading AWS config: %w", err)
	}
	if cfg.Credentials == nil {
		return perms.Credential{}, fmt.Errorf("no credentials configured for profile %q", profile)
	}
	creds, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return perms.Credential{}, fmt.Errorf("retrieving credentials for profile %q: %w", profile, err)
	}
	return perms.Credential{
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
	}, nil
}

// traceMiddleware logs the name of every SDK operation before it runs.
func traceMiddleware(logger hclog.Logger) func(*middleware.Stack) error {
	return func(stack *middleware.Stack) error {
		return stack.Initialize.Add(middleware.InitializeMiddlewareFunc("APICallTrace", func(ctx context.Context, input middleware.InitializeInput, next middleware.InitializeHandler) (
			middleware.InitializeOutput, middleware.Metadata, error,
		) {
			logger.Trace("api call", "service", middleware.GetServiceID(ctx), "operation", middleware.GetOperationName(ctx))
			return next.HandleInitialize(ctx, input)
		}), middleware.Before)
	}
}
