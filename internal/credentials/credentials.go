// Package credentials supplies the access key, secret key and session token
// shared by commands that act on a set of AWS credentials.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"tasnim.dev/aws-perms/internal/perms"
)

var (
	ErrMissingAccessKey = errors.New("missing access key")
	ErrMissingSecretKey = errors.New("missing secret key")
)

// Flags are the raw credential arguments from the command line.
type Flags struct {
	AccessKey string
	SecretKey string
	Token     string
	Profile   string
}

// AddFlags registers the credential flags on cmd.
func AddFlags(cmd *cobra.Command, f *Flags) {
	cmd.Flags().StringVar(&f.AccessKey, "access-key", "", "AWS access key id")
	cmd.Flags().StringVar(&f.SecretKey, "secret-key", "", "AWS secret access key")
	cmd.Flags().StringVar(&f.Token, "token", "", "AWS session token (temporary credentials only)")
	cmd.Flags().StringVarP(&f.Profile, "profile", "p", "", "AWS profile to read credentials from; ranks above AWS_* environment keys")
}

// ProfileLoader resolves the credential of a shared-config profile.
type ProfileLoader func(ctx context.Context, profile string) (perms.Credential, error)

// Supplier resolves credentials from key flags, then an explicit --profile,
// then the environment, then DefaultProfile.
type Supplier struct {
	Getenv      func(string) string
	LoadProfile ProfileLoader
	Logger      hclog.Logger

	// DefaultProfile is the configured profile. Unlike an explicit
	// --profile it ranks below the environment.
	DefaultProfile string
}

func NewSupplier(loadProfile ProfileLoader, logger hclog.Logger) *Supplier {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Supplier{Getenv: os.Getenv, LoadProfile: loadProfile, Logger: logger}
}

func (s *Supplier) Resolve(ctx context.Context, f Flags) (perms.Credential, error) {
	var cred perms.Credential
	var source string

	switch {
	case f.AccessKey != "" || f.SecretKey != "":
		cred = perms.Credential{AccessKeyID: f.AccessKey, SecretAccessKey: f.SecretKey, SessionToken: f.Token}
		source = "flags"
	case f.Profile != "":
		c, err := s.profile(ctx, f.Profile)
		if err != nil {
			return perms.Credential{}, err
		}
		cred = c
		source = "profile"
	case s.Getenv("AWS_ACCESS_KEY_ID") != "":
		cred = perms.Credential{
			AccessKeyID:     s.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: s.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    s.Getenv("AWS_SESSION_TOKEN"),
		}
		if f.Token != "" {
			cred.SessionToken = f.Token
		}
		source = "environment"
	default:
		c, err := s.profile(ctx, s.DefaultProfile)
		if err != nil {
			return perms.Credential{}, err
		}
		cred = c
		source = "profile"
	}

	if err := Validate(cred); err != nil {
		return perms.Credential{}, fmt.Errorf("credentials from %s: %w", source, err)
	}
	if strings.HasPrefix(cred.AccessKeyID, "ASIA") && !cred.Temporary() {
		s.Logger.Warn("access key looks temporary (ASIA) but no session token was given")
	}
	s.Logger.Debug("using credentials", "source", source, "access_key", cred.String())
	return cred, nil
}

func (s *Supplier) profile(ctx context.Context, name string) (perms.Credential, error) {
	if s.LoadProfile == nil {
		return perms.Credential{}, ErrMissingAccessKey
	}
	return s.LoadProfile(ctx, name)
}

// Validate checks that both keys are present and contain no whitespace.
func Validate(cred perms.Credential) error {
	if cred.AccessKeyID == "" {
		return ErrMissingAccessKey
	}
	if cred.SecretAccessKey == "" {
		return ErrMissingSecretKey
	}
	fields := []struct{ name, value string }{
		{"access key", cred.AccessKeyID},
		{"secret key", cred.SecretAccessKey},
		{"session token", cred.SessionToken},
	}
	for _, f := range fields {
		if strings.ContainsAny(f.value, " \t\r\n") {
			return fmt.Errorf("%s contains whitespace", f.name)
		}
	}
	return nil
}
