package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	awsclient "tasnim.dev/aws-perms/internal/aws"
	"tasnim.dev/aws-perms/internal/config"
	"tasnim.dev/aws-perms/internal/credentials"
	"tasnim.dev/aws-perms/internal/logging"
	"tasnim.dev/aws-perms/internal/perms"
	"tasnim.dev/aws-perms/internal/report"
)

func NewDumpPermissionsCmd() *cobra.Command {
	var (
		creds       credentials.Flags
		region      string
		endpointURL string
		extended    bool
		parallel    bool
		output      string
		logLevel    string
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "dump-permissions",
		Short: "Show which permissions a set of AWS credentials holds",
		Long: `Checks whether the credentials belong to the root account, then tries to
read the user's inline IAM policies, and finally falls back to calling a fixed
set of read-only APIs to see which of them succeed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			// creds.Profile stays as typed; the configured profile ranks
			// below environment keys.
			var profile string
			profile, region = cfg.Merge(creds.Profile, region)
			if !cmd.Flags().Changed("extended") {
				extended = cfg.ExtendedProbes
			}
			if !cmd.Flags().Changed("parallel") {
				parallel = cfg.ParallelProbes
			}

			format, err := report.ParseFormat(config.Or(output, cfg.Output))
			if err != nil {
				return err
			}
			logger, err := logging.New("aws-perms", config.Or(logLevel, cfg.LogLevel), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			supplier := credentials.NewSupplier(awsclient.LoadProfileCredential, logger)
			supplier.DefaultProfile = profile
			cred, err := supplier.Resolve(ctx, creds)
			if err != nil {
				return err
			}

			opts := awsclient.Options{
				Region:      region,
				EndpointURL: config.Or(endpointURL, cfg.EndpointURL),
				Logger:      logger,
			}
			groups := awsclient.DefaultProbeGroups(opts)
			if extended {
				groups = awsclient.ExtendedProbeGroups(opts)
			}

			resolver := perms.NewResolver(awsclient.NewConnector(opts), groups, logger, perms.WithParallelProbes(parallel))
			res := resolver.Resolve(ctx, cred)

			report.Log(logger, res)
			return report.Write(cmd.OutOrStdout(), format, res)
		},
	}

	credentials.AddFlags(cmd, &creds)
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region for regional probes")
	cmd.Flags().StringVar(&endpointURL, "endpoint-url", "", "Send every API call to this endpoint (e.g. LocalStack)")
	cmd.Flags().BoolVar(&extended, "extended", false, "Also probe S3, ECS, ECR, EKS, ELB, CloudWatch Logs and Application Auto Scaling")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Run the probes of a service concurrently")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Result format on stdout: log|json|yaml|text")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: "+logging.Levels())
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Overall deadline, e.g. 30s (0 means none)")

	return cmd
}
