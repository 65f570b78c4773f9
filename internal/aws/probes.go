package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/applicationautoscaling"
	astypes "github.com/aws/aws-sdk-go-v2/service/applicationautoscaling/types"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hashicorp/go-hclog"

	awsec2 "tasnim.dev/aws-perms/internal/aws/ec2"
	"tasnim.dev/aws-perms/internal/perms"
)

// DefaultProbeGroups is the registry used unless extended probing is enabled.
func DefaultProbeGroups(opts Options) []perms.ProbeGroup {
	return []perms.ProbeGroup{
		serviceGroup("ec2", opts, func(cfg aws.Config) []perms.Probe {
			return EC2Probes(awsec2.NewClient(ec2.NewFromConfig(cfg)), opts.Logger)
		}),
	}
}

// ExtendedProbeGroups adds one cheap read-only probe for each other service
// the tool knows about. Each is a single page with the smallest page size.
func ExtendedProbeGroups(opts Options) []perms.ProbeGroup {
	return append(DefaultProbeGroups(opts),
		serviceGroup("s3", opts, func(cfg aws.Config) []perms.Probe {
			c := s3.NewFromConfig(cfg)
			return []perms.Probe{{
				Action: "s3:ListAllMyBuckets",
				Call: func(ctx context.Context) error {
					_, err := c.ListBuckets(ctx, &s3.ListBucketsInput{MaxBuckets: aws.Int32(1)})
					return err
				},
			}}
		}),
		serviceGroup("ecs", opts, func(cfg aws.Config) []perms.Probe {
			c := ecs.NewFromConfig(cfg)
			return []perms.Probe{{
				Action: "ecs:ListClusters",
				Call: func(ctx context.Context) error {
					_, err := c.ListClusters(ctx, &ecs.ListClustersInput{MaxResults: aws.Int32(1)})
					return err
				},
			}}
		}),
		serviceGroup("ecr", opts, func(cfg aws.Config) []perms.Probe {
			c := ecr.NewFromConfig(cfg)
			return []perms.Probe{{
				Action: "ecr:DescribeRepositories",
				Call: func(ctx context.Context) error {
					_, err := c.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{MaxResults: aws.Int32(1)})
					return err
				},
			}}
		}),
		serviceGroup("eks", opts, func(cfg aws.Config) []perms.Probe {
			c := eks.NewFromConfig(cfg)
			return []perms.Probe{{
				Action: "eks:ListClusters",
				Call: func(ctx context.Context) error {
					_, err := c.ListClusters(ctx, &eks.ListClustersInput{MaxResults: aws.Int32(1)})
					return err
				},
			}}
		}),
		serviceGroup("elasticloadbalancing", opts, func(cfg aws.Config) []perms.Probe {
			c := elbv2.NewFromConfig(cfg)
			return []perms.Probe{{
				Action: "elasticloadbalancing:DescribeLoadBalancers",
				Call: func(ctx context.Context) error {
					_, err := c.DescribeLoadBalancers(ctx, &elbv2.DescribeLoadBalancersInput{PageSize: aws.Int32(1)})
					return err
				},
			}}
		}),
		serviceGroup("logs", opts, func(cfg aws.Config) []perms.Probe {
			c := cloudwatchlogs.NewFromConfig(cfg)
			return []perms.Probe{{
				Action: "logs:DescribeLogGroups",
				Call: func(ctx context.Context) error {
					_, err := c.DescribeLogGroups(ctx, &cloudwatchlogs.DescribeLogGroupsInput{Limit: aws.Int32(1)})
					return err
				},
			}}
		}),
		serviceGroup("application-autoscaling", opts, func(cfg aws.Config) []perms.Probe {
			c := applicationautoscaling.NewFromConfig(cfg)
			return []perms.Probe{{
				Action: "application-autoscaling:DescribeScalableTargets",
				Call: func(ctx context.Context) error {
					_, err := c.DescribeScalableTargets(ctx, &applicationautoscaling.DescribeScalableTargetsInput{
						ServiceNamespace: astypes.ServiceNamespaceEcs,
						MaxResults:       aws.Int32(1),
					})
					return err
				},
			}}
		}),
	)
}

// EC2Probes returns the three EC2 describe probes in their fixed order.
// Actions carry the IAM "ec2:" prefix rather than the bare operation name,
// so the synthesized document is a valid IAM policy. Each confirmed call
// traces how many items it saw.
func EC2Probes(c *awsec2.Client, logger hclog.Logger) []perms.Probe {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	probe := func(action string, call func(context.Context) (int, error)) perms.Probe {
		return perms.Probe{
			Action: action,
			Call: func(ctx context.Context) error {
				n, err := call(ctx)
				if err != nil {
					return err
				}
				logger.Trace("describe succeeded", "action", action, "count", n)
				return nil
			},
		}
	}

	return []perms.Probe{
		probe("ec2:DescribeImages", c.CountOwnedImages),
		probe("ec2:DescribeInstances", c.CountInstances),
		probe("ec2:DescribeInstanceStatus", c.CountInstanceStatuses),
	}
}

// serviceGroup connects with LoadConfig and hands the config to build.
func serviceGroup(service string, opts Options, build func(aws.Config) []perms.Probe) perms.ProbeGroup {
	return perms.ProbeGroup{
		Service: service,
		Connect: func(ctx context.Context, cred perms.Credential) ([]perms.Probe, error) {
			cfg, err := LoadConfig(ctx, cred, opts)
			if err != nil {
				return nil, err
			}
			return build(cfg), nil
		},
	}
}
