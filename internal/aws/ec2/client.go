package ec2

import (
	"context"
	"fmt"

	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
)

type EC2API interface {
	DescribeImages(ctx context.Context, params *awsec2.DescribeImagesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeImagesOutput, error)
	DescribeInstances(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error)
	DescribeInstanceStatus(ctx context.Context, params *awsec2.DescribeInstanceStatusInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstanceStatusOutput, error)
}

type Client struct {
	api EC2API
}

func NewClient(api EC2API) *Client {
	return &Client{api: api}
}

// CountOwnedImages returns how many AMIs the calling account owns.
func (c *Client) CountOwnedImages(ctx context.Context) (int, error) {
	out, err := c.api.DescribeImages(ctx, &awsec2.DescribeImagesInput{
		Owners: []string{"self"},
	})
	if err != nil {
		return 0, fmt.Errorf("DescribeImages: %w", err)
	}
	return len(out.Images), nil
}

// CountInstances counts the instances on the first page. A single page is
// enough to prove DescribeInstances is allowed.
func (c *Client) CountInstances(ctx context.Context) (int, error) {
	out, err := c.api.DescribeInstances(ctx, &awsec2.DescribeInstancesInput{})
	if err != nil {
		return 0, fmt.Errorf("DescribeInstances: %w", err)
	}

	n := 0
	for _, reservation := range out.Reservations {
		n += len(reservation.Instances)
	}
	return n, nil
}

// CountInstanceStatuses counts the status checks on the first page.
func (c *Client) CountInstanceStatuses(ctx context.Context) (int, error) {
	out, err := c.api.DescribeInstanceStatus(ctx, &awsec2.DescribeInstanceStatusInput{})
	if err != nil {
		return 0, fmt.Errorf("DescribeInstanceStatus: %w", err)
	}
	return len(out.InstanceStatuses), nil
}
