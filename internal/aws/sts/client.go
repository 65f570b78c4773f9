package sts

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	awssts "github.com/aws/aws-sdk-go-v2/service/sts"
)

type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *awssts.GetCallerIdentityInput, optFns ...func(*awssts.Options)) (*awssts.GetCallerIdentityOutput, error)
}

type Client struct {
	api STSAPI
}

func NewClient(api STSAPI) *Client {
	return &Client{api: api}
}

// CallerIdentity is the principal STS reports for the calling credentials.
type CallerIdentity struct {
	Account string
	ARN     string
	UserID  string
}

func (c *Client) GetCallerIdentity(ctx context.Context) (CallerIdentity, error) {
	out, err := c.api.GetCallerIdentity(ctx, &awssts.GetCallerIdentityInput{})
	if err != nil {
		return CallerIdentity{}, fmt.Errorf("GetCallerIdentity: %w", err)
	}
	return CallerIdentity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}

// UserName extracts the IAM user name from an iam "user/..." ARN. Roles,
// assumed roles, federated users and root return false.
func (id CallerIdentity) UserName() (string, bool) {
	parsed, err := arn.Parse(id.ARN)
	if err != nil || parsed.Service != "iam" {
		return "", false
	}
	if !strings.HasPrefix(parsed.Resource, "user/") {
		return "", false
	}
	name := parsed.Resource[strings.LastIndex(parsed.Resource, "/")+1:]
	if name == "" {
		return "", false
	}
	return name, true
}
