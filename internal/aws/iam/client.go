package iam

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsiam "github.com/aws/aws-sdk-go-v2/service/iam"
)

type IAMAPI interface {
	GetAccountSummary(ctx context.Context, params *awsiam.GetAccountSummaryInput, optFns ...func(*awsiam.Options)) (*awsiam.GetAccountSummaryOutput, error)
	GetUser(ctx context.Context, params *awsiam.GetUserInput, optFns ...func(*awsiam.Options)) (*awsiam.GetUserOutput, error)
	ListUsers(ctx context.Context, params *awsiam.ListUsersInput, optFns ...func(*awsiam.Options)) (*awsiam.ListUsersOutput, error)
	ListAccessKeys(ctx context.Context, params *awsiam.ListAccessKeysInput, optFns ...func(*awsiam.Options)) (*awsiam.ListAccessKeysOutput, error)
	ListUserPolicies(ctx context.Context, params *awsiam.ListUserPoliciesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListUserPoliciesOutput, error)
	GetUserPolicy(ctx context.Context, params *awsiam.GetUserPolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.GetUserPolicyOutput, error)
}

type Client struct {
	api IAMAPI
}

func NewClient(api IAMAPI) *Client {
	return &Client{api: api}
}

func (c *Client) GetAccountSummary(ctx context.Context) (AccountSummary, error) {
	out, err := c.api.GetAccountSummary(ctx, &awsiam.GetAccountSummaryInput{})
	if err != nil {
		return nil, fmt.Errorf("GetAccountSummary: %w", err)
	}

	summary := make(AccountSummary, len(out.SummaryMap))
	for k, v := range out.SummaryMap {
		summary[k] = int(v)
	}
	return summary, nil
}

// GetCurrentUser returns the user the calling credentials belong to. IAM
// infers the user from the request signature when no name is given.
func (c *Client) GetCurrentUser(ctx context.Context) (IAMUser, error) {
	out, err := c.api.GetUser(ctx, &awsiam.GetUserInput{})
	if err != nil {
		return IAMUser{}, fmt.Errorf("GetUser: %w", err)
	}
	if out.User == nil {
		return IAMUser{}, fmt.Errorf("GetUser: empty response")
	}
	u := out.User

	var createdAt time.Time
	if u.CreateDate != nil {
		createdAt = *u.CreateDate
	}
	return IAMUser{
		Name:      aws.ToString(u.UserName),
		UserID:    aws.ToString(u.UserId),
		ARN:       aws.ToString(u.Arn),
		Path:      aws.ToString(u.Path),
		CreatedAt: createdAt,
	}, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]IAMUser, error) {
	var users []IAMUser
	var marker *string

	for {
		out, err := c.api.ListUsers(ctx, &awsiam.ListUsersInput{
			Marker: marker,
		})
		if err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}

		for _, u := range out.Users {
			var createdAt time.Time
			if u.CreateDate != nil {
				createdAt = *u.CreateDate
			}
			users = append(users, IAMUser{
				Name:      aws.ToString(u.UserName),
				UserID:    aws.ToString(u.UserId),
				ARN:       aws.ToString(u.Arn),
				Path:      aws.ToString(u.Path),
				CreatedAt: createdAt,
			})
		}

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return users, nil
}

func (c *Client) ListAccessKeys(ctx context.Context, userName string) ([]AccessKey, error) {
	var keys []AccessKey
	var marker *string

	for {
		out, err := c.api.ListAccessKeys(ctx, &awsiam.ListAccessKeysInput{
			UserName: aws.String(userName),
			Marker:   marker,
		})
		if err != nil {
			return nil, fmt.Errorf("ListAccessKeys(%s): %w", userName, err)
		}

		for _, k := range out.AccessKeyMetadata {
			var createdAt time.Time
			if k.CreateDate != nil {
				createdAt = *k.CreateDate
			}
			keys = append(keys, AccessKey{
				AccessKeyID: aws.ToString(k.AccessKeyId),
				UserName:    aws.ToString(k.UserName),
				Status:      string(k.Status),
				CreatedAt:   createdAt,
			})
		}

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return keys, nil
}

// FindUserByAccessKey enumerates every user's access keys and returns the
// owner of accessKeyID. Any listing error aborts the search.
func (c *Client) FindUserByAccessKey(ctx context.Context, accessKeyID string) (string, bool, error) {
	users, err := c.ListUsers(ctx)
	if err != nil {
		return "", false, err
	}

	for _, u := range users {
		keys, err := c.ListAccessKeys(ctx, u.Name)
		if err != nil {
			return "", false, err
		}
		for _, k := range keys {
			if k.AccessKeyID == accessKeyID {
				return u.Name, true, nil
			}
		}
	}
	return "", false, nil
}

// ListUserPolicies returns the names of the user's inline policies.
func (c *Client) ListUserPolicies(ctx context.Context, userName string) ([]string, error) {
	names := []string{}
	var marker *string

	for {
		out, err := c.api.ListUserPolicies(ctx, &awsiam.ListUserPoliciesInput{
			UserName: aws.String(userName),
			Marker:   marker,
		})
		if err != nil {
			return nil, fmt.Errorf("ListUserPolicies(%s): %w", userName, err)
		}

		names = append(names, out.PolicyNames...)

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return names, nil
}

// GetUserPolicy returns the inline policy document, still URL-encoded.
func (c *Client) GetUserPolicy(ctx context.Context, userName, policyName string) (string, error) {
	out, err := c.api.GetUserPolicy(ctx, &awsiam.GetUserPolicyInput{
		UserName:   aws.String(userName),
		PolicyName: aws.String(policyName),
	})
	if err != nil {
		return "", fmt.Errorf("GetUserPolicy(%s, %s): %w", userName, policyName, err)
	}
	return aws.ToString(out.PolicyDocument), nil
}
