package ec2

import (
	"context"
	"errors"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

type mockEC2API struct {
	describeImagesFunc         func(ctx context.Context, params *awsec2.DescribeImagesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeImagesOutput, error)
	describeInstancesFunc      func(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error)
	describeInstanceStatusFunc func(ctx context.Context, params *awsec2.DescribeInstanceStatusInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstanceStatusOutput, error)
}

func (m *mockEC2API) DescribeImages(ctx context.Context, params *awsec2.DescribeImagesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeImagesOutput, error) {
	return m.describeImagesFunc(ctx, params, optFns...)
}

func (m *mockEC2API) DescribeInstances(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error) {
	return m.describeInstancesFunc(ctx, params, optFns...)
}

func (m *mockEC2API) DescribeInstanceStatus(ctx context.Context, params *awsec2.DescribeInstanceStatusInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstanceStatusOutput, error) {
	return m.describeInstanceStatusFunc(ctx, params, optFns...)
}

func TestCountOwnedImages(t *testing.T) {
	mock := &mockEC2API{
		describeImagesFunc: func(ctx context.Context, params *awsec2.DescribeImagesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeImagesOutput, error) {
			if len(params.Owners) != 1 || params.Owners[0] != "self" {
				t.Errorf("Owners = %v, want [self]", params.Owners)
			}
			return &awsec2.DescribeImagesOutput{
				Images: []types.Image{{ImageId: awssdk.String("ami-0abc")}},
			}, nil
		},
	}

	n, err := NewClient(mock).CountOwnedImages(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 image, got %d", n)
	}
}

func TestCountInstances(t *testing.T) {
	mock := &mockEC2API{
		describeInstancesFunc: func(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error) {
			return &awsec2.DescribeInstancesOutput{
				Reservations: []types.Reservation{
					{Instances: []types.Instance{{InstanceId: awssdk.String("i-abc123")}, {InstanceId: awssdk.String("i-def456")}}},
					{Instances: []types.Instance{{InstanceId: awssdk.String("i-nostate")}}},
				},
			}, nil
		},
	}

	n, err := NewClient(mock).CountInstances(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 instances across reservations, got %d", n)
	}
}

func TestCountInstanceStatuses(t *testing.T) {
	mock := &mockEC2API{
		describeInstanceStatusFunc: func(ctx context.Context, params *awsec2.DescribeInstanceStatusInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstanceStatusOutput, error) {
			return &awsec2.DescribeInstanceStatusOutput{
				InstanceStatuses: []types.InstanceStatus{{InstanceId: awssdk.String("i-abc123")}},
			}, nil
		},
	}

	n, err := NewClient(mock).CountInstanceStatuses(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 status, got %d", n)
	}
}

func TestClientErrorsAreWrapped(t *testing.T) {
	denied := errors.New("UnauthorizedOperation")
	mock := &mockEC2API{
		describeImagesFunc: func(ctx context.Context, params *awsec2.DescribeImagesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeImagesOutput, error) {
			return nil, denied
		},
		describeInstancesFunc: func(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error) {
			return nil, denied
		},
		describeInstanceStatusFunc: func(ctx context.Context, params *awsec2.DescribeInstanceStatusInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstanceStatusOutput, error) {
			return nil, denied
		},
	}
	client := NewClient(mock)
	ctx := context.Background()

	if _, err := client.CountOwnedImages(ctx); !errors.Is(err, denied) {
		t.Errorf("CountOwnedImages error = %v, want wrapped %v", err, denied)
	}
	if _, err := client.CountInstances(ctx); !errors.Is(err, denied) {
		t.Errorf("CountInstances error = %v, want wrapped %v", err, denied)
	}
	if _, err := client.CountInstanceStatuses(ctx); !errors.Is(err, denied) {
		t.Errorf("CountInstanceStatuses error = %v, want wrapped %v", err, denied)
	}
}
