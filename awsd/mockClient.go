package awsd

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/medialive"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type MockMediaLiveClient struct {
	ListInputsFunc               func(ctx context.Context, params *medialive.ListInputsInput, optFns ...func(*medialive.Options)) (*medialive.ListInputsOutput, error)
	ListInputSecurityGroupsFunc  func(ctx context.Context, params *medialive.ListInputSecurityGroupsInput, optFns ...func(*medialive.Options)) (*medialive.ListInputSecurityGroupsOutput, error)
	CreateInputSecurityGroupFunc func(ctx context.Context, params *medialive.CreateInputSecurityGroupInput, optFns ...func(*medialive.Options)) (*medialive.CreateInputSecurityGroupOutput, error)
	ListNetworksFunc             func(ctx context.Context, params *medialive.ListNetworksInput, optFns ...func(*medialive.Options)) (*medialive.ListNetworksOutput, error)
	CreateNetworkFunc            func(ctx context.Context, params *medialive.CreateNetworkInput, optFns ...func(*medialive.Options)) (*medialive.CreateNetworkOutput, error)
	CreateInputFunc              func(ctx context.Context, params *medialive.CreateInputInput, optFns ...func(*medialive.Options)) (*medialive.CreateInputOutput, error)
}

func (m *MockMediaLiveClient) ListInputs(ctx context.Context, params *medialive.ListInputsInput, optFns ...func(*medialive.Options)) (*medialive.ListInputsOutput, error) {
	return m.ListInputsFunc(ctx, params, optFns...)
}

func (m *MockMediaLiveClient) ListInputSecurityGroups(ctx context.Context, params *medialive.ListInputSecurityGroupsInput, optFns ...func(*medialive.Options)) (*medialive.ListInputSecurityGroupsOutput, error) {
	return m.ListInputSecurityGroupsFunc(ctx, params, optFns...)
}

func (m *MockMediaLiveClient) CreateInputSecurityGroup(ctx context.Context, params *medialive.CreateInputSecurityGroupInput, optFns ...func(*medialive.Options)) (*medialive.CreateInputSecurityGroupOutput, error) {
	return m.CreateInputSecurityGroupFunc(ctx, params, optFns...)
}

func (m *MockMediaLiveClient) ListNetworks(ctx context.Context, params *medialive.ListNetworksInput, optFns ...func(*medialive.Options)) (*medialive.ListNetworksOutput, error) {
	return m.ListNetworksFunc(ctx, params, optFns...)
}

func (m *MockMediaLiveClient) CreateNetwork(ctx context.Context, params *medialive.CreateNetworkInput, optFns ...func(*medialive.Options)) (*medialive.CreateNetworkOutput, error) {
	return m.CreateNetworkFunc(ctx, params, optFns...)
}

func (m *MockMediaLiveClient) CreateInput(ctx context.Context, params *medialive.CreateInputInput, optFns ...func(*medialive.Options)) (*medialive.CreateInputOutput, error) {
	return m.CreateInputFunc(ctx, params, optFns...)
}

type MockEC2Client struct {
	DescribeSubnetsFunc        func(ctx context.Context, params *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error)
	DescribeSecurityGroupsFunc func(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)
}

func (m *MockEC2Client) DescribeSubnets(ctx context.Context, params *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error) {
	return m.DescribeSubnetsFunc(ctx, params, optFns...)
}

func (m *MockEC2Client) DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error) {
	return m.DescribeSecurityGroupsFunc(ctx, params, optFns...)
}

type MockSTSClient struct {
	GetCallerIdentityFunc func(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

func (m *MockSTSClient) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return m.GetCallerIdentityFunc(ctx, params, optFns...)
}
