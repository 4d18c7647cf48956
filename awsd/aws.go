package awsd

import (
	"context"
	stderrors "errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/medialive"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	"rtmpinput/configuration"
	"rtmpinput/errors"
)

// MediaLiveAPI is the subset of the MediaLive client used to provision inputs
type MediaLiveAPI interface {
	ListInputs(ctx context.Context, params *medialive.ListInputsInput, optFns ...func(*medialive.Options)) (*medialive.ListInputsOutput, error)
	ListInputSecurityGroups(ctx context.Context, params *medialive.ListInputSecurityGroupsInput, optFns ...func(*medialive.Options)) (*medialive.ListInputSecurityGroupsOutput, error)
	CreateInputSecurityGroup(ctx context.Context, params *medialive.CreateInputSecurityGroupInput, optFns ...func(*medialive.Options)) (*medialive.CreateInputSecurityGroupOutput, error)
	ListNetworks(ctx context.Context, params *medialive.ListNetworksInput, optFns ...func(*medialive.Options)) (*medialive.ListNetworksOutput, error)
	CreateNetwork(ctx context.Context, params *medialive.CreateNetworkInput, optFns ...func(*medialive.Options)) (*medialive.CreateNetworkOutput, error)
	CreateInput(ctx context.Context, params *medialive.CreateInputInput, optFns ...func(*medialive.Options)) (*medialive.CreateInputOutput, error)
}

// EC2API is the subset of the EC2 client used to inventory VPC resources
type EC2API interface {
	DescribeSubnets(ctx context.Context, params *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error)
	DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)
}

// STSAPI resolves the caller's account
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// AwsClient implements the provisioning API on top of the AWS SDK
type AwsClient struct {
	medialive MediaLiveAPI
	ec2       EC2API
	sts       STSAPI
}

// NewAWSClientWithConfig builds service clients from an aws.Config. A
// non-empty endpoint overrides every service endpoint (e.g. LocalStack).
func NewAWSClientWithConfig(cfg aws.Config, endpoint string) *AwsClient {
	var (
		mlOpts  []func(*medialive.Options)
		ec2Opts []func(*ec2.Options)
		stsOpts []func(*sts.Options)
	)
	if endpoint != "" {
		mlOpts = append(mlOpts, func(o *medialive.Options) { o.BaseEndpoint = aws.String(endpoint) })
		ec2Opts = append(ec2Opts, func(o *ec2.Options) { o.BaseEndpoint = aws.String(endpoint) })
		stsOpts = append(stsOpts, func(o *sts.Options) { o.BaseEndpoint = aws.String(endpoint) })
	}

	return &AwsClient{
		medialive: medialive.NewFromConfig(cfg, mlOpts...),
		ec2:       ec2.NewFromConfig(cfg, ec2Opts...),
		sts:       sts.NewFromConfig(cfg, stsOpts...),
	}
}

// NewAWSClient loads the AWS configuration for the configured region,
// profile and optional static credentials.
func NewAWSClient(ctx context.Context, c *configuration.Config) (*AwsClient, error) {
	cfg, err := LoadConfig(ctx, c)
	if err != nil {
		return nil, err
	}
	return NewAWSClientWithConfig(cfg, c.EndpointURL), nil
}

// LoadConfig resolves an aws.Config from the application configuration.
func LoadConfig(ctx context.Context, c *configuration.Config) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(c.AWSRegion),
	}
	if c.AWSProfile != "" {
		opts = append(opts, config.WithSharedConfigProfile(c.AWSProfile))
	}
	if c.AcessKeyID != "" && c.AccessSecret != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AcessKeyID, c.AccessSecret, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, errors.New(errors.ErrAWSClient, "loading AWS config",
			map[string]interface{}{
				"region":  c.AWSRegion,
				"profile": c.AWSProfile,
			}, err)
	}
	return cfg, nil
}

// AccountID returns the caller's account, or "" when it cannot be resolved.
func (a *AwsClient) AccountID(ctx context.Context) string {
	out, err := a.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return ""
	}
	return aws.ToString(out.Account)
}

// providerError wraps an SDK failure, keeping the AWS error code when there is one.
func providerError(operation string, err error) error {
	context := map[string]interface{}{
		"operation": operation,
	}
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		context["code"] = apiErr.ErrorCode()
	}
	return errors.New(errors.ErrProvider, operation+" failed", context, err)
}

// ErrorCode returns the AWS error code carried by a provider error.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
