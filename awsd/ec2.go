package awsd

import (
	"context"
	stderrors "errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"rtmpinput/awsd/models"
)

var errMissingID = stderrors.New("response carried no resource ID")

// ListSubnets returns every subnet visible in the region
func (a *AwsClient) ListSubnets(ctx context.Context) ([]models.CandidateResource, error) {
	var subnets []models.CandidateResource
	var nextToken *string

	for {
		out, err := a.ec2.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{NextToken: nextToken})
		if err != nil {
			return nil, providerError("DescribeSubnets", err)
		}
		subnets = append(subnets, parseSubnets(out.Subnets)...)
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return subnets, nil
}

// ListVPCSecurityGroups returns every EC2 security group visible in the region
func (a *AwsClient) ListVPCSecurityGroups(ctx context.Context) ([]models.CandidateResource, error) {
	var groups []models.CandidateResource
	var nextToken *string

	for {
		out, err := a.ec2.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{NextToken: nextToken})
		if err != nil {
			return nil, providerError("DescribeSecurityGroups", err)
		}
		groups = append(groups, parseSecurityGroups(out.SecurityGroups)...)
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return groups, nil
}

// Helper function to parse subnets
func parseSubnets(subnets []types.Subnet) []models.CandidateResource {
	result := make([]models.CandidateResource, 0, len(subnets))
	for _, s := range subnets {
		result = append(result, models.CandidateResource{
			ID:               aws.ToString(s.SubnetId),
			Name:             nameFromTags(s.Tags),
			Description:      aws.ToString(s.VpcId),
			CIDR:             aws.ToString(s.CidrBlock),
			AvailabilityZone: aws.ToString(s.AvailabilityZone),
		})
	}
	return result
}

// Helper function to parse security groups
func parseSecurityGroups(groups []types.SecurityGroup) []models.CandidateResource {
	result := make([]models.CandidateResource, 0, len(groups))
	for _, g := range groups {
		result = append(result, models.CandidateResource{
			ID:          aws.ToString(g.GroupId),
			Name:        aws.ToString(g.GroupName),
			Description: aws.ToString(g.Description),
		})
	}
	return result
}

func nameFromTags(tags []types.Tag) string {
	for _, tag := range tags {
		if aws.ToString(tag.Key) == "Name" {
			return aws.ToString(tag.Value)
		}
	}
	return ""
}
