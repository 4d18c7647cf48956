package awsd

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/medialive"
	"github.com/aws/aws-sdk-go-v2/service/medialive/types"
	"go.uber.org/zap"

	"rtmpinput/awsd/models"
	"rtmpinput/logger"
)

const packageName = "awsd"

// ListInputNames returns the names of every input in the region
func (a *AwsClient) ListInputNames(ctx context.Context) ([]string, error) {
	var names []string
	var nextToken *string

	for {
		out, err := a.medialive.ListInputs(ctx, &medialive.ListInputsInput{NextToken: nextToken})
		if err != nil {
			return nil, providerError("ListInputs", err)
		}
		for _, in := range out.Inputs {
			if name := aws.ToString(in.Name); name != "" {
				names = append(names, name)
			}
		}
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return names, nil
}

// ListSecurityGroups returns MediaLive input security groups
func (a *AwsClient) ListSecurityGroups(ctx context.Context) ([]models.CandidateResource, error) {
	var groups []models.CandidateResource
	var nextToken *string

	for {
		out, err := a.medialive.ListInputSecurityGroups(ctx, &medialive.ListInputSecurityGroupsInput{NextToken: nextToken})
		if err != nil {
			return nil, providerError("ListInputSecurityGroups", err)
		}
		for _, sg := range out.InputSecurityGroups {
			groups = append(groups, parseInputSecurityGroup(sg))
		}
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return groups, nil
}

// CreateSecurityGroup creates a MediaLive input security group whitelisting cidr
func (a *AwsClient) CreateSecurityGroup(ctx context.Context, cidr string, tags map[string]string) (string, error) {
	out, err := a.medialive.CreateInputSecurityGroup(ctx, &medialive.CreateInputSecurityGroupInput{
		WhitelistRules: []types.InputWhitelistRuleCidr{{Cidr: aws.String(cidr)}},
		Tags:           tags,
	})
	if err != nil {
		return "", providerError("CreateInputSecurityGroup", err)
	}
	if out.SecurityGroup == nil || out.SecurityGroup.Id == nil {
		return "", providerError("CreateInputSecurityGroup", errMissingID)
	}
	return aws.ToString(out.SecurityGroup.Id), nil
}

// ListNetworks returns MediaLive Anywhere networks
func (a *AwsClient) ListNetworks(ctx context.Context) ([]models.CandidateResource, error) {
	var networks []models.CandidateResource
	var nextToken *string

	for {
		out, err := a.medialive.ListNetworks(ctx, &medialive.ListNetworksInput{NextToken: nextToken})
		if err != nil {
			return nil, providerError("ListNetworks", err)
		}
		for _, n := range out.Networks {
			networks = append(networks, parseNetwork(n))
		}
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return networks, nil
}

// CreateNetwork creates a network for ON_PREMISES inputs
func (a *AwsClient) CreateNetwork(ctx context.Context, name string, pools []models.IPPool, routes []models.Route) (string, error) {
	in := &medialive.CreateNetworkInput{
		Name: aws.String(name),
	}
	for _, p := range pools {
		in.IpPools = append(in.IpPools, types.IpPoolCreateRequest{Cidr: aws.String(p.Cidr)})
	}
	for _, r := range routes {
		in.Routes = append(in.Routes, types.RouteCreateRequest{
			Cidr:    aws.String(r.Cidr),
			Gateway: optionalString(r.Gateway),
		})
	}

	out, err := a.medialive.CreateNetwork(ctx, in)
	if err != nil {
		return "", providerError("CreateNetwork", err)
	}
	// the ID is at the top level of the response, not in a nested network
	if out.Id == nil {
		return "", providerError("CreateNetwork", errMissingID)
	}

	logger.For(packageName, "CreateNetwork").Debug("Network created",
		zap.String("operation", "create_network"),
		zap.String("network", aws.ToString(out.Id)),
		zap.String("state", string(out.State)),
	)
	return aws.ToString(out.Id), nil
}

// CreateInput submits the assembled request
func (a *AwsClient) CreateInput(ctx context.Context, spec *models.InputSpec) (*models.InputRecord, error) {
	out, err := a.medialive.CreateInput(ctx, toCreateInputInput(spec))
	if err != nil {
		return nil, providerError("CreateInput", err)
	}
	if out.Input == nil {
		return nil, providerError("CreateInput", errMissingID)
	}
	return parseInput(out.Input), nil
}

func toCreateInputInput(spec *models.InputSpec) *medialive.CreateInputInput {
	in := &medialive.CreateInputInput{
		Name:                 aws.String(spec.Name),
		Type:                 types.InputType(spec.Type),
		InputNetworkLocation: types.InputNetworkLocation(spec.InputNetworkLocation),
		InputSecurityGroups:  spec.InputSecurityGroups,
		RoleArn:              optionalString(spec.RoleArn),
		Tags:                 spec.Tags,
	}
	for _, d := range spec.Destinations {
		dest := types.InputDestinationRequest{
			StreamName:      aws.String(d.StreamName),
			Network:         optionalString(d.Network),
			StaticIpAddress: optionalString(d.StaticIpAddress),
		}
		for _, r := range d.NetworkRoutes {
			dest.NetworkRoutes = append(dest.NetworkRoutes, types.InputRequestDestinationRoute{
				Cidr:    aws.String(r.Cidr),
				Gateway: optionalString(r.Gateway),
			})
		}
		in.Destinations = append(in.Destinations, dest)
	}
	if spec.Vpc != nil {
		in.Vpc = &types.InputVpcRequest{
			SubnetIds:        spec.Vpc.SubnetIds,
			SecurityGroupIds: spec.Vpc.SecurityGroupIds,
		}
	}
	return in
}

// Helper function to parse a MediaLive input security group
func parseInputSecurityGroup(sg types.InputSecurityGroup) models.CandidateResource {
	rules := make([]string, 0, len(sg.WhitelistRules))
	for _, r := range sg.WhitelistRules {
		rules = append(rules, aws.ToString(r.Cidr))
	}
	return models.CandidateResource{
		ID:             aws.ToString(sg.Id),
		Description:    string(sg.State),
		WhitelistRules: rules,
	}
}

// Helper function to parse a network summary
func parseNetwork(n types.DescribeNetworkSummary) models.CandidateResource {
	return models.CandidateResource{
		ID:          aws.ToString(n.Id),
		Name:        aws.ToString(n.Name),
		Description: string(n.State),
	}
}

// Helper function to parse the created input
func parseInput(in *types.Input) *models.InputRecord {
	record := &models.InputRecord{
		ID:                   aws.ToString(in.Id),
		ARN:                  aws.ToString(in.Arn),
		Name:                 aws.ToString(in.Name),
		Type:                 string(in.Type),
		InputNetworkLocation: string(in.InputNetworkLocation),
		State:                string(in.State),
		AttachedChannels:     append([]string{}, in.AttachedChannels...),
		SecurityGroups:       append([]string{}, in.SecurityGroups...),
		Destinations:         make([]models.Endpoint, 0, len(in.Destinations)),
		RoleArn:              aws.ToString(in.RoleArn),
		Tags:                 in.Tags,
	}
	if record.Tags == nil {
		record.Tags = map[string]string{}
	}
	for _, d := range in.Destinations {
		endpoint := models.Endpoint{
			URL:     aws.ToString(d.Url),
			IP:      aws.ToString(d.Ip),
			Port:    aws.ToString(d.Port),
			Network: aws.ToString(d.Network),
		}
		for _, r := range d.NetworkRoutes {
			endpoint.NetworkRoutes = append(endpoint.NetworkRoutes, models.Route{
				Cidr:    aws.ToString(r.Cidr),
				Gateway: aws.ToString(r.Gateway),
			})
		}
		record.Destinations = append(record.Destinations, endpoint)
	}
	return record
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}
