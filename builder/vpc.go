package builder

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"rtmpinput/awsd/models"
	"rtmpinput/errors"
	"rtmpinput/selector"
)

const vpcSubnetCount = 2

// buildVPC places the input in two subnets with an optional security group
// and the role MediaLive assumes to create the ENIs.
func (b *Builder) buildVPC(ctx context.Context, p Params, spec *models.InputSpec, info *models.ResourceInfo) error {
	log := b.logger.With(zap.String("function", "buildVPC"))
	supplied := trimAll(p.Subnets)
	vpc := &models.VPCConfig{}

	if !b.opts.Strict {
		if len(supplied) < vpcSubnetCount {
			return errors.New(errors.ErrMissingParameter, "AWS_VPC requires at least 2 subnets",
				map[string]interface{}{
					"subnets": supplied,
				}, nil)
		}
		vpc.SubnetIds = supplied[:vpcSubnetCount]
		info.Subnets = append(info.Subnets, vpc.SubnetIds...)
		if sg := strings.TrimSpace(p.SecurityGroup); sg != "" {
			vpc.SecurityGroupIds = []string{sg}
			info.SecurityGroups = append(info.SecurityGroups, models.SecurityGroupInfo{ID: sg})
		}
	} else {
		subnets, err := b.resolveSubnets(ctx, supplied, info)
		if err != nil {
			return err
		}
		vpc.SubnetIds = subnets

		sg, err := b.resolveVPCSecurityGroup(ctx, strings.TrimSpace(p.SecurityGroup), info)
		if err != nil {
			return err
		}
		if sg != "" {
			vpc.SecurityGroupIds = []string{sg}
		} else {
			log.Info("No VPC security group supplied, MediaLive will use the VPC default",
				zap.String("operation", "vpc_security_group"),
			)
		}
	}

	role, err := b.resolveRoleARN(ctx, strings.TrimSpace(p.RoleARN))
	if err != nil {
		return err
	}

	spec.Vpc = vpc
	spec.RoleArn = role
	return nil
}

// resolveSubnets keeps the first two supplied subnets found in the account,
// in caller order, or asks the operator to pick at least two.
func (b *Builder) resolveSubnets(ctx context.Context, supplied []string, info *models.ResourceInfo) ([]string, error) {
	available, err := b.provider.ListSubnets(ctx)
	if err != nil {
		return nil, err
	}

	var valid []string
	seen := make(map[string]struct{})
	for _, id := range supplied {
		if _, dup := seen[id]; dup {
			continue
		}
		if _, ok := findCandidate(available, id); ok {
			valid = append(valid, id)
			seen[id] = struct{}{}
		}
	}

	var chosen []string
	if len(valid) >= vpcSubnetCount {
		chosen = valid[:vpcSubnetCount]
	} else {
		b.logger.Warn("Not enough valid subnets provided, need at least 2",
			zap.String("operation", "subnet_validation"),
			zap.Strings("supplied", supplied),
			zap.Strings("valid", valid),
		)
		if len(available) < vpcSubnetCount {
			return nil, errors.New(errors.ErrSelection, "not enough subnets in this account/region",
				map[string]interface{}{
					"available": len(available),
					"required":  vpcSubnetCount,
				}, nil)
		}
		indices, err := b.prompter.SelectMany(ctx, "Select subnets (e.g., '1,2' or '2-4,6')", selector.Labels(available), vpcSubnetCount)
		if err != nil {
			return nil, err
		}
		picked, err := selector.Pick(available, indices)
		if err != nil {
			return nil, err
		}
		if len(picked) < vpcSubnetCount {
			return nil, errors.New(errors.ErrSelection, "please select at least 2 subnets",
				map[string]interface{}{
					"selected": len(picked),
				}, nil)
		}
		chosen = picked[:vpcSubnetCount]
	}

	for _, id := range chosen {
		subnet, _ := findCandidate(available, id)
		info.Subnets = append(info.Subnets, id)
		info.AvailabilityZones[id] = subnet.AvailabilityZone
	}
	return chosen, nil
}

// resolveVPCSecurityGroup validates the supplied EC2 security group, falling
// back to a selection when it is unknown, or absent and required.
func (b *Builder) resolveVPCSecurityGroup(ctx context.Context, supplied string, info *models.ResourceInfo) (string, error) {
	if supplied == "" && !b.opts.RequireVPCSecurityGroup {
		return "", nil
	}

	available, err := b.provider.ListVPCSecurityGroups(ctx)
	if err != nil {
		return "", err
	}

	if supplied != "" {
		if sg, ok := findCandidate(available, supplied); ok {
			info.SecurityGroups = append(info.SecurityGroups, vpcSecurityGroupInfo(sg))
			return sg.ID, nil
		}
		b.logger.Warn("Security group not found",
			zap.String("operation", "vpc_security_group"),
			zap.String("security_group", supplied),
		)
	}

	if len(available) == 0 {
		return "", errors.New(errors.ErrMissingParameter, "no VPC security groups available in this account/region", nil, nil)
	}

	idx, err := b.prompter.SelectOne(ctx, "Select a security group", selector.Labels(available))
	if err != nil {
		return "", err
	}
	if _, err := selector.Pick(available, []int{idx}); err != nil {
		return "", err
	}
	info.SecurityGroups = append(info.SecurityGroups, vpcSecurityGroupInfo(available[idx]))
	return available[idx].ID, nil
}

func vpcSecurityGroupInfo(sg models.CandidateResource) models.SecurityGroupInfo {
	name := sg.Name
	if name == "" {
		name = "Unknown"
	}
	return models.SecurityGroupInfo{
		ID:          sg.ID,
		Name:        name,
		Description: sg.Description,
	}
}

func (b *Builder) resolveRoleARN(ctx context.Context, supplied string) (string, error) {
	if supplied != "" {
		return supplied, nil
	}
	if b.opts.PromptForRoleARN {
		value, err := b.prompter.ReadLine(ctx, "Enter Role ARN")
		if err != nil {
			return "", err
		}
		if value = strings.TrimSpace(value); value != "" {
			return value, nil
		}
	}
	return "", errors.New(errors.ErrMissingParameter, "role ARN is required for AWS_VPC inputs",
		map[string]interface{}{
			"flag": "--role-arn",
		}, nil)
}
