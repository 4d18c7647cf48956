package builder

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"rtmpinput/awsd/models"
	"rtmpinput/selector"
)

// buildAWS attaches a MediaLive input security group.
func (b *Builder) buildAWS(ctx context.Context, p Params, spec *models.InputSpec, info *models.ResourceInfo) error {
	log := b.logger.With(zap.String("function", "buildAWS"))
	value := strings.TrimSpace(p.SecurityGroup)

	if !b.opts.Strict {
		return b.buildAWSQuick(ctx, value, spec, info)
	}

	if value != "" && IsCIDR(value) {
		id, err := b.createSecurityGroup(ctx, value, info)
		if err != nil {
			return err
		}
		spec.InputSecurityGroups = []string{id}
		return nil
	}

	existing, err := b.provider.ListSecurityGroups(ctx)
	if err != nil {
		return err
	}

	if value != "" {
		if sg, ok := findCandidate(existing, value); ok {
			spec.InputSecurityGroups = []string{sg.ID}
			info.SecurityGroups = append(info.SecurityGroups, models.SecurityGroupInfo{
				ID:   sg.ID,
				CIDR: strings.Join(sg.WhitelistRules, ","),
			})
			return nil
		}
		log.Warn("Not a valid MediaLive security group",
			zap.String("operation", "security_group_validation"),
			zap.String("security_group", value),
		)
	}

	id, err := b.chooseSecurityGroup(ctx, existing, info)
	if err != nil {
		return err
	}
	spec.InputSecurityGroups = []string{id}
	return nil
}

// buildAWSQuick creates a group from a CIDR (or the default whitelist) and
// otherwise trusts the supplied value as an existing group ID.
func (b *Builder) buildAWSQuick(ctx context.Context, value string, spec *models.InputSpec, info *models.ResourceInfo) error {
	if value != "" && !IsCIDR(value) {
		spec.InputSecurityGroups = []string{value}
		info.SecurityGroups = append(info.SecurityGroups, models.SecurityGroupInfo{ID: value})
		return nil
	}

	cidr := value
	if cidr == "" {
		cidr = b.opts.DefaultWhitelistCIDR
	}
	id, err := b.createSecurityGroup(ctx, cidr, info)
	if err != nil {
		return err
	}
	spec.InputSecurityGroups = []string{id}
	return nil
}

// chooseSecurityGroup lets the operator pick an existing group or create one.
func (b *Builder) chooseSecurityGroup(ctx context.Context, existing []models.CandidateResource, info *models.ResourceInfo) (string, error) {
	if len(existing) == 0 {
		cidr, err := b.readCIDR(ctx, "No existing MediaLive security groups. Enter CIDR to whitelist (e.g., 0.0.0.0/0)")
		if err != nil {
			return "", err
		}
		return b.createSecurityGroup(ctx, cidr, info)
	}

	options := append(selector.Labels(existing), "Create a new security group")
	idx, err := b.prompter.SelectOne(ctx, "Select a MediaLive security group", options)
	if err != nil {
		return "", err
	}

	if idx == len(existing) {
		cidr, err := b.readCIDR(ctx, "Enter CIDR to whitelist (e.g., 0.0.0.0/0)")
		if err != nil {
			return "", err
		}
		return b.createSecurityGroup(ctx, cidr, info)
	}

	ids, err := selector.Pick(existing, []int{idx})
	if err != nil {
		return "", err
	}
	sg := existing[idx]
	info.SecurityGroups = append(info.SecurityGroups, models.SecurityGroupInfo{
		ID:   ids[0],
		CIDR: strings.Join(sg.WhitelistRules, ","),
	})
	return ids[0], nil
}

func (b *Builder) createSecurityGroup(ctx context.Context, cidr string, info *models.ResourceInfo) (string, error) {
	tags := make(map[string]string, len(autoCreatedTags))
	for k, v := range autoCreatedTags {
		tags[k] = v
	}

	id, err := b.provider.CreateSecurityGroup(ctx, cidr, tags)
	if err != nil {
		return "", err
	}

	b.logger.Info("Created MediaLive security group",
		zap.String("operation", "security_group_create"),
		zap.String("security_group", id),
		zap.String("cidr", cidr),
	)
	info.SecurityGroups = append(info.SecurityGroups, models.SecurityGroupInfo{
		ID:          id,
		CIDR:        cidr,
		AutoCreated: true,
	})
	return id, nil
}
