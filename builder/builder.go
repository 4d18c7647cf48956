// Package builder assembles MediaLive RTMP push input requests.
//
// The builder branches on the source type and makes sure every supporting
// resource exists before the request is handed to CreateInput: input
// security groups for AWS, a subnet pair and security group for AWS_VPC and
// a network for ON_PREMISES. Gaps are filled from the live inventory, by
// creating resources, or by asking the operator through a Prompter,
// depending on Options.
//
// Resources created during a build are not rolled back when a later step
// fails; they are reported through ResourceInfo.AutoCreated.
package builder

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"rtmpinput/awsd/models"
	"rtmpinput/errors"
)

const packageName = "builder"

// autoCreatedTags mark security groups created by this tool
var autoCreatedTags = map[string]string{"AutoCreated": "True"}

// Params is the operator input for one request
type Params struct {
	Name                 string
	SourceType           models.SourceType
	AppName              string
	AppInstance          string
	SecondaryAppName     string
	SecondaryAppInstance string
	SecurityGroup        string
	Subnets              []string
	RoleARN              string
	Network              string
	StaticIP             string
	NetworkRoutes        []string
	Tags                 []string
}

// Builder turns Params into a complete InputSpec
type Builder struct {
	provider Provider
	prompter Prompter
	opts     Options
	logger   *zap.Logger
}

// New creates a Builder. A nil logger disables logging.
func New(provider Provider, prompter Prompter, opts Options, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DefaultWhitelistCIDR == "" {
		opts.DefaultWhitelistCIDR = defaultWhitelistCIDR
	}
	if opts.DefaultNetworkPool == "" {
		opts.DefaultNetworkPool = defaultNetworkPool
	}
	return &Builder{
		provider: provider,
		prompter: prompter,
		opts:     opts,
		logger:   logger.With(zap.String("package", packageName)),
	}
}

// Build assembles the request. The returned ResourceInfo is never nil, so
// callers can report resources created before a failure.
func (b *Builder) Build(ctx context.Context, p Params) (*models.InputSpec, *models.ResourceInfo, error) {
	info := models.NewResourceInfo()
	spec := &models.InputSpec{
		Name:                 p.Name,
		Type:                 models.InputTypeRTMPPush,
		InputNetworkLocation: p.SourceType.NetworkLocation(),
		Destinations:         destinations(p),
	}

	var err error
	switch p.SourceType {
	case models.SourceAWS:
		err = b.buildAWS(ctx, p, spec, info)
	case models.SourceAWSVPC:
		err = b.buildVPC(ctx, p, spec, info)
	case models.SourceOnPremises:
		err = b.buildOnPremises(ctx, p, spec, info)
	default:
		err = errors.New(errors.ErrMissingParameter, "source type is required",
			map[string]interface{}{
				"source_type": string(p.SourceType),
			}, nil)
	}
	if err != nil {
		return nil, info, err
	}

	if tags := ParseTags(p.Tags); len(tags) > 0 {
		spec.Tags = tags
	}

	b.logger.Debug("Input request assembled",
		zap.String("operation", "build_complete"),
		zap.String("source_type", string(p.SourceType)),
		zap.String("name", spec.Name),
	)
	return spec, info, nil
}

// destinations builds the primary and secondary publishing points; the
// secondary falls back to the primary app name and instance.
func destinations(p Params) []models.Destination {
	secondaryName := p.SecondaryAppName
	if secondaryName == "" {
		secondaryName = p.AppName
	}
	secondaryInstance := p.SecondaryAppInstance
	if secondaryInstance == "" {
		secondaryInstance = p.AppInstance
	}
	return []models.Destination{
		{StreamName: fmt.Sprintf("%s/%s", p.AppName, p.AppInstance)},
		{StreamName: fmt.Sprintf("%s/%s", secondaryName, secondaryInstance)},
	}
}

// readCIDR asks until the operator enters a valid CIDR.
func (b *Builder) readCIDR(ctx context.Context, label string) (string, error) {
	for {
		value, err := b.prompter.ReadLine(ctx, label)
		if err != nil {
			return "", err
		}
		value = strings.TrimSpace(value)
		if IsCIDR(value) {
			return value, nil
		}
		b.logger.Warn("Invalid CIDR format, please try again",
			zap.String("operation", "read_cidr"),
			zap.String("cidr", value),
		)
	}
}

func findCandidate(candidates []models.CandidateResource, id string) (models.CandidateResource, bool) {
	for _, c := range candidates {
		if c.ID == id {
			return c, true
		}
	}
	return models.CandidateResource{}, false
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
