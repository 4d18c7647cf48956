package builder

import (
	"context"

	"rtmpinput/awsd/models"
)

// Provider is the part of the provisioning API the builder consults
type Provider interface {
	ListSecurityGroups(ctx context.Context) ([]models.CandidateResource, error)
	CreateSecurityGroup(ctx context.Context, cidr string, tags map[string]string) (string, error)
	ListNetworks(ctx context.Context) ([]models.CandidateResource, error)
	CreateNetwork(ctx context.Context, name string, pools []models.IPPool, routes []models.Route) (string, error)
	ListSubnets(ctx context.Context) ([]models.CandidateResource, error)
	ListVPCSecurityGroups(ctx context.Context) ([]models.CandidateResource, error)
}

// Prompter asks the operator to fill gaps. Indices are zero-based.
type Prompter interface {
	SelectOne(ctx context.Context, title string, options []string) (int, error)
	SelectMany(ctx context.Context, title string, options []string, minCount int) ([]int, error)
	ReadLine(ctx context.Context, label string) (string, error)
}
