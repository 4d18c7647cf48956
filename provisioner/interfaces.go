package provisioner

import (
	"context"

	"rtmpinput/awsd/models"
	"rtmpinput/builder"
)

// Provider is the full provisioning API: what the builder consults plus the
// input calls
type Provider interface {
	builder.Provider
	ListInputNames(ctx context.Context) ([]string, error)
	CreateInput(ctx context.Context, spec *models.InputSpec) (*models.InputRecord, error)
}

// Provisioner creates one RTMP push input per call
type Provisioner interface {
	Provision(ctx context.Context, req Request) (*Result, error)
}
