package builder

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rtmpinput/awsd/models"
)

// MockProvider is a mock implementation of the provisioning API. It also
// covers the input calls so the provisioner tests can share it.
type MockProvider struct {
	mock.Mock
}

// ListInputNames mocks the ListInputNames method
func (m *MockProvider) ListInputNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// ListSecurityGroups mocks the ListSecurityGroups method
func (m *MockProvider) ListSecurityGroups(ctx context.Context) ([]models.CandidateResource, error) {
	args := m.Called(ctx)
	return candidates(args)
}

// CreateSecurityGroup mocks the CreateSecurityGroup method
func (m *MockProvider) CreateSecurityGroup(ctx context.Context, cidr string, tags map[string]string) (string, error) {
	args := m.Called(ctx, cidr, tags)
	return args.String(0), args.Error(1)
}

// ListNetworks mocks the ListNetworks method
func (m *MockProvider) ListNetworks(ctx context.Context) ([]models.CandidateResource, error) {
	args := m.Called(ctx)
	return candidates(args)
}

// CreateNetwork mocks the CreateNetwork method
func (m *MockProvider) CreateNetwork(ctx context.Context, name string, pools []models.IPPool, routes []models.Route) (string, error) {
	args := m.Called(ctx, name, pools, routes)
	return args.String(0), args.Error(1)
}

// ListSubnets mocks the ListSubnets method
func (m *MockProvider) ListSubnets(ctx context.Context) ([]models.CandidateResource, error) {
	args := m.Called(ctx)
	return candidates(args)
}

// ListVPCSecurityGroups mocks the ListVPCSecurityGroups method
func (m *MockProvider) ListVPCSecurityGroups(ctx context.Context) ([]models.CandidateResource, error) {
	args := m.Called(ctx)
	return candidates(args)
}

// CreateInput mocks the CreateInput method
func (m *MockProvider) CreateInput(ctx context.Context, spec *models.InputSpec) (*models.InputRecord, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InputRecord), args.Error(1)
}

func candidates(args mock.Arguments) ([]models.CandidateResource, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CandidateResource), args.Error(1)
}

// MockPrompter is a mock implementation of Prompter
type MockPrompter struct {
	mock.Mock
}

// SelectOne mocks the SelectOne method
func (m *MockPrompter) SelectOne(ctx context.Context, title string, options []string) (int, error) {
	args := m.Called(ctx, title, options)
	return args.Int(0), args.Error(1)
}

// SelectMany mocks the SelectMany method
func (m *MockPrompter) SelectMany(ctx context.Context, title string, options []string, minCount int) ([]int, error) {
	args := m.Called(ctx, title, options, minCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

// ReadLine mocks the ReadLine method
func (m *MockPrompter) ReadLine(ctx context.Context, label string) (string, error) {
	args := m.Called(ctx, label)
	return args.String(0), args.Error(1)
}
