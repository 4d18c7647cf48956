package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"rtmpinput/awsd/models"
	"rtmpinput/builder"
	"rtmpinput/configuration"
	"rtmpinput/errors"
	"rtmpinput/prompt"
	"rtmpinput/provisioner"
)

// testApp wires the CLI to a mock provider and captures its output.
func testApp(t *testing.T, provider *builder.MockProvider) (*app, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	for _, key := range []string{
		"AWS_REGION", "AWS_PROFILE", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
		"AWS_ENDPOINT_URL", "LOG_LEVEL", "NAME_PREFIX", "NAME_MAX_ATTEMPTS",
		"DEFAULT_WHITELIST_CIDR", "DEFAULT_NETWORK_POOL",
	} {
		t.Setenv(key, "")
	}
	viper.Reset()
	t.Cleanup(viper.Reset)

	var stdout, stderr bytes.Buffer
	return &app{
		stdout: &stdout,
		stderr: &stderr,
		newProvider: func(context.Context, *configuration.Config) (provisioner.Provider, error) {
			return provider, nil
		},
		newPrompter: func(bool) builder.Prompter { return prompt.Disabled{} },
	}, &stdout, &stderr
}

func TestRoot(t *testing.T) {
	a, _, _ := testApp(t, nil)
	cmd := newRootCmd(a)

	require.NotNil(t, cmd)
	assert.Equal(t, "rtmpinput", cmd.Use)

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}
	assert.True(t, subcommands["create"])
	assert.True(t, subcommands["quick"])
	assert.Len(t, cmd.Commands(), 2)
}

func TestFlags(t *testing.T) {
	a, _, _ := testApp(t, nil)
	root := newRootCmd(a)

	create, _, err := root.Find([]string{"create"})
	require.NoError(t, err)
	quick, _, err := root.Find([]string{"quick"})
	require.NoError(t, err)

	assert.Equal(t, "", create.Flags().Lookup("source-type").DefValue)
	assert.Equal(t, "AWS", quick.Flags().Lookup("source-type").DefValue)
	assert.NotNil(t, create.Flags().Lookup("non-interactive"))
	assert.Nil(t, quick.Flags().Lookup("non-interactive"))

	for _, name := range []string{
		"config", "name", "app-name", "app-instance", "secondary-app-name",
		"secondary-app-instance", "security-group", "subnets", "role-arn",
		"network", "static-ip", "network-routes", "tags",
	} {
		assert.NotNil(t, quick.Flags().Lookup(name), name)
		assert.NotNil(t, create.Flags().Lookup(name), name)
	}
	assert.Equal(t, "us-east-2", root.PersistentFlags().Lookup("region").DefValue)
}

func TestExecute_QuickSummary(t *testing.T) {
	provider := new(builder.MockProvider)
	provider.On("CreateSecurityGroup", mock.Anything, "0.0.0.0/0", map[string]string{"AutoCreated": "True"}).Return("555", nil)
	provider.On("CreateInput", mock.Anything, mock.MatchedBy(func(spec *models.InputSpec) bool {
		return len(spec.Name) == len("live-")+6 &&
			spec.Tags["Env"] == "dev" &&
			spec.Destinations[1].StreamName == "backup/inst"
	})).Return(&models.InputRecord{
		ID:             "9876543",
		Name:           "live-ABC123",
		Type:           "RTMP_PUSH",
		SecurityGroups: []string{"555"},
	}, nil)

	a, stdout, _ := testApp(t, provider)
	code := execute(context.Background(), a, []string{
		"quick", "--name", "live", "--app-name", "app", "--app-instance", "inst",
		"--secondary-app-name", "backup", "--tags", "Env=dev",
	})

	require.Equal(t, 0, code)
	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
	assert.Equal(t, "9876543", summary["Input ID"])
	assert.Equal(t, "detached", summary["State"])
	assert.Equal(t, "N/A", summary["Input ARN"])
	provider.AssertNotCalled(t, "ListInputNames", mock.Anything)
	provider.AssertExpectations(t)
}

func TestExecute_QuickErrorReport(t *testing.T) {
	provider := new(builder.MockProvider)
	a, stdout, _ := testApp(t, provider)

	code := execute(context.Background(), a, []string{
		"quick", "--source-type", "AWS_VPC", "--app-name", "app", "--app-instance", "inst",
		"--subnets", "subnet-1",
	})

	assert.Equal(t, 1, code)
	var out map[string]string
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Contains(t, out["error"], "MISSING_PARAMETER_ERROR")
	provider.AssertNotCalled(t, "CreateInput", mock.Anything, mock.Anything)
}

func TestExecute_CreateDescriptor(t *testing.T) {
	provider := new(builder.MockProvider)
	provider.On("ListInputNames", mock.Anything).Return([]string{}, nil)
	provider.On("ListSecurityGroups", mock.Anything).Return([]models.CandidateResource{
		{ID: "1234567", WhitelistRules: []string{"0.0.0.0/0"}},
	}, nil)
	provider.On("CreateInput", mock.Anything, mock.MatchedBy(func(spec *models.InputSpec) bool {
		return spec.Name == "live"
	})).Return(&models.InputRecord{ID: "1", Name: "live"}, nil)

	a, stdout, stderr := testApp(t, provider)
	code := execute(context.Background(), a, []string{
		"create", "--source-type", "aws", "--name", "live",
		"--app-name", "app", "--app-instance", "inst", "--security-group", "1234567",
	})

	require.Equal(t, 0, code)
	var descriptor map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &descriptor))
	assert.Equal(t, "1", descriptor["Input"]["Id"])
	assert.Contains(t, stderr.String(), "RTMP Input created successfully!")
	provider.AssertExpectations(t)
}

func TestExecute_CreateFailures(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "missing source type",
			args:     []string{"create", "--app-name", "app", "--app-instance", "inst"},
			expected: string(errors.ErrMissingParameter),
		},
		{
			name:     "unknown source type",
			args:     []string{"create", "--source-type", "SRT", "--app-name", "app", "--app-instance", "inst"},
			expected: "invalid source type",
		},
		{
			name:     "missing request file",
			args:     []string{"create", "--config", "does-not-exist.json"},
			expected: string(errors.ErrConfigParse),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(builder.MockProvider)
			a, stdout, stderr := testApp(t, provider)

			code := execute(context.Background(), a, tt.args)

			assert.Equal(t, 1, code)
			assert.Empty(t, stdout.String())
			assert.Contains(t, stderr.String(), "Error creating RTMP input:")
			assert.Contains(t, stderr.String(), tt.expected)
		})
	}
}

func TestExecute_FlagOverridesEnvironment(t *testing.T) {
	var got *configuration.Config
	a, _, _ := testApp(t, nil)
	a.newProvider = func(_ context.Context, cfg *configuration.Config) (provisioner.Provider, error) {
		got = cfg
		return nil, errors.New(errors.ErrAWSClient, "stop", nil, nil)
	}
	t.Setenv("AWS_REGION", "eu-west-1")

	code := execute(context.Background(), a, []string{
		"quick", "--region", "ap-south-1", "--app-name", "app", "--app-instance", "inst",
	})

	assert.Equal(t, 1, code)
	require.NotNil(t, got)
	assert.Equal(t, "ap-south-1", got.AWSRegion)
}

func TestExecute_UnknownFlag(t *testing.T) {
	a, stdout, stderr := testApp(t, nil)

	code := execute(context.Background(), a, []string{"quick", "--bogus"})

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Error: unknown flag: --bogus")
}

func TestFailureFields(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected map[string]interface{}
	}{
		{
			name: "provider failure carries the AWS code",
			err: errors.New(errors.ErrProvider, "AWS API call failed",
				map[string]interface{}{"operation": "CreateInput"},
				fmt.Errorf("operation error: %w", &smithy.GenericAPIError{Code: "ThrottlingException"})),
			expected: map[string]interface{}{
				"error_type":     "PROVIDER_ERROR",
				"aws_error_code": "ThrottlingException",
			},
		},
		{
			name:     "typed local failure",
			err:      errors.New(errors.ErrMissingParameter, "role ARN is required", nil, nil),
			expected: map[string]interface{}{"error_type": "MISSING_PARAMETER_ERROR"},
		},
		{
			name:     "untyped failure",
			err:      fmt.Errorf("boom"),
			expected: map[string]interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := zapcore.NewMapObjectEncoder()
			for _, f := range failureFields(variantQuick, tt.err) {
				f.AddTo(enc)
			}

			assert.Equal(t, "provision", enc.Fields["operation"])
			assert.Equal(t, "quick", enc.Fields["variant"])
			assert.Equal(t, tt.err.Error(), enc.Fields["error"])
			for _, key := range []string{"error_type", "aws_error_code"} {
				if want, ok := tt.expected[key]; ok {
					assert.Equal(t, want, enc.Fields[key])
				} else {
					assert.NotContains(t, enc.Fields, key)
				}
			}
		})
	}
}
