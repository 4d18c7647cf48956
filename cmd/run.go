package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rtmpinput/awsd"
	"rtmpinput/awsd/models"
	"rtmpinput/builder"
	"rtmpinput/configuration"
	"rtmpinput/errors"
	"rtmpinput/logger"
	"rtmpinput/naming"
	"rtmpinput/prompt"
	"rtmpinput/provisioner"
	"rtmpinput/report"
)

type variant int

const (
	variantFull variant = iota
	variantQuick
)

func (v variant) String() string {
	if v == variantQuick {
		return "quick"
	}
	return "full"
}

// app carries the process I/O and the seams tests replace
type app struct {
	stdin  *os.File
	stdout io.Writer
	stderr io.Writer

	newProvider func(ctx context.Context, cfg *configuration.Config) (provisioner.Provider, error)
	newPrompter func(nonInteractive bool) builder.Prompter
}

func newApp() *app {
	a := &app{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		newProvider: newAWSProvider,
	}
	a.newPrompter = func(nonInteractive bool) builder.Prompter {
		if nonInteractive {
			return prompt.Disabled{}
		}
		return prompt.New(a.stdin, os.Stderr)
	}
	return a
}

// reportedError marks a failure whose output was already written
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func newAWSProvider(ctx context.Context, cfg *configuration.Config) (provisioner.Provider, error) {
	client, err := awsd.NewAWSClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.For(packageName, "newAWSProvider").Info("AWS client created",
		zap.String("operation", "aws_client_creation"),
		zap.String("region", cfg.AWSRegion),
		zap.String("account", client.AccountID(ctx)),
	)
	return client, nil
}

func (a *app) run(cmd *cobra.Command, v variant, f *flags) error {
	result, err := a.provision(cmd, v, f)
	if err != nil {
		logger.For(packageName, "run").Error("RTMP input provisioning failed",
			failureFields(v, err)...)
		if v == variantQuick {
			if werr := report.WriteError(a.stdout, err); werr != nil {
				return werr
			}
		} else {
			fmt.Fprintln(a.stderr, "Error creating RTMP input:", err)
		}
		return &reportedError{err: err}
	}

	if v == variantQuick {
		return report.Write(a.stdout, report.NewSummary(result.Input))
	}
	if err := report.Write(a.stdout, report.NewDescriptor(result.Input)); err != nil {
		return err
	}
	fmt.Fprintln(a.stderr, "RTMP Input created successfully!")
	return nil
}

func (a *app) provision(cmd *cobra.Command, v variant, f *flags) (*provisioner.Result, error) {
	ctx := cmd.Context()

	if err := bindFlags(cmd); err != nil {
		return nil, err
	}
	cfg, err := configuration.Initialize()
	if err != nil {
		return nil, err
	}
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return nil, errors.New(errors.ErrConfigInvalid, "invalid LOG_LEVEL",
			map[string]interface{}{
				"config_key": "LOG_LEVEL",
				"value":      cfg.LogLevel,
			}, err)
	}

	log := logger.For(packageName, "provision").With(zap.String("variant", v.String()))

	req := provisioner.Request{File: f.configFile, Params: f.params}
	if req.File == "" {
		if req.SourceType, err = parseSourceType(f.sourceType); err != nil {
			return nil, err
		}
	} else {
		log.Info("Using request file",
			zap.String("operation", "request_file"),
			zap.String("path", req.File),
		)
	}

	provider, err := a.newProvider(ctx, cfg)
	if err != nil {
		log.Error("Failed to create AWS client",
			zap.String("operation", "aws_client_creation"),
			zap.Error(err),
		)
		return nil, err
	}

	var (
		resolver naming.Resolver
		opts     builder.Options
	)
	switch v {
	case variantQuick:
		resolver = naming.NewSuffixResolver(cfg.NamePrefix)
		opts = builder.QuickOptions()
	default:
		resolver = naming.NewCheckedResolver(cfg.NamePrefix, cfg.NameMaxAttempts)
		opts = builder.FullOptions()
	}
	opts.DefaultWhitelistCIDR = cfg.DefaultWhitelistCIDR
	opts.DefaultNetworkPool = cfg.DefaultNetworkPool

	service := provisioner.NewService(provider, a.newPrompter(f.nonInteractive), resolver, opts, zap.L())
	return service.Provision(ctx, req)
}

// failureFields classifies a provisioning failure for the log.
func failureFields(v variant, err error) []zap.Field {
	fields := []zap.Field{
		zap.String("operation", "provision"),
		zap.String("variant", v.String()),
		zap.Error(err),
	}
	if errType, ok := errors.TypeOf(err); ok {
		fields = append(fields, zap.String("error_type", string(errType)))
	}
	if code := awsd.ErrorCode(err); code != "" {
		fields = append(fields, zap.String("aws_error_code", code))
	}
	return fields
}

// parseSourceType leaves an empty value for the provisioner to reject.
func parseSourceType(value string) (models.SourceType, error) {
	if value == "" {
		return "", nil
	}
	st, err := models.ParseSourceType(value)
	if err != nil {
		return "", errors.New(errors.ErrMissingParameter, "invalid source type",
			map[string]interface{}{
				"source_type": value,
			}, err)
	}
	return st, nil
}
