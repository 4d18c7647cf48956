// Package provisioner runs one input creation end to end: name resolution,
// request assembly and the CreateInput call.
package provisioner

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"rtmpinput/awsd/models"
	"rtmpinput/builder"
	"rtmpinput/errors"
	"rtmpinput/naming"
	"rtmpinput/requestfile"
)

const packageName = "provisioner"

// Request is one provisioning run. A non-empty File bypasses everything else.
type Request struct {
	File string
	builder.Params
}

// Result is the created input and the resources the run touched
type Result struct {
	Input     *models.InputRecord
	Resources *models.ResourceInfo
}

// Service implements Provisioner
type Service struct {
	provider Provider
	prompter builder.Prompter
	resolver naming.Resolver
	options  builder.Options
	logger   *zap.Logger

	loadFile func(path string) (*models.InputSpec, error)
}

// NewService creates a new provisioning service
func NewService(provider Provider, prompter builder.Prompter, resolver naming.Resolver, options builder.Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider: provider,
		prompter: prompter,
		resolver: resolver,
		options:  options,
		logger:   logger.With(zap.String("package", packageName)),
		loadFile: requestfile.Load,
	}
}

// Provision creates the input described by req
func (s *Service) Provision(ctx context.Context, req Request) (*Result, error) {
	if req.File != "" {
		return s.provisionFromFile(ctx, req.File)
	}

	log := s.logger.With(
		zap.String("function", "Provision"),
		zap.String("source_type", string(req.SourceType)),
	)

	if err := validateParams(req.Params); err != nil {
		return nil, err
	}

	var existing map[string]struct{}
	if s.resolver.NeedsExisting() {
		names, err := s.provider.ListInputNames(ctx)
		if err != nil {
			log.Error("Failed to list existing inputs",
				zap.String("operation", "list_inputs"),
				zap.Error(err),
			)
			return nil, err
		}
		existing = make(map[string]struct{}, len(names))
		for _, n := range names {
			existing[n] = struct{}{}
		}
	}

	name, err := s.resolver.Resolve(strings.TrimSpace(req.Name), existing)
	if err != nil {
		return nil, err
	}
	log.Info("Input name resolved",
		zap.String("operation", "resolve_name"),
		zap.String("requested", req.Name),
		zap.String("name", name),
	)

	params := req.Params
	params.Name = name

	b := builder.New(s.provider, s.prompter, s.options, s.logger)
	spec, info, err := b.Build(ctx, params)
	if err != nil {
		s.reportOrphans(log, info, err)
		return nil, err
	}

	if err := spec.Validate(req.SourceType); err != nil {
		err = errors.New(errors.ErrConfigInvalid, "assembled request is inconsistent",
			map[string]interface{}{
				"name":        name,
				"source_type": string(req.SourceType),
			}, err)
		s.reportOrphans(log, info, err)
		return nil, err
	}

	record, err := s.provider.CreateInput(ctx, spec)
	if err != nil {
		s.reportOrphans(log, info, err)
		return nil, err
	}

	log.Info("Input created",
		zap.String("operation", "create_input"),
		zap.String("input_id", record.ID),
		zap.String("name", record.Name),
		zap.Strings("auto_created", info.AutoCreated()),
	)
	return &Result{Input: record, Resources: info}, nil
}

func (s *Service) provisionFromFile(ctx context.Context, path string) (*Result, error) {
	log := s.logger.With(
		zap.String("function", "provisionFromFile"),
		zap.String("path", path),
	)

	spec, err := s.loadFile(path)
	if err != nil {
		return nil, err
	}

	record, err := s.provider.CreateInput(ctx, spec)
	if err != nil {
		log.Error("Failed to create input from request file",
			zap.String("operation", "create_input"),
			zap.Error(err),
		)
		return nil, err
	}

	log.Info("Input created from request file",
		zap.String("operation", "create_input"),
		zap.String("input_id", record.ID),
	)
	return &Result{Input: record, Resources: models.NewResourceInfo()}, nil
}

// reportOrphans logs resources created before a failure; nothing is rolled back.
func (s *Service) reportOrphans(log *zap.Logger, info *models.ResourceInfo, cause error) {
	if info == nil {
		return
	}
	if ids := info.AutoCreated(); len(ids) > 0 {
		log.Error("Resources were created before the failure and were not removed",
			zap.String("operation", "orphaned_resources"),
			zap.Strings("resource_ids", ids),
			zap.Error(cause),
		)
	}
}

func validateParams(p builder.Params) error {
	missing := func(param string) error {
		return errors.New(errors.ErrMissingParameter, param+" is required",
			map[string]interface{}{
				"parameter": param,
			}, nil)
	}

	switch p.SourceType {
	case models.SourceAWS, models.SourceAWSVPC, models.SourceOnPremises:
	default:
		return missing("source type")
	}
	if strings.TrimSpace(p.AppName) == "" {
		return missing("app name")
	}
	if strings.TrimSpace(p.AppInstance) == "" {
		return missing("app instance")
	}
	return nil
}
