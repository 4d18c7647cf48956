// Package requestfile loads pre-built CreateInput requests from disk.
package requestfile

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	awsm "rtmpinput/awsd/models"
	"rtmpinput/errors"
	"rtmpinput/logger"
	"rtmpinput/requestfile/models"
)

const packageName = "requestfile"

// Load reads a request in the AWS CreateInput shape. The format follows the
// extension: .yaml/.yml, .hcl, anything else is read as JSON.
func Load(path string) (*awsm.InputSpec, error) {
	log := logger.For(packageName, "Load")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, parseError(path, "reading request file", err)
	}

	var spec *awsm.InputSpec
	format := strings.ToLower(filepath.Ext(path))
	switch format {
	case ".yaml", ".yml":
		spec, err = decodeYAML(data)
	case ".hcl":
		spec, err = decodeHCL(path, data)
	default:
		spec, err = decodeJSON(data)
	}
	if err != nil {
		return nil, parseError(path, "parsing request file", err)
	}

	if spec.Type == "" {
		spec.Type = awsm.InputTypeRTMPPush
	}

	log.Info("Request file loaded",
		zap.String("operation", "load_request"),
		zap.String("path", path),
		zap.String("format", format),
		zap.String("name", spec.Name),
	)
	return spec, nil
}

// Unknown keys fail the load instead of being dropped.
func decodeJSON(data []byte) (*awsm.InputSpec, error) {
	var spec awsm.InputSpec
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

func decodeYAML(data []byte) (*awsm.InputSpec, error) {
	var spec awsm.InputSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && err != io.EOF {
		return nil, err
	}
	return &spec, nil
}

func decodeHCL(path string, data []byte) (*awsm.InputSpec, error) {
	var req models.Request
	// hclsimple picks the syntax from the file name
	if err := hclsimple.Decode(filepath.Base(path), data, nil, &req); err != nil {
		return nil, err
	}

	spec := &awsm.InputSpec{
		Name:                 req.Name,
		Type:                 req.Type,
		InputNetworkLocation: req.InputNetworkLocation,
		InputSecurityGroups:  req.InputSecurityGroups,
		RoleArn:              req.RoleArn,
		Tags:                 req.Tags,
	}
	for _, d := range req.Destinations {
		dest := awsm.Destination{
			StreamName:      d.StreamName,
			Network:         d.Network,
			StaticIpAddress: d.StaticIpAddress,
		}
		for _, r := range d.NetworkRoutes {
			dest.NetworkRoutes = append(dest.NetworkRoutes, awsm.Route{Cidr: r.Cidr, Gateway: r.Gateway})
		}
		spec.Destinations = append(spec.Destinations, dest)
	}
	if req.Vpc != nil {
		spec.Vpc = &awsm.VPCConfig{
			SubnetIds:        req.Vpc.SubnetIds,
			SecurityGroupIds: req.Vpc.SecurityGroupIds,
		}
	}
	return spec, nil
}

func parseError(path, message string, err error) error {
	return errors.New(errors.ErrConfigParse, message,
		map[string]interface{}{
			"path": path,
		}, err)
}
