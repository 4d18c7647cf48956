package models

import (
	"fmt"
	"strings"
)

// SourceType is the network topology an input is reached through
type SourceType string

const (
	SourceAWS         SourceType = "AWS"
	SourceAWSVPC      SourceType = "AWS_VPC"
	SourceOnPremises  SourceType = "ON_PREMISES"
	InputTypeRTMPPush            = "RTMP_PUSH"
)

// ParseSourceType accepts the CLI spelling of a source type
func ParseSourceType(s string) (SourceType, error) {
	switch st := SourceType(strings.ToUpper(strings.TrimSpace(s))); st {
	case SourceAWS, SourceAWSVPC, SourceOnPremises:
		return st, nil
	}
	return "", fmt.Errorf("unknown source type %q (want AWS, AWS_VPC or ON_PREMISES)", s)
}

// NetworkLocation is the wire value MediaLive expects; VPC inputs are still "AWS"
func (s SourceType) NetworkLocation() string {
	if s == SourceOnPremises {
		return "ON_PREMISES"
	}
	return "AWS"
}

// InputSpec is a CreateInput request under construction
type InputSpec struct {
	Name                 string            `json:"Name" yaml:"Name"`
	Type                 string            `json:"Type" yaml:"Type"`
	InputNetworkLocation string            `json:"InputNetworkLocation,omitempty" yaml:"InputNetworkLocation,omitempty"`
	Destinations         []Destination     `json:"Destinations,omitempty" yaml:"Destinations,omitempty"`
	InputSecurityGroups  []string          `json:"InputSecurityGroups,omitempty" yaml:"InputSecurityGroups,omitempty"`
	Vpc                  *VPCConfig        `json:"Vpc,omitempty" yaml:"Vpc,omitempty"`
	RoleArn              string            `json:"RoleArn,omitempty" yaml:"RoleArn,omitempty"`
	Tags                 map[string]string `json:"Tags,omitempty" yaml:"Tags,omitempty"`
}

// Destination is one RTMP publishing point
type Destination struct {
	StreamName      string  `json:"StreamName" yaml:"StreamName"`
	Network         string  `json:"Network,omitempty" yaml:"Network,omitempty"`
	StaticIpAddress string  `json:"StaticIpAddress,omitempty" yaml:"StaticIpAddress,omitempty"`
	NetworkRoutes   []Route `json:"NetworkRoutes,omitempty" yaml:"NetworkRoutes,omitempty"`
}

// VPCConfig places an input inside customer subnets
type VPCConfig struct {
	SubnetIds        []string `json:"SubnetIds" yaml:"SubnetIds"`
	SecurityGroupIds []string `json:"SecurityGroupIds,omitempty" yaml:"SecurityGroupIds,omitempty"`
}

// Route is a CIDR reachable through an optional gateway
type Route struct {
	Cidr    string `json:"Cidr" yaml:"Cidr"`
	Gateway string `json:"Gateway,omitempty" yaml:"Gateway,omitempty"`
}

// IPPool is an address block owned by an on-premises network
type IPPool struct {
	Cidr string `json:"Cidr" yaml:"Cidr"`
}

// Validate checks that exactly the security configuration matching source is populated
func (s *InputSpec) Validate(source SourceType) error {
	hasGroups := len(s.InputSecurityGroups) > 0
	hasVPC := s.Vpc != nil
	hasNetwork := false
	for _, d := range s.Destinations {
		if d.Network != "" {
			hasNetwork = true
		}
	}

	if s.InputNetworkLocation != source.NetworkLocation() {
		return fmt.Errorf("network location %q does not match source type %s", s.InputNetworkLocation, source)
	}

	switch source {
	case SourceAWS:
		if !hasGroups || hasVPC || hasNetwork {
			return fmt.Errorf("AWS inputs need input security groups only")
		}
	case SourceAWSVPC:
		if !hasVPC || hasGroups || hasNetwork {
			return fmt.Errorf("AWS_VPC inputs need a VPC configuration only")
		}
		if len(s.Vpc.SubnetIds) != 2 {
			return fmt.Errorf("AWS_VPC inputs need exactly 2 subnets, got %d", len(s.Vpc.SubnetIds))
		}
	case SourceOnPremises:
		if hasGroups || hasVPC {
			return fmt.Errorf("ON_PREMISES inputs take no security groups or VPC")
		}
		for _, d := range s.Destinations {
			if d.Network == "" {
				return fmt.Errorf("destination %q has no network", d.StreamName)
			}
		}
	default:
		return fmt.Errorf("unknown source type %q", source)
	}
	return nil
}

// CandidateResource is an existing subnet, security group or network
type CandidateResource struct {
	ID               string
	Name             string
	Description      string
	CIDR             string
	AvailabilityZone string
	WhitelistRules   []string
}

// Label renders one line for an operator choosing among candidates
func (c CandidateResource) Label() string {
	parts := []string{c.ID}
	switch {
	case c.CIDR != "" || c.AvailabilityZone != "":
		parts = append(parts, orNA(c.CIDR), orNA(c.AvailabilityZone))
	case len(c.WhitelistRules) > 0:
		parts = append(parts, "Whitelist: "+strings.Join(c.WhitelistRules, ", "))
	case c.Name != "":
		parts = append(parts, c.Name)
	default:
		parts = append(parts, "N/A")
	}
	return strings.Join(parts, " - ")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// InputRecord is the descriptor of a created input
type InputRecord struct {
	ID                   string            `json:"Id"`
	ARN                  string            `json:"Arn"`
	Name                 string            `json:"Name"`
	Type                 string            `json:"Type"`
	InputNetworkLocation string            `json:"InputNetworkLocation"`
	State                string            `json:"State,omitempty"`
	AttachedChannels     []string          `json:"AttachedChannels"`
	SecurityGroups       []string          `json:"SecurityGroups"`
	Destinations         []Endpoint        `json:"Destinations"`
	RoleArn              string            `json:"RoleArn,omitempty"`
	Tags                 map[string]string `json:"Tags"`
}

// Endpoint is where an encoder pushes to
type Endpoint struct {
	URL           string  `json:"Url,omitempty"`
	IP            string  `json:"Ip,omitempty"`
	Port          string  `json:"Port,omitempty"`
	Network       string  `json:"Network,omitempty"`
	NetworkRoutes []Route `json:"NetworkRoutes,omitempty"`
}

// ResourceInfo records what a run selected or created, for reporting only
type ResourceInfo struct {
	Subnets           []string            `json:"subnets"`
	SecurityGroups    []SecurityGroupInfo `json:"security_groups"`
	AvailabilityZones map[string]string   `json:"availability_zones"`
	Networks          []NetworkInfo       `json:"networks"`
}

// NewResourceInfo returns an empty report
func NewResourceInfo() *ResourceInfo {
	return &ResourceInfo{
		Subnets:           []string{},
		SecurityGroups:    []SecurityGroupInfo{},
		AvailabilityZones: map[string]string{},
		Networks:          []NetworkInfo{},
	}
}

// SecurityGroupInfo describes a MediaLive or VPC security group used by the input
type SecurityGroupInfo struct {
	ID          string `json:"id"`
	CIDR        string `json:"cidr,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	AutoCreated bool   `json:"auto_created"`
}

// NetworkInfo describes the on-premises network used by the input
type NetworkInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	AutoCreated bool   `json:"auto_created"`
}

// AutoCreated lists the IDs of resources created during the run
func (r *ResourceInfo) AutoCreated() []string {
	var ids []string
	for _, sg := range r.SecurityGroups {
		if sg.AutoCreated {
			ids = append(ids, sg.ID)
		}
	}
	for _, n := range r.Networks {
		if n.AutoCreated {
			ids = append(ids, n.ID)
		}
	}
	return ids
}
