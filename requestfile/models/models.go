package models

// Request is the root of an HCL request file
type Request struct {
	Name                 string             `hcl:"name"`
	Type                 string             `hcl:"type,optional"`
	InputNetworkLocation string             `hcl:"input_network_location,optional"`
	InputSecurityGroups  []string           `hcl:"input_security_groups,optional"`
	RoleArn              string             `hcl:"role_arn,optional"`
	Tags                 map[string]string  `hcl:"tags,optional"`
	Destinations         []DestinationBlock `hcl:"destination,block"`
	Vpc                  *VPCBlock          `hcl:"vpc,block"`
}

type DestinationBlock struct {
	StreamName      string       `hcl:"stream_name"`
	Network         string       `hcl:"network,optional"`
	StaticIpAddress string       `hcl:"static_ip_address,optional"`
	NetworkRoutes   []RouteBlock `hcl:"network_route,block"`
}

type RouteBlock struct {
	Cidr    string `hcl:"cidr"`
	Gateway string `hcl:"gateway,optional"`
}

type VPCBlock struct {
	SubnetIds        []string `hcl:"subnet_ids"`
	SecurityGroupIds []string `hcl:"security_group_ids,optional"`
}
