package builder

const (
	defaultWhitelistCIDR = "0.0.0.0/0"
	defaultNetworkPool   = "10.0.0.0/24"
)

// Options is the strictness configuration separating the full and quick variants.
type Options struct {
	// Strict validates supplied IDs against the live inventory and falls
	// back to the prompter when they are missing or unknown.
	Strict bool
	// RequireVPCSecurityGroup makes AWS_VPC inputs select a security group
	// when none was supplied instead of omitting it.
	RequireVPCSecurityGroup bool
	// PromptForRoleARN asks for a missing role ARN instead of failing.
	PromptForRoleARN bool
	// DefaultWhitelistCIDR is used by non-strict AWS inputs given no CIDR.
	DefaultWhitelistCIDR string
	// DefaultNetworkPool is used by non-strict ON_PREMISES inputs given no network.
	DefaultNetworkPool string
}

// FullOptions mirrors the interactive, validating variant.
func FullOptions() Options {
	return Options{
		Strict:                  true,
		RequireVPCSecurityGroup: true,
		PromptForRoleARN:        true,
		DefaultWhitelistCIDR:    defaultWhitelistCIDR,
		DefaultNetworkPool:      defaultNetworkPool,
	}
}

// QuickOptions mirrors the non-interactive, best-effort variant.
func QuickOptions() Options {
	return Options{
		DefaultWhitelistCIDR: defaultWhitelistCIDR,
		DefaultNetworkPool:   defaultNetworkPool,
	}
}
