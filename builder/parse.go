package builder

import (
	"net/netip"
	"strings"

	"rtmpinput/awsd/models"
	"rtmpinput/errors"
)

// ParseTags turns Key=Value tokens into a map, splitting on the first "=".
// Tokens without "=" are dropped.
func ParseTags(tokens []string) map[string]string {
	tags := make(map[string]string)
	for _, token := range tokens {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			continue
		}
		tags[key] = value
	}
	return tags
}

// ParseRoutes turns "CIDR" or "CIDR:GATEWAY" tokens into routes.
func ParseRoutes(tokens []string) []models.Route {
	routes := make([]models.Route, 0, len(tokens))
	for _, token := range tokens {
		cidr, gateway, _ := strings.Cut(token, ":")
		routes = append(routes, models.Route{Cidr: cidr, Gateway: gateway})
	}
	return routes
}

// IsCIDR reports whether s names an IPv4 or IPv6 network. A bare address
// counts as a full-length prefix; a prefix with host bits set does not.
func IsCIDR(s string) bool {
	s = strings.TrimSpace(s)
	if prefix, err := netip.ParsePrefix(s); err == nil {
		return prefix == prefix.Masked()
	}
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Zone() == ""
}

// ValidateCIDR returns ErrInvalidCidr when s is not in CIDR notation.
func ValidateCIDR(s string) error {
	if !IsCIDR(s) {
		return errors.New(errors.ErrInvalidCidr, "invalid CIDR format",
			map[string]interface{}{
				"cidr": s,
			}, nil)
	}
	return nil
}
