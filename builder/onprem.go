package builder

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"rtmpinput/awsd/models"
	"rtmpinput/naming"
	"rtmpinput/selector"
)

const networkPrefix = "network"

// buildOnPremises binds every destination to a MediaLive network.
func (b *Builder) buildOnPremises(ctx context.Context, p Params, spec *models.InputSpec, info *models.ResourceInfo) error {
	network := strings.TrimSpace(p.Network)
	if network != "" {
		info.Networks = append(info.Networks, models.NetworkInfo{ID: network})
	} else {
		var err error
		if b.opts.Strict {
			network, err = b.chooseNetwork(ctx, info)
		} else {
			network, err = b.createDefaultNetwork(ctx, info)
		}
		if err != nil {
			return err
		}
	}

	var routes []models.Route
	if len(p.NetworkRoutes) > 0 {
		routes = ParseRoutes(trimAll(p.NetworkRoutes))
		if b.opts.Strict {
			for _, r := range routes {
				if err := ValidateCIDR(r.Cidr); err != nil {
					return err
				}
			}
		}
	}

	staticIP := strings.TrimSpace(p.StaticIP)
	for i := range spec.Destinations {
		d := &spec.Destinations[i]
		d.Network = network
		d.StaticIpAddress = staticIP
		if len(routes) > 0 {
			d.NetworkRoutes = append([]models.Route(nil), routes...)
		}
	}
	return nil
}

// chooseNetwork lets the operator pick an existing network or create one.
func (b *Builder) chooseNetwork(ctx context.Context, info *models.ResourceInfo) (string, error) {
	existing, err := b.provider.ListNetworks(ctx)
	if err != nil {
		return "", err
	}

	if len(existing) == 0 {
		b.logger.Info("No existing networks found, creating a new network",
			zap.String("operation", "network_select"),
		)
		return b.createNetworkInteractive(ctx, info)
	}

	options := append(selector.Labels(existing), "Create a new network")
	idx, err := b.prompter.SelectOne(ctx, "Select a MediaLive network", options)
	if err != nil {
		return "", err
	}
	if idx == len(existing) {
		return b.createNetworkInteractive(ctx, info)
	}

	ids, err := selector.Pick(existing, []int{idx})
	if err != nil {
		return "", err
	}
	info.Networks = append(info.Networks, models.NetworkInfo{ID: ids[0], Name: existing[idx].Name})
	return ids[0], nil
}

// createNetworkInteractive collects a name, IP pools and optional routes.
// Zero pools restarts the questions instead of creating an unusable network.
func (b *Builder) createNetworkInteractive(ctx context.Context, info *models.ResourceInfo) (string, error) {
	for {
		name, err := b.prompter.ReadLine(ctx, "Enter network name")
		if err != nil {
			return "", err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			name = naming.Generated(networkPrefix)
		}

		pools, err := b.readPools(ctx)
		if err != nil {
			return "", err
		}
		if len(pools) == 0 {
			b.logger.Warn("At least one IP pool is required",
				zap.String("operation", "network_create"),
			)
			continue
		}

		routes, err := b.readNetworkRoutes(ctx)
		if err != nil {
			return "", err
		}

		return b.createNetwork(ctx, name, pools, routes, info)
	}
}

func (b *Builder) readPools(ctx context.Context) ([]models.IPPool, error) {
	var pools []models.IPPool
	for {
		value, err := b.prompter.ReadLine(ctx, "Enter IP pool CIDR (or leave empty to finish adding pools)")
		if err != nil {
			return nil, err
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return pools, nil
		}
		if err := ValidateCIDR(value); err != nil {
			b.logger.Warn("Invalid CIDR format, please try again",
				zap.String("operation", "network_pool"),
				zap.String("cidr", value),
			)
			continue
		}
		pools = append(pools, models.IPPool{Cidr: value})
	}
}

func (b *Builder) readNetworkRoutes(ctx context.Context) ([]models.Route, error) {
	answer, err := b.prompter.ReadLine(ctx, "Do you want to add network routes? (y/n)")
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		return nil, nil
	}

	var routes []models.Route
	for {
		cidr, err := b.prompter.ReadLine(ctx, "Enter route CIDR (or leave empty to finish adding routes)")
		if err != nil {
			return nil, err
		}
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			return routes, nil
		}
		if !IsCIDR(cidr) {
			b.logger.Warn("Invalid CIDR format, please try again",
				zap.String("operation", "network_route"),
				zap.String("cidr", cidr),
			)
			continue
		}
		gateway, err := b.prompter.ReadLine(ctx, "Enter gateway for "+cidr)
		if err != nil {
			return nil, err
		}
		routes = append(routes, models.Route{Cidr: cidr, Gateway: strings.TrimSpace(gateway)})
	}
}

func (b *Builder) createDefaultNetwork(ctx context.Context, info *models.ResourceInfo) (string, error) {
	pools := []models.IPPool{{Cidr: b.opts.DefaultNetworkPool}}
	return b.createNetwork(ctx, naming.Generated(networkPrefix), pools, nil, info)
}

func (b *Builder) createNetwork(ctx context.Context, name string, pools []models.IPPool, routes []models.Route, info *models.ResourceInfo) (string, error) {
	id, err := b.provider.CreateNetwork(ctx, name, pools, routes)
	if err != nil {
		return "", err
	}

	b.logger.Info("Created MediaLive network",
		zap.String("operation", "network_create"),
		zap.String("network", id),
		zap.String("name", name),
		zap.Int("ip_pools", len(pools)),
		zap.Int("routes", len(routes)),
	)
	info.Networks = append(info.Networks, models.NetworkInfo{ID: id, Name: name, AutoCreated: true})
	return id, nil
}
