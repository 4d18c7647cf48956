package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rtmpinput/builder"
)

// flags holds the values shared by create and quick
type flags struct {
	configFile     string
	nonInteractive bool
	sourceType     string
	params         builder.Params
}

// newRootCmd returns the root command with both variants attached.
func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rtmpinput",
		Short:         "Provision AWS MediaLive RTMP push inputs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	cmd.PersistentFlags().String("region", "us-east-2", "AWS region")
	cmd.PersistentFlags().String("profile", "", "AWS shared config profile")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newCreateCmd(a))
	cmd.AddCommand(newQuickCmd(a))

	return cmd
}

// newCreateCmd returns the full, validating variant.
func newCreateCmd(a *app) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an RTMP push input, validating IDs and prompting for gaps",
		Long: `Create an RTMP push input.

Supplied security groups, subnets and networks are checked against the
account. Anything missing or unknown is chosen interactively, unless
--non-interactive is set, in which case the run fails instead.

Examples:
  # Public input whitelisting a CIDR
  rtmpinput create --source-type AWS --app-name live --app-instance main --security-group 203.0.113.0/24

  # VPC input
  rtmpinput create --source-type AWS_VPC --app-name live --app-instance main \
    --subnets subnet-1,subnet-2 --security-group sg-1 --role-arn arn:aws:iam::123456789012:role/MediaLiveAccessRole

  # Pre-built request
  rtmpinput create --config request.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, variantFull, f)
		},
	}

	addRequestFlags(cmd, f, "")
	cmd.Flags().BoolVar(&f.nonInteractive, "non-interactive", false, "Fail instead of prompting for missing values")

	return cmd
}

// newQuickCmd returns the best-effort, non-interactive variant.
func newQuickCmd(a *app) *cobra.Command {
	f := &flags{nonInteractive: true}

	cmd := &cobra.Command{
		Use:   "quick",
		Short: "Create an RTMP push input without prompts and print a summary",
		Long: `Create an RTMP push input without any prompts.

Supplied IDs are used as given. A missing security group or network is
created from the configured defaults. The result is printed as a flat JSON
summary; failures are printed as {"error": "..."}.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, variantQuick, f)
		},
	}

	addRequestFlags(cmd, f, "AWS")

	return cmd
}

func addRequestFlags(cmd *cobra.Command, f *flags, defaultSourceType string) {
	fs := cmd.Flags()
	fs.StringVarP(&f.configFile, "config", "c", "", "Path to a request file (.json, .yaml or .hcl); other flags are ignored")
	fs.StringVar(&f.params.Name, "name", "", "Input name (generated when empty)")
	fs.StringVar(&f.sourceType, "source-type", defaultSourceType, "Source type: AWS, AWS_VPC or ON_PREMISES")
	fs.StringVar(&f.params.AppName, "app-name", "", "Application name of the primary destination")
	fs.StringVar(&f.params.AppInstance, "app-instance", "", "Application instance of the primary destination")
	fs.StringVar(&f.params.SecondaryAppName, "secondary-app-name", "", "Application name of the secondary destination")
	fs.StringVar(&f.params.SecondaryAppInstance, "secondary-app-instance", "", "Application instance of the secondary destination")
	fs.StringVar(&f.params.SecurityGroup, "security-group", "", "Security group ID, or a CIDR to whitelist")
	fs.StringSliceVar(&f.params.Subnets, "subnets", nil, "Subnet IDs for AWS_VPC (repeatable or comma separated)")
	fs.StringVar(&f.params.RoleARN, "role-arn", "", "IAM role ARN for AWS_VPC")
	fs.StringVar(&f.params.Network, "network", "", "Network ID for ON_PREMISES")
	fs.StringVar(&f.params.StaticIP, "static-ip", "", "Static IP address for ON_PREMISES")
	fs.StringSliceVar(&f.params.NetworkRoutes, "network-routes", nil, "Routes as CIDR:gateway (repeatable or comma separated)")
	fs.StringArrayVar(&f.params.Tags, "tags", nil, "Tags as Key=Value (repeatable)")
}

// bindFlags lets persistent flags override the environment and .env values.
func bindFlags(cmd *cobra.Command) error {
	for key, name := range map[string]string{
		"AWS_REGION":  "region",
		"AWS_PROFILE": "profile",
		"LOG_LEVEL":   "log-level",
	} {
		if err := viper.BindPFlag(key, cmd.Flag(name)); err != nil {
			return err
		}
	}
	return nil
}
