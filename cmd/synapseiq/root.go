package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synapseiq/site/version"
)

const serviceName = "synapseiq"

type rootOptions struct {
	configFile string
	envFile    string
	baseURL    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Browse and manage SynapseIQ testimonials",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: cmd/synapseiq/config.yml or ./config.yml)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", ".env file to load")
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "testimonials API base URL, overrides api.base_url")

	root.AddCommand(
		newCarouselCmd(opts),
		newListCmd(opts),
		newCreateCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
		newFeatureCmd(opts),
		newGenerateCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}
