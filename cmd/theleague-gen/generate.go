package main

import (
	"context"

	"github.com/spf13/cobra"

	leaguev1alpha1 "github.com/bexxmodd/theleague/apis/league/v1alpha1"
	"github.com/bexxmodd/theleague/codegen/manifests"
	"github.com/bexxmodd/theleague/controller"
)

var crdsCmd = &cobra.Command{
	Use:   "crds",
	Short: "Generate the CustomResourceDefinition manifests",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPipeline(cmd, (*manifests.Pipeline).GenerateCRDs)
	},
}

var rbacCmd = &cobra.Command{
	Use:   "rbac",
	Short: "Generate the RBAC manifests of the controller",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPipeline(cmd, (*manifests.Pipeline).GenerateRBAC)
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Generate the CRD and RBAC manifests",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPipeline(cmd, (*manifests.Pipeline).GenerateAll)
	},
}

func setupGenerateCmds() {
	// Don't show "usage" information when an error is returned form the command,
	// because our errors are not command-usage-based
	for _, c := range []*cobra.Command{crdsCmd, rbacCmd, allCmd} {
		c.SilenceUsage = true
	}
}

func runPipeline(cmd *cobra.Command, run func(*manifests.Pipeline, context.Context) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, err := loggingContext(cmd.Context(), cfg.LogLevel)
	if err != nil {
		return err
	}

	s := controller.NewScheme()
	manager, err := controller.Declarations(s)
	if err != nil {
		return err
	}
	leaderElection, err := controller.LeaderElectionDeclarations(s)
	if err != nil {
		return err
	}
	return run(manifests.New(*cfg, leaguev1alpha1.Resources(), manager, leaderElection), ctx)
}
