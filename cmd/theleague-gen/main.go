package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bexxmodd/theleague/codegen"
	"github.com/bexxmodd/theleague/codegen/config"
)

var rootCmd = &cobra.Command{
	Use:   "theleague-gen <command>",
	Short: "Generates the CRD and RBAC manifests of the league controller",
	Long: "Generates the CustomResourceDefinitions of the league API and the least-privilege RBAC manifests " +
		"of the league controller from the compiled-in schemas and access declarations.",
	SilenceErrors: true,
}

// Persistent flags for all commands
const (
	configFlag = "config"
)

func main() {
	setup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", codegen.ErrorKind(err), err)
		os.Exit(1)
	}
}

func setup() {
	setupRootFlags()
	setupVersionCmd()
	setupGenerateCmds()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(crdsCmd)
	rootCmd.AddCommand(rbacCmd)
	rootCmd.AddCommand(allCmd)
}

//nolint:lll
func setupRootFlags() {
	defaults := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.StringP(configFlag, "c", "", "Path to a YAML config file. Flags and THELEAGUE_* environment variables take precedence over it")
	flags.String(config.KeyCRDDir, defaults.CRDDir, "Directory the CRD manifests are written to")
	flags.String(config.KeyRBACDir, defaults.RBACDir, "Directory the RBAC manifests are written to")
	flags.String(config.KeyCRDPrefix, defaults.CRDPrefix, "Prefix of the CRD file names")
	flags.String(config.KeyAppName, defaults.AppName, "Application name used in labels and user-facing role names")
	flags.String(config.KeyServiceAccount, defaults.ServiceAccount, "Name of the controller's ServiceAccount")
	flags.String(config.KeyNamespace, defaults.Namespace, "Namespace of the controller. Empty leaves it to kustomize (env NAMESPACE)")
	flags.String(config.KeyWatchNamespace, defaults.WatchNamespace, "Single namespace the controller watches. Empty watches all namespaces (env WATCH_NAMESPACE)")
	flags.Bool(config.KeyLeaderElection, defaults.LeaderElection, "Generate the leader election Role and RoleBinding")
	flags.Bool(config.KeyUserRoles, defaults.UserRoles, "Generate the admin, editor and viewer ClusterRoles")
	flags.Bool(config.KeyKustomize, defaults.Kustomize, "Generate a kustomization.yaml in each output directory")
	flags.Int(config.KeyMaxRecursion, defaults.MaxRecursion, "How many times an optional self-referencing type is expanded before it is dropped")
	flags.Int(config.KeyMaxDepth, defaults.MaxDepth, "Nesting depth at which schema extraction gives up")
	flags.Int(config.KeySchemaDepth, defaults.SchemaDepth, "Maximum nesting depth of a CRD version schema")
	flags.Int(config.KeyMaxFields, defaults.MaxFields, "Maximum number of fields of a CRD version schema")
	flags.Int(config.KeyMaxBytes, defaults.MaxBytes, "Maximum size of an encoded CRD in bytes")
	flags.String(config.KeyLogLevel, defaults.LogLevel, "Log level: debug, info, warn or error")
}
