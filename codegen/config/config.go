package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/bexxmodd/theleague/logging"
)

const (
	// EnvPrefix prefixes every environment variable read by the generator, e.g. THELEAGUE_CRD_DIR.
	EnvPrefix = "THELEAGUE"

	DefaultCRDDir         = "config/crds/standard"
	DefaultRBACDir        = "config/rbac"
	DefaultCRDPrefix      = "league"
	DefaultAppName        = "theleague"
	DefaultServiceAccount = "theleague-controller-manager"
	DefaultMaxDepth       = 64
	DefaultSchemaDepth    = 32
	DefaultMaxFields      = 4096
	// DefaultMaxBytes is the API server's request size limit for a single object.
	DefaultMaxBytes = 1572864
)

// Keys of the generator settings, shared by flags, environment and config files.
const (
	KeyCRDDir         = "crd-dir"
	KeyRBACDir        = "rbac-dir"
	KeyCRDPrefix      = "crd-prefix"
	KeyAppName        = "app-name"
	KeyServiceAccount = "service-account"
	KeyNamespace      = "namespace"
	KeyWatchNamespace = "watch-namespace"
	KeyLeaderElection = "leader-election"
	KeyUserRoles      = "user-roles"
	KeyKustomize      = "kustomize"
	KeyMaxRecursion   = "max-recursion"
	KeyMaxDepth       = "max-depth"
	KeySchemaDepth    = "schema-max-depth"
	KeyMaxFields      = "schema-max-fields"
	KeyMaxBytes       = "schema-max-bytes"
	KeyLogLevel       = "log-level"
)

// Config is the generator configuration.
type Config struct {
	CRDDir         string `mapstructure:"crd-dir"`
	RBACDir        string `mapstructure:"rbac-dir"`
	CRDPrefix      string `mapstructure:"crd-prefix"`
	AppName        string `mapstructure:"app-name"`
	ServiceAccount string `mapstructure:"service-account"`
	// Namespace is written into RBAC subjects. Empty leaves it to kustomize.
	Namespace string `mapstructure:"namespace"`
	// WatchNamespace restricts the controller's namespaced access to a single namespace.
	WatchNamespace string `mapstructure:"watch-namespace"`
	LeaderElection bool   `mapstructure:"leader-election"`
	UserRoles      bool   `mapstructure:"user-roles"`
	Kustomize      bool   `mapstructure:"kustomize"`
	// MaxRecursion is how many times an optional self-reference is expanded before it is dropped.
	MaxRecursion int `mapstructure:"max-recursion"`
	// MaxDepth guards schema extraction against runaway nesting.
	MaxDepth    int    `mapstructure:"max-depth"`
	SchemaDepth int    `mapstructure:"schema-max-depth"`
	MaxFields   int    `mapstructure:"schema-max-fields"`
	MaxBytes    int    `mapstructure:"schema-max-bytes"`
	LogLevel    string `mapstructure:"log-level"`
}

var defaults = map[string]any{
	KeyCRDDir:         DefaultCRDDir,
	KeyRBACDir:        DefaultRBACDir,
	KeyCRDPrefix:      DefaultCRDPrefix,
	KeyAppName:        DefaultAppName,
	KeyServiceAccount: DefaultServiceAccount,
	KeyNamespace:      "",
	KeyWatchNamespace: "",
	KeyLeaderElection: true,
	KeyUserRoles:      true,
	KeyKustomize:      true,
	KeyMaxRecursion:   0,
	KeyMaxDepth:       DefaultMaxDepth,
	KeySchemaDepth:    DefaultSchemaDepth,
	KeyMaxFields:      DefaultMaxFields,
	KeyMaxBytes:       DefaultMaxBytes,
	KeyLogLevel:       "info",
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		CRDDir:         DefaultCRDDir,
		RBACDir:        DefaultRBACDir,
		CRDPrefix:      DefaultCRDPrefix,
		AppName:        DefaultAppName,
		ServiceAccount: DefaultServiceAccount,
		LeaderElection: true,
		UserRoles:      true,
		Kustomize:      true,
		MaxDepth:       DefaultMaxDepth,
		SchemaDepth:    DefaultSchemaDepth,
		MaxFields:      DefaultMaxFields,
		MaxBytes:       DefaultMaxBytes,
		LogLevel:       "info",
	}
}

// NewViper returns a viper instance carrying the defaults and the environment bindings.
// NAMESPACE and WATCH_NAMESPACE are read as well as their prefixed forms, the way the controller reads them at runtime.
func NewViper() (*viper.Viper, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyNamespace, EnvPrefix+"_NAMESPACE", "NAMESPACE"); err != nil {
		return nil, err
	}
	if err := v.BindEnv(KeyWatchNamespace, EnvPrefix+"_WATCH_NAMESPACE", "WATCH_NAMESPACE"); err != nil {
		return nil, err
	}
	return v, nil
}

// BindFlags binds every flag in the set whose name is a configuration key.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if _, ok := defaults[f.Name]; !ok {
			return
		}
		if bindErr := v.BindPFlag(f.Name, f); bindErr != nil {
			err = multierror.Append(err, bindErr)
		}
	})
	return err
}

// Load reads the optional config file into v and decodes the merged settings.
// Precedence is flags, then environment, then the file, then defaults.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration before any generation happens.
func (c *Config) Validate() error {
	var errs error
	if c.CRDDir == "" {
		errs = multierror.Append(errs, errors.New(KeyCRDDir+" must not be empty"))
	}
	if c.RBACDir == "" {
		errs = multierror.Append(errs, errors.New(KeyRBACDir+" must not be empty"))
	}
	if c.CRDPrefix != "" {
		for _, p := range validation.IsDNS1123Label(c.CRDPrefix) {
			errs = multierror.Append(errs, fmt.Errorf("%s '%s': %s", KeyCRDPrefix, c.CRDPrefix, p))
		}
	}
	for _, p := range validation.IsDNS1123Label(c.AppName) {
		errs = multierror.Append(errs, fmt.Errorf("%s '%s': %s", KeyAppName, c.AppName, p))
	}
	for _, p := range validation.IsDNS1123Subdomain(c.ServiceAccount) {
		errs = multierror.Append(errs, fmt.Errorf("%s '%s': %s", KeyServiceAccount, c.ServiceAccount, p))
	}
	for _, ns := range []setting[string]{{KeyNamespace, c.Namespace}, {KeyWatchNamespace, c.WatchNamespace}} {
		if ns.value == "" {
			continue
		}
		for _, p := range validation.IsDNS1123Label(ns.value) {
			errs = multierror.Append(errs, fmt.Errorf("%s '%s': %s", ns.key, ns.value, p))
		}
	}
	if c.MaxRecursion < 0 {
		errs = multierror.Append(errs, fmt.Errorf("%s must not be negative", KeyMaxRecursion))
	}
	limits := []setting[int]{
		{KeyMaxDepth, c.MaxDepth},
		{KeySchemaDepth, c.SchemaDepth},
		{KeyMaxFields, c.MaxFields},
		{KeyMaxBytes, c.MaxBytes},
	}
	for _, n := range limits {
		if n.value <= 0 {
			errs = multierror.Append(errs, fmt.Errorf("%s must be positive", n.key))
		}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs
}

type setting[T any] struct {
	key   string
	value T
}
