package configmanager

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/devantler-tech/hostkit/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/hostkit/pkg/fsutil"
	configmanagerinterface "github.com/devantler-tech/hostkit/pkg/io/config-manager"
	"github.com/devantler-tech/hostkit/pkg/utils/notify"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config file lookup.
const (
	ConfigName = "hostkit"
	ConfigType = "yaml"
	EnvPrefix  = "HOSTKIT"
	// DefaultConfigFile is the file written by hostkit init.
	DefaultConfigFile = ConfigName + "." + ConfigType
)

// ConfigManager loads the Host configuration with viper.
type ConfigManager struct {
	Viper  *viper.Viper
	Config *v1alpha1.Host
	Writer io.Writer

	configFile  string
	configFound bool
	loaded      bool
}

var _ configmanagerinterface.ConfigManager[v1alpha1.Host] = (*ConfigManager)(nil)

// NewConfigManager returns a manager that reads configFile, or searches the working
// directory and ~/.config/hostkit when configFile is empty.
func NewConfigManager(writer io.Writer, configFile string) *ConfigManager {
	return &ConfigManager{
		Viper:      InitializeViper(configFile),
		Config:     v1alpha1.NewHost(),
		Writer:     writer,
		configFile: configFile,
	}
}

// InitializeViper returns a viper instance with hostkit's search paths, environment
// binding and every default registered.
func InitializeViper(configFile string) *viper.Viper {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType(ConfigType)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/hostkit")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaultSettings() {
		v.SetDefault(key, value)
	}

	return v
}

// BindFlags binds connection flags from flags to their config keys.
// Flags missing from the set are skipped.
func (m *ConfigManager) BindFlags(flags *pflag.FlagSet) error {
	for flagName, key := range FlagKeys() {
		flag := flags.Lookup(flagName)
		if flag == nil {
			continue
		}

		err := m.Viper.BindPFlag(key, flag)
		if err != nil {
			return fmt.Errorf("bind flag --%s: %w", flagName, err)
		}
	}

	return nil
}

// FlagKeys maps persistent flag names to the config keys they override.
func FlagKeys() map[string]string {
	return map[string]string{
		"host":                     "spec.connection.host",
		"port":                     "spec.connection.port",
		"user":                     "spec.connection.user",
		"identity-file":            "spec.connection.identityFile",
		"public-key-file":          "spec.connection.publicKeyFile",
		"known-hosts-file":         "spec.connection.knownHostsFile",
		"insecure-ignore-host-key": "spec.connection.insecureIgnoreHostKey",
		"timeout":                  "spec.connection.timeout",
	}
}

// ConfigFileUsed returns the path of the config file read by Load, or "".
func (m *ConfigManager) ConfigFileUsed() string {
	if !m.configFound {
		return ""
	}

	return m.Viper.ConfigFileUsed()
}

// Load implements configmanager.ConfigManager.
func (m *ConfigManager) Load(opts configmanagerinterface.LoadOptions) (*v1alpha1.Host, error) {
	if m.loaded {
		return m.Config, nil
	}

	if !opts.IgnoreConfigFile {
		err := m.readConfig()
		if err != nil {
			return nil, err
		}
	}

	if !opts.Silent {
		m.notifySource()
	}

	err := m.Viper.Unmarshal(m.Config, func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	m.Config.ExpandEnvVars()

	err = m.expandPaths()
	if err != nil {
		return nil, err
	}

	if !opts.SkipValidation {
		err = m.Config.Validate()
		if err != nil {
			return nil, fmt.Errorf("validate configuration: %w", err)
		}
	}

	if !opts.Silent && opts.Timer != nil {
		notify.SuccessWithTimerf(m.Writer, opts.Timer, "config loaded")
	}

	m.loaded = true

	return m.Config, nil
}

func (m *ConfigManager) readConfig() error {
	err := m.Viper.ReadInConfig()
	if err == nil {
		m.configFound = true

		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if m.configFile == "" && errors.As(err, &notFound) {
		return nil
	}

	return fmt.Errorf("read config file: %w", err)
}

func (m *ConfigManager) notifySource() {
	if m.configFound {
		notify.Infof(m.Writer, "using config %s", m.Viper.ConfigFileUsed())

		return
	}

	notify.Infof(m.Writer, "no %s found, using defaults, environment and flags", DefaultConfigFile)
}

func (m *ConfigManager) expandPaths() error {
	conn := &m.Config.Spec.Connection

	for _, path := range []*string{&conn.IdentityFile, &conn.PublicKeyFile, &conn.KnownHostsFile} {
		expanded, err := fsutil.ExpandHomePath(*path)
		if err != nil {
			return fmt.Errorf("expand %s: %w", *path, err)
		}

		*path = expanded
	}

	return nil
}

// defaultSettings flattens the defaults of v1alpha1.NewHost into dotted viper keys.
func defaultSettings() map[string]any {
	var nested map[string]any

	// Decoding a struct into a map cannot fail.
	_ = mapstructure.Decode(*v1alpha1.NewHost(), &nested)

	flat := map[string]any{}
	flatten("", nested, flat)

	return flat
}

func flatten(prefix string, nested map[string]any, flat map[string]any) {
	keys := make([]string, 0, len(nested))
	for key := range nested {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		value := nested[key]

		if child, ok := value.(map[string]any); ok {
			flatten(full, child, flat)

			continue
		}

		if value != nil && reflect.TypeOf(value).Kind() == reflect.String {
			value = reflect.ValueOf(value).String()
		}

		flat[full] = value
	}
}
