package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "GOFINGER"
	ConfigName = "gofinger"
)

type Configuration struct {
	// Addr is the address the server listens on.
	Addr string `mapstructure:"addr"`
	// Host is the public authority of the server, such as example.com. It is used for the self-signed
	// certificate and logged at startup; requests are answered for whatever host they were sent to.
	Host string `mapstructure:"host"`
	// Debug, if true, will make the application log all HTTP requests and other events.
	Debug bool `mapstructure:"debug"`
	// DbUrl is the path to the database file.
	DbUrl string `mapstructure:"db_url"`
	// MigrationsFolder holds the golang-migrate files applied when Setup is true.
	MigrationsFolder string `mapstructure:"migrations_folder"`
	Setup            bool   `mapstructure:"setup"`
	// SeedFile, if set, is a JSON array of JRD documents published at startup.
	SeedFile string `mapstructure:"seed_file"`
	TLS      TLS    `mapstructure:"tls"`
}

type TLS struct {
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
	// AcmeDomains enables certificates from Let's Encrypt for the listed domains.
	AcmeDomains  []string `mapstructure:"acme_domains"`
	AcmeCacheDir string   `mapstructure:"acme_cache_dir"`
	// SelfSigned generates a throwaway certificate for Host at startup. Only meant for development.
	SelfSigned bool `mapstructure:"self_signed"`
}

// Enabled reports whether the server should listen with TLS.
func (t TLS) Enabled() bool {
	return t.CertFile != "" || len(t.AcmeDomains) > 0 || t.SelfSigned
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8443")
	v.SetDefault("host", "localhost")
	v.SetDefault("debug", false)
	v.SetDefault("db_url", "gofinger.db")
	v.SetDefault("migrations_folder", "migrations")
	v.SetDefault("setup", false)
	v.SetDefault("seed_file", "")
	v.SetDefault("tls.cert_file", "")
	v.SetDefault("tls.key_file", "")
	v.SetDefault("tls.acme_domains", []string{})
	v.SetDefault("tls.acme_cache_dir", "acme")
	v.SetDefault("tls.self_signed", false)
}

// ReadConfig loads gofinger.{yaml,toml,json} from the working directory or /etc/gofinger, then applies
// GOFINGER_* environment variables on top. A missing file is not an error.
func ReadConfig() (Configuration, error) {
	v := viper.New()
	v.SetConfigName(ConfigName)
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/gofinger")
	return load(v)
}

// ReadConfigFile is ReadConfig with an explicit file.
func ReadConfigFile(path string) (Configuration, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (cfg Configuration, err error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Configuration) Validate() error {
	var errs []error
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		errs = append(errs, fmt.Errorf("addr: %w", err))
	}
	if c.Host == "" {
		errs = append(errs, errors.New("host: must not be empty"))
	}
	if c.DbUrl == "" {
		errs = append(errs, errors.New("db_url: must not be empty"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("tls: cert_file and key_file must be set together"))
	}
	return errors.Join(errs...)
}
