package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Sources describes how export files are discovered and how navigation
// URLs are built for bridge rows. Values come from an optional
// tickethouse.yml; defaults cover the stock ServiceNow export naming.
type Sources struct {
	InteractionsPattern string `mapstructure:"interactionsPattern"`
	LinksPattern        string `mapstructure:"linksPattern"`
	SysIDPattern        string `mapstructure:"sysidPattern"`
	BaseURL             string `mapstructure:"baseURL"`
}

func DefaultSources() Sources {
	return Sources{
		InteractionsPattern: "interaction_*.csv",
		LinksPattern:        "ims_inc_*.csv",
		SysIDPattern:        "sysid_*.json",
		BaseURL:             "https://example.service-now.com",
	}
}

// LoadSources reads the optional sources config file, falling back to
// defaults when the file is absent.
func LoadSources() (Sources, error) {
	v := viper.New()

	v.SetConfigName("tickethouse")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/tickethouse")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TICKETHOUSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultSources()
	v.SetDefault("sources.interactionsPattern", defaults.InteractionsPattern)
	v.SetDefault("sources.linksPattern", defaults.LinksPattern)
	v.SetDefault("sources.sysidPattern", defaults.SysIDPattern)
	v.SetDefault("sources.baseURL", defaults.BaseURL)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Sources{}, err
		}
	}

	var cfg Sources
	if err := v.UnmarshalKey("sources", &cfg); err != nil {
		return Sources{}, err
	}
	return cfg, nil
}
