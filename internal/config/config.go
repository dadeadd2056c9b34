package config

import (
	"fmt"
	"os"

	"github.com/go-core-fx/config"
)

type httpConfig struct {
	Address     string   `koanf:"address"`
	ProxyHeader string   `koanf:"proxy_header"`
	Proxies     []string `koanf:"proxies"`
}

type storageConfig struct {
	DataDir  string `koanf:"data_dir"`
	SeedFile string `koanf:"seed_file"`
}

type simConfig struct {
	// User is the acting identity commits are attributed to.
	User string `koanf:"user"`
}

type Config struct {
	HTTP httpConfig `koanf:"http"`

	Storage storageConfig `koanf:"storage"`
	Sim     simConfig     `koanf:"sim"`
}

func Default() Config {
	//nolint:exhaustruct //default values
	return Config{
		HTTP: httpConfig{
			Address:     "127.0.0.1:3000",
			ProxyHeader: "X-Forwarded-For",
			Proxies:     []string{},
		},

		Storage: storageConfig{
			DataDir: "./data",
		},

		Sim: simConfig{
			User: "demo",
		},
	}
}

func New() (Config, error) {
	cfg := Default()

	options := []config.Option{}
	if yamlPath := os.Getenv("CONFIG_PATH"); yamlPath != "" {
		options = append(options, config.WithLocalYAML(yamlPath))
	}

	if err := config.Load(&cfg, options...); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}
