package config

import (
	"os"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Server Server `yaml:"server"`
	Ledger Ledger `yaml:"ledger"`
	JWT    JWT    `yaml:"jwt"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type Ledger struct {
	HorizonURL        string `yaml:"horizonUrl"`
	FriendbotURL      string `yaml:"friendbotUrl"`
	NetworkPassphrase string `yaml:"networkPassphrase"`
	MaxHistoryPages   int    `yaml:"maxHistoryPages"`
}

type JWT struct {
	Secret        string `yaml:"secret"`
	Issuer        string `yaml:"issuer"`
	Audience      string `yaml:"audience"`
	ExpiryMinutes int    `yaml:"expiryMinutes"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.Listen == "" {
		config.Server.Listen = ":8000"
	}
	if config.JWT.ExpiryMinutes == 0 {
		config.JWT.ExpiryMinutes = 30
	}
	if config.Ledger.MaxHistoryPages == 0 {
		config.Ledger.MaxHistoryPages = 100
	}

	return config, nil
}
