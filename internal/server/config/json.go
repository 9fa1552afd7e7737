package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mzhadan/pomotrack/internal/flagx"
	"github.com/mzhadan/pomotrack/internal/timex"
)

// JsonConfig is the DTO used for reading JSON configuration files. Interval
// fields use timex.Duration so both "15m" strings and integer nanoseconds
// parse. After unmarshalling, values are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr                string         `json:"endpoint_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
}

// parseJson overlays configuration values from the JSON file named by the
// -c/-config flags, if any. A missing flag means no file is loaded; an
// unreadable or invalid file panics, since starting with half a config is
// worse than not starting.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.BcryptCost = c.BcryptCost
}
