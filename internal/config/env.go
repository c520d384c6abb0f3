package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by the provisioner.
const (
	EnvEmail      = "CERTBOT_EMAIL"
	EnvStaging    = "DO_STAGING"
	EnvProduction = "DO_PROD"
	EnvForce      = "FORCE_PROD"
	EnvCheckA     = "CHECK_A_RECORD"
	EnvCheckAAAA  = "CHECK_AAAA_RECORD"
)

// ProvisionSettings are the environment-driven toggles for the
// provisioning orchestrator.
type ProvisionSettings struct {
	Email           string
	Staging         bool
	Production      bool
	ForceProduction bool
	CheckARecord    bool
	CheckAAAARecord bool // accepted but not yet enforced
}

// LoadProvisionSettings reads the toggles from the process environment
// after loading an optional env file. Values already present in the
// environment are never overridden by the file.
func LoadProvisionSettings(envFile string) ProvisionSettings {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load()
	}

	return ProvisionSettings{
		Email:           os.Getenv(EnvEmail),
		Staging:         boolEnv(EnvStaging, true),
		Production:      boolEnv(EnvProduction, false),
		ForceProduction: boolEnv(EnvForce, false),
		CheckARecord:    boolEnv(EnvCheckA, true),
		CheckAAAARecord: boolEnv(EnvCheckAAAA, false),
	}
}

// boolEnv interprets "1" as on and any other set value as off.
func boolEnv(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return v == "1"
}
