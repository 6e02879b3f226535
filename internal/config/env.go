package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr     string
	GinMode     string
	DBDSN       string
	CORSOrigins []string
	CompanyName string
}

// LoadEnv reads configuration from the environment, with a best-effort
// .env load first so local development does not need exported vars.
func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	company := strings.TrimSpace(os.Getenv("COMPANY_NAME"))
	if company == "" {
		company = "Tourism Transport"
	}

	return Env{
		AppAddr:     appAddr,
		GinMode:     strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:       strings.TrimSpace(os.Getenv("DB_DSN")),
		CORSOrigins: splitOrigins(os.Getenv("CORS_ALLOWED_ORIGINS")),
		CompanyName: company,
	}
}

func splitOrigins(raw string) []string {
	out := []string{}
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		out = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}
	return out
}
