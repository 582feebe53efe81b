package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = "../../.env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env    string
	DB     db
	Server server
	Logger logger
	Crypto crypto
}

type defaultConfig struct {
	RunAddress    string
	PublicBaseURL string
	DatabaseURI   string
	LogLevel      string
	Env           string
	Migrations    string
	RSABits       int
	Argon2Time    uint32
	Argon2Memory  uint32
	Argon2Threads uint8
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type crypto struct {
	RSABits       int    `env:"RSA_BITS"`
	Argon2Time    uint32 `env:"ARGON2_TIME"`
	Argon2Memory  uint32 `env:"ARGON2_MEMORY"`
	Argon2Threads uint8  `env:"ARGON2_THREADS"`
}

func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	d := defaultConfig{
		RunAddress:    viper.GetString("run_address"),
		PublicBaseURL: viper.GetString("public_base_url"),
		DatabaseURI:   viper.GetString("database_uri"),
		LogLevel:      viper.GetString("log_level"),
		Env:           viper.GetString("app_env"),
		Migrations:    viper.GetString("migrations_path"),
		RSABits:       viper.GetInt("rsa_bits"),
		Argon2Time:    viper.GetUint32("argon2_time"),
		Argon2Memory:  viper.GetUint32("argon2_memory"),
		Argon2Threads: uint8(viper.GetUint16("argon2_threads")),
	}
	if d.PublicBaseURL == "" {
		d.PublicBaseURL = "http://" + d.RunAddress
	}

	config := Config{
		Env: d.Env,
		DB: db{
			DatabaseURI: d.DatabaseURI,
			Migrations:  d.Migrations,
		},
		Server: server{
			RunAddress:    d.RunAddress,
			PublicBaseURL: d.PublicBaseURL,
		},
		Logger: logger{LogLevel: d.LogLevel},
		Crypto: crypto{
			RSABits:       d.RSABits,
			Argon2Time:    d.Argon2Time,
			Argon2Memory:  d.Argon2Memory,
			Argon2Threads: d.Argon2Threads,
		},
	}

	return &config
}
