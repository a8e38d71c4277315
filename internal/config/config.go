package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config regroupe toute la configuration du serveur
type Config struct {
	Port string `yaml:"port"`
	URL  string `yaml:"url"`

	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSSLMode  string `yaml:"db_sslmode"`

	CORSOrigins []string `yaml:"cors_origins"`

	CloudinaryCloudName string `yaml:"cloudinary_cloud_name"`
	CloudinaryAPIKey    string `yaml:"cloudinary_api_key"`
	CloudinaryAPISecret string `yaml:"cloudinary_api_secret"`

	LogLevel        string  `yaml:"log_level"`
	DefaultRadiusKm float64 `yaml:"default_radius_km"`
}

// Default retourne la configuration par défaut (développement local)
func Default() *Config {
	return &Config{
		Port:            "8080",
		URL:             "http://localhost:8080",
		DBHost:          "localhost",
		DBPort:          "5432",
		DBUser:          "postgres",
		DBName:          "sentinelshe",
		DBSSLMode:       "disable",
		CORSOrigins:     []string{"http://localhost:3000"},
		LogLevel:        "info",
		DefaultRadiusKm: 10,
	}
}

// LoadConfig charge la configuration: .env, puis le fichier YAML de CONFIG_FILE, puis les variables d'environnement
func LoadConfig() (*Config, error) {
	// .env est optionnel
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("unable to read .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("unable to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	set(&c.Port, "PORT")
	set(&c.URL, "APP_URL")
	set(&c.DBHost, "DB_HOST")
	set(&c.DBPort, "DB_PORT")
	set(&c.DBUser, "DB_USER")
	set(&c.DBPassword, "DB_PASSWORD")
	set(&c.DBName, "DB_NAME")
	set(&c.DBSSLMode, "DB_SSLMODE")
	set(&c.CloudinaryCloudName, "CLOUDINARY_CLOUD_NAME")
	set(&c.CloudinaryAPIKey, "CLOUDINARY_API_KEY")
	set(&c.CloudinaryAPISecret, "CLOUDINARY_API_SECRET")
	set(&c.LogLevel, "LOG_LEVEL")

	if v := strings.TrimSpace(getenv("CORS_ORIGINS")); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORSOrigins = origins
	}

	if v := strings.TrimSpace(getenv("DEFAULT_RADIUS_KM")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.DefaultRadiusKm = f
		}
	}
}

// Validate vérifie les champs obligatoires
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("config: port is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("config: invalid port %q", c.Port)
	}
	if c.DBHost == "" || c.DBName == "" || c.DBUser == "" {
		return errors.New("config: db_host, db_name and db_user are required")
	}
	if c.DefaultRadiusKm <= 0 {
		return fmt.Errorf("config: default_radius_km must be positive, got %v", c.DefaultRadiusKm)
	}
	return nil
}

// DSN construit la chaîne de connexion PostgreSQL
func (c *Config) DSN() string {
	sslMode := c.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, sslMode,
	)
}

// CloudinaryEnabled indique si les identifiants Cloudinary sont présents
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}
