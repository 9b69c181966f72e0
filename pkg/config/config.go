package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	RateLimit RateLimitConfig
	Session   SessionConfig
	Bootstrap BootstrapConfig
	Business  BusinessConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL    string
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string // file://migrations; vacío = no migrar al arrancar
	MaxConns       int
	MinConns       int
	SlowQueryMs    int // consultas más lentas se registran en warn; 0 = no registrar
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT y refresh tokens.
type JWTConfig struct {
	Secret       string
	Expiration   int // minutos
	RefreshHours int
	Issuer       string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host         string
	Port         int
	AllowOrigins string
	SwaggerFile  string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RateLimitConfig límite de intentos de login por IP, formato de ulule/limiter ("5-M", "100-H").
type RateLimitConfig struct {
	Login string
}

// SessionConfig configuración del panel de terminal (cliente de la API).
type SessionConfig struct {
	APIURL      string
	StoragePath string
	PageSize    int
}

// BootstrapConfig administrador inicial; se crea al arrancar si no existe ningún usuario con ese username.
type BootstrapConfig struct {
	AdminUsername string
	AdminPassword string
}

// BusinessConfig datos del negocio impresos en los comprobantes.
type BusinessConfig struct {
	Name    string
	RUC     string
	Address string
	Phone   string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	// .env precargado al entorno del proceso; las variables ya definidas no se pisan.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "autopartes-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL:    getString(v, "DATABASE_URL", ""),
			Host:           getString(v, "DB_HOST", "localhost"),
			Port:           getInt(v, "DB_PORT", 5432),
			User:           getString(v, "DB_USER", "postgres"),
			Password:       getString(v, "DB_PASSWORD", ""),
			DBName:         getString(v, "DB_NAME", "autopartes"),
			SSLMode:        getString(v, "DB_SSLMODE", "disable"),
			MigrationsPath: getString(v, "DB_MIGRATIONS_PATH", "file://migrations"),
			MaxConns:       getInt(v, "DB_MAX_CONNS", 25),
			MinConns:       getInt(v, "DB_MIN_CONNS", 2),
			SlowQueryMs:    getInt(v, "DB_SLOW_QUERY_MS", 200),
		},
		JWT: JWTConfig{
			Secret:       getString(v, "JWT_SECRET", ""),
			Expiration:   getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			RefreshHours: getInt(v, "JWT_REFRESH_HOURS", 24*7),
			Issuer:       getString(v, "JWT_ISSUER", "autopartes-api"),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         getInt(v, "HTTP_PORT", 8080),
			AllowOrigins: getString(v, "HTTP_ALLOW_ORIGINS", "http://localhost:3000"),
			SwaggerFile:  getString(v, "HTTP_SWAGGER_FILE", "./docs/swagger.json"),
		},
		RateLimit: RateLimitConfig{
			Login: getString(v, "RATE_LIMIT_LOGIN", "10-M"),
		},
		Session: SessionConfig{
			APIURL:      getString(v, "PANEL_API_URL", "http://localhost:8080"),
			StoragePath: getString(v, "PANEL_STORAGE_PATH", ".panel-session.json"),
			PageSize:    getInt(v, "PANEL_PAGE_SIZE", 10),
		},
		Bootstrap: BootstrapConfig{
			AdminUsername: getString(v, "ADMIN_USERNAME", "admin"),
			AdminPassword: getString(v, "ADMIN_PASSWORD", ""),
		},
		Business: BusinessConfig{
			Name:    getString(v, "BUSINESS_NAME", "Autopartes"),
			RUC:     getString(v, "BUSINESS_RUC", ""),
			Address: getString(v, "BUSINESS_ADDRESS", ""),
			Phone:   getString(v, "BUSINESS_PHONE", ""),
		},
	}

	if cfg.JWT.Secret == "" && cfg.App.Env == "production" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio en producción")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
