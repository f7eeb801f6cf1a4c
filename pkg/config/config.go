package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de persistencia soportados.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Modos de asignación del login id de un usuario nuevo.
const (
	LoginIDGenerated = "generated" // el sistema genera el código (ADM123456, MGR…, EMP…)
	LoginIDSupplied  = "supplied"  // el admin/manager elige el código
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	Store     StoreConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Auth      AuthConfig
	Redis     RedisConfig
	Bootstrap BootstrapConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Locale   string // idioma para ordenar nombres en la analítica (fr, es, en…)
}

// StoreConfig selecciona el driver del almacén.
type StoreConfig struct {
	Driver     string // postgres | sqlite
	SQLitePath string // ruta del archivo SQLite (":memory:" para pruebas)
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string // lista separada por comas, "*" por defecto
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig reglas de autenticación y alta de usuarios.
type AuthConfig struct {
	LoginIDMode      string // generated | supplied
	MaxLoginAttempts int    // 0 = sin límite
	LockMinutes      int
}

// RedisConfig conexión opcional a Redis (limitador de intentos de login).
// Addr vacío desactiva el limitador.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled informa si hay Redis configurado.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// BootstrapConfig credenciales del primer administrador.
type BootstrapConfig struct {
	LoginID  string
	Password string
	Name     string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env en el directorio actual
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "paytrack-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Locale:   getString(v, "APP_LOCALE", "fr"),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(getString(v, "STORE_DRIVER", DriverPostgres)),
			SQLitePath: getString(v, "SQLITE_PATH", "paytrack.db"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "paytrack"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "paytrack-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		Auth: AuthConfig{
			LoginIDMode:      strings.ToLower(getString(v, "LOGIN_ID_MODE", LoginIDGenerated)),
			MaxLoginAttempts: getInt(v, "LOGIN_MAX_ATTEMPTS", 5),
			LockMinutes:      getInt(v, "LOGIN_LOCK_MINUTES", 15),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Bootstrap: BootstrapConfig{
			LoginID:  getString(v, "BOOTSTRAP_ADMIN_LOGIN", "admin"),
			Password: getString(v, "BOOTSTRAP_ADMIN_PASSWORD", "admin123"),
			Name:     getString(v, "BOOTSTRAP_ADMIN_NAME", "System Administrator"),
		},
	}
}

// Validate rechaza configuraciones con las que el servidor no puede arrancar.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("config: JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	switch c.Store.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: STORE_DRIVER desconocido %q", c.Store.Driver)
	}
	switch c.Auth.LoginIDMode {
	case LoginIDGenerated, LoginIDSupplied:
	default:
		return fmt.Errorf("config: LOGIN_ID_MODE desconocido %q", c.Auth.LoginIDMode)
	}
	if c.Bootstrap.LoginID == "" || c.Bootstrap.Password == "" {
		return fmt.Errorf("config: credenciales de bootstrap vacías")
	}
	return nil
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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
