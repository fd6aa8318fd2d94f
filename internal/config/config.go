package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"

	applog "household-expenses/internal/log"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Config struct {
	Addr string

	Driver     string
	SQLitePath string
	DBUser     string
	DBPass     string
	DBHost     string
	DBPort     string
	DBName     string
	ReadDSN    string

	CORSOrigins []string

	LogLevel  string
	LogFormat string

	SeedDev bool
	GinMode string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// SetDefaults registers defaults and env bindings. Keys map to env names by
// upper-casing and replacing dots, so db.driver reads DB_DRIVER.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":5216")
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", "./data/controle_gastos.db")
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", "3306")
	v.SetDefault("db.name", "controle_gastos")
	v.SetDefault("read.dsn", "")
	v.SetDefault("cors.origins", "*")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("seed.dev", false)
	v.SetDefault("gin.mode", "release")
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.shutdown_timeout", 30*time.Second)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func Load(v *viper.Viper) Config {
	return Config{
		Addr:            v.GetString("addr"),
		Driver:          strings.ToLower(strings.TrimSpace(v.GetString("db.driver"))),
		SQLitePath:      v.GetString("db.path"),
		DBUser:          v.GetString("db.user"),
		DBPass:          v.GetString("db.pass"),
		DBHost:          v.GetString("db.host"),
		DBPort:          v.GetString("db.port"),
		DBName:          v.GetString("db.name"),
		ReadDSN:         v.GetString("read.dsn"),
		CORSOrigins:     splitList(v.GetString("cors.origins")),
		LogLevel:        v.GetString("log.level"),
		LogFormat:       v.GetString("log.format"),
		SeedDev:         v.GetBool("seed.dev"),
		GinMode:         v.GetString("gin.mode"),
		ReadTimeout:     v.GetDuration("http.read_timeout"),
		WriteTimeout:    v.GetDuration("http.write_timeout"),
		ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
	}
}

// New loads configuration from the environment only.
func New() Config {
	v := viper.New()
	SetDefaults(v)
	return Load(v)
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, "listen address cannot be empty")
	}

	switch c.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite driver")
		}
	case DriverMySQL:
		if c.ReadDSN != "" {
			if _, err := mysql.ParseDSN(c.ReadDSN); err != nil {
				errs = append(errs, fmt.Sprintf("invalid READ_DSN: %v", err))
			}
			break
		}
		if c.DBHost == "" {
			errs = append(errs, "database host is required when using mysql driver")
		}
		if c.DBName == "" {
			errs = append(errs, "database name is required when using mysql driver")
		}
		if port, err := strconv.Atoi(c.DBPort); err != nil {
			errs = append(errs, fmt.Sprintf("invalid database port '%s': must be a number", c.DBPort))
		} else if port < 1 || port > 65535 {
			errs = append(errs, fmt.Sprintf("invalid database port %d: must be between 1 and 65535", port))
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid database driver '%s': must be one of [%s %s]", c.Driver, DriverSQLite, DriverMySQL))
	}

	if len(c.CORSOrigins) == 0 {
		errs = append(errs, "at least one CORS origin is required")
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := applog.ParseFormat(c.LogFormat); err != nil {
		errs = append(errs, err.Error())
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Sprintf("invalid gin mode '%s': must be debug, release or test", c.GinMode))
	}

	if c.ReadTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("invalid read timeout %v: must be positive", c.ReadTimeout))
	}
	if c.WriteTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("invalid write timeout %v: must be positive", c.WriteTimeout))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func (c Config) MySQLDSN() string {
	if c.ReadDSN != "" {
		return c.ReadDSN
	}
	mc := mysql.NewConfig()
	mc.User = c.DBUser
	mc.Passwd = c.DBPass
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.DBHost, c.DBPort)
	mc.DBName = c.DBName
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

func (c Config) SQLiteDSN() string {
	return c.SQLitePath + "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.Driver == DriverMySQL {
		return c.MySQLDSN()
	}
	return c.SQLiteDSN()
}

// MigrationDSN is DSN with multi-statement support enabled, which the mysql
// migration driver needs to run whole files.
func (c Config) MigrationDSN() (string, error) {
	if c.Driver != DriverMySQL {
		return c.DSN(), nil
	}
	mc, err := mysql.ParseDSN(c.DSN())
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	mc.MultiStatements = true
	return mc.FormatDSN(), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
