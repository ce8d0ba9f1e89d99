package config

import "time"

// Config is the root configuration for the service.
type Config struct {
	Server      ServerConfig       `koanf:"server"`
	Log         LogConfig          `koanf:"log"`
	Storage     StorageConfig      `koanf:"storage"`
	Connections []ConnectionConfig `koanf:"connections" validate:"dive"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxResultRows   int           `koanf:"max_result_rows" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// StorageConfig locates the saved-query store on disk.
type StorageConfig struct {
	Dir string `koanf:"dir" validate:"required"`
}

// ConnectionConfig describes one configured database connection. Type selects
// the engine ("mysql", "postgresql", "mongodb", or "redis"); the remaining
// fields are interpreted by that engine's adapter.
type ConnectionConfig struct {
	Name     string `koanf:"name" validate:"required"`
	Type     string `koanf:"type" validate:"required,oneof=mysql postgresql mongodb redis"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"ssl_mode"`

	MaxConns        int           `koanf:"max_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`

	// RedisDB selects the numeric redis database; ignored by other engines.
	RedisDB int `koanf:"redis_db"`

	// ConnectionString overrides the host/port/credential fields when set.
	ConnectionString string `koanf:"connection_string"`
}
