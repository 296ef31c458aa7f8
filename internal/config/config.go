package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Queue  QueueConfig  `mapstructure:"queue"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Host     string `mapstructure:"host"      validate:"required"`
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// QueueConfig contains the task queue settings.
type QueueConfig struct {
	// TaskTTLSeconds is how long a completed task survives in the
	// store before garbage collection evicts it.
	TaskTTLSeconds int `mapstructure:"task_ttl_seconds" validate:"required,gt=0"`
}

// TaskTTL returns the completed-task TTL as a duration.
func (c QueueConfig) TaskTTL() time.Duration {
	return time.Duration(c.TaskTTLSeconds) * time.Second
}
