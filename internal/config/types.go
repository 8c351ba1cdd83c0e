package config

import "time"

// DefaultIntervalMS is the capture interval used when the config omits one.
const DefaultIntervalMS = 10000

// DefaultRemotePort is the SSH port used for the remote host.
const DefaultRemotePort = 22

// Config represents the complete .wscrape.yaml configuration file.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Remote  RemoteConfig  `yaml:"remote" mapstructure:"remote"`
	Capture CaptureConfig `yaml:"capture" mapstructure:"capture"`
}

// StoreConfig describes the relational store the capture loop writes to.
type StoreConfig struct {
	// DSN is the store connection string. It may reference ${user} and
	// ${pass}, which are substituted from the credential file before the
	// connection is opened.
	DSN string `yaml:"dsn" mapstructure:"dsn"`

	// Credentials is the path to a JSON file with exactly two string
	// fields, "user" and "pass".
	Credentials string `yaml:"credentials" mapstructure:"credentials"`
}

// RemoteConfig describes the host the status command runs on.
type RemoteConfig struct {
	// Host is a hostname or an SSH config alias. The connection always
	// uses port 22 unless the alias overrides it in ~/.ssh/config.
	Host string `yaml:"host" mapstructure:"host"`

	// Credentials is the path to a JSON file with exactly two string
	// fields, "user" and "pass". The pass is used for password auth.
	Credentials string `yaml:"credentials" mapstructure:"credentials"`
}

// CaptureConfig controls the capture loop schedule.
type CaptureConfig struct {
	// IntervalMS is the fixed delay between capture cycles, in milliseconds.
	IntervalMS int `yaml:"interval_ms" mapstructure:"interval_ms"`
}

// Interval returns the capture interval as a duration.
func (c CaptureConfig) Interval() time.Duration {
	ms := c.IntervalMS
	if ms <= 0 {
		ms = DefaultIntervalMS
	}
	return time.Duration(ms) * time.Millisecond
}
