package server

// ServerConfig holds web UI server settings.
type ServerConfig struct {
	Host              string `json:"host" yaml:"host"`
	Port              int    `json:"port" yaml:"port"`
	SessionTTLMinutes int    `json:"sessionTTLMinutes" yaml:"sessionTTLMinutes"`
	JanitorSpec       string `json:"janitorSpec" yaml:"janitorSpec"` // robfig/cron spec for idle-session sweeps
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:              "127.0.0.1",
		Port:              8501,
		SessionTTLMinutes: 60,
		JanitorSpec:       "@every 1m",
	}
}
