package server

// ServerConfig holds playground server settings.
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{Host: "127.0.0.1", Port: 8322}
}
