// Package config loads the catalog service configuration.
package config

import (
	"fmt"
	"strings"
)

type Config struct {
	HTTPServer HTTPConfig       `koanf:"server"`
	GRPC       GrpcServerConfig `koanf:"grpc"`
	Log        LogConfig        `koanf:"log"`
	PProf      PProfConfig      `koanf:"pprof"`
	Metrics    MetricsConfig    `koanf:"metrics"`
	NATS       NATSConfig       `koanf:"nats"`
	Shutdown   ShutdownConfig   `koanf:"shutdown"`
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Server Configuration ---\n")
	fmt.Fprintf(&b, "  server.port: %d\n", c.HTTPServer.Port)
	fmt.Fprintf(&b, "  server.maxHeaderBytes: %d\n", c.HTTPServer.MaxHeaderBytes)
	fmt.Fprintf(&b, "  server.timeout.read: %v\n", c.HTTPServer.Timeout.Read)
	fmt.Fprintf(&b, "  server.timeout.write: %v\n", c.HTTPServer.Timeout.Write)
	fmt.Fprintf(&b, "  server.timeout.idle: %v\n", c.HTTPServer.Timeout.Idle)
	fmt.Fprintf(&b, "  server.timeout.readHeader: %v\n", c.HTTPServer.Timeout.ReadHeader)

	b.WriteString("\n--- gRPC Configuration ---\n")
	fmt.Fprintf(&b, "  grpc.port: %d\n", c.GRPC.Port)
	fmt.Fprintf(&b, "  grpc.reflection_enabled: %t\n", c.GRPC.ReflectionEnabled)

	b.WriteString("\n--- Observability & Logging ---\n")
	fmt.Fprintf(&b, "  log.level: %s\n", c.Log.Level)
	fmt.Fprintf(&b, "  pprof.enabled: %t\n", c.PProf.Enabled)
	fmt.Fprintf(&b, "  pprof.address: %s\n", c.PProf.Addr)
	fmt.Fprintf(&b, "  metrics.enabled: %t\n", c.Metrics.Enabled)
	fmt.Fprintf(&b, "  metrics.path: %s\n", c.Metrics.Path)

	b.WriteString("\n--- Messaging ---\n")
	fmt.Fprintf(&b, "  nats.enabled: %t\n", c.NATS.Enabled)
	fmt.Fprintf(&b, "  nats.url: %s\n", maskURL(c.NATS.Url))
	fmt.Fprintf(&b, "  nats.timeout: %s\n", c.NATS.Timeout)

	b.WriteString("\n--- Application Behavior ---\n")
	fmt.Fprintf(&b, "  shutdown.timeout: %s\n", c.Shutdown.Timeout)

	return b.String()
}

func maskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	// Mask the URL by replacing the username and password with "****"
	parts := strings.Split(url, "@")
	if len(parts) == 2 {
		scheme, _, found := strings.Cut(parts[0], "://")
		if found {
			return scheme + "://****@" + parts[1]
		}
		return "****@" + parts[1]
	}
	return url
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	validators := []interface{ Validate() error }{
		&c.HTTPServer,
		&c.GRPC,
		&c.Log,
		&c.PProf,
		&c.Metrics,
		&c.NATS,
		&c.Shutdown,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
