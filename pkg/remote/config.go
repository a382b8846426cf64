package remote

import (
	"flag"
	"fmt"
	"log"
	"os"
)

// Config provides common options to set up the MQTT agent.
type Config struct {
	Info Info

	// MQTTBrokerURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix
	// Empty disables the agent.
	MQTTBrokerURL string
}

var defaultConfig = Config{}

func init() {
	if val := os.Getenv("PICOBOOT_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	defaultConfig.Info.Ref.ID = MachineID()
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Info.Ref.ID, "id", defaultConfig.Info.Ref.ID, "Device ID")
	flag.StringVar(&defaultConfig.Info.Meta.Description, "description", defaultConfig.Info.Meta.Description, "Device description")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL, empty to disable")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// SetDeviceType should be called in init with basic info about the watcher.
func SetDeviceType(typ string, meta Meta) {
	defaultConfig.Info.Ref.Type = typ
	defaultConfig.Info.Meta = meta
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewAgent creates an Agent from config, nil when no broker is configured.
func (c *Config) NewAgent(con KeyPresser) (*Agent, error) {
	if c.MQTTBrokerURL == "" {
		return nil, nil
	}
	if !c.Info.Ref.IsValid() {
		return nil, fmt.Errorf("device type and id must be specified")
	}
	agent, err := NewAgent(c.MQTTBrokerURL, c.Info, con)
	if err != nil {
		return nil, fmt.Errorf("create MQTT agent error: %v", err)
	}
	return agent, nil
}

// MustNewAgent creates an Agent and fails on error.
func (c *Config) MustNewAgent(con KeyPresser) *Agent {
	agent, err := c.NewAgent(con)
	if err != nil {
		log.Fatalln(err)
	}
	return agent
}
