package console

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sosodev/duration"
)

// Default timing for the console.
const (
	DefaultReconnectInterval = 3 * time.Second
	DefaultToastTTL          = 5 * time.Second
	DefaultClockTick         = time.Second

	defaultOrchestratorURL = "http://localhost:8000"
)

// Config holds the console's settings.
type Config struct {
	// OrchestratorURL is the base URL of the orchestrator's HTTP surface.
	// The push endpoint is derived from it.
	OrchestratorURL string

	// ReconnectInterval is the fixed wait between push channel redials.
	ReconnectInterval time.Duration

	// ToastTTL is how long each toast stays queued.
	ToastTTL time.Duration

	// ClockTick is the session clock period.
	ClockTick time.Duration

	// CommandTimeout bounds each control request. Zero leaves requests
	// bounded only by their context.
	CommandTimeout time.Duration

	// MetricsPollInterval enables periodic metrics fetching when positive.
	MetricsPollInterval time.Duration

	Logger *slog.Logger
}

func (c *Config) setDefaults() {
	if c.OrchestratorURL == "" {
		c.OrchestratorURL = defaultOrchestratorURL
	}
	if c.ReconnectInterval == 0 {
		c.ReconnectInterval = DefaultReconnectInterval
	}
	if c.ToastTTL == 0 {
		c.ToastTTL = DefaultToastTTL
	}
	if c.ClockTick == 0 {
		c.ClockTick = DefaultClockTick
	}
}

// LoadConfig builds a Config from FP_* environment variables. Durations use
// ISO 8601 notation, e.g. PT3S.
func LoadConfig() (Config, error) {
	var config Config
	config.OrchestratorURL = os.Getenv("FP_ORCHESTRATOR_URL")

	for env, field := range map[string]*time.Duration{
		"FP_RECONNECT_INTERVAL":    &config.ReconnectInterval,
		"FP_TOAST_TTL":             &config.ToastTTL,
		"FP_CLOCK_TICK":            &config.ClockTick,
		"FP_COMMAND_TIMEOUT":       &config.CommandTimeout,
		"FP_METRICS_POLL_INTERVAL": &config.MetricsPollInterval,
	} {
		value := os.Getenv(env)
		if value == "" {
			continue
		}
		d, err := duration.Parse(value)
		if err != nil {
			return Config{}, &ValidationError{
				message: "invalid " + env,
				wrapped: err,
			}
		}
		*field = d.ToTimeDuration()
	}

	config.setDefaults()
	return config, nil
}

// ParseConnectionString parses semicolon-delimited key=value settings, e.g.
// "OrchestratorUrl=http://rig:8000;ReconnectInterval=PT3S". Keys are
// case-insensitive; durations use ISO 8601 notation.
func ParseConnectionString(connStr string) (Config, error) {
	settings := map[string]string{}
	for _, kv := range strings.Split(connStr, ";") {
		if kv == "" {
			continue
		}
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return Config{}, &ValidationError{
				message: fmt.Sprintf("malformed setting %q", kv),
			}
		}
		settings[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	var config Config
	config.OrchestratorURL = settings["orchestratorurl"]

	for key, field := range map[string]*time.Duration{
		"reconnectinterval":   &config.ReconnectInterval,
		"toastttl":            &config.ToastTTL,
		"clocktick":           &config.ClockTick,
		"commandtimeout":      &config.CommandTimeout,
		"metricspollinterval": &config.MetricsPollInterval,
	} {
		value, ok := settings[key]
		if !ok {
			continue
		}
		d, err := duration.Parse(value)
		if err != nil {
			return Config{}, &ValidationError{
				message: "invalid " + key,
				wrapped: err,
			}
		}
		*field = d.ToTimeDuration()
	}

	config.setDefaults()
	return config, nil
}
