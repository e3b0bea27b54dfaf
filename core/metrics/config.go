package metrics

// Config selects and configures the metrics backends.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`

	InfluxEnabled bool   `json:"influx_enabled"`
	InfluxURL     string `json:"influx_url"`
	InfluxToken   string `json:"influx_token"`
	InfluxOrg     string `json:"influx_org"`
	InfluxBucket  string `json:"influx_bucket"`
}

// SetDefaults applies defaults for enabled backends.
func (c *Config) SetDefaults() {
	if c.PrometheusEnabled && c.PrometheusPort == "" {
		c.PrometheusPort = "2112"
	}
}
