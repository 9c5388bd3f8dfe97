package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	Elasticsearch struct {
		Addresses      []string      `yaml:"addresses"`
		Username       string        `yaml:"username"`
		Password       string        `yaml:"password"`
		RequestTimeout time.Duration `yaml:"request_timeout" default:"10s"`
		Indexes        struct {
			Legacy  string `yaml:"legacy" default:"tuyendung3s"`
			Crawler string `yaml:"crawler" default:"jobs_data"`
		} `yaml:"indexes"`
	} `yaml:"elasticsearch"`

	Seed struct {
		Enabled         bool   `yaml:"enabled" default:"true"`
		LegacyDataPath  string `yaml:"legacy_data_path" default:"data/tuyendung3s.json"`
		CrawlerDataPath string `yaml:"crawler_data_path" default:"data/jobs_data.json"`
	} `yaml:"seed"`

	RateLimit struct {
		Enabled bool          `yaml:"enabled" default:"true"`
		Rate    int           `yaml:"rate" default:"20"` // requests per second per client
		Burst   int           `yaml:"burst" default:"40"`
		TTL     time.Duration `yaml:"ttl" default:"3m"` // idle client eviction
	} `yaml:"rate_limit"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`

	Redis struct {
		Enabled  bool          `yaml:"enabled" default:"false"`
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
		FacetTTL time.Duration `yaml:"facet_ttl" default:"5m"`
	} `yaml:"redis"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	// Expand ${VAR} syntax
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1] // Remove ${ and }
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if env var not found
	})

	// Expand $VAR syntax (but avoid replacing ${VAR} that was already processed)
	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:] // Remove $
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if env var not found
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Elasticsearch.Addresses = []string{"http://localhost:9200"}
	config.Elasticsearch.RequestTimeout = 10 * time.Second
	config.Elasticsearch.Indexes.Legacy = "tuyendung3s"
	config.Elasticsearch.Indexes.Crawler = "jobs_data"

	config.Seed.Enabled = true
	config.Seed.LegacyDataPath = "data/tuyendung3s.json"
	config.Seed.CrawlerDataPath = "data/jobs_data.json"

	config.RateLimit.Enabled = true
	config.RateLimit.Rate = 20
	config.RateLimit.Burst = 40
	config.RateLimit.TTL = 3 * time.Minute

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second
	config.Redis.FacetTTL = 5 * time.Minute

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			// Expand environment variables in the YAML content
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if addr := os.Getenv("ELASTICSEARCH_URL"); addr != "" {
		c.Elasticsearch.Addresses = []string{addr}
	}

	if username := os.Getenv("ELASTICSEARCH_USERNAME"); username != "" {
		c.Elasticsearch.Username = username
	}

	if password := os.Getenv("ELASTICSEARCH_PASSWORD"); password != "" {
		c.Elasticsearch.Password = password
	}

	if timeout := os.Getenv("ELASTICSEARCH_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Elasticsearch.RequestTimeout = d
		}
	}

	if index := os.Getenv("LEGACY_INDEX"); index != "" {
		c.Elasticsearch.Indexes.Legacy = index
	}

	if index := os.Getenv("CRAWLER_INDEX"); index != "" {
		c.Elasticsearch.Indexes.Crawler = index
	}

	if seedEnabled := os.Getenv("SEED_ENABLED"); seedEnabled != "" {
		c.Seed.Enabled = seedEnabled == "true" || seedEnabled == "1"
	}

	if path := os.Getenv("SEED_LEGACY_DATA_PATH"); path != "" {
		c.Seed.LegacyDataPath = path
	}

	if path := os.Getenv("SEED_CRAWLER_DATA_PATH"); path != "" {
		c.Seed.CrawlerDataPath = path
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if rateLimitEnabled := os.Getenv("RATE_LIMIT_ENABLED"); rateLimitEnabled != "" {
		c.RateLimit.Enabled = rateLimitEnabled == "true" || rateLimitEnabled == "1"
	}

	if rate := os.Getenv("RATE_LIMIT_RATE"); rate != "" {
		if r, err := strconv.Atoi(rate); err == nil {
			c.RateLimit.Rate = r
		}
	}

	if burst := os.Getenv("RATE_LIMIT_BURST"); burst != "" {
		if b, err := strconv.Atoi(burst); err == nil {
			c.RateLimit.Burst = b
		}
	}

	if redisEnabled := os.Getenv("REDIS_ENABLED"); redisEnabled != "" {
		c.Redis.Enabled = redisEnabled == "true" || redisEnabled == "1"
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if timeout, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = timeout
		}
	}

	if facetTTL := os.Getenv("REDIS_FACET_TTL"); facetTTL != "" {
		if ttl, err := time.ParseDuration(facetTTL); err == nil {
			c.Redis.FacetTTL = ttl
		}
	}
}
