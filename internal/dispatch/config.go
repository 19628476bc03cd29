package dispatch

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config groups all tunables. Values are taken from environment variables with
// the prefix "SHODAN_DISPATCH_". Example: SHODAN_DISPATCH_WORKERS=8.
type Config struct {
	Workers        int           `envconfig:"WORKERS"         default:"4"`
	QueueSize      int           `envconfig:"QUEUE_SIZE"      default:"64"`
	EnqueueTimeout time.Duration `envconfig:"ENQUEUE_TIMEOUT" default:"1s"`

	// ErrorHandler is called synchronously after a Job returns a non-nil error
	// or panics. Leave nil if you do not care.
	ErrorHandler func(error) `envconfig:"-"`
}

// LoadConfig populates Config from environment variables (prefix SHODAN_DISPATCH_).
func LoadConfig() (Config, error) {
	var c Config
	return c, envconfig.Process("SHODAN_DISPATCH", &c)
}
