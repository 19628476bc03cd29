package dispatch

import "testing"

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SHODAN_DISPATCH_WORKERS", "8")
	t.Setenv("SHODAN_DISPATCH_QUEUE_SIZE", "256")
	t.Setenv("SHODAN_DISPATCH_ENQUEUE_TIMEOUT", "250ms")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Workers != 8 || cfg.QueueSize != 256 {
		t.Fatalf("unexpected Workers/QueueSize: %+v", cfg)
	}
	if cfg.EnqueueTimeout.String() != "250ms" {
		t.Fatalf("unexpected EnqueueTimeout: %v", cfg.EnqueueTimeout)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Workers != 4 || cfg.QueueSize != 64 || cfg.EnqueueTimeout.String() != "1s" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
