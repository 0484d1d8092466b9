package config

import "time"

// WorkerConfig contains the clone worker pool configuration.
type WorkerConfig struct {
	// Count is the number of concurrent clone workers.
	Count int `env:"WORKER_COUNT" envDefault:"4"`

	// QueueSize is the capacity of the in-process job queue. Enqueue never
	// blocks; when the queue is full the job is failed immediately.
	QueueSize int `env:"WORKER_QUEUE_SIZE" envDefault:"256"`

	// SynthesisDelay is how long the stub synthesis provider takes per job.
	// Kept small in tests, larger in demos.
	SynthesisDelay time.Duration `env:"WORKER_SYNTHESIS_DELAY" envDefault:"2s"`
}

// Sanitize applies guardrails to worker configuration values.
func (w *WorkerConfig) Sanitize() {
	if w.Count < 1 {
		w.Count = 1
	}
	if w.QueueSize < 1 {
		w.QueueSize = 1
	}
	if w.SynthesisDelay < 0 {
		w.SynthesisDelay = 0
	}
}

// ReaperConfig contains configuration for the stale-job reaper that fails
// jobs stuck in processing (e.g., after a worker crash).
type ReaperConfig struct {
	// Interval is how often the reaper scans for stale jobs.
	Interval time.Duration `env:"REAPER_INTERVAL" envDefault:"1m"`

	// StaleAfter is how long a job may stay in processing before it is
	// considered abandoned and marked failed.
	StaleAfter time.Duration `env:"REAPER_STALE_AFTER" envDefault:"10m"`
}

// Sanitize applies guardrails to reaper configuration values.
func (r *ReaperConfig) Sanitize() {
	if r.Interval <= 0 {
		r.Interval = time.Minute
	}
	if r.StaleAfter < time.Second {
		r.StaleAfter = time.Second
	}
}
