package profiling

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/getmentor/inquiry-api/config"
	"github.com/getmentor/inquiry-api/pkg/logger"
	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

const (
	defaultUploadRate = 15 * time.Second
	mutexFraction     = 5
	blockRate         = 5
)

// DefaultSampleTypes is used when O11Y_PROFILING_SAMPLE_TYPES is empty
var DefaultSampleTypes = []string{"cpu", "alloc_space", "alloc_objects", "goroutines"}

// Options is the profiler setup resolved from configuration
type Options struct {
	ApplicationName string
	ServerAddress   string
	UploadRate      time.Duration
	ProfileTypes    []pyroscope.ProfileType
	Tags            map[string]string
	mutex           bool
	block           bool
}

// InitProfiler starts continuous profiling when enabled and returns a stop function
func InitProfiler(cfg config.ProfilingConfig, identity config.ObservabilityConfig, environment string) (func(), error) {
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return func() {}, nil
	}

	opts, err := Resolve(cfg, identity, environment)
	if err != nil {
		return nil, err
	}

	// Mutex and block profiles are empty unless the runtime samples them
	if opts.mutex {
		runtime.SetMutexProfileFraction(mutexFraction)
	}
	if opts.block {
		runtime.SetBlockProfileRate(blockRate)
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: opts.ApplicationName,
		ServerAddress:   opts.ServerAddress,
		UploadRate:      opts.UploadRate,
		ProfileTypes:    opts.ProfileTypes,
		Tags:            opts.Tags,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}

	logger.Info("Continuous profiling initialized",
		zap.String("application_name", opts.ApplicationName),
		zap.String("endpoint", opts.ServerAddress),
		zap.Duration("upload_rate", opts.UploadRate),
		zap.Int("profile_types", len(opts.ProfileTypes)),
	)

	return func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			logger.Error("Failed to stop profiler", zap.Error(stopErr))
		}
	}, nil
}

// Resolve validates the profiling configuration and derives the profiler options.
// Service identity goes into tags so profiles line up with traces and logs.
func Resolve(cfg config.ProfilingConfig, identity config.ObservabilityConfig, environment string) (Options, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return Options{}, fmt.Errorf("profiling endpoint is required when profiling is enabled")
	}

	opts := Options{
		ApplicationName: strings.TrimSpace(cfg.AppName),
		ServerAddress:   endpoint,
		UploadRate:      time.Duration(cfg.UploadIntervalSeconds) * time.Second,
		Tags: map[string]string{
			"service_name":    identity.ServiceName,
			"namespace":       identity.ServiceNamespace,
			"service_version": identity.ServiceVersion,
			"environment":     environment,
		},
	}
	if opts.ApplicationName == "" {
		opts.ApplicationName = identity.ServiceName
	}
	if opts.UploadRate <= 0 {
		opts.UploadRate = defaultUploadRate
	}
	if identity.ServiceInstanceID != "" {
		opts.Tags["instance"] = identity.ServiceInstanceID
	}

	names := DefaultSampleTypes
	if strings.TrimSpace(cfg.SampleTypes) != "" {
		names = strings.Split(cfg.SampleTypes, ",")
	}

	seen := make(map[pyroscope.ProfileType]bool)
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}

		var types []pyroscope.ProfileType
		switch name {
		case "cpu":
			types = []pyroscope.ProfileType{pyroscope.ProfileCPU}
		case "alloc_space":
			types = []pyroscope.ProfileType{pyroscope.ProfileAllocSpace}
		case "alloc_objects":
			types = []pyroscope.ProfileType{pyroscope.ProfileAllocObjects}
		case "inuse_space":
			types = []pyroscope.ProfileType{pyroscope.ProfileInuseSpace}
		case "inuse_objects":
			types = []pyroscope.ProfileType{pyroscope.ProfileInuseObjects}
		case "goroutines":
			types = []pyroscope.ProfileType{pyroscope.ProfileGoroutines}
		case "mutex":
			types = []pyroscope.ProfileType{pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration}
			opts.mutex = true
		case "block":
			types = []pyroscope.ProfileType{pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration}
			opts.block = true
		default:
			return Options{}, fmt.Errorf("unsupported O11Y_PROFILING_SAMPLE_TYPES value: %q", name)
		}

		for _, t := range types {
			if !seen[t] {
				seen[t] = true
				opts.ProfileTypes = append(opts.ProfileTypes, t)
			}
		}
	}

	return opts, nil
}
