// Package envconfig reads Born settings from BORN_* environment variables.
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
)

var (
	// Set via BORN_DEBUG in the environment
	Debug bool
	// Set via BORN_NUM_THREADS in the environment
	NumThreads int
	// Set via BORN_SEED in the environment, 0 means time based
	Seed int64
	// Set via BORN_MAX_ALLOC in the environment, 0 means unlimited
	MaxAllocBytes int64
)

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"BORN_DEBUG":       {"BORN_DEBUG", Debug, "Show additional debug information (e.g. BORN_DEBUG=1)"},
		"BORN_NUM_THREADS": {"BORN_NUM_THREADS", NumThreads, "Worker goroutines used by CPU kernels (default NumCPU)"},
		"BORN_SEED":        {"BORN_SEED", Seed, "Seed for the engine random source (default time based)"},
		"BORN_MAX_ALLOC":   {"BORN_MAX_ALLOC", MaxAllocBytes, "Largest single allocation in bytes (default unlimited)"},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// Clean quotes and spaces from the value
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

func init() {
	LoadConfig()
}

func LoadConfig() {
	// default values
	Debug = false
	NumThreads = runtime.NumCPU()
	Seed = 0
	MaxAllocBytes = 0

	if debug := clean("BORN_DEBUG"); debug != "" {
		d, err := strconv.ParseBool(debug)
		if err == nil {
			Debug = d
		} else {
			Debug = true
		}
	}

	if threads := clean("BORN_NUM_THREADS"); threads != "" {
		val, err := strconv.Atoi(threads)
		if err != nil || val <= 0 {
			slog.Error("invalid setting must be greater than zero", "BORN_NUM_THREADS", threads, "error", err)
		} else {
			NumThreads = val
		}
	}

	if seed := clean("BORN_SEED"); seed != "" {
		val, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			slog.Error("invalid setting, ignoring", "BORN_SEED", seed, "error", err)
		} else {
			Seed = val
		}
	}

	if limit := clean("BORN_MAX_ALLOC"); limit != "" {
		val, err := strconv.ParseInt(limit, 10, 64)
		if err != nil || val < 0 {
			slog.Error("invalid setting, ignoring", "BORN_MAX_ALLOC", limit, "error", err)
		} else {
			MaxAllocBytes = val
		}
	}
}
