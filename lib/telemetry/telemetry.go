package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"webdoc/lib/configutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Telemetry struct {
	shutdownFuncs []func(context.Context) error
}

func (t Telemetry) Shutdown(ctx context.Context) error {
	var errlist []error
	for _, shutdown := range t.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			errlist = append(errlist, err)
		}
	}
	return errors.Join(errlist...)
}

type OtlpConnConfig struct {
	GrpcEndpoint string            `json:"grpc_endpoint"`
	HttpEndpoint string            `json:"http_endpoint"`
	Headers      map[string]string `json:"headers"`
}

type OtlpConfig struct {
	Traces  OtlpConnConfig `json:"traces"`
	Metrics OtlpConnConfig `json:"metrics"`
}

type Config struct {
	Otlp  OtlpConfig `json:"otlp"`
	Debug bool       `json:"debug"`
}

// Tracer is a shorthand for otel.Tracer so call sites only import this
// package.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

func InitSlog(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// SetupFromEnv searches up the filesystem from the cwd for a
// telemetry.json5 file and uses it to set up telemetry. A missing file
// is not an error: logging is initialized and export is skipped.
func SetupFromEnv(ctx context.Context, serviceName string) (Telemetry, error) {
	config, err := configutil.ReadRecursively[Config]("telemetry.json5")
	if os.IsNotExist(err) {
		InitSlog(false)
		return Telemetry{}, nil
	}
	if err != nil {
		return Telemetry{}, err
	}
	return Setup(ctx, serviceName, config)
}

func Setup(ctx context.Context, serviceName string, config Config) (Telemetry, error) {
	InitSlog(config.Debug)

	r, err := newResource(serviceName)
	if err != nil {
		return Telemetry{}, err
	}

	var tel Telemetry

	tracerProvider, err := newTraceProvider(ctx, r, config)
	if err != nil {
		return Telemetry{}, err
	}
	otel.SetTracerProvider(tracerProvider)
	tel.shutdownFuncs = append(tel.shutdownFuncs, tracerProvider.Shutdown)

	meterProvider, err := newMetricProvider(ctx, r, config)
	if err != nil {
		return tel, err
	}
	otel.SetMeterProvider(meterProvider)
	tel.shutdownFuncs = append(tel.shutdownFuncs, meterProvider.Shutdown)

	return tel, nil
}

var setupTestEnvironments = map[string]bool{}

// SetupForTesting sets up telemetry in a testing environment, ensuring
// that it isn't set up more than once per service name.
func SetupForTesting(t testing.TB, serviceName string) func() {
	if setupTestEnvironments[serviceName] {
		return func() {}
	}
	setupTestEnvironments[serviceName] = true

	tel, err := SetupFromEnv(context.Background(), serviceName)
	if err != nil {
		t.Fatal(err)
	}
	return func() {
		err := tel.Shutdown(context.Background())
		if err != nil {
			t.Fatal(err)
		}
	}
}
