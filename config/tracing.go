package config

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/akeren/consent-intake/internal/log"
	"github.com/akeren/consent-intake/pkg/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

const (
	defaultOTLPEndpoint = "http://localhost:4318"
	defaultTracesPath   = "/v1/traces"
	serviceNamespace    = "consent"
)

// TracingConfig describes where consent-intake spans go and how many are kept.
type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Environment string
	Endpoint    OTLPEndpoint
	SampleRatio float64
}

type OTLPEndpoint struct {
	HostPort string
	Path     string
	Insecure bool
}

// NewTracingConfig reads OTEL_* variables. Nothing else is parsed while
// tracing is disabled.
func NewTracingConfig() (*TracingConfig, error) {
	cfg := &TracingConfig{Enabled: utils.IsTracingEnabled()}
	if !cfg.Enabled {
		return cfg, nil
	}

	cfg.ServiceName = utils.OTelServiceName()
	cfg.Environment = GetAppEnv()
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	endpoint, err := parseOTLPEndpoint(utils.GetEnvTrimmedOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", defaultOTLPEndpoint))
	if err != nil {
		return nil, err
	}
	cfg.Endpoint = endpoint

	cfg.SampleRatio = 1
	if raw := utils.GetEnvTrimmed("OTEL_TRACES_SAMPLER_ARG"); raw != "" {
		ratio, err := strconv.ParseFloat(raw, 64)
		if err != nil || ratio < 0 || ratio > 1 {
			return nil, fmt.Errorf("OTEL_TRACES_SAMPLER_ARG must be a number between 0 and 1, got %q", raw)
		}
		cfg.SampleRatio = ratio
	}

	return cfg, nil
}

// SetupTracing installs the global tracer provider used by the router and the
// submission service. The returned shutdown is nil when tracing is off.
func SetupTracing(logger *log.Logger) (func(context.Context) error, error) {
	cfg, err := NewTracingConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, nil
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(cfg.Endpoint.HostPort),
		otlptracehttp.WithURLPath(cfg.Endpoint.Path),
	}
	if cfg.Endpoint.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create consent-intake trace exporter: %w", err)
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.namespace", serviceNamespace),
			attribute.String("deployment.environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create consent-intake trace resource: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(cfg.SampleRatio))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	logger.Info("Tracing enabled",
		"service", cfg.ServiceName,
		"environment", cfg.Environment,
		"endpoint", cfg.Endpoint.HostPort+cfg.Endpoint.Path,
		"sample_ratio", cfg.SampleRatio,
	)

	return tp.Shutdown, nil
}

// parseOTLPEndpoint accepts http(s)://host:port[/path] or a bare host:port,
// which is sent over plain http to the default traces path.
func parseOTLPEndpoint(raw string) (OTLPEndpoint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return OTLPEndpoint{}, fmt.Errorf("empty OTLP endpoint")
	}

	if !strings.Contains(raw, "://") {
		if strings.ContainsAny(raw, "/?#") {
			return OTLPEndpoint{}, fmt.Errorf("invalid OTLP endpoint %q: use http://host:port/path to set a path", raw)
		}
		return OTLPEndpoint{HostPort: raw, Path: defaultTracesPath, Insecure: true}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return OTLPEndpoint{}, fmt.Errorf("invalid OTLP endpoint %q: %w", raw, err)
	}
	if u.Host == "" {
		return OTLPEndpoint{}, fmt.Errorf("invalid OTLP endpoint %q: missing host", raw)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return OTLPEndpoint{}, fmt.Errorf("unsupported OTLP endpoint scheme %q (http or https)", u.Scheme)
	}

	path := u.EscapedPath()
	if path == "" || path == "/" {
		path = defaultTracesPath
	}

	return OTLPEndpoint{HostPort: u.Host, Path: path, Insecure: scheme == "http"}, nil
}
