package di

import (
	"context"
	"fmt"
	"strings"
	"time"

	"RiskFill/internal/domain/repository"
	"RiskFill/internal/handler/api"
	internalrepo "RiskFill/internal/repository"
	icache "RiskFill/internal/service/cache"
	"RiskFill/internal/service/fred"
	"RiskFill/internal/usecase"
	pcache "RiskFill/pkg/cache"
	pkgch "RiskFill/pkg/clickhouse"
	"RiskFill/pkg/config"
	xhttp "RiskFill/pkg/http"
	pkgkafka "RiskFill/pkg/kafka"
	"RiskFill/pkg/logger"
	"RiskFill/pkg/metrics"
	"RiskFill/pkg/server"
)

// ProvideLogger builds the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(logger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideHTTPClient creates the rate-limited client used for FRED.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(
		xhttp.WithTimeout(cfg.Fred.Timeout),
		xhttp.WithRateLimit(cfg.Fred.RatePerSec, 1),
	)
}

// ProvideFredClient creates the FRED observations client.
func ProvideFredClient(cfg *config.Config, hc *xhttp.Client, l *logger.Logger, m repository.Metrics) *fred.Client {
	return fred.New(cfg.Fred.APIKey, cfg.Fred.BaseURL, hc, l.With(logger.String("component", "fred")), m)
}

// ProvideCache creates the series cache backend, or nil when caching is disabled.
func ProvideCache(cfg *config.Config) (pcache.Service, func(), error) {
	if !cfg.Cache.Enabled {
		return nil, func() {}, nil
	}

	memOpts := []pcache.MemoryOption{
		pcache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize),
		pcache.WithMemoryCleanup(cfg.Cache.CleanupInterval),
	}
	if cfg.Cache.Backend == "memory" {
		mc := pcache.NewMemoryCache(memOpts...)
		return mc, func() { _ = mc.Close() }, nil
	}

	rc, err := pcache.NewRedisCache(
		pcache.WithRedisHost(cfg.Cache.Host),
		pcache.WithRedisPort(cfg.Cache.Port),
		pcache.WithRedisPassword(cfg.Cache.Password),
		pcache.WithRedisDB(cfg.Cache.DB),
		pcache.WithRedisPrefix(cfg.Cache.Prefix),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis cache: %w", err)
	}
	if cfg.Cache.Backend == "layered" {
		lc := pcache.NewLayeredCache(rc, cfg.Cache.L1TTL, memOpts...)
		return lc, func() { _ = lc.Close() }, nil
	}
	return rc, func() { _ = rc.Close() }, nil
}

// ProvideSeriesFetcher returns the FRED client, wrapped in a cache when one is configured.
func ProvideSeriesFetcher(cfg *config.Config, client *fred.Client, store pcache.Service, l *logger.Logger) repository.SeriesFetcher {
	if store == nil {
		return client
	}
	return icache.NewCachedFetcher(client, store, cfg.Cache.TTL, l.With(logger.String("component", "series_cache")))
}

// ProvideHistoryBuilder creates the history builder use case.
func ProvideHistoryBuilder(cfg *config.Config, fetcher repository.SeriesFetcher, m repository.Metrics, l *logger.Logger) *usecase.HistoryBuilder {
	return usecase.NewHistoryBuilder(fetcher, cfg.Fred.Series, cfg.Fred.Parallel, m, l)
}

// ProvideSinks assembles the output sinks: the history file always, ClickHouse and Kafka when enabled.
func ProvideSinks(cfg *config.Config, l *logger.Logger) ([]repository.RiskSink, func(), error) {
	var sinks []repository.RiskSink
	cleanup := func() {
		for _, s := range sinks {
			if err := s.Close(); err != nil {
				l.Warn("sink close error", logger.String("sink", s.Name()), logger.Error(err))
			}
		}
	}

	if cfg.Backfill.Format == "xlsx" {
		sinks = append(sinks, internalrepo.NewXLSXSink(xlsxPath(cfg.Backfill.Output), l))
	} else {
		sinks = append(sinks, internalrepo.NewJSONFileSink(cfg.Backfill.Output, l))
	}

	if cfg.ClickHouse.Enabled {
		ch, err := ProvideClickHouseClient(cfg)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		sinks = append(sinks, &closingSink{
			RiskSink: internalrepo.NewCHRiskSink(ch.DB(), cfg.ClickHouse.Database, cfg.ClickHouse.Table, l),
			close:    ch.Close,
		})
	}

	if cfg.Kafka.Enabled {
		producer, err := ProvideKafkaProducer(cfg)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		sinks = append(sinks, internalrepo.NewKafkaRiskSink(producer, cfg.Kafka.Topic, l))
	}

	return sinks, cleanup, nil
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the history table exists.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, internalrepo.SchemaStatements(cfg.ClickHouse.Database, cfg.ClickHouse.Table)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.BatchSize),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideBackfill creates the backfill use case.
func ProvideBackfill(builder *usecase.HistoryBuilder, sinks []repository.RiskSink, m repository.Metrics, l *logger.Logger) *usecase.BackfillUseCase {
	return usecase.NewBackfillUseCase(builder, sinks, m, l)
}

// ProvideRiskHandler creates the HTTP handler for serve mode.
func ProvideRiskHandler(cfg *config.Config, builder *usecase.HistoryBuilder, l *logger.Logger) *api.RiskEchoHandler {
	return api.NewRiskEchoHandler(l, builder, cfg.Backfill.WindowDays)
}

// ProvideApp creates the application.
func ProvideApp(cfg *config.Config, l *logger.Logger, backfill *usecase.BackfillUseCase, handler *api.RiskEchoHandler) *server.App {
	return server.New(cfg, l, backfill, handler)
}

// closingSink releases the client behind a sink that does not own it.
type closingSink struct {
	repository.RiskSink
	close func() error
}

func (s *closingSink) Close() error {
	err := s.RiskSink.Close()
	if cerr := s.close(); err == nil {
		err = cerr
	}
	return err
}

func xlsxPath(out string) string {
	if strings.HasSuffix(out, ".json") {
		return strings.TrimSuffix(out, ".json") + ".xlsx"
	}
	return out
}
