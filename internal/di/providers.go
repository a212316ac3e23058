package di

import (
	"context"
	"fmt"
	"time"

	"CandlePull/internal/domain/repository"
	internalrepo "CandlePull/internal/repository"
	"CandlePull/internal/service/binance"
	"CandlePull/internal/service/cache"
	"CandlePull/internal/usecase"
	pkgch "CandlePull/pkg/clickhouse"
	"CandlePull/pkg/config"
	xhttp "CandlePull/pkg/http"
	pkgkafka "CandlePull/pkg/kafka"
	applogger "CandlePull/pkg/logger"
	"CandlePull/pkg/metrics"
	"CandlePull/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideHTTPClient creates the exchange HTTP client.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(
		xhttp.WithTimeout(cfg.Exchange.Timeout),
		xhttp.WithInsecureTLS(cfg.Exchange.InsecureSkipVerify),
	)
}

// ProvideCandleSource creates the Binance kline source.
func ProvideCandleSource(cfg *config.Config, httpc *xhttp.Client, l *applogger.Logger) repository.CandleSource {
	return binance.New(cfg.Exchange.BaseURL, httpc, l)
}

// ProvideKlineCache creates the freshness cache, or nil when disabled.
func ProvideKlineCache(cfg *config.Config) cache.BytesCache {
	if !cfg.Cache.Enabled {
		return nil
	}
	if cfg.Cache.Backend == "redis" {
		return cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return cache.NewTTLCache()
}

// ProvideClickHouseClient creates a ClickHouse client when the
// ClickHouse export backend is selected, nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Export.Backend != "clickhouse" {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithAddress(cfg.Export.ClickHouse.Host, cfg.Export.ClickHouse.Port),
		pkgch.WithDatabase(cfg.Export.ClickHouse.Database),
		pkgch.WithCredentials(cfg.Export.ClickHouse.User, cfg.Export.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.Export.ClickHouse.DialTimeout, cfg.Export.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, internalrepo.FeatureTableDDL); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer when the Kafka export
// backend is selected, nil otherwise.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Export.Backend != "kafka" {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Export.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Export.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Export.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Export.Kafka.MaxAttempts),
		pkgkafka.WithBatch(cfg.Export.Kafka.BatchSize, cfg.Export.Kafka.Linger),
		pkgkafka.WithTimeouts(cfg.Export.Kafka.WriteTimeout, cfg.Export.Kafka.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideSinks assembles the sink chain. The CSV sink is always first;
// the optional export sink runs after it so a local file exists even
// when the export fails.
func ProvideSinks(
	cfg *config.Config,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	l *applogger.Logger,
) []repository.FeatureSink {
	sinks := []repository.FeatureSink{
		internalrepo.NewCSVFeatureStore(cfg.Output.Dir),
	}
	if chClient != nil {
		sinks = append(sinks, internalrepo.NewCHFeatureStore(chClient, cfg.Export.ClickHouse.Table, l))
	}
	if producer != nil {
		sinks = append(sinks, internalrepo.NewKafkaFeaturePublisher(producer, cfg.Export.Kafka.Topic))
	}
	return sinks
}

// ProvideResults creates the in-memory table of computed features.
func ProvideResults() *usecase.ResultSet {
	return usecase.NewResultSet()
}

// ProvidePipeline creates the fetch-compute-write pipeline.
func ProvidePipeline(
	source repository.CandleSource,
	sinks []repository.FeatureSink,
	klineCache cache.BytesCache,
	cfg *config.Config,
	m repository.Metrics,
	results *usecase.ResultSet,
	l *applogger.Logger,
) *usecase.Pipeline {
	return usecase.NewPipeline(source, sinks, klineCache, cfg.Cache.TTL, m, results, l)
}

// ProvideApp creates the application.
func ProvideApp(
	cfg *config.Config,
	pipeline *usecase.Pipeline,
	results *usecase.ResultSet,
	opts *server.Options,
	l *applogger.Logger,
) *server.App {
	return server.New(cfg, pipeline, results, opts, l)
}
