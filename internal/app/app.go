package app

import (
	"net/http"
	"os"
	"strings"

	"wiserate/internal/adapters/ratesapi"
	"wiserate/internal/alert"
	"wiserate/internal/config"
	"wiserate/internal/exchange"
	"wiserate/internal/metrics"
	"wiserate/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// App wires configuration, stores and services for one process.
type App struct {
	Config   *config.AppConfig
	Metrics  *metrics.Metrics
	Exchange *exchange.Service
	Alerts   *alert.Service
}

// New builds the full dependency graph: config → logger → fetcher →
// stores → services.
func New() (*App, error) {
	cfg, err := config.Init()
	if err != nil {
		return nil, err
	}

	// Logger
	logrus.SetOutput(os.Stderr)
	if parsedLvl, parseErr := logrus.ParseLevel(cfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout()}
	fetcher := ratesapi.NewClient(httpClient, ratesapi.Config{
		BaseURL:           strings.TrimSuffix(cfg.API.BaseURL, "/"),
		Provider:          cfg.API.Provider,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		MaxWait:           cfg.LimiterMaxWait(),
		MaxAttempts:       cfg.RateLimit.MaxAttempts,
	})

	rateStore := store.NewRateStore(cfg.RatesFile())
	exchangeSvc, err := exchange.NewService(rateStore, fetcher, cfg.CacheTTL(), m)
	if err != nil {
		return nil, err
	}

	alertStore := store.NewAlertStore(cfg.AlertsFile())
	alertSvc, err := alert.NewService(alertStore, exchangeSvc, m)
	if err != nil {
		exchangeSvc.Close()
		return nil, err
	}

	return &App{
		Config:   cfg,
		Metrics:  m,
		Exchange: exchangeSvc,
		Alerts:   alertSvc,
	}, nil
}

func (a *App) Close() {
	a.Exchange.Close()
}
