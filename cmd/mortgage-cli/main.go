package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cloud-ru/mortgage-engine-go/internal/config"
	"github.com/cloud-ru/mortgage-engine-go/internal/logging"
	"github.com/cloud-ru/mortgage-engine-go/internal/report"
	"github.com/cloud-ru/mortgage-engine-go/internal/service"
	"github.com/cloud-ru/mortgage-engine-go/internal/tracing"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func main() {
	op := flag.String("op", service.OpCalculate, "операция: "+strings.Join(service.Operations(), ", "))
	requestPath := flag.String("request", "", "путь к YAML-файлу запроса (по умолчанию stdin)")
	output := flag.String("output", "pretty", "формат вывода: pretty, csv, json")
	configPath := flag.String("config", "", "путь к YAML-файлу конфигурации")
	logLevel := flag.String("log-level", "", "уровень логов (debug, info, warn, error)")
	flag.Parse()

	if err := run(*op, *requestPath, *output, *configPath, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "ошибка: %v\n", err)
		os.Exit(1)
	}
}

func run(op, requestPath, output, configPath, logLevel string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel == "" {
		logLevel = "warn"
	}
	logger, err := logging.New(logLevel, "console")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	doc, err := readRequest(requestPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	tracer, shutdown, err := tracing.InitTracing(ctx, cfg.OTELServiceName, cfg.OTELEndpoint, logger)
	if err != nil {
		return err
	}
	defer func() { _ = shutdown(ctx) }()

	engine := service.New(cfg, tracer, logger)
	result, err := engine.Execute(ctx, op, func(v interface{}) error {
		return yaml.Unmarshal(doc, v)
	})
	if err != nil {
		return err
	}
	logger.Debug("операция выполнена", zap.String("op", op))

	return write(os.Stdout, op, output, result)
}

func readRequest(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения запроса %s: %w", path, err)
	}
	return doc, nil
}

func write(w io.Writer, op, output string, result interface{}) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "pretty", "csv":
		r, err := report.FromResult(op, result)
		if err != nil {
			return err
		}
		if output == "csv" {
			return report.WriteCSV(w, r)
		}
		return report.WritePretty(w, r)
	default:
		return fmt.Errorf("неизвестный формат вывода: %s", output)
	}
}
