package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/subosito/gotenv"

	"github.com/loteiro/loteiro/pkg/config"
	"github.com/loteiro/loteiro/pkg/server"
	"github.com/loteiro/loteiro/pkg/service"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "loteiro",
	})

	// Local development convenience; missing .env is fine.
	_ = gotenv.Load()

	flags := pflag.NewFlagSet("server", pflag.ExitOnError)
	cfgFile := flags.StringP("config", "c", "", "Config file (default loteiro.yaml)")
	flags.String("addr", ":3000", "Listen address")
	flags.String("token", "", "API bearer token (empty disables auth)")
	flags.String("xsd", "pain.001.001.09.xsd", "Schema file for XML validation")
	flags.String("delimiter", ";", "Column delimiter for delimited batch files")
	if err := flags.Parse(os.Args[1:]); err != nil {
		logger.Fatal("failed to parse flags", "err", err)
	}

	cfg, err := config.Build(*cfgFile, flags)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}

	checker, err := service.LoadChecker(cfg.XSD, logger)
	if err != nil {
		logger.Fatal("failed to load schema", "xsd", cfg.XSD, "err", err)
	}

	srv := server.New(cfg, logger, checker)
	logger.Info("starting server", "addr", cfg.Addr, "schema_validation", checker != nil)
	if err := srv.Start(cfg.Addr); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
