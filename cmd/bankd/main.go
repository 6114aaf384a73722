package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"bankd/audit"
	"bankd/bank"
	"bankd/sim"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bankd",
		Short:         "banker's-algorithm admission engine simulator",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.Int("epochs", 600, "number of epochs to simulate")
	flags.Duration("tick", 50*time.Millisecond, "sleep between epochs")
	flags.Int64("seed", 1, "rng seed")
	flags.Uint64("treasury", 0, "initial treasury budget")
	flags.String("loan-rate", "0.01", "loan interest rate (bank's cut)")
	flags.String("deposit-rate", "0.005", "deposit interest rate")
	flags.String("brokers", "", "comma-separated kafka brokers for the audit feed")
	flags.String("topic", "bankd.audit", "audit feed topic")
	flags.Bool("debug", false, "verbose logging")

	viper.SetEnvPrefix("BANKD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	cobra.CheckErr(viper.BindPFlags(flags))

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	logger, err := buildLogger(viper.GetBool("debug"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	loanRate, err := decimal.NewFromString(viper.GetString("loan-rate"))
	if err != nil {
		return fmt.Errorf("loan-rate: %w", err)
	}
	depositRate, err := decimal.NewFromString(viper.GetString("deposit-rate"))
	if err != nil {
		return fmt.Errorf("deposit-rate: %w", err)
	}

	engine, err := bank.New(viper.GetUint64("treasury"), loanRate, depositRate)
	if err != nil {
		return err
	}

	var sink audit.Sink = audit.Nop{}
	if brokers := viper.GetString("brokers"); brokers != "" {
		sink = audit.NewProducer(strings.Split(brokers, ","), viper.GetString("topic"))
		sugar.Infow("audit feed enabled", "brokers", brokers, "topic", viper.GetString("topic"))
	}
	defer func() { _ = sink.Close() }()

	driver := sim.NewDriver(sim.Config{
		Epochs: viper.GetInt("epochs"),
		Tick:   viper.GetDuration("tick"),
		Seed:   viper.GetInt64("seed"),
	}, engine, sink, sugar)

	sugar.Infow("starting simulation",
		"epochs", viper.GetInt("epochs"),
		"seed", viper.GetInt64("seed"),
		"treasury", viper.GetUint64("treasury"),
		"loan_rate", loanRate,
		"deposit_rate", depositRate,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := driver.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	tally := driver.Tally()
	sugar.Infow("simulation finished",
		"epochs", driver.Epoch(),
		"treasury", engine.Treasury(),
		"accounts", engine.AccountCount(),
		"loans_accepted", tally.LoansAccepted,
		"loans_rejected", tally.LoansRejected,
		"ops_accepted", tally.OpsAccepted,
		"ops_rejected", tally.OpsRejected,
	)
	return nil
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopmentConfig().Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	return cfg.Build()
}
