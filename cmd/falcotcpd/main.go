/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Command falcotcpd runs a standalone FalcoTCP reactor: it binds a listen
// address, optionally terminates an AEAD pipeline, and serves every accepted
// connection by echoing its decoded request back unmodified. It exists to
// exercise the reactor end to end from the command line rather than as an
// application server - production users embed package reactor directly and
// apply their own handler in place of the echo loop below.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FeatheredSystems/falcotcp/compress"
	"github.com/FeatheredSystems/falcotcp/duration"
	liblog "github.com/FeatheredSystems/falcotcp/logger"
	logcfg "github.com/FeatheredSystems/falcotcp/logger/config"
	loglvl "github.com/FeatheredSystems/falcotcp/logger/level"
	libptc "github.com/FeatheredSystems/falcotcp/network/protocol"
	"github.com/FeatheredSystems/falcotcp/pipeline"
	"github.com/FeatheredSystems/falcotcp/reactor"
	libsck "github.com/FeatheredSystems/falcotcp/socket"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	flagAddress        string
	flagMaxClients     int
	flagMaxMessageSize int64
	flagIdleTimeout    string
	flagAEADKeyHex     string
	flagMetricsAddr    string
	flagConfigFile     string
	flagLogLevel       string
	flagLogFile        string
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "falcotcpd",
		Short: "Run a FalcoTCP reactor that echoes decoded requests back to their caller",
		RunE:  runServe,
	}

	cmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "path to a config file (env FALCOTCPD_* and flags override it)")
	cmd.Flags().StringVar(&flagAddress, "address", ":4770", "listen address")
	cmd.Flags().IntVar(&flagMaxClients, "max-clients", reactor.DefaultMaxClients, "maximum number of simultaneously allocated client records")
	cmd.Flags().Int64Var(&flagMaxMessageSize, "max-message-size", reactor.DefaultMaxMessageSize, "maximum accepted frame body size in bytes")
	cmd.Flags().StringVar(&flagIdleTimeout, "idle-timeout", "5m", "idle window before a connection is reclaimed (duration.Parse syntax)")
	cmd.Flags().StringVar(&flagAEADKeyHex, "aead-key", "", "hex-encoded chacha20poly1305 key; empty disables encryption")
	cmd.Flags().StringVar(&flagMetricsAddr, "metrics-address", "", "address to serve /metrics on; empty disables the metrics server")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "minimum level logged to stdout (debug, info, warning, error)")
	cmd.Flags().StringVar(&flagLogFile, "log-file", "", "path to append Error-and-above log entries to; empty disables the file sink")

	bindViper(cmd)
	return cmd
}

// bindViper wires flags to FALCOTCPD_* environment variables and, if
// --config names a file, to that file's values - flags set explicitly on
// the command line still win, since cobra.OnInitialize runs after flag
// parsing and viper resolves each key as flag, then env, then file, then
// the flag's default.
func bindViper(cmd *cobra.Command) {
	v := viper.New()
	v.SetEnvPrefix("FALCOTCPD")
	v.AutomaticEnv()

	_ = v.BindPFlag("address", cmd.Flags().Lookup("address"))
	_ = v.BindPFlag("max-clients", cmd.Flags().Lookup("max-clients"))
	_ = v.BindPFlag("max-message-size", cmd.Flags().Lookup("max-message-size"))
	_ = v.BindPFlag("idle-timeout", cmd.Flags().Lookup("idle-timeout"))
	_ = v.BindPFlag("aead-key", cmd.Flags().Lookup("aead-key"))
	_ = v.BindPFlag("metrics-address", cmd.Flags().Lookup("metrics-address"))
	_ = v.BindPFlag("log-level", cmd.Flags().Lookup("log-level"))
	_ = v.BindPFlag("log-file", cmd.Flags().Lookup("log-file"))

	cobra.OnInitialize(func() {
		if flagConfigFile != "" {
			v.SetConfigFile(flagConfigFile)
			if err := v.ReadInConfig(); err != nil {
				fmt.Fprintf(os.Stderr, "falcotcpd: reading config %s: %v\n", flagConfigFile, err)
				os.Exit(1)
			}
		}
		if s := v.GetString("address"); s != "" {
			flagAddress = s
		}
		if n := v.GetInt("max-clients"); n != 0 {
			flagMaxClients = n
		}
		if n := v.GetInt64("max-message-size"); n != 0 {
			flagMaxMessageSize = n
		}
		if s := v.GetString("idle-timeout"); s != "" {
			flagIdleTimeout = s
		}
		if s := v.GetString("aead-key"); s != "" {
			flagAEADKeyHex = s
		}
		if s := v.GetString("metrics-address"); s != "" {
			flagMetricsAddr = s
		}
		if s := v.GetString("log-level"); s != "" {
			flagLogLevel = s
		}
		if s := v.GetString("log-file"); s != "" {
			flagLogFile = s
		}
	})
}

// newLogger builds the daemon's logger from --log-level / --log-file: stdout
// always runs at the requested level, and the file sink (when named) is
// restricted to Error and above so a long-running daemon doesn't fill disk
// with routine connection-state chatter.
func newLogger(ctx context.Context) (liblog.Logger, error) {
	lg := liblog.New(ctx)
	lg.SetLevel(loglvl.Parse(flagLogLevel))

	opts := &logcfg.Options{
		Stdout: &logcfg.OptionsStd{EnableTrace: false},
	}
	if flagLogFile != "" {
		opts.LogFile = logcfg.OptionsFiles{
			{
				LogLevel:   []string{"Error", "Fatal", "Critical"},
				Filepath:   flagLogFile,
				Create:     true,
				CreatePath: true,
			},
		}
	}
	if err := lg.SetOptions(opts); err != nil {
		return nil, err
	}

	return lg, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	lg, err := newLogger(ctx)
	if err != nil {
		return fmt.Errorf("falcotcpd: configuring logger: %w", err)
	}

	idle, err := duration.Parse(flagIdleTimeout)
	if err != nil {
		return fmt.Errorf("falcotcpd: invalid --idle-timeout %q: %w", flagIdleTimeout, err)
	}

	pcfg := pipeline.Config{Policy: compress.Balanced, Available: compress.AllAlgorithms}
	if flagAEADKeyHex != "" {
		key, err := pipeline.GetHexKey(flagAEADKeyHex)
		if err != nil {
			return fmt.Errorf("falcotcpd: invalid --aead-key: %w", err)
		}
		aead, err := pipeline.NewAEAD(key)
		if err != nil {
			return fmt.Errorf("falcotcpd: building AEAD: %w", err)
		}
		pcfg.AEAD = aead
	}

	rcfg := reactor.Config{
		Network:        libptc.NetworkTCP,
		Address:        flagAddress,
		MaxClients:     flagMaxClients,
		MaxMessageSize: flagMaxMessageSize,
		ConIdleTimeout: idle.Time(),
		Pipeline:       pcfg,
	}

	r, err := reactor.New(rcfg)
	if err != nil {
		return fmt.Errorf("falcotcpd: building reactor: %w", err)
	}

	r.RegisterFuncError(func(errs ...error) {
		for _, e := range errs {
			lg.Error("reactor I/O error", e)
		}
	})
	r.RegisterFuncInfo(func(local, remote net.Addr, state libsck.ConnState) {
		lg.Info("connection state change", nil, "local", local, "remote", remote, "state", state.String())
	})

	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()

	if flagMetricsAddr != "" {
		serveMetrics(runCtx, lg, r)
	}

	lg.Info("reactor listening", nil, "address", flagAddress)

	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(runCtx) }()
	go serveEcho(runCtx, r)

	select {
	case <-ctx.Done():
		lg.Info("shutdown signal received", nil)
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutCancel()
		if err := r.Shutdown(shutCtx); err != nil {
			lg.Error("reactor shutdown", err)
		}
		runCancel()
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}

// serveEcho drains every completed request and echoes its plaintext back
// unmodified - the same minimal handler the reactor's own tests exercise.
func serveEcho(ctx context.Context, r *reactor.Reactor) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		h := r.GetClient()
		if h == nil {
			time.Sleep(time.Millisecond)
			continue
		}
		plain, err := h.Decode()
		if err != nil {
			h.Drop()
			continue
		}
		_ = h.ApplyResponse(plain)
	}
}

func serveMetrics(ctx context.Context, lg liblog.Logger, r *reactor.Reactor) {
	reg := prometheus.NewRegistry()
	if err := r.RegisterMetrics(reg); err != nil {
		lg.Error("registering reactor metrics", err)
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: flagMetricsAddr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Error("metrics server", err)
		}
	}()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
