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

// Command falcotcp-client drives a connection pool against a FalcoTCP
// reactor, either for a single request ("send") or a repeated-request
// benchmark ("bench") reporting round-trip latency.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/FeatheredSystems/falcotcp/compress"
	"github.com/FeatheredSystems/falcotcp/duration"
	"github.com/FeatheredSystems/falcotcp/pipeline"
	"github.com/FeatheredSystems/falcotcp/pool"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	flagAddress       string
	flagPoolSize      int
	flagMaxMitigation int
	flagDialTimeout   string
	flagAEADKeyHex    string
	flagConfigFile    string

	flagBenchCount     int
	flagBenchBodyBytes int
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "falcotcp-client",
		Short: "Send requests to a FalcoTCP reactor through a pooled connection",
	}

	root.PersistentFlags().StringVar(&flagConfigFile, "config", "", "path to a config file (env FALCOTCP_CLIENT_* and flags override it)")
	root.PersistentFlags().StringVar(&flagAddress, "address", "localhost:4770", "reactor address to dial")
	root.PersistentFlags().IntVar(&flagPoolSize, "pool-size", 4, "number of persistent connections to keep open")
	root.PersistentFlags().IntVar(&flagMaxMitigation, "max-mitigation", 1, "broken-pipe mitigations absorbed per request before the error surfaces")
	root.PersistentFlags().StringVar(&flagDialTimeout, "dial-timeout", "5s", "per-connection dial timeout (duration.Parse syntax)")
	root.PersistentFlags().StringVar(&flagAEADKeyHex, "aead-key", "", "hex-encoded chacha20poly1305 key; must match the server's")

	bindViper(root)

	send := &cobra.Command{
		Use:   "send [message]",
		Short: "Send one request and print the decoded response",
		Args:  cobra.ExactArgs(1),
		RunE:  runSend,
	}
	root.AddCommand(send)

	bench := &cobra.Command{
		Use:   "bench",
		Short: "Send a burst of requests and report round-trip latency",
		RunE:  runBench,
	}
	bench.Flags().IntVar(&flagBenchCount, "count", 1000, "number of requests to send")
	bench.Flags().IntVar(&flagBenchBodyBytes, "body-bytes", 256, "size in bytes of each request body")
	root.AddCommand(bench)

	return root
}

func bindViper(cmd *cobra.Command) {
	v := viper.New()
	v.SetEnvPrefix("FALCOTCP_CLIENT")
	v.AutomaticEnv()

	_ = v.BindPFlag("address", cmd.PersistentFlags().Lookup("address"))
	_ = v.BindPFlag("pool-size", cmd.PersistentFlags().Lookup("pool-size"))
	_ = v.BindPFlag("max-mitigation", cmd.PersistentFlags().Lookup("max-mitigation"))
	_ = v.BindPFlag("dial-timeout", cmd.PersistentFlags().Lookup("dial-timeout"))
	_ = v.BindPFlag("aead-key", cmd.PersistentFlags().Lookup("aead-key"))

	cobra.OnInitialize(func() {
		if flagConfigFile != "" {
			v.SetConfigFile(flagConfigFile)
			if err := v.ReadInConfig(); err != nil {
				fmt.Fprintf(os.Stderr, "falcotcp-client: reading config %s: %v\n", flagConfigFile, err)
				os.Exit(1)
			}
		}
		if s := v.GetString("address"); s != "" {
			flagAddress = s
		}
		if n := v.GetInt("pool-size"); n != 0 {
			flagPoolSize = n
		}
		if n := v.GetInt("max-mitigation"); n != 0 {
			flagMaxMitigation = n
		}
		if s := v.GetString("dial-timeout"); s != "" {
			flagDialTimeout = s
		}
		if s := v.GetString("aead-key"); s != "" {
			flagAEADKeyHex = s
		}
	})
}

func buildPool(ctx context.Context) (*pool.Pool, error) {
	dial, err := duration.Parse(flagDialTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid --dial-timeout %q: %w", flagDialTimeout, err)
	}

	pcfg := pipeline.Config{Policy: compress.Balanced, Available: compress.AllAlgorithms}
	if flagAEADKeyHex != "" {
		key, err := pipeline.GetHexKey(flagAEADKeyHex)
		if err != nil {
			return nil, fmt.Errorf("invalid --aead-key: %w", err)
		}
		aead, err := pipeline.NewAEAD(key)
		if err != nil {
			return nil, fmt.Errorf("building AEAD: %w", err)
		}
		pcfg.AEAD = aead
	}

	return pool.New(ctx, pool.Config{
		Address:       flagAddress,
		Size:          flagPoolSize,
		DialTimeout:   dial.Time(),
		MaxMitigation: flagMaxMitigation,
		Pipeline:      pcfg,
	})
}

func runSend(_ *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p, err := buildPool(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	resp, err := p.Do(ctx, []byte(args[0]))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	fmt.Println(string(resp))
	return nil
}

func runBench(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	p, err := buildPool(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	p.RegisterMetrics(prometheus.NewRegistry())

	body := make([]byte, flagBenchBodyBytes)
	for i := range body {
		body[i] = byte(i)
	}

	start := time.Now()
	var failures int
	for i := 0; i < flagBenchCount; i++ {
		if _, err := p.Do(ctx, body); err != nil {
			failures++
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("sent %d requests in %s (%.0f req/s), %d failures\n",
		flagBenchCount, elapsed, float64(flagBenchCount)/elapsed.Seconds(), failures)
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
