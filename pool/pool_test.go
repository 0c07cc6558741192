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

package pool_test

import (
	"context"
	"time"

	liberr "github.com/FeatheredSystems/falcotcp/errors"
	"github.com/FeatheredSystems/falcotcp/pool"
	"github.com/FeatheredSystems/falcotcp/reactor"
	"github.com/prometheus/client_golang/prometheus"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Pool", func() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
		addr   string
		r      *reactor.Reactor
		p      *pool.Pool
	)

	AfterEach(func() {
		if p != nil {
			_ = p.Close()
		}
		if cancel != nil {
			cancel()
		}
		time.Sleep(10 * time.Millisecond)
	})

	Context("round trips", func() {
		BeforeEach(func() {
			ctx, cancel = context.WithCancel(context.Background())
			addr, r = startEchoReactor(ctx)

			var err error
			p, err = pool.New(ctx, pool.Config{
				Address: addr,
				Size:    3,
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("dials Size connections up front", func() {
			Expect(p.Len()).To(Equal(3))
		})

		It("round-trips a request through the echo reactor", func() {
			body := randomBody(256)
			resp, err := p.Do(ctx, body)
			Expect(err).ToNot(HaveOccurred())
			Expect(resp).To(Equal(body))
		})

		It("serves many sequential requests without growing the pool", func() {
			for i := 0; i < 20; i++ {
				resp, err := p.Do(ctx, randomBody(32))
				Expect(err).ToNot(HaveOccurred())
				Expect(resp).To(HaveLen(32))
			}
			Expect(p.Len()).To(Equal(3))
		})

		It("feeds round trips into registered metrics", func() {
			reg := prometheus.NewRegistry()
			p.RegisterMetrics(reg)

			_, err := p.Do(ctx, randomBody(8))
			Expect(err).ToNot(HaveOccurred())

			families, err := reg.Gather()
			Expect(err).ToNot(HaveOccurred())
			Expect(families).ToNot(BeEmpty())
		})
	})

	Context("construction failures", func() {
		It("fails outright when the endpoint refuses every dial", func() {
			ctx, cancel = context.WithCancel(context.Background())
			_, err := pool.New(ctx, pool.Config{
				Address: getTestAddr(), // nothing listening
				Size:    2,
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Context("mitigation", func() {
		It("exhausts the pool once the endpoint is gone and mitigation cannot redial", func() {
			ctx, cancel = context.WithCancel(context.Background())
			addr, r = startEchoReactor(ctx)

			var err error
			p, err = pool.New(ctx, pool.Config{
				Address:       addr,
				Size:          1,
				MaxMitigation: 1,
			})
			Expect(err).ToNot(HaveOccurred())

			// Prove the connection is live before tearing the server down.
			_, err = p.Do(ctx, randomBody(8))
			Expect(err).ToNot(HaveOccurred())

			shutCtx, shutCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer shutCancel()
			Expect(r.Shutdown(shutCtx)).To(Succeed())

			_, err = p.Do(ctx, randomBody(8))
			Expect(err).To(HaveOccurred())
			Expect(liberr.Has(err, liberr.ErrPoolExhausted)).To(BeTrue())
		})
	})

	Context("Close", func() {
		It("releases every entry and leaves the pool empty", func() {
			ctx, cancel = context.WithCancel(context.Background())
			addr, r = startEchoReactor(ctx)

			var err error
			p, err = pool.New(ctx, pool.Config{
				Address: addr,
				Size:    2,
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(p.Close()).To(Succeed())
			Expect(p.Len()).To(Equal(0))
		})
	})
})
