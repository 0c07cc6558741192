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

package pool

import (
	"context"
	"sync"
	"time"

	libtls "github.com/FeatheredSystems/falcotcp/certificates"
	tcp "github.com/FeatheredSystems/falcotcp/socket/client/tcp"
)

// entry is one pool slot: a single persistent client socket plus the mutex
// that gives an in-flight request on this entry exclusive write/read use of
// it without blocking selection of a different entry.
type entry struct {
	mu  sync.Mutex
	cli tcp.ClientTCP
}

func dialEntry(ctx context.Context, address string, tlsCfg libtls.TLSConfig, serverName string, timeout time.Duration) (*entry, error) {
	cli, err := tcp.New(address)
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		if err := cli.SetTLS(true, tlsCfg, serverName); err != nil {
			return nil, err
		}
	}

	dctx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		dctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := cli.Connect(dctx); err != nil {
		return nil, err
	}

	return &entry{cli: cli}, nil
}
