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

// Package pidcontroller drives a process variable from a start value to a
// setpoint using a discrete PID loop, sampling the value at every step.
// duration uses it to turn a (from, to) pair into a non-linear list of
// intermediate durations for retry/backoff ranges instead of a plain
// linear split.
package pidcontroller

import (
	"context"
)

// maxSteps bounds the loop so a controller that never converges (e.g. all
// gains zero) cannot spin forever.
const maxSteps = 256

// epsilon is the fraction of the total span considered "close enough" to
// the setpoint to stop stepping.
const epsilon = 0.005

// Controller is a discrete PID loop: at each step it measures the error
// between the current value and the setpoint, and moves the value by
// Kp*error + Ki*integral + Kd*derivative.
type Controller struct {
	kp, ki, kd float64
}

// New returns a Controller configured with the given proportional,
// integral and derivative gains.
func New(kp, ki, kd float64) *Controller {
	return &Controller{kp: kp, ki: ki, kd: kd}
}

// RangeCtx steps the controller from from to to, returning every
// intermediate value it visited along with the starting and ending
// value. Stepping stops early, returning whatever was collected so far,
// if ctx is done.
func (c *Controller) RangeCtx(ctx context.Context, from, to float64) []float64 {
	r := []float64{from}

	if from == to {
		return r
	}

	span := to - from
	bound := span
	if bound < 0 {
		bound = -bound
	}
	stop := bound * epsilon

	var (
		pv       = from
		integral float64
		prevErr  float64
	)

	for i := 0; i < maxSteps; i++ {
		select {
		case <-ctx.Done():
			return appendEnd(r, to)
		default:
		}

		errv := to - pv
		if abs(errv) <= stop {
			break
		}

		integral += errv
		derivative := errv - prevErr
		prevErr = errv

		pv += c.kp*errv + c.ki*integral + c.kd*derivative
		r = append(r, pv)
	}

	return appendEnd(r, to)
}

func appendEnd(r []float64, to float64) []float64 {
	if len(r) == 0 || r[len(r)-1] != to {
		r = append(r, to)
	}
	return r
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
