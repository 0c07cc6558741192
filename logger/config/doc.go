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
 *
 */

// Package config is the Options tree falcotcpd and falcotcp-client parse
// their --log-* flags into before handing it to logger.New(...).SetOptions.
//
// A bare Options{} keeps stdout logging at whatever level SetLevel was
// called with. Enabling a file sink:
//
//	opts := &config.Options{
//	    LogFile: config.OptionsFiles{
//	        {LogLevel: []string{"Error", "Fatal"}, Filepath: path, Create: true, CreatePath: true},
//	    },
//	}
//
// Stdout, LogFile entries and LogSyslog entries all filter independently by
// level, so a deployment can ship errors to syslog while keeping stdout at
// Info for the foreground process. See Options.Validate for the constraints
// enforced before a logger will accept the tree.
package config
