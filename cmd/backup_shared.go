/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// gzipBySuffix enables gzip when the path ends in .gz even without the flag.
func gzipBySuffix(path string, gzipEnabled bool) bool {
	if gzipEnabled || path == "-" {
		return gzipEnabled
	}
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// openBackupOutput resolves the export destination, layering gzip on top when
// requested. Closers run in the returned order.
func openBackupOutput(cmd *cobra.Command, path string, gzipEnabled bool) (io.Writer, []func() error, error) {
	var (
		writer   = cmd.OutOrStdout()
		closeFns []func() error
	)

	if path != "-" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create output dir: %w", err)
			}
		}
		file, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("create backup file: %w", err)
		}
		writer = file
		closeFns = append(closeFns, file.Close)
	}

	if gzipEnabled {
		gz := gzip.NewWriter(writer)
		writer = gz
		closeFns = append([]func() error{gz.Close}, closeFns...)
	}

	return writer, closeFns, nil
}

// openBackupInput resolves the import source, unwrapping gzip when requested.
func openBackupInput(cmd *cobra.Command, path string, gzipEnabled bool) (io.Reader, []func() error, error) {
	var (
		reader  = cmd.InOrStdin()
		closers []func() error
	)

	if path != "-" {
		file, err := os.Open(filepath.Clean(path))
		if err != nil {
			return nil, nil, fmt.Errorf("open backup file: %w", err)
		}
		reader = file
		closers = append(closers, file.Close)
	}

	if gzipEnabled {
		gzr, err := gzip.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("create gzip reader: %w", err)
		}
		reader = gzr
		closers = append([]func() error{gzr.Close}, closers...)
	}

	return reader, closers, nil
}

func runClosers(closeFns []func() error, err *error) {
	for _, closer := range closeFns {
		if cerr := closer(); cerr != nil && *err == nil {
			*err = cerr
		}
	}
}
