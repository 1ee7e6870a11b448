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

func kindsFromConfig(key string) []string {
	return normalizeKinds(viper.GetStringSlice(key))
}

func normalizeKinds(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, value := range values {
		name := strings.TrimSpace(value)
		if name == "" {
			continue
		}
		result = append(result, strings.ToLower(name))
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// openOutput returns a writer for path ("-" is stdout), gzip-compressed when
// requested or when path ends in .gz, and a function closing everything opened.
func openOutput(cmd *cobra.Command, path string, gzipEnabled bool) (io.Writer, func() error, error) {
	if !gzipEnabled && path != "-" && strings.HasSuffix(strings.ToLower(path), ".gz") {
		gzipEnabled = true
	}

	var (
		writer   = cmd.OutOrStdout()
		closeFns []func() error
	)
	if path != "-" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create output directory: %w", err)
		}
		file, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("create output file: %w", err)
		}
		writer = file
		closeFns = append(closeFns, file.Close)
	}
	if gzipEnabled {
		gz := gzip.NewWriter(writer)
		writer = gz
		closeFns = append([]func() error{gz.Close}, closeFns...)
	}
	return writer, closeAll(closeFns), nil
}

// openInput mirrors openOutput for reading; "-" is stdin.
func openInput(cmd *cobra.Command, path string, gzipEnabled bool) (io.Reader, func() error, error) {
	if !gzipEnabled && path != "-" && strings.HasSuffix(strings.ToLower(path), ".gz") {
		gzipEnabled = true
	}

	var (
		reader  = cmd.InOrStdin()
		closers []func() error
	)
	if path != "-" {
		file, err := os.Open(filepath.Clean(path))
		if err != nil {
			return nil, nil, fmt.Errorf("open input file: %w", err)
		}
		reader = file
		closers = append(closers, file.Close)
	}
	if gzipEnabled {
		gzr, err := gzip.NewReader(reader)
		if err != nil {
			_ = closeAll(closers)()
			return nil, nil, fmt.Errorf("create gzip reader: %w", err)
		}
		reader = gzr
		closers = append([]func() error{gzr.Close}, closers...)
	}
	return reader, closeAll(closers), nil
}

func closeAll(fns []func() error) func() error {
	return func() error {
		var first error
		for _, closer := range fns {
			if err := closer(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}
}
