// Command towersave converts a tower-unite-save binary save file to a
// human-editable JSON document and back, byte-for-byte.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/brecert/towersave/internal/config"
	"github.com/brecert/towersave/internal/logging"
	"github.com/brecert/towersave/internal/suitebro"
)

var cfg config.Convert

func main() {
	root := &cobra.Command{
		Use:           "towersave",
		Short:         "Convert tower-unite-save binary saves to/from JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(toJSONCmd(), toSaveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func toJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "to-json",
		Short: "Decode a binary save file to JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(runToJSON)
		},
	}
	bindIO(cmd)
	return cmd
}

func toSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "to-save",
		Short: "Encode a JSON document back to a binary save file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(runToSave)
		},
	}
	bindIO(cmd)
	return cmd
}

func bindIO(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&cfg.Input, "input", "i", "", "input file path (required)")
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", "", "output file path (required)")
	cmd.Flags().BoolVarP(&cfg.Overwrite, "overwrite", "f", false, "allow overwriting an existing output file")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")
}

func run(fn func(*zap.Logger) error) error {
	log, err := logging.New(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	if err := fn(log); err != nil {
		log.Error("conversion failed", zap.Error(err))
		return err
	}
	return nil
}

func runToJSON(log *zap.Logger) error {
	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("read %s: %w", cfg.Input, err)
	}

	file, err := suitebro.Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", cfg.Input, err)
	}

	var warnErr error
	for _, w := range file.ResidueWarnings() {
		warnErr = multierr.Append(warnErr, w)
	}
	if warnErr != nil {
		log.Warn("tinyrick sub-buffer residue detected", zap.Error(warnErr))
	}

	out, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("render json: %w", err)
	}

	if err := writeOutput(out); err != nil {
		return err
	}

	log.Info("wrote json",
		zap.String("path", cfg.Output),
		zap.String("size", humanize.Bytes(uint64(len(out)))),
		zap.Int("items", len(file.Items)))
	return nil
}

func runToSave(log *zap.Logger) error {
	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("read %s: %w", cfg.Input, err)
	}

	var file suitebro.File
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse %s: %w", cfg.Input, err)
	}

	out, err := file.Encode()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if err := writeOutput(out); err != nil {
		return err
	}

	log.Info("wrote save",
		zap.String("path", cfg.Output),
		zap.String("size", humanize.Bytes(uint64(len(out)))),
		zap.Int("items", len(file.Items)))
	return nil
}

func writeOutput(data []byte) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !cfg.Overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(cfg.Output, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%s already exists, pass --overwrite to replace it", cfg.Output)
		}
		return fmt.Errorf("open %s: %w", cfg.Output, err)
	}
	defer f.Close()
	_, err = f.Write(data)
	return err
}
