/*
 * main.go, part of emperor.
 *
 * Copyright 2025 The emperor authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// emperor is a small web service and CLI around the DFTB+ program:
// it normalizes pasted geometry (gen format or VASP5 POSCAR) into
// canonical gen blocks, prepares job directories with rendered
// dftb_in.hsd inputs, runs the solver and serves the results.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	geom "emperor"
	"emperor/config"
	"emperor/dftb"
	"emperor/job"
	"emperor/server"
	"emperor/vasp"
)

const version = "1.1.0"

var (
	cfgPath string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "emperor",
	Short: "Geometry gateway for the DFTB+ solver",
	Long: `emperor normalizes user-pasted atomic structures (gen format,
wrapped HSD geometry stanzas, or VASP5 POSCAR) into canonical gen
blocks, builds DFTB+ inputs from them and manages solver runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		store, err := job.NewStore(cfg.DataDir, cfg.DFTBPrefix)
		if err != nil {
			return err
		}
		runner := dftb.NewRunner(cfg.SolverBinary, cfg.RunTimeout(), cfg.MaxRuns, logger)
		srv := &http.Server{
			Addr:    cfg.Listen,
			Handler: server.New(logger, store, runner, cfg.DFTBPrefix, vasp.Reader{}).Handler(),
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("listening",
				zap.String("addr", cfg.Listen),
				zap.String("dftb_prefix", cfg.DFTBPrefix),
				zap.Strings("param_sets", dftb.AvailableParamSets(cfg.DFTBPrefix)))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case sig := <-stop:
			logger.Info("shutting down", zap.String("signal", sig.String()))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Normalize a geometry file (or stdin) to a canonical gen block",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var raw []byte
		var err error
		if len(args) == 1 {
			raw, err = os.ReadFile(args[0])
		} else {
			raw, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return err
		}
		g, err := geom.Normalize(string(raw), vasp.Reader{})
		if err != nil {
			return err
		}
		logger.Debug("normalized",
			zap.String("kind", g.Kind.String()),
			zap.Strings("species", g.SpeciesOrder))
		fmt.Fprintln(cmd.OutOrStdout(), g.CanonicalText)
		return nil
	},
}

var paramsetsCmd = &cobra.Command{
	Use:   "paramsets",
	Short: "List the installed Slater-Koster parameter sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		sets := dftb.AvailableParamSets(cfg.DFTBPrefix)
		if len(sets) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no parameter sets under %s\n", cfg.DFTBPrefix)
			return nil
		}
		for _, set := range sets {
			fmt.Fprintln(cmd.OutOrStdout(), set)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the emperor version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "emperor "+version)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "TOML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(serveCmd, normalizeCmd, paramsetsCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
