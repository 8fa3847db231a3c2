// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/xstudio-go/mediasource/internal/config"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/source"
	"github.com/xstudio-go/mediasource/internal/infrastructure/reader"
	"github.com/xstudio-go/mediasource/internal/runtime"
)

var inspectTimeout time.Duration

var inspectCmd = &cobra.Command{
	Use:   "inspect <uri>",
	Short: "Probe a single media URI and print its acquired detail as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().DurationVar(&inspectTimeout, "timeout", 10*time.Second, "probe timeout")
}

func runInspect(cmd *cobra.Command, args []string) error {
	uri := args[0]

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	rt := runtime.New(cfg)
	rt.Reader = reader.NewLocalFile(rt.FallbackRate())

	ctx, cancel := context.WithTimeout(cmd.Context(), inspectTimeout)
	defer cancel()

	src := source.NewContainer(rt, uri, uri, rt.FallbackRate(), uuid.Nil)
	defer func() { _ = src.Shutdown(context.Background()) }()

	ok, err := src.AcquireDetail(ctx, rt.FallbackRate())
	if err != nil {
		return err
	}

	ref, err := src.MediaReference(ctx)
	if err != nil {
		return err
	}
	status, _ := src.Status(ctx)
	errDetail, _ := src.ErrorDetail(ctx)

	out := struct {
		UUID     uuid.UUID         `json:"uuid"`
		Acquired bool              `json:"acquired"`
		Status   model.MediaStatus `json:"status"`
		Error    string            `json:"error,omitempty"`
		URI      string            `json:"uri"`
		Frames   int               `json:"frames"`
		Rate     string            `json:"rate"`
	}{
		UUID:     src.UUID(),
		Acquired: ok,
		Status:   status,
		Error:    errDetail,
		URI:      ref.URI,
		Frames:   ref.Duration.Frames,
		Rate:     source.FormatFPS(ref.Rate.ToFPS()),
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("inspect: encode: %w", err)
	}
	return nil
}
