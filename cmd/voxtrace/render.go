package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gekko3d/voxtrace"
	"github.com/urfave/cli"
)

// Render a still frame of the demo scene.
func renderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg := voxtrace.DefaultConfig()
	cfg.Stretch = ctx.Int("stretch")
	if w := ctx.Int("workers"); w > 0 {
		cfg.Workers = w
	}

	sc, err := demoScene(cfg)
	if err != nil {
		return err
	}

	p := voxtrace.NewPreview(sc, voxtrace.DemoCamera(), ctx.Int("width"), ctx.Int("height"))
	p.Label = ctx.Bool("label")
	defer p.Close()

	start := time.Now()
	img, err := p.Render(context.Background())
	if err != nil {
		return err
	}
	logger.Infof("rendered %dx%d in %s", p.Width, p.Height, time.Since(start))

	out := ctx.String("out")
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	if err := voxtrace.WritePNG(f, img); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	logger.Infof("frame statistics\n%s", sc.Profiler.GetStatsString())
	return nil
}
