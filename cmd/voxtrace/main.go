package main

import (
	"os"

	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "voxtrace"
	app.Usage = "trace rays through voxel cubes, spheres and triangles"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a preview of the demo scene",
			Description: `
Trace one primary ray per pixel of the demo scene with a single directional
light and shadow rays, stretch the frame and write it as PNG.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 256,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 212,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "stretch",
					Value: 4,
					Usage: "output pixels per traced pixel",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "tile workers, 0 for one per cpu",
				},
				cli.BoolFlag{
					Name:  "label",
					Usage: "draw frame statistics into the image",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: renderFrame,
		},
		{
			Name:  "bench",
			Usage: "measure query throughput on the demo scene",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "rays",
					Value: 200000,
					Usage: "rays per query kind",
				},
				cli.IntFlag{
					Name:  "batch",
					Value: 4096,
					Usage: "rays per worker task",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "random seed for ray generation",
				},
			},
			Action: bench,
		},
	}

	return app
}
