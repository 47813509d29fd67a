// Command polydemo draws a colored polygon with the Pure Go GPU stack.
//
// Usage:
//
//	polydemo run --variant vertex-color
//	polydemo headless --frames 3 --png frame.png
//	polydemo spirv --out shaders
//	polydemo adapters
package main

import (
	"log"
	"os"

	"github.com/gogpu/polydemo"
	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "polydemo"
	app.Usage = "render a colored polygon with gogpu/wgpu"
	app.Version = polydemo.Version
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		setupLogging(ctx.GlobalBool("debug"))
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "open a window and render until it is closed or Escape is pressed",
			Flags: append(renderFlags(),
				cli.StringFlag{
					Name:  "title",
					Value: polydemo.DefaultConfig().Title,
					Usage: "window title",
				},
				cli.BoolTFlag{
					Name:  "continuous",
					Usage: "redraw continuously instead of on demand",
				},
			),
			Action: runWindow,
		},
		{
			Name:  "headless",
			Usage: "render frames offscreen and optionally save the last one as PNG",
			Flags: append(renderFlags(),
				cli.IntFlag{
					Name:  "frames",
					Value: 3,
					Usage: "number of frames to render",
				},
				cli.StringFlag{
					Name:  "png",
					Usage: "write the last frame to this PNG file",
				},
				cli.IntFlag{
					Name:  "png-width",
					Usage: "scale the PNG to this width (0 keeps the frame size)",
				},
				cli.IntFlag{
					Name:  "png-height",
					Usage: "scale the PNG to this height (0 keeps the frame size)",
				},
				cli.StringFlag{
					Name:  "backend",
					Value: "vulkan",
					Usage: "GPU backend: vulkan or noop",
				},
			),
			Action: runHeadless,
		},
		{
			Name:  "spirv",
			Usage: "compile the embedded WGSL shaders to SPIR-V files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "shaders",
					Usage: "output directory",
				},
			},
			Action: compileShaders,
		},
		{
			Name:  "adapters",
			Usage: "list available GPU adapters",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "backend",
					Value: "vulkan",
					Usage: "GPU backend: vulkan or noop",
				},
			},
			Action: listAdapters,
		},
	}
	return app
}

// renderFlags are shared by run and headless.
func renderFlags() []cli.Flag {
	def := polydemo.DefaultConfig()
	return []cli.Flag{
		cli.StringFlag{
			Name:   "variant",
			Value:  def.Variant,
			Usage:  "what to draw: flat or vertex-color",
			EnvVar: polydemo.VariantEnv,
		},
		cli.IntFlag{
			Name:  "width",
			Value: def.Width,
			Usage: "frame width in pixels",
		},
		cli.IntFlag{
			Name:  "height",
			Value: def.Height,
			Usage: "frame height in pixels",
		},
		cli.StringFlag{
			Name:  "shader-dir",
			Usage: "load precompiled .spv shaders from this directory",
		},
		cli.StringFlag{
			Name:   "trace-dir",
			Usage:  "write a JSON lifecycle trace into this directory",
			EnvVar: polydemo.TraceDirEnv,
		},
	}
}
