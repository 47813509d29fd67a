package main

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/polydemo"
	"github.com/gogpu/polydemo/host"
	"github.com/gogpu/polydemo/renderer"
	"github.com/gogpu/polydemo/shader"
	"github.com/gogpu/polydemo/window"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	polydemo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// configFromFlags builds a Config from the render flags.
func configFromFlags(ctx *cli.Context) (polydemo.Config, error) {
	cfg := polydemo.DefaultConfig().
		WithVariant(ctx.String("variant")).
		WithSize(ctx.Int("width"), ctx.Int("height")).
		WithShaderDir(ctx.String("shader-dir")).
		WithTraceDir(ctx.String("trace-dir"))
	return cfg, cfg.Validate()
}

func runWindow(ctx *cli.Context) error {
	cfg, err := configFromFlags(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	cfg = cfg.WithTitle(ctx.String("title")).
		WithContinuousRender(ctx.BoolT("continuous"))
	if err := host.Run(context.Background(), cfg); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}

func runHeadless(ctx *cli.Context) error {
	cfg, err := configFromFlags(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	variant, err := renderer.ParseVariant(cfg.Variant)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	factory, err := backendFactory(ctx.String("backend"))
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}

	r, err := renderer.NewHeadless(context.Background(), factory,
		window.NewSize(cfg.Width, cfg.Height),
		renderer.WithVariant(variant),
		renderer.WithShaderDir(cfg.ShaderDir),
		renderer.WithTraceDir(cfg.TraceDir),
	)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer r.Destroy()

	frames := ctx.Int("frames")
	for i := 0; i < frames; i++ {
		r.Update()
		if err := r.Render(); err != nil {
			return cli.NewExitError(fmt.Sprintf("frame %d: %v", i, err), 1)
		}
	}
	displayFrameStats(variant, r.Stats())

	if path := ctx.String("png"); path != "" && frames > 0 {
		if err := savePNG(r, path, ctx.Int("png-width"), ctx.Int("png-height")); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		polydemo.Logger().Info("frame saved", "path", path)
	}
	return nil
}

func savePNG(r *renderer.Renderer, path string, width, height int) error {
	img, err := r.Snapshot()
	if err != nil {
		return err
	}
	img = renderer.ScaleImage(img, width, height)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func compileShaders(ctx *cli.Context) error {
	paths, err := shader.WriteSPIRV(ctx.String("out"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Shader", "File", "Size"})
	for i, src := range shader.Sources() {
		size := "?"
		if st, err := os.Stat(paths[i]); err == nil {
			size = fmt.Sprintf("%d bytes", st.Size())
		}
		table.Append([]string{src.Name, paths[i], size})
	}
	table.Render()
	fmt.Print(buf.String())
	return nil
}

func listAdapters(ctx *cli.Context) error {
	factory, err := backendFactory(ctx.String("backend"))
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	infos, err := renderer.ListAdapters(factory)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if len(infos) == 0 {
		return cli.NewExitError(renderer.ErrNoAdapter.Error(), 1)
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"#", "Name", "Type"})
	for i, info := range infos {
		table.Append([]string{fmt.Sprintf("%d", i), info.Name, fmt.Sprintf("%v", info.DeviceType)})
	}
	table.Render()
	fmt.Print(buf.String())
	return nil
}

func displayFrameStats(v renderer.Variant, stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Variant", "Submitted", "Skipped", "Configures", "Vertices", "Indices"})
	table.Append([]string{
		v.Name,
		fmt.Sprintf("%d", stats.Submitted),
		fmt.Sprintf("%d", stats.Skipped),
		fmt.Sprintf("%d", stats.Configures),
		fmt.Sprintf("%d", stats.LastVertexCount),
		fmt.Sprintf("%d", stats.LastIndexCount),
	})
	table.Render()
	polydemo.Logger().Info("frame statistics\n" + buf.String())
}

func backendFactory(name string) (renderer.InstanceFactory, error) {
	switch strings.ToLower(name) {
	case "vulkan":
		return renderer.BackendFactory(gputypes.BackendVulkan)
	case "noop":
		return &noop.API{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want vulkan or noop)", name)
	}
}
