package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/gekko3d/voxtrace"
	"github.com/gekko3d/voxtrace/voxelrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/urfave/cli"
)

type benchResult struct {
	name     string
	rays     int
	hits     int64
	duration time.Duration
}

// Measure query throughput on the demo scene with random rays aimed into
// the scene bounds.
func bench(ctx *cli.Context) error {
	setupLogging(ctx)

	if err := displayHost(); err != nil {
		logger.Warnf("host information unavailable: %v", err)
	}

	cfg := voxtrace.DefaultConfig()
	sc, err := demoScene(cfg)
	if err != nil {
		return err
	}

	n := ctx.Int("rays")
	batch := max(1, ctx.Int("batch"))
	seed := uint64(ctx.Int64("seed"))
	rays := randomRays(sc, n, rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)))

	pool := pond.NewPool(cfg.Workers)
	defer pool.StopAndWait()

	results := []benchResult{
		runParallel(pool, "nearest", rays, batch, func(r *core.Ray) bool {
			return sc.FindNearest(r)
		}),
		runParallel(pool, "nearest to player", rays, batch, func(r *core.Ray) bool {
			return sc.FindNearestToPlayer(r, 0)
		}),
		runParallel(pool, "occlusion", rays, batch, func(r *core.Ray) bool {
			return sc.IsOccluded(r)
		}),
		runSerial("erase + restore", rays[:min(len(rays), n/100+1)], func(r *core.Ray) bool {
			hit := sc.EraseVoxels(r) > 0
			sc.RestoreVoxels()
			return hit
		}),
	}

	start := time.Now()
	for i := 0; i < 100; i++ {
		sc.Refit()
	}
	logger.Infof("100 refits in %s", time.Since(start))

	displayResults(results)
	return nil
}

func randomRays(sc *voxtrace.Scene, n int, rng *rand.Rand) []core.Ray {
	bounds := sc.Bounds()
	center := bounds.Centroid()
	radius := bounds.Max.Sub(bounds.Min).Len()

	pointIn := func() mgl32.Vec3 {
		return mgl32.Vec3{
			bounds.Min.X() + rng.Float32()*(bounds.Max.X()-bounds.Min.X()),
			bounds.Min.Y() + rng.Float32()*(bounds.Max.Y()-bounds.Min.Y()),
			bounds.Min.Z() + rng.Float32()*(bounds.Max.Z()-bounds.Min.Z()),
		}
	}

	rays := make([]core.Ray, n)
	for i := range rays {
		dir := mgl32.Vec3{float32(rng.NormFloat64()), float32(rng.NormFloat64()), float32(rng.NormFloat64())}
		if dir.Len() == 0 {
			dir = mgl32.Vec3{0, -1, 0}
		}
		origin := center.Add(dir.Normalize().Mul(radius))
		rays[i] = sc.NewRay(origin, pointIn().Sub(origin).Normalize())
	}
	return rays
}

func runParallel(pool pond.Pool, name string, rays []core.Ray, batch int, query func(*core.Ray) bool) benchResult {
	var hits atomic.Int64
	start := time.Now()

	group := pool.NewGroup()
	for lo := 0; lo < len(rays); lo += batch {
		hi := min(lo+batch, len(rays))
		group.Submit(func() {
			var local int64
			for i := lo; i < hi; i++ {
				r := rays[i]
				if query(&r) {
					local++
				}
			}
			hits.Add(local)
		})
	}
	if err := group.Wait(); err != nil {
		logger.Errorf("%s: %v", name, err)
	}

	return benchResult{name: name, rays: len(rays), hits: hits.Load(), duration: time.Since(start)}
}

func runSerial(name string, rays []core.Ray, query func(*core.Ray) bool) benchResult {
	var hits int64
	start := time.Now()
	for i := range rays {
		r := rays[i]
		if query(&r) {
			hits++
		}
	}
	return benchResult{name: name, rays: len(rays), hits: hits, duration: time.Since(start)}
}

func displayHost() error {
	info, err := cpu.Info()
	if err != nil {
		return fmt.Errorf("cpu info: %w", err)
	}
	cores, err := cpu.Counts(true)
	if err != nil {
		return fmt.Errorf("cpu count: %w", err)
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return fmt.Errorf("memory info: %w", err)
	}

	model := "unknown"
	if len(info) > 0 {
		model = info[0].ModelName
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"CPU", "Logical cores", "Memory"})
	table.Append([]string{
		model,
		fmt.Sprintf("%d", cores),
		fmt.Sprintf("%.1f GiB", float64(vm.Total)/(1<<30)),
	})
	table.Render()
	return nil
}

func displayResults(results []benchResult) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Query", "Rays", "Hits", "Time", "Mrays/s"})
	var total time.Duration
	for _, r := range results {
		total += r.duration
		table.Append([]string{
			r.name,
			fmt.Sprintf("%d", r.rays),
			fmt.Sprintf("%d", r.hits),
			r.duration.Round(time.Microsecond).String(),
			fmt.Sprintf("%.2f", float64(r.rays)/r.duration.Seconds()/1e6),
		})
	}
	table.SetFooter([]string{"", "", "", "TOTAL", total.Round(time.Microsecond).String()})
	table.Render()
}
