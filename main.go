/*
swapsync prints the acquire/present synchronization for every frame in
flight of a swapchain, as configured in a TOML file.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rob2309/vulkan-explained/engine/config"
	"github.com/Rob2309/vulkan-explained/engine/core"
	"github.com/Rob2309/vulkan-explained/engine/math"
	"github.com/Rob2309/vulkan-explained/engine/renderer/metadata"
	"github.com/Rob2309/vulkan-explained/engine/renderer/synchronization"
)

type options struct {
	configPath string
	frames     int
	watch      bool
	dump       bool
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("swapsync", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "TOML config file (defaults are used when empty)")
	fs.IntVar(&opts.frames, "frames", 0, "override sync.frames_in_flight")
	fs.BoolVar(&opts.watch, "watch", false, "re-plan whenever the config file changes")
	fs.BoolVar(&opts.dump, "dump-config", false, "print the effective config and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.watch && opts.configPath == "" {
		return nil, errors.New("-watch requires -config")
	}
	return opts, nil
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.LoadConfig(opts.configPath); err != nil {
			return nil, err
		}
	}
	if opts.frames != 0 {
		frames := math.Clamp(opts.frames, 1, synchronization.MaxFramesInFlight)
		if frames != opts.frames {
			core.LogWarn("-frames %d clamped to %d", opts.frames, frames)
		}
		cfg.Sync.FramesInFlight = frames
	}
	return cfg, nil
}

// printPlans plans one frame for every slot and writes the result to w.
func printPlans(w io.Writer, cfg *config.Config) error {
	scheduler, err := synchronization.NewFrameScheduler(cfg.Planner(), cfg.Sync.FramesInFlight)
	if err != nil {
		return err
	}

	var failed error
	for i := 0; i < cfg.Sync.FramesInFlight; i++ {
		slot, plan := scheduler.Next()
		fmt.Fprintf(w, "frame %d\n", slot.Index)
		writePlan(w, plan)
		if err := synchronization.Check(plan); err != nil {
			fmt.Fprintf(w, "  check:           FAILED: %s\n", err)
			failed = err
			continue
		}
		fmt.Fprintf(w, "  check:           ok\n")
	}
	return failed
}

func writePlan(w io.Writer, plan metadata.SwapchainSyncPlan) {
	fmt.Fprintf(w, "  acquire signals: %s\n", plan.AcquireSemaphore)
	fmt.Fprintf(w, "  submit waits:    %s\n", plan.AcquireWait)
	fmt.Fprintf(w, "  acquire barrier: %s\n", plan.AcquireBarrier)
	fmt.Fprintf(w, "  present barrier: %s\n", plan.PresentBarrier)
	fmt.Fprintf(w, "  submit signals:  %s\n", plan.RenderFinishedSemaphore)
	fmt.Fprintf(w, "  present waits:   %s\n", plan.Present)
	fmt.Fprintf(w, "  chain:           %v\n", synchronization.FormsChain(plan.AcquireWait, plan.AcquireBarrier))
}

func run(args []string, stdout, stderr io.Writer, stop <-chan os.Signal) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	core.SetLogLevel(cfg.LogLevel())

	if opts.dump {
		data, err := cfg.Encode()
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	if err := printPlans(stdout, cfg); err != nil && !opts.watch {
		return err
	}
	if !opts.watch {
		return nil
	}

	watcher, err := config.NewConfigWatcher(opts.configPath)
	if err != nil {
		return err
	}
	defer watcher.Close()

	core.LogInfo("watching %s", opts.configPath)
	for {
		select {
		case cfg, ok := <-watcher.Configs():
			if !ok {
				return nil
			}
			core.SetLogLevel(cfg.LogLevel())
			if opts.frames != 0 {
				cfg.Sync.FramesInFlight = math.Clamp(opts.frames, 1, synchronization.MaxFramesInFlight)
			}
			if err := printPlans(stdout, cfg); err != nil {
				core.LogError(err.Error())
			}
		case err, ok := <-watcher.Errors():
			if !ok {
				return nil
			}
			core.LogWarn("keeping previous plan: %s", err)
		case <-stop:
			return nil
		}
	}
}

func main() {
	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	if err := run(os.Args[1:], os.Stdout, os.Stderr, sigCh); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		core.LogFatal(err.Error())
	}
}
