package release_test

import (
	"context"
	"errors"
	"testing"

	"tally/internal/release"
)

func TestPipelineRunsStepsInOrder(t *testing.T) {
	var order []string
	step := func(name string) release.Step {
		return release.Step{Name: name, Run: func(context.Context) error {
			order = append(order, name)
			return nil
		}}
	}

	pipeline := release.NewPipeline(nil, step("one"), step("two"), step("three"))
	if err := pipeline.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"one", "two", "three"}
	if len(order) != len(want) {
		t.Fatalf("ran %d steps, want %d", len(order), len(want))
	}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("step %d = %q, want %q", i, order[i], name)
		}
	}
}

func TestPipelineFailFastSkipsRemainingSteps(t *testing.T) {
	var ran []string
	boom := errors.New("boom")

	pipeline := release.NewPipeline(nil,
		release.Step{Name: "first", Run: func(context.Context) error {
			ran = append(ran, "first")
			return nil
		}},
		release.Step{Name: "failing", Run: func(context.Context) error {
			ran = append(ran, "failing")
			return boom
		}},
		release.Step{Name: "never", Run: func(context.Context) error {
			ran = append(ran, "never")
			return nil
		}},
	)

	err := pipeline.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want wrapped boom", err)
	}
	for _, name := range ran {
		if name == "never" {
			t.Fatal("steps after a failure must not run")
		}
	}
}

func TestPipelineOptionalStepFailureContinues(t *testing.T) {
	var ran []string

	pipeline := release.NewPipeline(nil,
		release.Step{Name: "optional", Optional: true, Run: func(context.Context) error {
			return errors.New("announce down")
		}},
		release.Step{Name: "after", Run: func(context.Context) error {
			ran = append(ran, "after")
			return nil
		}},
	)

	if err := pipeline.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(ran) != 1 {
		t.Fatal("step after an optional failure should still run")
	}
}

func TestPipelineStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	pipeline := release.NewPipeline(nil, release.Step{Name: "step", Run: func(context.Context) error {
		ran = true
		return nil
	}})

	if err := pipeline.Run(ctx); err == nil {
		t.Fatal("expected context error")
	}
	if ran {
		t.Fatal("no step should run once the context is cancelled")
	}
}
