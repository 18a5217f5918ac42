package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ExploreAritra/format-flex/internal/config"
)

func TestTargetPath(t *testing.T) {
	opts := config.Default()
	opts.Container = config.ContainerMKV

	got := TargetPath(&opts, "/media/in/Movie (2019).mp4")
	want := filepath.Join("/media/in", "Movie (2019).mkv")
	if got != want {
		t.Errorf("TargetPath = %q, want %q", got, want)
	}

	opts.OutputDir = "/media/out"
	opts.OutputName = "renamed"
	got = TargetPath(&opts, "/media/in/Movie (2019).mp4")
	want = filepath.Join("/media/out", "renamed.mkv")
	if got != want {
		t.Errorf("TargetPath = %q, want %q", got, want)
	}
}

func TestResolverClaims(t *testing.T) {
	r := NewResolver(false)
	dir := t.TempDir()
	p := filepath.Join(dir, "out.mp4")

	if got := r.Resolve(p); got != p {
		t.Fatalf("first Resolve = %q, want %q", got, p)
	}
	got := r.Resolve(p)
	want := filepath.Join(dir, "out - dup1.mp4")
	if got != want {
		t.Errorf("second Resolve = %q, want %q", got, want)
	}
	got = r.Resolve(p)
	want = filepath.Join(dir, "out - dup2.mp4")
	if got != want {
		t.Errorf("third Resolve = %q, want %q", got, want)
	}
}

func TestResolverDiskCollision(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out.mp4")
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(false)
	got := r.Resolve(p)
	want := filepath.Join(dir, "out - dup1.mp4")
	if got != want {
		t.Errorf("Resolve over existing file = %q, want %q", got, want)
	}

	forced := NewResolver(true)
	if got := forced.Resolve(p); got != p {
		t.Errorf("forced Resolve = %q, want %q", got, p)
	}
}

func TestStagingPath(t *testing.T) {
	got := StagingPath("/media/out/final.mp4")
	want := filepath.Join("/media/out", ".final.mp4.part")
	if got != want {
		t.Errorf("StagingPath = %q, want %q", got, want)
	}
}

func TestRenamePlacer(t *testing.T) {
	dir := t.TempDir()
	staging := filepath.Join(dir, ".out.mp4.part")
	final := filepath.Join(dir, "nested", "out.mp4")
	if err := os.WriteFile(staging, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := (RenamePlacer{}).Place(staging, final); err != nil {
		t.Fatalf("Place: %v", err)
	}
	data, err := os.ReadFile(final)
	if err != nil {
		t.Fatalf("final file missing: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("final content = %q", data)
	}
	if _, err := os.Stat(staging); !os.IsNotExist(err) {
		t.Error("staging file still present after placement")
	}
}
