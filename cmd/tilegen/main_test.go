package main

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tilegen/internal/terrain"
	"tilegen/pkg/packing"
)

func TestRunASCII(t *testing.T) {
	var stdout bytes.Buffer
	if err := run([]string{"-w", "12", "-h", "5", "-seed", "3"}, &stdout, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d rows, want 5:\n%s", len(lines), stdout.String())
	}
	for _, line := range lines {
		if len(line) != 12 {
			t.Fatalf("row %q has width %d, want 12", line, len(line))
		}
	}
}

func TestRunBase64MatchesPacked(t *testing.T) {
	args := []string{"-w", "9", "-h", "7", "-seed", "11"}
	var packed, encoded bytes.Buffer
	if err := run(append(args, "-format", "packed"), &packed, io.Discard); err != nil {
		t.Fatalf("packed: %v", err)
	}
	if err := run(append(args, "-format", "base64"), &encoded, io.Discard); err != nil {
		t.Fatalf("base64: %v", err)
	}
	if packed.Len() != packing.PackedSize(63) {
		t.Fatalf("packed size %d, want %d", packed.Len(), packing.PackedSize(63))
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded.String()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(decoded, packed.Bytes()) {
		t.Fatal("base64 output does not match packed output")
	}
}

func TestRunWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.txt")
	var stdout bytes.Buffer
	if err := run([]string{"-w", "4", "-h", "4", "-out", path}, &stdout, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("stdout should be empty, got %q", stdout.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) != 4*5 {
		t.Fatalf("file has %d bytes, want 20", len(data))
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	if err := run([]string{"-format", "png"}, io.Discard, io.Discard); err == nil {
		t.Fatal("expected error for unknown format")
	}
	err := run([]string{"-w", "0"}, io.Discard, io.Discard)
	if !errors.Is(err, terrain.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestWriteFileReportsWriteErrors(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := writeFile("/dev/full", []byte("...\n"), log); err == nil {
		t.Fatal("expected error writing to a full device")
	}
	if err := writeFile(t.TempDir(), []byte("x"), log); err == nil {
		t.Fatal("expected error creating a file over a directory")
	}
}

func TestRunReadsConfigFileAndFlagsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[world]\nwidth = 6\nheight = 3\nseed = 4\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var stdout bytes.Buffer
	if err := run([]string{"-config", path}, &stdout, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	if len(lines) != 3 || len(lines[0]) != 6 {
		t.Fatalf("config file dimensions not applied:\n%s", stdout.String())
	}

	stdout.Reset()
	if err := run([]string{"-config", path, "-w", "8"}, &stdout, io.Discard); err != nil {
		t.Fatalf("run with override: %v", err)
	}
	lines = strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	if len(lines) != 3 || len(lines[0]) != 8 {
		t.Fatalf("flag should override config width:\n%s", stdout.String())
	}

	if err := run([]string{"-config", filepath.Join(t.TempDir(), "nope.toml")}, io.Discard, io.Discard); err == nil {
		t.Fatal("expected error for a missing config file")
	}
}
