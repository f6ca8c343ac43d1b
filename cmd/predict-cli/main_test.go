package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-predictform/pkg/renderers/tui"
)

type scriptedDriver struct {
	selectIdx int
	confirm   bool
	inputs    []string
	infos     []string
}

func (d *scriptedDriver) Input(ctx context.Context, cfg tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no scripted input left")
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	return next, nil
}

func (d *scriptedDriver) Confirm(ctx context.Context, cfg tui.ConfirmConfig) (bool, error) {
	return d.confirm, nil
}

func (d *scriptedDriver) Select(ctx context.Context, cfg tui.SelectConfig) (int, error) {
	return d.selectIdx, nil
}

func (d *scriptedDriver) Info(ctx context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

// execute runs the CLI in an empty working directory so no stray config or
// .env file leaks in.
func execute(t *testing.T, driver tui.PromptDriver, args ...string) (string, error) {
	t.Helper()
	wd, wdErr := os.Getwd()
	if wdErr != nil {
		t.Fatalf("getwd: %v", wdErr)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	a := &app{}
	if driver != nil {
		a.collector = tui.New(tui.WithPromptDriver(driver))
	}
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func priceServer(t *testing.T, got *map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"predicted_price": 450}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestParseSets(t *testing.T) {
	got, err := parseSets([]string{"ram_capacity=8", " has_5g = yes "})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []field{{name: "ram_capacity", value: "8"}, {name: "has_5g", value: "yes"}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(field{})); diff != "" {
		t.Fatalf("sets mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"ram_capacity", "=8"} {
		if _, err := parseSets([]string{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestPrice_NonInteractive(t *testing.T) {
	var body map[string]any
	server := priceServer(t, &body)

	out, err := execute(t, nil, "price", "--plain", "--no-input", "--base-url", server.URL,
		"--set", "ram_capacity=8", "--set", "internal_memory=128", "--set", "processor_speed=2.8",
		"--set", "screen_size=6.5", "--set", "battery_capacity=5000", "--set", "num_cores=8",
		"--set", "refresh_rate=120", "--5g")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out) != "Predicted Price: $450" {
		t.Fatalf("unexpected output %q", out)
	}

	want := map[string]any{
		"ram_capacity":     8.0,
		"internal_memory":  128.0,
		"processor_speed":  2.8,
		"screen_size":      6.5,
		"battery_capacity": 5000.0,
		"num_cores":        8.0,
		"has_5g":           1.0,
		"refresh_rate":     120.0,
	}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Fatalf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestPrice_PromptsForEveryField(t *testing.T) {
	var body map[string]any
	server := priceServer(t, &body)
	driver := &scriptedDriver{selectIdx: 0, confirm: true}

	out, err := execute(t, driver, "price", "--plain", "--base-url", server.URL)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Predicted Price: $450") {
		t.Fatalf("unexpected output %q", out)
	}
	if body["ram_capacity"] != 2.0 || body["has_5g"] != 1.0 {
		t.Fatalf("unexpected request body %v", body)
	}
}

func TestPrice_IncompleteInputIsNotSent(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	out, err := execute(t, nil, "price", "--plain", "--no-input", "--base-url", server.URL, "--set", "ram_capacity=8")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported failure, got %v", err)
	}
	if !strings.Contains(out, "Please select a value for") {
		t.Fatalf("unexpected output %q", out)
	}
	if calls != 0 {
		t.Fatalf("expected no request, got %d", calls)
	}
}

func TestPrice_RejectsUnknownField(t *testing.T) {
	_, err := execute(t, nil, "price", "--no-input", "--set", "weight=180")
	if err == nil || !strings.Contains(err.Error(), `unknown field "weight"`) {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestPrice_ServerDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail": "bad input"}`))
	}))
	defer server.Close()

	out, err := execute(t, nil, "price", "--plain", "--base-url", server.URL,
		"--set", "ram_capacity=8", "--set", "internal_memory=128", "--set", "processor_speed=2.8",
		"--set", "screen_size=6.5", "--set", "battery_capacity=5000", "--set", "num_cores=8",
		"--set", "refresh_rate=120")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported failure, got %v", err)
	}
	if strings.TrimSpace(out) != "Error: bad input" {
		t.Fatalf("unexpected output %q", out)
	}
}

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "scan.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, 4, 3))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestClassify_File(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("form file: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"prediction":"glioma","confidence":"95.0%","confidence_value":0.95,"filename":"scan.png"}`))
	}))
	defer server.Close()

	path := writePNG(t, t.TempDir())
	out, err := execute(t, nil, "classify", "--plain", "--base-url", server.URL, "--file", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"glioma", "95.0% [high]", "scan.png"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}
}

func TestClassify_RejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := execute(t, nil, "classify", "--plain", "--file", path)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported failure, got %v", err)
	}
	if !strings.Contains(out, "Please select a valid image file (JPEG, PNG).") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestContract_ReportsDrift(t *testing.T) {
	doc := `{"openapi":"3.0.2","info":{"title":"t","version":"1"},"paths":{"/predict":{"post":{
		"requestBody":{"content":{"application/json":{"schema":{"type":"object",
		"required":["ram_capacity"],"properties":{"ram_capacity":{"type":"number"}}}}}},
		"responses":{"200":{"description":"ok"}}}}}}`
	path := filepath.Join(t.TempDir(), "openapi.json")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := execute(t, nil, "contract", "--source", path)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported drift, got %v", err)
	}
	if !strings.Contains(out, "phone_price drifts from POST /predict") ||
		!strings.Contains(out, "internal_memory: not declared by the backend") {
		t.Fatalf("unexpected output %q", out)
	}
}
