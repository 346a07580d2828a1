package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"tagwise/internal/analysis"
	"tagwise/internal/services/llm"
)

type cliTestEnv struct {
	baseDir    string
	cacheDir   string
	configPath string
}

func setupCLITestEnv(t *testing.T, apiSection string) *cliTestEnv {
	t.Helper()
	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("TAGWISE_API_KEY", "")
	for _, info := range llm.All() {
		if env := info.Provider.APIKeyEnv(); env != "" {
			t.Setenv(env, "")
		}
	}

	env := &cliTestEnv{
		baseDir:    base,
		cacheDir:   filepath.Join(base, "cache"),
		configPath: filepath.Join(base, "config.toml"),
	}
	if apiSection == "" {
		apiSection = "[api]\nprovider = \"gemini\"\ncache_enabled = false\n"
	}
	content := apiSection + fmt.Sprintf("\n[paths]\ncache_dir = %q\n\n[logging]\nlevel = \"warn\"\n\n[batch]\nworkers = 2\n", env.cacheDir)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func writeTrack(t *testing.T, dir, name string, sidecar map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not really audio"), 0o644); err != nil {
		t.Fatalf("write track: %v", err)
	}
	data, err := json.Marshal(sidecar)
	if err != nil {
		t.Fatalf("marshal sidecar: %v", err)
	}
	if err := os.WriteFile(path+".features.json", data, 0o644); err != nil {
		t.Fatalf("write sidecar: %v", err)
	}
	return path
}

func peakTimeSidecar() map[string]any {
	return map[string]any{
		"bpm":               128,
		"key":               "Am",
		"spectral_centroid": 1500,
		"rms_energy":        0.8,
		"onset_strength":    0.7,
	}
}

type decodedOutput struct {
	Track  string           `json:"track"`
	Result *analysis.Result `json:"result"`
	Error  string           `json:"error"`
}

func decodeAnalyze(t *testing.T, out string) []decodedOutput {
	t.Helper()
	var items []decodedOutput
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("decode analyze output: %v\n%s", err, out)
	}
	return items
}

func genreNames(r *analysis.Result) []string {
	names := make([]string, 0, len(r.Genres))
	for _, g := range r.Genres {
		names = append(names, g.Tag)
	}
	return names
}

func TestAnalyzeWithoutAPIKeyWarnsAndUsesRules(t *testing.T) {
	env := setupCLITestEnv(t, "")
	track := writeTrack(t, env.baseDir, "peak.flac", peakTimeSidecar())

	out, stderr, err := runCLI(t, []string{"analyze", track}, env.configPath)
	if err != nil {
		t.Fatalf("analyze: %v\nstderr: %s", err, stderr)
	}
	requireContains(t, stderr, "no api key configured")

	items := decodeAnalyze(t, out)
	if len(items) != 1 || items[0].Result == nil {
		t.Fatalf("unexpected output %#v", items)
	}
	result := items[0].Result
	requireContains(t, strings.Join(genreNames(result), ","), "techno")
	if len(result.LLMSuggestions) != 0 {
		t.Fatalf("expected no suggestions, got %#v", result.LLMSuggestions)
	}
	if result.EnergyLevel == nil {
		t.Fatal("expected energy level")
	}
}

func TestAnalyzeUsesProviderAndCache(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": "Warehouse Vibe, hypnotic"}}},
		})
	}))
	defer server.Close()

	api := fmt.Sprintf("[api]\nprovider = \"openai\"\napi_key = \"k\"\nendpoint = %q\ncache_enabled = true\ncache_ttl_seconds = 3600\nrate_limit_per_minute = 0\n", server.URL)
	env := setupCLITestEnv(t, api)
	track := writeTrack(t, env.baseDir, "peak.flac", peakTimeSidecar())

	for i := 0; i < 2; i++ {
		out, stderr, err := runCLI(t, []string{"analyze", "--json", track}, env.configPath)
		if err != nil {
			t.Fatalf("analyze run %d: %v\nstderr: %s", i, err, stderr)
		}
		items := decodeAnalyze(t, out)
		if len(items) != 1 || items[0].Result == nil {
			t.Fatalf("unexpected output %#v", items)
		}
		got := strings.Join(items[0].Result.LLMSuggestions, ",")
		if got != "warehouse-vibe,hypnotic" {
			t.Fatalf("unexpected suggestions %q", got)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected cached second run, provider saw %d calls", calls.Load())
	}

	out, _, err := runCLI(t, []string{"cache", "stats"}, env.configPath)
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	requireContains(t, out, "Entries: 1")

	out, _, err = runCLI(t, []string{"cache", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Removed 1 entries")
}

func TestAnalyzeReportsMissingTrack(t *testing.T) {
	env := setupCLITestEnv(t, "")
	good := writeTrack(t, env.baseDir, "good.flac", peakTimeSidecar())
	missing := filepath.Join(env.baseDir, "missing.flac")

	out, _, err := runCLI(t, []string{"analyze", good, missing}, env.configPath)
	if err == nil {
		t.Fatal("expected error when a track fails")
	}
	requireContains(t, err.Error(), "1 of 2 tracks failed")

	items := decodeAnalyze(t, out)
	if len(items) != 2 {
		t.Fatalf("expected two items, got %d", len(items))
	}
	if items[0].Result == nil || items[0].Error != "" {
		t.Fatalf("expected first track to succeed, got %#v", items[0])
	}
	if items[1].Result != nil || !strings.Contains(items[1].Error, "extraction error") {
		t.Fatalf("expected extraction error for missing track, got %#v", items[1])
	}
}

func TestCheckWithoutAPIKeyPasses(t *testing.T) {
	env := setupCLITestEnv(t, "")
	out, _, err := runCLI(t, []string{"check", "--json", "--ffprobe", "clearly-not-present-binary"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "FFprobe")
	requireContains(t, out, "API key missing")
}

func TestProvidersJSON(t *testing.T) {
	out, _, err := runCLI(t, []string{"providers", "--json"}, "")
	if err != nil {
		t.Fatalf("providers: %v", err)
	}
	var infos []llm.ProviderInfo
	if err := json.Unmarshal([]byte(out), &infos); err != nil {
		t.Fatalf("decode providers: %v", err)
	}
	if len(infos) != 6 || infos[0].Provider != "gemini" {
		t.Fatalf("unexpected providers %#v", infos)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t, "")

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "API key configured: no")

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestConfigValidateRejectsBadThreshold(t *testing.T) {
	env := setupCLITestEnv(t, "[analysis]\nconfidence_threshold = 1.5\n")
	_, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err == nil {
		t.Fatal("expected validation error")
	}
	requireContains(t, err.Error(), "analysis.confidence_threshold")
}
