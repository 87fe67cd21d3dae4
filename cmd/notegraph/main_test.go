package main

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/notegraph/internal/config"
	"github.com/hyperjump/notegraph/internal/models"
)

func TestSearchArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after query are moved first",
			args:     []string{"binary search", "-limit", "5"},
			expected: []string{"-limit", "5", "binary search"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-limit", "5", "binary search"},
			expected: []string{"-limit", "5", "binary search"},
		},
		{
			name:     "query only returns unchanged",
			args:     []string{"binary search"},
			expected: []string{"binary search"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "multiple positionals then flags",
			args:     []string{"one", "two", "-mode", "ranked"},
			expected: []string{"-mode", "ranked", "one", "two"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := searchArgsReorder(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("searchArgsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"single word", []string{"heap"}, "heap"},
		{"multiple words", []string{"binary", "search"}, "binary search"},
		{"single quoted phrase", []string{"binary search"}, "binary search"},
		{"empty args", []string{}, ""},
		{"blank args", []string{"  ", "  "}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildSearchQuery(tt.args)
			if got != tt.expected {
				t.Errorf("buildSearchQuery(%v) = %q, want %q", tt.args, got, tt.expected)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" Easy, Medium,,Hard ")
	want := []string{"Easy", "Medium", "Hard"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitList() = %v, want %v", got, want)
	}
	if splitList("") != nil {
		t.Error("splitList(\"\") should be nil")
	}
}

func TestGraphFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"graph.svg", "svg", false},
		{"out/Graph.PNG", "png", false},
		{"graph", "svg", false},
		{"graph.jpg", "", true},
	}
	for _, tt := range tests {
		got, err := graphFormat(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("graphFormat(%q) = %q, %v; want %q, wantErr %v", tt.path, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestUserOrDefault(t *testing.T) {
	cfg := &config.Config{Notes: config.NotesConfig{DefaultUser: "local"}}
	if got := userOrDefault("", cfg); got != "local" {
		t.Errorf("userOrDefault(\"\") = %q", got)
	}
	if got := userOrDefault("ada", cfg); got != "ada" {
		t.Errorf("userOrDefault(ada) = %q", got)
	}
}

func TestLoadConfig_prefersCwdConfigWhenDefaultPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: "localhost"
  port: 8080
storage:
  database_path: "test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(origWd) }()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	// On macOS, cwd can be /private/var/... while t.TempDir() is /var/...; compare canonical paths.
	resolvedCanon, _ := filepath.EvalSymlinks(resolved)
	configPathCanon, _ := filepath.EvalSymlinks(configPath)
	if resolvedCanon != configPathCanon {
		t.Errorf("resolved path = %s, want %s", resolvedCanon, configPathCanon)
	}
	if !cfg.Debug {
		t.Error("debug should be true from cwd config.yaml")
	}
}

func TestLoadConfig_usesExplicitPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
storage:
  driver: memory
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != configPath {
		t.Errorf("resolved path = %s, want %s", resolved, configPath)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
}

func TestInitializeComponents_SeedsQuestionsAndDemo(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Storage.Driver = config.DriverSQLite
	cfg.Storage.DatabasePath = filepath.Join(dir, "notes.db")
	cfg.Storage.BleveIndexPath = filepath.Join(dir, "bleve")
	cfg.Search.RankedEnabled = true
	cfg.Notes.SeedDemo = true

	ctx := context.Background()
	c, err := initializeComponents(ctx, cfg, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	n, err := c.Storage.CountQuestions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 169 {
		t.Errorf("questions = %d, want 169", n)
	}
	if !c.Engine.RankedEnabled() {
		t.Error("ranked search should be enabled")
	}

	store, err := c.Sessions.Get(ctx, cfg.Notes.DefaultUser)
	if err != nil {
		t.Fatal(err)
	}
	list, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) == 0 {
		t.Fatal("demo notes were not seeded")
	}
	resp, err := c.Engine.Search(ctx, store.UserID(), &models.SearchQuery{Query: list[0].Title, Mode: models.SearchModeRanked}, list)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total == 0 {
		t.Errorf("ranked search for %q found nothing", list[0].Title)
	}
}

func TestBuildAI_NoKeyUsesTemplatePlans(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	services, err := buildAI(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	p, err := services.Plans.Generate(context.Background(), models.PlanRequest{Days: 3, Level: "beginner", HoursPerDay: 1, Platform: "LeetCode"})
	if err != nil {
		t.Fatal(err)
	}
	if !p.Fallback || len(p.Days) != 3 {
		t.Errorf("want 3-day template plan, got fallback=%v days=%d", p.Fallback, len(p.Days))
	}
}
