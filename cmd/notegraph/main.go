// Package main is the notegraph CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/notegraph/internal/ai"
	"github.com/hyperjump/notegraph/internal/cli"
	"github.com/hyperjump/notegraph/internal/config"
	"github.com/hyperjump/notegraph/internal/graph"
	"github.com/hyperjump/notegraph/internal/keyword"
	"github.com/hyperjump/notegraph/internal/markdown"
	"github.com/hyperjump/notegraph/internal/models"
	"github.com/hyperjump/notegraph/internal/notes"
	"github.com/hyperjump/notegraph/internal/plan"
	"github.com/hyperjump/notegraph/internal/profile"
	"github.com/hyperjump/notegraph/internal/questions"
	"github.com/hyperjump/notegraph/internal/search"
	"github.com/hyperjump/notegraph/internal/server"
	"github.com/hyperjump/notegraph/internal/storage"
	"github.com/hyperjump/notegraph/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/notegraph/config.yaml"

// loadConfig loads config from path. When path is the default and a
// config.yaml exists in the current directory, that file is used instead.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "plan":
		runPlan()
	case "study-plan":
		runStudyPlan()
	case "graph":
		runGraph()
	case "ask":
		runAsk()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("notegraph version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// setup loads config and builds a logger for a subcommand.
func setup(configPath string, debug bool) (*config.Config, string, *zap.Logger) {
	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}
	logger, err := utils.NewLogger(cfg.Debug || debug)
	if err != nil {
		fatalf("Failed to create logger: %v", err)
	}
	return cfg, resolved, logger
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, logger := setup(*configPath, *debug)
	defer logger.Sync()
	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("ranked_search", cfg.Search.RankedEnabled),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	components, err := initializeComponents(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	if cfg.Questions.Watch && cfg.Questions.SeedPath != "" {
		if err := components.Questions.Watch(ctx); err != nil {
			logger.Warn("question watch disabled", zap.String("path", cfg.Questions.SeedPath), zap.Error(err))
		}
	}

	services, err := buildAI(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize AI services", zap.Error(err))
	}

	srv := server.NewServer(server.Deps{
		Storage:  components.Storage,
		Sessions: components.Sessions,
		Search:   components.Engine,
		Markdown: markdown.New(),
		Plans:    services.Plans,
		Profiles: profile.NewService(components.Storage, cfg.Profile, logger),
		Chat:     services.Chat,
		Research: services.Research,
		Generate: services.Generate,
	}, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
}

// printSearchUsage prints search subcommand usage.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: notegraph search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Linear search matches title, content and tags case-insensitively and returns
at most 8 notes. Ranked search needs search.ranked_enabled in the config.

Examples:
  notegraph search binary search
  notegraph search --folder Trees traversal
  notegraph search --mode ranked --output json "dynamic programming"
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func parseFormat(s string) cli.OutputFormat {
	format, err := cli.ParseFormat(s)
	if err != nil {
		fatalf("%v", err)
	}
	return format
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
	user := fs.String("user", "", "user id (default: notes.default_user)")
	folder := fs.String("folder", "", "restrict to one folder")
	mode := fs.String("mode", models.SearchModeLinear, "search mode: linear or ranked")
	limit := fs.Int("limit", search.MaxResults, "maximum number of results")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgsReorder(os.Args[2:]))

	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}
	format := parseFormat(*outputFormat)
	query := &models.SearchQuery{Query: queryStr, Mode: *mode, Limit: *limit}

	var response *models.SearchResponse
	if *serverURL != "" {
		params := url.Values{}
		params.Set("q", query.Query)
		params.Set("mode", query.Mode)
		params.Set("limit", fmt.Sprint(query.Limit))
		if *folder != "" {
			params.Set("folder", *folder)
		}
		response = &models.SearchResponse{}
		if err := getJSON(*serverURL+"/api/v1/search?"+params.Encode(), *user, response); err != nil {
			fatalf("Search failed: %v", err)
		}
	} else {
		cfg, _, logger := setup(*configPath, false)
		defer logger.Sync()
		components, err := initializeComponents(context.Background(), cfg, logger)
		if err != nil {
			fatalf("Failed to initialize: %v", err)
		}
		defer components.Close()

		store, err := components.Sessions.Get(context.Background(), userOrDefault(*user, cfg))
		if err != nil {
			fatalf("Failed to open notes: %v", err)
		}
		list, err := store.Filter(*folder)
		if err != nil {
			fatalf("Failed to list notes: %v", err)
		}
		response, err = components.Engine.Search(context.Background(), store.UserID(), query, list)
		if err != nil {
			fatalf("Search failed: %v", err)
		}
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fatalf("Output failed: %v", err)
	}
}

func userOrDefault(user string, cfg *config.Config) string {
	if user != "" {
		return user
	}
	return cfg.Notes.DefaultUser
}

// getJSON fetches url and decodes the JSON body into v.
func getJSON(rawURL, user string, v interface{}) error {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	if user != "" {
		req.Header.Set(server.UserHeader, user)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// splitList turns "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func runPlan() {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	weeks := fs.Int("weeks", 0, "number of weeks (default: plan.default_weeks)")
	hours := fs.Int("hours", 0, "study hours per week (default: plan.default_hours_per_week)")
	week := fs.Int("week", 0, "only questions from this bank week")
	difficulty := fs.String("difficulty", "", "comma-separated difficulties, e.g. Easy,Medium")
	topic := fs.String("topic", "", "comma-separated topics")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	_ = fs.Parse(os.Args[2:])

	format := parseFormat(*outputFormat)
	cfg, _, logger := setup(*configPath, false)
	defer logger.Sync()
	if *weeks == 0 {
		*weeks = cfg.Plan.DefaultWeeks
	}
	if *hours == 0 {
		*hours = cfg.Plan.DefaultHoursPerWeek
	}

	ctx := context.Background()
	components, err := initializeComponents(ctx, cfg, logger)
	if err != nil {
		fatalf("Failed to initialize: %v", err)
	}
	defer components.Close()

	qs, err := components.Storage.ListQuestions(ctx, models.QuestionFilter{
		Week:         *week,
		Difficulties: splitList(*difficulty),
		Topics:       splitList(*topic),
	})
	if err != nil {
		fatalf("Failed to list questions: %v", err)
	}
	p, err := plan.Pack(qs, *weeks, *hours)
	if err != nil {
		fatalf("Plan failed: %v", err)
	}
	if err := cli.WriteDynamicPlan(os.Stdout, p, format); err != nil {
		fatalf("Output failed: %v", err)
	}
}

func runStudyPlan() {
	fs := flag.NewFlagSet("study-plan", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	days := fs.Int("days", plan.DefaultDays, "number of days")
	level := fs.String("level", plan.LevelBeginner, "beginner, intermediate, or advanced")
	hoursPerDay := fs.Int("hours-per-day", 2, "study hours per day")
	platform := fs.String("platform", "LeetCode", "practice platform")
	focus := fs.String("focus", "", "focus areas")
	weak := fs.String("weak", "", "weak areas")
	save := fs.Bool("save", false, "save the plan as a note in Study Plans")
	user := fs.String("user", "", "user id for --save (default: notes.default_user)")
	_ = fs.Parse(os.Args[2:])

	cfg, _, logger := setup(*configPath, false)
	defer logger.Sync()
	ctx := context.Background()

	services, err := buildAI(ctx, cfg, logger)
	if err != nil {
		fatalf("Failed to initialize AI services: %v", err)
	}
	p, err := services.Plans.Generate(ctx, models.PlanRequest{
		Days:        *days,
		Level:       *level,
		HoursPerDay: *hoursPerDay,
		Platform:    *platform,
		FocusAreas:  *focus,
		WeakAreas:   *weak,
	})
	if err != nil {
		fatalf("Plan failed: %s", ai.UserMessage(err))
	}
	content := plan.RenderMarkdown(p)
	fmt.Println(content)
	if p.Fallback {
		fmt.Fprintln(os.Stderr, "note: AI plan unavailable, generated a template plan instead")
	}
	if !*save {
		return
	}

	components, err := initializeComponents(ctx, cfg, logger)
	if err != nil {
		fatalf("Failed to initialize: %v", err)
	}
	defer components.Close()
	store, err := components.Sessions.Get(ctx, userOrDefault(*user, cfg))
	if err != nil {
		fatalf("Failed to open notes: %v", err)
	}
	n, err := store.CreateAI(ctx, plan.PlanTitle(p.Request), content, models.FolderStudyPlans, notes.StudyPlanSource)
	if err != nil {
		fatalf("Failed to save plan: %v", err)
	}
	fmt.Fprintf(os.Stderr, "saved as note %s\n", n.ID)
}

// graphFormat picks the image format from the output file extension.
func graphFormat(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg", "":
		return "svg", nil
	case ".png":
		return "png", nil
	default:
		return "", fmt.Errorf("unsupported graph format %q; use .svg or .png", ext)
	}
}

func runGraph() {
	fs := flag.NewFlagSet("graph", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	user := fs.String("user", "", "user id (default: notes.default_user)")
	folder := fs.String("folder", "", "restrict to one folder")
	width := fs.Int("width", 0, "image width (default: graph.default_width)")
	height := fs.Int("height", 0, "image height (default: graph.default_height)")
	out := fs.String("out", "graph.svg", "output file (.svg or .png)")
	_ = fs.Parse(os.Args[2:])

	format, err := graphFormat(*out)
	if err != nil {
		fatalf("%v", err)
	}
	cfg, _, logger := setup(*configPath, false)
	defer logger.Sync()
	if *width <= 0 {
		*width = cfg.Graph.DefaultWidth
	}
	if *height <= 0 {
		*height = cfg.Graph.DefaultHeight
	}

	ctx := context.Background()
	components, err := initializeComponents(ctx, cfg, logger)
	if err != nil {
		fatalf("Failed to initialize: %v", err)
	}
	defer components.Close()
	store, err := components.Sessions.Get(ctx, userOrDefault(*user, cfg))
	if err != nil {
		fatalf("Failed to open notes: %v", err)
	}
	list, err := store.Filter(*folder)
	if err != nil {
		fatalf("Failed to list notes: %v", err)
	}
	layout := graph.New(list, float64(*width), float64(*height), graph.Options{
		RadiusFactor:   cfg.Graph.RadiusFactor,
		NodeRadius:     cfg.Graph.NodeRadius,
		SelectedRadius: cfg.Graph.SelectedNodeRadius,
		HitRadius:      cfg.Graph.HitRadius,
		LabelMax:       cfg.Graph.LabelMax,
	})
	selected := ""
	if n, ok := store.Selected(); ok {
		selected = n.ID
	}

	f, err := os.Create(*out)
	if err != nil {
		fatalf("Failed to create %s: %v", *out, err)
	}
	defer f.Close()
	switch format {
	case "png":
		surface := graph.NewPNGSurface(*width, *height)
		graph.Render(surface, layout, selected)
		err = surface.Encode(f)
	default:
		surface := graph.NewSVGSurface(float64(*width), float64(*height))
		graph.Render(surface, layout, selected)
		_, err = surface.WriteTo(f)
	}
	if err != nil {
		fatalf("Failed to write %s: %v", *out, err)
	}
	fmt.Printf("wrote %d notes to %s\n", len(layout.Nodes), *out)
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	modeFlag := fs.String("mode", string(ai.ModeExplain), "explain, research, or summarize")
	save := fs.Bool("save", false, "save the answer as a note in AI Generated")
	user := fs.String("user", "", "user id for --save (default: notes.default_user)")
	_ = fs.Parse(searchArgsReorder(os.Args[2:]))

	query := buildSearchQuery(fs.Args())
	if query == "" {
		fatalf("Usage: notegraph ask [--mode explain|research|summarize] <query>")
	}
	mode, err := ai.ParseMode(*modeFlag)
	if err != nil {
		fatalf("%v", err)
	}
	cfg, _, logger := setup(*configPath, false)
	defer logger.Sync()
	ctx := context.Background()

	services, err := buildAI(ctx, cfg, logger)
	if err != nil {
		fatalf("Failed to initialize AI services: %v", err)
	}
	assistant := ai.NewAssistant(services.Chat, services.Research, services.Generate, logger)
	answer, err := assistant.Ask(ctx, mode, query)
	if err != nil {
		fatalf("%s", ai.UserMessage(err))
	}
	cli.WriteAnswer(os.Stdout, mode.Title(), query, answer)
	if !*save {
		return
	}

	components, err := initializeComponents(ctx, cfg, logger)
	if err != nil {
		fatalf("Failed to initialize: %v", err)
	}
	defer components.Close()
	store, err := components.Sessions.Get(ctx, userOrDefault(*user, cfg))
	if err != nil {
		fatalf("Failed to open notes: %v", err)
	}
	n, err := assistant.SaveAsNote(ctx, store, mode, query, answer)
	if err != nil {
		fatalf("Failed to save answer: %v", err)
	}
	fmt.Fprintf(os.Stderr, "saved as note %s\n", n.ID)
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	_ = fs.Parse(os.Args[2:])

	format := parseFormat(*outputFormat)
	status := &models.ServiceStatus{}
	if *serverURL != "" {
		if err := getJSON(*serverURL+"/api/v1/status", "", status); err != nil {
			fatalf("Status failed: %v", err)
		}
	} else {
		cfg, _, logger := setup(*configPath, false)
		defer logger.Sync()
		ctx := context.Background()
		components, err := initializeComponents(ctx, cfg, logger)
		if err != nil {
			fatalf("Failed to initialize: %v", err)
		}
		defer components.Close()

		status.Driver = cfg.Storage.Driver
		status.RankedSearch = components.Engine.RankedEnabled()
		if status.Notes, err = components.Storage.CountNotes(ctx); err != nil {
			fatalf("Failed to count notes: %v", err)
		}
		if status.Questions, err = components.Storage.CountQuestions(ctx); err != nil {
			fatalf("Failed to count questions: %v", err)
		}
		status.DiskUsage, status.DiskUsageBytes, err = storage.DiskUsage(cfg.Storage.DatabasePath, cfg.Storage.BleveIndexPath, cfg.Profile.AvatarDir)
		if err != nil {
			fatalf("Failed to measure disk usage: %v", err)
		}
	}
	if err := cli.WriteStatus(os.Stdout, status, format); err != nil {
		fatalf("Output failed: %v", err)
	}
}

// Components holds the storage-side services shared by the subcommands.
type Components struct {
	Storage      storage.Storage
	KeywordIndex *keyword.BleveIndex
	Sessions     *notes.Sessions
	Engine       *search.Engine
	Questions    *questions.Syncer
}

// Close releases all components in reverse order of creation.
func (c *Components) Close() {
	if c.Questions != nil {
		c.Questions.Stop()
	}
	if c.Sessions != nil {
		c.Sessions.CloseAll()
	}
	if c.KeywordIndex != nil {
		_ = c.KeywordIndex.Close()
	}
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
}

func initializeComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	c := &Components{Storage: store}

	noteOpts := []notes.Option{notes.WithMirrorLinks(cfg.Notes.MirrorLinksOrDefault())}
	var index keyword.NoteIndex
	if cfg.Search.RankedEnabled {
		kw, err := keyword.NewBleveIndex(cfg.Storage.BleveIndexPath)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to initialize keyword index: %w", err)
		}
		c.KeywordIndex = kw
		index = kw
		noteOpts = append(noteOpts, notes.WithIndexer(kw))
	}
	c.Sessions = notes.NewSessions(store, logger, noteOpts...)
	c.Engine = search.NewEngine(index, cfg.Search.ResultLimit, logger)

	c.Questions = questions.NewSyncer(store, cfg.Questions.SeedPath, logger)
	if _, err := c.Questions.SeedIfEmpty(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to seed questions: %w", err)
	}
	if cfg.Notes.SeedDemo {
		if err := storage.SeedDemo(ctx, store, cfg.Notes.DefaultUser); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

// aiServices are the AI adapters and the plan generator built on them.
type aiServices struct {
	Chat     ai.Chat
	Research ai.Researcher
	Generate ai.TextGenerator
	Plans    *plan.Generator
}

// buildAI creates the AI adapters. Adapters without an API key are still
// built and report ErrNotConfigured per call, except that the plan
// generator gets no chat model and always uses the template plan.
func buildAI(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*aiServices, error) {
	opts := []ai.Option{
		ai.WithLogger(logger),
		ai.WithTimeout(time.Duration(cfg.AI.TimeoutSec) * time.Second),
	}
	chat, err := ai.NewChat(ctx, cfg.AI.Chat, opts...)
	if err != nil {
		return nil, err
	}
	var planChat plan.Completer
	if cfg.AI.Chat.APIKey != "" {
		planChat = chat
	}
	return &aiServices{
		Chat:     chat,
		Research: ai.NewSearchClient(cfg.AI.Search, opts...),
		Generate: ai.NewGenerateClient(cfg.AI.Generate, opts...),
		Plans:    plan.NewGenerator(planChat, plan.WithLogger(logger)),
	}, nil
}

func printUsage() {
	fmt.Println(`notegraph - Study notes with a link graph, search and study plans

Usage:
  notegraph server [flags]             Start the HTTP server
  notegraph search [flags] <query>     Search notes
  notegraph plan [flags]               Pack the question bank into a weekly plan
  notegraph study-plan [flags]         Generate a day-by-day study plan
  notegraph graph [flags]              Render the note graph to SVG or PNG
  notegraph ask [flags] <query>        Ask the study assistant
  notegraph status [flags]             Show storage status
  notegraph version                    Show version
  notegraph help                       Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/notegraph/config.yaml)
  --debug            Enable debug logging

Search Flags:
  --server string    Server URL (default: http://localhost:8080). Use --server "" for direct storage.
  --user string      User id (default: notes.default_user)
  --folder string    Restrict to one folder
  --mode string      linear or ranked (default: linear)
  --limit int        Maximum results, capped at 8
  --output string    text, compact, or json

Plan Flags:
  --weeks int, --hours int, --week int, --difficulty list, --topic list, --output string

Study Plan Flags:
  --days int, --level string, --hours-per-day int, --platform string,
  --focus string, --weak string, --save, --user string

Graph Flags:
  --user string, --folder string, --width int, --height int, --out file.svg|file.png

Ask Flags:
  --mode explain|research|summarize, --save, --user string

Examples:
  notegraph server
  notegraph search "binary search"
  notegraph plan --weeks 8 --hours 6 --difficulty Easy,Medium
  notegraph study-plan --days 14 --level intermediate --save
  notegraph graph --folder Trees --out trees.png
  notegraph ask --mode research "union find path compression"
  notegraph status --output json`)
}
