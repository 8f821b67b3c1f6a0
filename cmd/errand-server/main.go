package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/larkin/go-errand/agent"
	"github.com/larkin/go-errand/config"
	"github.com/larkin/go-errand/core"
	"github.com/larkin/go-errand/llm"
	"github.com/larkin/go-errand/server"
	"github.com/larkin/go-errand/trace"
	"github.com/larkin/go-errand/trace/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	client := llm.NewOpenAIClientWithConfig(llm.ClientConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
	})

	traceStore, err := store.NewStore(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("trace store: %v", err)
	}

	ag, err := agent.New(agent.Options{
		Client:       client,
		Recorder:     trace.NewStoreRecorder(traceStore, logger),
		Model:        core.DefaultModelConfig(cfg.Model),
		SystemPrompt: cfg.SystemPrompt,
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("agent: %v", err)
	}

	srv, err := server.New(server.Config{
		Agent: ag,
		Store: traceStore,
	})
	if err != nil {
		log.Fatalf("server: %v", err)
	}
	defer srv.Close()

	log.Printf("Starting errand server on http://localhost%s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, srv.Handler()))
}
