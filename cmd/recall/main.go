// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/recall"
	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/retrieve"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "recall",
		Usage: "Multi-source retrieval over a partitioned knowledge base",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "db",
				Aliases:  []string{"d"},
				Usage:    "Path to BadgerDB database directory",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "classifier-host",
				Usage: "Classifier service host URL",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:  "classifier-model",
				Usage: "Classifier model name",
			},
			&cli.StringFlag{
				Name:  "embedding-host",
				Usage: "Embedding service host URL (defaults to classifier-host)",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Add a document to a knowledge partition",
				Action: addCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "kind",
						Aliases:  []string{"k"},
						Usage:    "Partition: resource, memory, or skill",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "uri",
						Usage:    "Document URI",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Document title",
					},
					&cli.StringFlag{
						Name:  "content",
						Usage: "Document contents (literal text)",
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "Read document contents from a file",
					},
				},
			},
			{
				Name:   "find",
				Usage:  "Quick lookup across all partitions",
				Action: findCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum results across all partitions",
						Value: 10,
					},
					&cli.StringFlag{
						Name:  "target-uri",
						Usage: "Restrict results to URIs under this prefix",
					},
					&cli.Float64Flag{
						Name:  "score-threshold",
						Usage: "Minimum relevance score (inclusive)",
					},
				},
			},
			{
				Name:   "search",
				Usage:  "Context-aware search using classifier-driven planning",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum results across all partitions",
						Value: 10,
					},
					&cli.StringFlag{
						Name:  "target-uri",
						Usage: "Restrict results to URIs under this prefix",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openClient(c *cli.Context) (*recall.Client, error) {
	classifierHost := c.String("classifier-host")
	embeddingHost := c.String("embedding-host")
	if embeddingHost == "" {
		embeddingHost = classifierHost
	}

	configOpts := []ai.ConfigOption{
		ai.WithClassifierHost(classifierHost),
		ai.WithEmbeddingHost(embeddingHost),
	}
	if model := c.String("classifier-model"); model != "" {
		configOpts = append(configOpts, ai.WithClassifierModel(model))
	}
	if model := c.String("embedding-model"); model != "" {
		configOpts = append(configOpts, ai.WithEmbeddingModel(model))
	}

	aiConfig := ai.NewConfig(configOpts...)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	client, err := recall.Open(c.String("db"), recall.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return client, nil
}

func addCommand(c *cli.Context) error {
	ctx := context.Background()

	kind, err := core.ParseContextType(c.String("kind"))
	if err != nil {
		return err
	}

	contents := c.String("content")
	if filePath := c.String("file"); filePath != "" {
		if contents != "" {
			return fmt.Errorf("--content and --file are mutually exclusive")
		}
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", filePath, err)
		}
		contents = string(data)
	}
	if contents == "" {
		return fmt.Errorf("document contents required (--content or --file)")
	}

	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	doc := &core.Document{
		URI:      c.String("uri"),
		Kind:     kind,
		Title:    c.String("title"),
		Contents: contents,
	}

	added, err := client.Ingest(ctx, kind, doc)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Added %s document %s (id %d)\n", kind, added[0].URI, added[0].Id)
	return nil
}

func findCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("query is required")
	}

	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := client.Find(ctx, query, &retrieve.FindOptions{
		Limit:          c.Int("limit"),
		TargetURI:      c.String("target-uri"),
		ScoreThreshold: float32(c.Float64("score-threshold")),
	})
	if err != nil {
		return fmt.Errorf("find failed: %w", err)
	}

	printResult(result)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("query is required")
	}

	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := client.Search(ctx, query, &retrieve.SearchOptions{
		Limit:     c.Int("limit"),
		TargetURI: c.String("target-uri"),
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	printResult(result)
	return nil
}

func printResult(result *core.SearchResult) {
	sections := []struct {
		name  string
		items []core.ScoredItem
	}{
		{"resources", result.Resources},
		{"memories", result.Memories},
		{"skills", result.Skills},
	}
	for _, section := range sections {
		if len(section.items) == 0 {
			continue
		}
		fmt.Printf("%s:\n", section.name)
		for _, item := range section.items {
			title := ""
			if item.Document != nil {
				title = item.Document.Title
			}
			fmt.Printf("  %.3f  %s  %s\n", item.Score, item.URI, title)
		}
	}
	fmt.Printf("total: %d (returned %d)\n", result.Total, result.Returned())
	if result.Partial {
		fmt.Printf("partial: failed partitions %v\n", result.FailedKinds)
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
