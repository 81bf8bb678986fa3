package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sanonone/lexvek/internal/config"
	lexmcp "github.com/sanonone/lexvek/internal/mcp"
	"github.com/sanonone/lexvek/internal/server"
	"github.com/sanonone/lexvek/pkg/chart"
	"github.com/sanonone/lexvek/pkg/core"
	"github.com/sanonone/lexvek/pkg/corpus"
	"github.com/sanonone/lexvek/pkg/persistence"
)

const version = "0.1.0"

func main() {
	// Dispatch based on the subcommand (the first argument)
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "train":
		runTrain(os.Args[2:])
	case "similar":
		runSimilar(os.Args[2:])
	case "analogy":
		runAnalogy(os.Args[2:])
	case "info":
		runInfo(os.Args[2:])
	case "plot":
		runPlot(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "mcp":
		runMCP(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		log.Printf("Unknown command %q.", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: lexvek <command> [flags]

Commands:
  train     build word embeddings from a corpus file or directory
  similar   list the nearest neighbors of a word
  analogy   solve "a is to b as c is to ?"
  info      describe a trained model
  plot      render a 2D scatter plot of a model
  serve     expose a model over the HTTP API
  mcp       expose a model as MCP tools on stdio

Run 'lexvek <command> -h' for the command's flags.`)
}

// --- TRAIN SUBCOMMAND ---

func runTrain(args []string) {
	trainCmd := flag.NewFlagSet("train", flag.ExitOnError)
	corpusPath := trainCmd.String("corpus", "", "Corpus file (one document per line) or directory (one document per file).")
	configPath := trainCmd.String("config", "", "Optional YAML configuration file.")
	outPath := trainCmd.String("out", "model.lvk", "Output path for the trained model.")
	format := trainCmd.String("format", "", "Model format: binary or text. Default follows the output extension (.lvk is binary).")
	window := trainCmd.Int("window", 0, "Context window size per side (overrides the config file).")
	dims := trainCmd.Int("dim", 0, "Embedding dimensions (overrides the config file).")
	minCount := trainCmd.Int("min-count", 0, "Minimum occurrences for a word to enter the vocabulary (overrides the config file).")
	stopWords := trainCmd.String("stopwords", "", "Stop word language to filter before training (english, italian).")
	stem := trainCmd.Bool("stem", false, "Reduce tokens to their English Porter2 stems before training.")
	parallel := trainCmd.Bool("parallel", false, "Count co-occurrences on all CPU cores.")
	trainCmd.Parse(args)

	if *corpusPath == "" {
		log.Fatal("Error: -corpus flag is required for the train command.")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}
	opts := cfg.Train.Options()

	// Flags win over the config file, but only when actually given.
	trainCmd.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "window":
			opts.WindowSize = *window
		case "dim":
			opts.Dimensions = *dims
		case "min-count":
			opts.MinCount = *minCount
		case "stopwords":
			opts.StopWordLanguage = *stopWords
		case "stem":
			opts.Stem = *stem
		case "parallel":
			opts.Parallel = *parallel
		}
	})

	c := mustLoadCorpus(*corpusPath)
	model, err := core.Train(c, opts)
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}

	switch resolveFormat(*format, *outPath) {
	case "binary":
		err = persistence.SaveBinary(*outPath, model, cfg.Train.SnapshotPrecision())
	case "text":
		err = persistence.SaveText(*outPath, model)
	default:
		log.Fatalf("Unknown format %q (want binary or text).", *format)
	}
	if err != nil {
		log.Fatalf("Could not save model: %v", err)
	}

	fmt.Printf("Trained %d words into %d dimensions (window %d, min count %d).\n",
		model.Size(), model.Dim(), model.WindowSize, model.MinCount)
	fmt.Printf("Model saved to %s\n", *outPath)
}

func resolveFormat(format, outPath string) string {
	if format != "" {
		return format
	}
	if strings.HasSuffix(outPath, ".lvk") {
		return "binary"
	}
	return "text"
}

// --- QUERY SUBCOMMANDS ---

func runSimilar(args []string) {
	similarCmd := flag.NewFlagSet("similar", flag.ExitOnError)
	modelPath := similarCmd.String("model", "model.lvk", "Path of the trained model.")
	limit := similarCmd.Int("limit", core.DefaultSimilarLimit, "Maximum number of neighbors to list.")
	similarCmd.Parse(args)

	word := similarCmd.Arg(0)
	if word == "" {
		log.Fatal("Error: a query word is required, e.g. 'lexvek similar king'.")
	}

	model := mustLoadModel(*modelPath)
	matches, err := model.Similar(word, *limit)
	if err != nil {
		log.Fatalf("Similarity query failed: %v", err)
	}
	printMatches(matches)
}

func runAnalogy(args []string) {
	analogyCmd := flag.NewFlagSet("analogy", flag.ExitOnError)
	modelPath := analogyCmd.String("model", "model.lvk", "Path of the trained model.")
	limit := analogyCmd.Int("limit", core.DefaultSimilarLimit, "Maximum number of completions to list.")
	analogyCmd.Parse(args)

	if analogyCmd.NArg() != 3 {
		log.Fatal("Error: three words are required, e.g. 'lexvek analogy king queen man'.")
	}
	a, b, c := analogyCmd.Arg(0), analogyCmd.Arg(1), analogyCmd.Arg(2)

	model := mustLoadModel(*modelPath)
	matches, err := model.Analogy(a, b, c, *limit)
	if err != nil {
		log.Fatalf("Analogy query failed: %v", err)
	}
	fmt.Printf("%s is to %s as %s is to:\n", a, b, c)
	printMatches(matches)
}

func runInfo(args []string) {
	infoCmd := flag.NewFlagSet("info", flag.ExitOnError)
	modelPath := infoCmd.String("model", "model.lvk", "Path of the trained model.")
	infoCmd.Parse(args)

	model := mustLoadModel(*modelPath)
	fmt.Printf("words:        %d\n", model.Size())
	fmt.Printf("dimensions:   %d\n", model.Dim())
	fmt.Printf("window size:  %d\n", model.WindowSize)
	fmt.Printf("min count:    %d\n", model.MinCount)
	fmt.Printf("total tokens: %d\n", model.Vocab.TotalTokens())
	if model.RunID != "" {
		fmt.Printf("run id:       %s\n", model.RunID)
	}
	if top := model.Vocab.MostFrequent(10); len(top) > 0 {
		fmt.Printf("top words:    %s\n", strings.Join(top, " "))
	}
}

func runPlot(args []string) {
	plotCmd := flag.NewFlagSet("plot", flag.ExitOnError)
	modelPath := plotCmd.String("model", "model.lvk", "Path of the trained model.")
	outPath := plotCmd.String("out", "embeddings.png", "Output image path (.png, .svg, .pdf).")
	title := plotCmd.String("title", "", "Plot title.")
	maxWords := plotCmd.Int("max-words", chart.DefaultMaxWords, "Word cap when no words are named.")
	plotCmd.Parse(args)

	model := mustLoadModel(*modelPath)
	opts := chart.Options{Title: *title, MaxWords: *maxWords}
	if err := chart.Scatter(model, plotCmd.Args(), *outPath, opts); err != nil {
		log.Fatalf("Plotting failed: %v", err)
	}
	fmt.Printf("Plot saved to %s\n", *outPath)
}

// --- SERVE SUBCOMMAND ---

func runServe(args []string) {
	serveCmd := flag.NewFlagSet("serve", flag.ExitOnError)
	modelPath := serveCmd.String("model", "model.lvk", "Path of the trained model.")
	configPath := serveCmd.String("config", "", "Optional YAML configuration file.")
	addr := serveCmd.String("addr", "", "Listen address, host:port (overrides the config file).")
	authToken := serveCmd.String("auth-token", "", "Bearer token required on model routes (overrides the config file).")
	serveCmd.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}
	listenAddr := net.JoinHostPort(cfg.Serve.Host, strconv.Itoa(cfg.Serve.Port))
	if *addr != "" {
		listenAddr = *addr
	}
	token := cfg.Serve.AuthToken
	serveCmd.Visit(func(f *flag.Flag) {
		if f.Name == "auth-token" {
			token = *authToken
		}
	})

	model := mustLoadModel(*modelPath)
	srv := server.NewServer(model, listenAddr, token)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownChan
	srv.Shutdown()
}

// --- MCP SUBCOMMAND ---

func runMCP(args []string) {
	mcpCmd := flag.NewFlagSet("mcp", flag.ExitOnError)
	modelPath := mcpCmd.String("model", "model.lvk", "Path of the trained model.")
	mcpCmd.Parse(args)

	model := mustLoadModel(*modelPath)
	srv := lexmcp.NewMCPServer(model, version)

	// stdout carries the MCP protocol, so logging must stay on stderr.
	slog.Info("MCP server listening on stdio", "words", model.Size())
	if err := srv.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}

// --- SHARED HELPERS ---

func mustLoadCorpus(path string) corpus.Corpus {
	info, err := os.Stat(path)
	if err != nil {
		log.Fatalf("Could not read corpus path: %v", err)
	}
	var c corpus.Corpus
	if info.IsDir() {
		c, err = corpus.LoadDir(path)
	} else {
		c, err = corpus.LoadFile(path)
	}
	if err != nil {
		log.Fatalf("Could not load corpus: %v", err)
	}
	return c
}

func mustLoadModel(path string) *core.Model {
	model, err := persistence.Load(path)
	if err != nil {
		log.Fatalf("Could not load model from %s: %v", path, err)
	}
	return model
}

func printMatches(matches []core.Match) {
	for i, m := range matches {
		fmt.Printf("%2d. %-24s %.4f\n", i+1, m.Word, m.Score)
	}
}
