package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/cognicore/speller/pkg/speller"
	"github.com/cognicore/speller/pkg/speller/config"
)

const usage = `usage: speller [flags] <command> [args]

commands:
  check [-fix] [file]   check a file (or stdin) and print the JSON report
  suggest <word>...     rank replacements for single words
  add <word>...         add words to the combined dictionary
  rebuild               derive the dictionaries from the corpus again
`

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (defaults apply when empty)")
		quiet      = flag.Bool("quiet", false, "Suppress progress output")
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fmt.Fprintln(os.Stderr, "\nflags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logf := log.Printf
	if *quiet {
		logf = func(string, ...any) {}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "check":
		err = runCheck(ctx, cfg, logf, args, os.Stdin, os.Stdout)
	case "suggest":
		err = runSuggest(ctx, cfg, logf, args, os.Stdout)
	case "add":
		err = runAdd(ctx, cfg, logf, args)
	case "rebuild":
		err = runRebuild(ctx, cfg, logf)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	if path == "" {
		def := config.Default()
		cfg = &def
	} else {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runCheck(ctx context.Context, cfg *config.Config, logf func(string, ...any), args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fix := fs.Bool("fix", false, "Print the text with top suggestions applied instead of the report")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if fs.NArg() > 0 {
		data, err = os.ReadFile(fs.Arg(0))
	} else {
		data, err = io.ReadAll(in)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	text := string(data)

	s, err := speller.Open(ctx, cfg, logf)
	if err != nil {
		return err
	}
	defer s.Close()

	rep, err := s.Check(ctx, text)
	if err != nil {
		return err
	}
	logf("checked %d characters: %d errors (report %s)", rep.CharCount, rep.ErrorCount, rep.ID)

	if *fix {
		fixed, err := rep.Corrected(text)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, fixed)
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func runSuggest(ctx context.Context, cfg *config.Config, logf func(string, ...any), words []string, out io.Writer) error {
	if len(words) == 0 {
		return fmt.Errorf("suggest: at least one word required")
	}
	s, err := speller.Open(ctx, cfg, logf)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, w := range words {
		cands := s.Suggest(w)
		terms := make([]string, 0, len(cands))
		for _, c := range cands {
			terms = append(terms, c.Term)
		}
		fmt.Fprintf(out, "%s: %s\n", w, strings.Join(terms, ", "))
	}
	return nil
}

func runAdd(ctx context.Context, cfg *config.Config, logf func(string, ...any), words []string) error {
	if len(words) == 0 {
		return fmt.Errorf("add: at least one word required")
	}
	s, err := speller.Open(ctx, cfg, logf)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, w := range words {
		added, err := s.AddWord(ctx, w)
		if err != nil {
			return fmt.Errorf("add %q: %w", w, err)
		}
		if added {
			logf("added %q", w)
		} else {
			logf("%q already known", w)
		}
	}
	return nil
}

func runRebuild(ctx context.Context, cfg *config.Config, logf func(string, ...any)) error {
	comp, err := (&config.Loader{Config: cfg}).Load(ctx)
	if err != nil {
		return err
	}
	defer comp.Store.Close()

	text, err := cfg.CorpusBuilder(logf).Build(ctx)
	if err != nil {
		return err
	}

	s, err := speller.New(ctx, speller.Options{
		Corpus:  text,
		Store:   comp.Store,
		General: comp.General,
		Config:  cfg,
		Rebuild: true,
	})
	if err != nil {
		return err
	}

	dict := s.Dictionary()
	logf("rebuilt dictionaries: %d domain words, %d combined words", dict.DomainLen(), dict.Len())
	return nil
}
