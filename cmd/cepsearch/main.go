// Command cepsearch prints the address registered for a CEP.
//
//	cepsearch [-config file.yaml] [-data cep_ordenado.dat] CEP
//
// Exit codes: 0 search done (found or not), 1 usage or configuration error,
// 2 data store not found or not openable, 3 CEP is not 8 characters,
// 4 the store could not be read while searching.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	cep "github.com/luhtfiimanal/go-cep-archive"
	"github.com/luhtfiimanal/go-cep-archive/internal/config"
	"github.com/luhtfiimanal/go-cep-archive/internal/logger"
)

const (
	exitOK = iota
	exitArgError
	exitFileNotFound
	exitCEPFormatError
	exitReadError
)

func main() {
	os.Exit(run(os.Args[0], os.Args[1:], os.Stdout, os.Stderr))
}

func run(prog string, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	dataPath := fs.String("data", "", "sorted record file (overrides data.path)")
	if err := fs.Parse(args); err != nil {
		return exitArgError
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "usage: %s [CEP]\n", prog)
		return exitArgError
	}
	key := fs.Arg(0)
	if len(key) != cep.KeyLength {
		fmt.Fprintf(stderr, "the CEP must have exactly %d characters, please run the program again\n", cep.KeyLength)
		return exitCEPFormatError
	}

	var files []string
	if *configPath != "" {
		files = append(files, *configPath)
	}
	cfg, err := config.NewConfiguration(files...)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitArgError
	}
	if *dataPath != "" {
		cfg.Data.Source = config.SourceFile
		cfg.Data.Path = *dataPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitArgError
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitArgError
	}
	defer func() { _ = log.Sync() }()

	src, err := openSource(context.Background(), cfg)
	if err != nil {
		log.Debug("open data store failed", zap.String("source", cfg.Data.Source), zap.Error(err))
		fmt.Fprintf(stderr, "the data store could not be opened: %v\n", err)
		return exitFileNotFound
	}
	defer src.Close()

	searcher := cep.NewSearcherWithOptions(src, cep.Options{
		StrictLength:   cfg.Data.StrictLength,
		BufferPoolSize: cfg.Data.BufferPoolSize,
		Logger:         log,
	})
	rec, found, err := searcher.Find(key)
	if err != nil {
		fmt.Fprintf(stderr, "search failed: %v\n", err)
		return exitReadError
	}
	log.Debug("search done", zap.String("cep", key), zap.Bool("found", found),
		zap.Uint64("probes", searcher.GetStats().Probes))
	if !found {
		fmt.Fprintln(stderr, "address not found")
		return exitOK
	}
	printRecord(stdout, &rec)
	return exitOK
}

func openSource(ctx context.Context, cfg *config.Configuration) (cep.Source, error) {
	fileOpts := cep.FileOptions{UseMmap: cfg.Data.UseMmap, Lock: cfg.Data.Lock}
	switch cfg.Data.Source {
	case config.SourceFile:
		return cep.OpenFile(cfg.Data.Path, fileOpts)
	case config.SourceShards:
		return cep.OpenShards(cfg.Data.Shards, fileOpts)
	case config.SourceMinio:
		m := cfg.Minio
		client, err := cep.NewMinioClient(m.Endpoint, m.AccessKeyID, m.SecretAccessKey, m.Region, m.UseSSL)
		if err != nil {
			return nil, err
		}
		return cep.OpenObject(ctx, client, m.Bucket, m.Object, cep.ObjectOptions{
			RequestTimeout: m.RequestTimeout.Duration(),
		})
	}
	return nil, errors.Newf("unknown data source %q", cfg.Data.Source)
}

func printRecord(w io.Writer, rec *cep.AddressRecord) {
	fmt.Fprintln(w)
	for _, f := range rec.Fields() {
		fmt.Fprintln(w, f)
	}
}
