// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// epcr searches a FASTA target for matches to a library of
// Sequence-Tagged Sites, reporting every STS whose primer pair and
// expected amplicon size are satisfied within the configured
// mismatch, protection and margin tolerances.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kortschak/epcr/audit"
	"github.com/kortschak/epcr/engine"
	"github.com/kortschak/epcr/genome"
	"github.com/kortschak/epcr/stsfile"
)

func main() {
	stsPath := flag.String("sts", "", "specify STS table file (required)")
	target := flag.String("target", "", "specify FASTA target file (required)")
	word := flag.Int("word", 11, "specify k-mer word size W (3..16)")
	margin := flag.Int("margin", 50, "specify amplicon size tolerance M")
	mismatches := flag.Int("mismatches", 0, "specify per-primer mismatch budget N")
	protect := flag.Int("protect", 0, "specify 3' exact-match protection length X")
	defaultSize := flag.Int("default-size", 240, "specify default PCR size for STS records that omit one")
	threads := flag.Int("threads", 0, "specify worker count (<=0 is use all cores)")
	iupac := flag.Bool("iupac", true, "specify IUPAC-aware comparison")
	chunk := flag.Int("chunk", 1<<20, "specify target partition size handed to one worker")
	gff := flag.Bool("gff", false, "emit GFF instead of the native tabular format")
	auditPath := flag.String("audit", "", "specify path to persist every hit to a kv store")
	outPath := flag.String("out", "", "specify output path (default stdout)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s -sts <library.sts> -target <target.fa> [options] >hits.txt

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *stsPath == "" || *target == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := engine.Config{
		WordSize:       *word,
		Margin:         *margin,
		Mismatches:     *mismatches,
		Protect:        *protect,
		DefaultPCRSize: *defaultSize,
		Threads:        *threads,
		IUPAC:          *iupac,
		ChunkSize:      *chunk,
		GFF:            *gff,
		AuditPath:      *auditPath,
	}

	log.Println("loading STS table", *stsPath)
	f, err := os.Open(*stsPath)
	if err != nil {
		log.Fatal(err)
	}
	lib, err := stsfile.Load(f, func(e *stsfile.Error) {
		log.Println(e)
	})
	f.Close()
	if err != nil {
		log.Fatal(err)
	}

	e, err := engine.New(cfg, lib)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("loading target", *target)
	recs, err := loadTarget(*target)
	if err != nil {
		log.Fatal(err)
	}

	var out = os.Stdout
	if *outPath != "" {
		out, err = os.Create(*outPath)
		if err != nil {
			log.Fatal(err)
		}
		defer out.Close()
	}
	bw := bufio.NewWriter(out)
	defer bw.Flush()
	sink := cfg.Writer(bw)

	var auditSink *audit.Sink
	if cfg.AuditPath != "" {
		auditSink, err = audit.Create(cfg.AuditPath)
		if err != nil {
			log.Fatal(err)
		}
		defer auditSink.Close()
	}

	ctx := context.Background()
	total := 0
	for _, r := range recs {
		log.Println("searching", r.Label)
		hits, err := e.Search(ctx, r.Label, r.Seq, sink, auditSink)
		if err != nil {
			log.Fatal(err)
		}
		total += len(hits)
	}
	log.Printf("found %d hits", total)
}

func loadTarget(path string) ([]genome.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return genome.LoadFASTA(f)
}
