// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The epcr-audit command dumps an epcr run's optional persisted hit
// store, written when epcr was invoked with -audit. Output is a JSON
// stream on stdout, one object per hit, in key order (target, start,
// end, STS id, strand).
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/kortschak/epcr/audit"
	"github.com/kortschak/epcr/scan"
)

func main() {
	path := flag.String("db", "", "specify audit db file to dump (required)")
	flag.Parse()
	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	db, err := audit.Open(*path)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	type entry struct {
		Target     string `json:"target"`
		Start      int    `json:"start"`
		End        int    `json:"end"`
		STSID      string `json:"sts_id"`
		Strand     string `json:"strand"`
		Annotation string `json:"annotation,omitempty"`
	}

	enc := json.NewEncoder(os.Stdout)
	err = db.Each(func(k scan.Key, r audit.Record) error {
		return enc.Encode(entry{
			Target:     k.Target,
			Start:      k.Start,
			End:        k.End,
			STSID:      k.STSID,
			Strand:     r.Strand,
			Annotation: r.Annotation,
		})
	})
	if err != nil {
		log.Fatal(err)
	}
}
