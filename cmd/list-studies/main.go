// list-studies emits the index, name and schedule of each study in one or more study configuration files as line-delimited JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/aaronland/go-entities-study"
	"github.com/aaronland/go-entities-study/internal/logger"
)

func main() {

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  %s path1 [path2 ... pathN]\n\n", os.Args[0])
	}

	flag.Parse()

	log := logger.New(logger.InfoLevel, os.Stderr)
	defer log.Sync()

	enc := json.NewEncoder(os.Stdout)

	for _, path := range flag.Args() {

		err := listStudies(path, enc)

		if err != nil {
			log.Fatalf("Failed to list studies in %s, %v", path, err)
		}
	}
}

func listStudies(path string, enc *json.Encoder) error {

	r, err := os.Open(path)

	if err != nil {
		return fmt.Errorf("Failed to open %s, %w", path, err)
	}

	defer r.Close()

	body, err := io.ReadAll(r)

	if err != nil {
		return fmt.Errorf("Failed to read %s, %w", path, err)
	}

	doc, err := study.Decode(body)

	if err != nil {
		return fmt.Errorf("Failed to decode %s, %w", path, err)
	}

	studies, err := study.Studies(doc)

	if err != nil {
		return err
	}

	for _, s := range studies {

		err := enc.Encode(s)

		if err != nil {
			return fmt.Errorf("Failed to encode study %d, %w", s.Index, err)
		}
	}

	return nil
}
