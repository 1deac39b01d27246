package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"Condutor/internal/tables"
)

// tabcheck loads the reference CSVs and verifies the invariants the
// optimizer relies on (strictly increasing gauge scale, cost monotone in
// gauge, consistent conduit areas). Run it against edited tables before
// deploying them.
func main() {
	dir := flag.String("dir", "", "directory with the reference CSVs (default $TABLES_DIR or ./data)")
	flag.Parse()

	path := *dir
	if path == "" {
		path = os.Getenv("TABLES_DIR")
	}
	if path == "" {
		path = "./data"
	}

	cat, err := tables.Load(path)
	if err != nil {
		log.Fatalf("load: %v", err)
	}
	if err := cat.Validate(); err != nil {
		log.Fatalf("validate: %v", err)
	}

	fmt.Printf("OK: %d conductors, %d insulated areas, %d conduits\n",
		len(cat.Conductors), len(cat.InsulatedAreas), len(cat.Conduits))
	fmt.Printf("gauge scale: %v\n", cat.Scale())
}
