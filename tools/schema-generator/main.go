package main

import (
	"bytes"
	"flag"
	"log"
	"os"

	"github.com/grovetools/agentperms/config"
)

func main() {
	out := flag.String("out", config.SchemaFile, "schema file to write or check")
	check := flag.Bool("check", false, "fail if the schema file differs from the config structs instead of writing it")
	flag.Parse()

	data, err := config.SchemaJSON()
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}

	if *check {
		current, err := os.ReadFile(*out)
		if err != nil {
			log.Fatalf("Error reading schema file: %v", err)
		}
		if !bytes.Equal(current, data) {
			log.Fatalf("%s is out of date; run go generate ./config", *out)
		}
		log.Printf("%s is up to date", *out)
		return
	}

	if err := os.WriteFile(*out, data, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated agperms schema at %s", *out)
}
