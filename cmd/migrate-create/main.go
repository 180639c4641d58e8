package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const migrationsDir = "db/migrations"

func main() {
	name := flag.String("name", "", "migration name")
	flag.Parse()

	if *name == "" {
		log.Fatal("migration name is required")
	}
	if strings.ContainsAny(*name, " ") {
		log.Fatal("migration name must not contain spaces")
	}

	version := time.Now().UTC().Format("20060102150405")
	base := filepath.Join(migrationsDir, fmt.Sprintf("%s_%s", version, *name))

	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		log.Fatalf("create migrations dir: %v", err)
	}
	if err := createStub(base + ".up.sql"); err != nil {
		log.Fatalf("create up migration: %v", err)
	}
	if err := createStub(base + ".down.sql"); err != nil {
		log.Fatalf("create down migration: %v", err)
	}
	log.Printf("created %s.{up,down}.sql", base)
}

func createStub(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file already exists: %s", path)
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte("-- write migration here\n"), 0o644)
}
