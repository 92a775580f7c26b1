// Command build_decks converts a CSV deck export into the YAML deck list
// format the simulator reads. Each CSV row is deck,card,count; cards are
// validated against the built-in catalog before writing.
//
// Usage: go run scripts/build_decks.go [input.csv] [output.yaml]
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/voidbound/battle-server-go/internal/decks"
)

func main() {
	csvPath := "data/decks_export.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	outPath := "decks/generated.yaml"
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	absPath, err := filepath.Abs(csvPath)
	if err != nil {
		log.Fatalf("Failed to get absolute path: %v", err)
	}

	fmt.Println("=== Deck List Build ===")
	fmt.Printf("CSV file: %s\n", absPath)

	file, err := os.Open(absPath)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}
	if len(records) < 2 {
		log.Fatal("CSV file is empty or has no data rows")
	}

	byDeck := make(map[string][]decks.CardEntry)
	var order []string
	skipped := 0
	for i, record := range records[1:] { // Skip header
		if len(record) < 3 {
			log.Printf("Warning: Skipping row %d - insufficient columns", i+2)
			skipped++
			continue
		}
		deckName, cardName := record[0], record[1]
		count, err := strconv.Atoi(record[2])
		if err != nil || count < 1 {
			log.Printf("Warning: Skipping row %d - bad count %q", i+2, record[2])
			skipped++
			continue
		}
		if _, err := decks.Lookup(cardName); err != nil {
			log.Printf("Warning: Skipping row %d - %v", i+2, err)
			skipped++
			continue
		}
		if _, seen := byDeck[deckName]; !seen {
			order = append(order, deckName)
		}
		byDeck[deckName] = append(byDeck[deckName], decks.CardEntry{Name: cardName, Count: count})
	}

	deckFile := decks.DeckFile{}
	for _, name := range order {
		deckFile.Decks = append(deckFile.Decks, decks.DeckEntry{Name: name, Cards: byDeck[name]})
	}
	if len(deckFile.Decks) == 0 {
		log.Fatal("No valid decks found in CSV")
	}

	data, err := yaml.Marshal(&deckFile)
	if err != nil {
		log.Fatalf("Failed to marshal deck list: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", outPath, err)
	}

	fmt.Printf("Wrote %d decks to %s (%d rows skipped)\n", len(deckFile.Decks), outPath, skipped)
}
