// Command seed imports editions and their cards from a JSON file.
//
//	seed --file editions.json
//
// Editions already present (matched by name) are skipped, so the import can
// be re-run safely.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"

	"magicgatherer-api/internal/config"
	"magicgatherer-api/internal/model"
	"magicgatherer-api/internal/repository"
)

type editionFile struct {
	Name  string     `json:"name"`
	Code  string     `json:"code"`
	Cards []cardFile `json:"cards"`
}

type cardFile struct {
	Name       string          `json:"name"`
	ImageURL   string          `json:"image_url"`
	Rarity     string          `json:"rarity"`
	IsFoil     bool            `json:"is_foil"`
	NMPrice    float64         `json:"nm_price"`
	Conditions []conditionFile `json:"conditions"`
}

type conditionFile struct {
	Condition string  `json:"condition"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		path    string
		timeout time.Duration
	)
	pflag.StringVarP(&path, "file", "f", "editions.json", "JSON file with an array of editions")
	pflag.DurationVarP(&timeout, "timeout", "t", 5*time.Minute, "Abort the import after this long")
	pflag.Parse()

	cfg := config.MustLoad()

	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	editions, err := decodeEditions(f)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	store, err := repository.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize %s store: %v", cfg.Database.Type, err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	imported, skipped := 0, 0
	for _, e := range editions {
		id, created, err := store.ImportEdition(ctx, e)
		if err != nil {
			log.Fatalf("Failed to import edition %q: %v", e.Name, err)
		}
		if !created {
			skipped++
			log.Printf("[Seed] Edition %q already present (id %d), skipped", e.Name, id)
			continue
		}
		imported++
		log.Printf("[Seed] Imported edition %q (id %d) with %d cards", e.Name, id, len(e.Cards))
	}

	log.Printf("[Seed] Done: %d imported, %d skipped", imported, skipped)
}

// decodeEditions parses and validates the import file.
func decodeEditions(r io.Reader) ([]model.Edition, error) {
	var files []editionFile
	if err := json.NewDecoder(r).Decode(&files); err != nil {
		return nil, fmt.Errorf("failed to decode editions: %w", err)
	}

	editions := make([]model.Edition, 0, len(files))
	for _, ef := range files {
		if ef.Name == "" || ef.Code == "" {
			return nil, fmt.Errorf("edition needs both name and code (got %q/%q)", ef.Name, ef.Code)
		}

		e := model.Edition{Name: ef.Name, Code: ef.Code, Cards: make([]model.Card, 0, len(ef.Cards))}
		for _, cf := range ef.Cards {
			card, err := toCard(cf)
			if err != nil {
				return nil, fmt.Errorf("edition %q: %w", ef.Name, err)
			}
			e.Cards = append(e.Cards, card)
		}
		editions = append(editions, e)
	}
	return editions, nil
}

func toCard(cf cardFile) (model.Card, error) {
	rarity, ok := model.ParseRarity(cf.Rarity)
	if !ok {
		return model.Card{}, fmt.Errorf("card %q: unknown rarity %q", cf.Name, cf.Rarity)
	}

	card := model.Card{
		Name:     cf.Name,
		ImageURL: cf.ImageURL,
		Rarity:   rarity,
		IsFoil:   cf.IsFoil,
		NMPrice:  cf.NMPrice,
	}

	seen := make(map[model.Condition]bool, len(cf.Conditions))
	for _, cc := range cf.Conditions {
		grade, ok := model.ParseCondition(cc.Condition)
		if !ok {
			return model.Card{}, fmt.Errorf("card %q: unknown condition %q", cf.Name, cc.Condition)
		}
		if seen[grade] {
			return model.Card{}, fmt.Errorf("card %q: condition %s listed twice", cf.Name, grade)
		}
		seen[grade] = true
		card.Conditions = append(card.Conditions, model.CardCondition{
			Condition: grade,
			Price:     cc.Price,
			Quantity:  cc.Quantity,
		})
	}
	return card, nil
}
