package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/pastry-blog/internal/logging"
	"github.com/jonathan/pastry-blog/internal/schemas"
	"github.com/jonathan/pastry-blog/internal/types"
)

// ImportFile is the bulk import document.
type ImportFile struct {
	Recipes    []types.RecipeRequest    `json:"recipes"`
	Techniques []types.TechniqueRequest `json:"techniques"`
	Science    []types.ScienceRequest   `json:"science"`
	Products   []types.ProductRequest   `json:"products"`
}

// ImportResult counts what an import created. Items whose slug (or ASIN)
// already exists are skipped.
type ImportResult struct {
	Recipes    int `json:"recipes"`
	Techniques int `json:"techniques"`
	Science    int `json:"science"`
	Products   int `json:"products"`
	Skipped    int `json:"skipped"`
}

// Created returns the number of items created.
func (r ImportResult) Created() int {
	return r.Recipes + r.Techniques + r.Science + r.Products
}

// ParseImport validates data against the import schema and decodes it.
func ParseImport(data []byte) (*ImportFile, error) {
	if err := schemas.ValidateImport(data); err != nil {
		return nil, err
	}
	var file ImportFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode import file: %w", err)
	}
	return &file, nil
}

// Import validates every entry of file and creates it in store. It stops at
// the first invalid entry; entries created before it are kept.
func Import(ctx context.Context, store Store, file *ImportFile) (ImportResult, error) {
	var result ImportResult

	for i := range file.Recipes {
		req := &file.Recipes[i]
		if err := req.Validate(); err != nil {
			return result, fmt.Errorf("recipe %d (%s): %w", i, req.Slug, err)
		}
		recipe := req.ToRecipe()
		if err := PrepareRecipe(&recipe); err != nil {
			return result, fmt.Errorf("recipe %d (%s): %w", i, req.Slug, err)
		}
		ok, err := createOutcome(store.CreateRecipe(ctx, &recipe))
		if err != nil {
			return result, fmt.Errorf("failed to import recipe %s: %w", req.Slug, err)
		}
		tally(&result.Recipes, &result.Skipped, ok)
	}

	for i := range file.Techniques {
		req := &file.Techniques[i]
		if err := req.Validate(); err != nil {
			return result, fmt.Errorf("technique %d (%s): %w", i, req.Slug, err)
		}
		technique := req.ToTechnique()
		if err := PrepareTechnique(&technique); err != nil {
			return result, fmt.Errorf("technique %d (%s): %w", i, req.Slug, err)
		}
		ok, err := createOutcome(store.CreateTechnique(ctx, &technique))
		if err != nil {
			return result, fmt.Errorf("failed to import technique %s: %w", req.Slug, err)
		}
		tally(&result.Techniques, &result.Skipped, ok)
	}

	for i := range file.Science {
		req := &file.Science[i]
		if err := req.Validate(); err != nil {
			return result, fmt.Errorf("science article %d (%s): %w", i, req.Slug, err)
		}
		article := req.ToScience()
		if err := PrepareScience(&article); err != nil {
			return result, fmt.Errorf("science article %d (%s): %w", i, req.Slug, err)
		}
		ok, err := createOutcome(store.CreateScience(ctx, &article))
		if err != nil {
			return result, fmt.Errorf("failed to import science article %s: %w", req.Slug, err)
		}
		tally(&result.Science, &result.Skipped, ok)
	}

	for i := range file.Products {
		req := &file.Products[i]
		if err := req.Validate(); err != nil {
			return result, fmt.Errorf("product %d (%s): %w", i, req.Name, err)
		}
		product := req.ToProduct()
		ok, err := createOutcome(store.CreateProduct(ctx, &product))
		if err != nil {
			return result, fmt.Errorf("failed to import product %s: %w", req.Name, err)
		}
		tally(&result.Products, &result.Skipped, ok)
	}

	logging.Ctx(ctx).Info().
		Int("created", result.Created()).
		Int("skipped", result.Skipped).
		Msg("content import finished")
	return result, nil
}

// createOutcome turns the outcome of a Create call into (created, err), treating
// a duplicate as a skip.
func createOutcome(err error) (bool, error) {
	if errors.Is(err, types.ErrAlreadyExists) {
		return false, nil
	}
	return err == nil, err
}

func tally(n, skipped *int, created bool) {
	if created {
		*n++
	} else {
		*skipped++
	}
}
