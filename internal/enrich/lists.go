// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/model-catalog/pkg/types"
)

// CuratedSource is the page the hand-curated popular list mirrors.
const CuratedSource = "https://runware.ai/models"

// CuratedCollectionName labels the curated list in its output catalog.
const CuratedCollectionName = "Popular Models"

// CuratedOutputFile is the curated catalog's filename inside the output
// directory.
const CuratedOutputFile = "popular_models.json"

// DefaultCuratedModels is the hand-maintained popular list. Curated by
// display name for better API matching.
var DefaultCuratedModels = []types.CuratedModel{
	{Name: "ImagineArt 1.5 Pro", Creator: "ImagineArt"},
	{Name: "Qwen-Image-2512", Creator: "Alibaba"},
	{Name: "Seedream 4.5", Creator: "ByteDance"},
	{Name: "FLUX.2 [klein] 9B", Creator: "Black Forest Labs"},
	{Name: "FLUX.2 [klein] 4B", Creator: "Black Forest Labs"},
	{Name: "Kling IMAGE O1", Creator: "Kling AI"},
	{Name: "Nano Banana Pro", Creator: "Google"},
	{Name: "Z-Image-Turbo", Creator: "Alibaba"},
	{Name: "Qwen-Image-Edit-Plus", Creator: "Alibaba"},
	{Name: "FLUX.2 [dev]", Creator: "Black Forest Labs"},
	{Name: "Qwen-Image-Edit-2511", Creator: "Alibaba"},
	{Name: "Object Eraser"},
	{Name: "Riverflow 2.0 Pro", Creator: "Sourceful"},
	{Name: "GPT Image 1.5", Creator: "OpenAI"},
	{Name: "Wan2.6 Image", Creator: "Alibaba"},
	{Name: "Midjourney V7", Creator: "Midjourney"},
	{Name: "ImagineArt 1.5", Creator: "ImagineArt"},
	{Name: "FLUX.2 [max]", Creator: "Black Forest Labs"},
	{Name: "Imagen 4 Preview", Creator: "Google"},
	{Name: "Imagen 4 Fast", Creator: "Google"},
	{Name: "Riverflow 2 Preview Max", Creator: "Sourceful"},
	{Name: "Riverflow 2 Preview Standard", Creator: "Sourceful"},
	{Name: "Midjourney V6", Creator: "Midjourney"},
	{Name: "Bria FIBO Edit", Creator: "Bria"},
}

// DefaultCollections lists the provider collection pages scraped for
// additional lists (text-focused models).
var DefaultCollections = []types.Collection{
	{
		Name:       "Best for Text on Images",
		URL:        "https://runware.ai/collections/best-for-text-on-images",
		OutputFile: "best_models.json",
	},
}

// Lists is the optional YAML override for the compiled-in model and
// collection lists.
type Lists struct {
	PopularModels []types.CuratedModel `yaml:"popular_models"`
	Collections   []types.Collection   `yaml:"collections"`
}

// LoadLists reads a list override file. Either section may be omitted, in
// which case the compiled-in default is kept.
func LoadLists(path string) (Lists, error) {
	lists := Lists{
		PopularModels: DefaultCuratedModels,
		Collections:   DefaultCollections,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return lists, fmt.Errorf("reading list file %s: %w", path, err)
	}

	var override Lists
	if err := yaml.Unmarshal(data, &override); err != nil {
		return lists, fmt.Errorf("parsing list file %s: %w", path, err)
	}

	if override.PopularModels != nil {
		lists.PopularModels = override.PopularModels
	}
	if override.Collections != nil {
		lists.Collections = override.Collections
	}
	return lists, nil
}
