package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/mrlokans/recetario/internal/entities"
)

// GeminiGateway implements Gateway against the Gemini API. Structured
// outputs use JSON response mode on the text model; images come back as
// inline data and are exposed as data URIs.
//
// All calls share one rate limiter, so multi-recipe and category-image
// generation is issued sequentially within the gateway's rate budget.
type GeminiGateway struct {
	client     *genai.Client
	textModel  string
	imageModel string
	limiter    *rate.Limiter
}

// NewGeminiGateway creates a Gemini-backed gateway. rps/burst bound the
// request rate across every generation call.
func NewGeminiGateway(ctx context.Context, apiKey, textModel, imageModel string, rps float64, burst int) (*GeminiGateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if burst < 1 {
		burst = 1
	}
	return &GeminiGateway{
		client:     client,
		textModel:  textModel,
		imageModel: imageModel,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

func (g *GeminiGateway) Close() error {
	return g.client.Close()
}

func (g *GeminiGateway) GenerateRecipe(ctx context.Context, input GenerateRecipeInput) (entities.Recipe, error) {
	if strings.TrimSpace(input.Ingredients) == "" {
		return entities.Recipe{}, fmt.Errorf("no ingredients provided")
	}

	var recipe entities.Recipe
	if err := g.generateJSON(ctx, recipePrompt(input), &recipe); err != nil {
		return entities.Recipe{}, fmt.Errorf("generate recipe: %w", err)
	}
	if recipe.RecipeName == "" {
		return entities.Recipe{}, fmt.Errorf("generate recipe: empty recipe name in response")
	}

	recipe.ImageURL = g.imageOrPlaceholder(ctx, recipe.ImageHint)
	return recipe, nil
}

func (g *GeminiGateway) GenerateRecipesByCategory(ctx context.Context, category string, n int) ([]entities.Recipe, error) {
	var recipes []entities.Recipe
	if err := g.generateJSON(ctx, categoryRecipesPrompt(category, n), &recipes); err != nil {
		return nil, fmt.Errorf("generate category recipes: %w", err)
	}

	// Sequential image generation; the limiter paces the calls.
	for i := range recipes {
		recipes[i].ImageURL = g.imageOrPlaceholder(ctx, recipes[i].ImageHint)
	}
	return recipes, nil
}

func (g *GeminiGateway) GenerateCategories(ctx context.Context, n int) ([]entities.Category, error) {
	var categories []entities.Category
	if err := g.generateJSON(ctx, categoriesPrompt(n), &categories); err != nil {
		return nil, fmt.Errorf("generate categories: %w", err)
	}

	for i := range categories {
		categories[i].ImageURL = g.imageOrPlaceholder(ctx, categories[i].ImageHint)
	}
	return categories, nil
}

func (g *GeminiGateway) SuggestMissingIngredients(ctx context.Context, recipe, available string) (string, error) {
	var out struct {
		MissingIngredients string `json:"missingIngredients"`
	}
	if err := g.generateJSON(ctx, missingIngredientsPrompt(recipe, available), &out); err != nil {
		return "", fmt.Errorf("suggest missing ingredients: %w", err)
	}
	return out.MissingIngredients, nil
}

func (g *GeminiGateway) SuggestSearchTerms(ctx context.Context, query string) ([]string, error) {
	var out struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := g.generateJSON(ctx, searchTermsPrompt(query), &out); err != nil {
		return nil, fmt.Errorf("suggest search terms: %w", err)
	}
	return out.Suggestions, nil
}

// GenerateImage returns a data URI for the hint. An empty hint resolves to
// the placeholder without a gateway call.
func (g *GeminiGateway) GenerateImage(ctx context.Context, hint string) (string, error) {
	if hint == "" {
		return entities.PlaceholderImageURL, nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	model := g.client.GenerativeModel(g.imageModel)
	resp, err := model.GenerateContent(ctx, genai.Text(imagePrompt(hint)))
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if blob, ok := part.(genai.Blob); ok {
				return blobDataURI(blob), nil
			}
		}
	}
	return "", fmt.Errorf("generate image: no image data in response")
}

// imageOrPlaceholder is GenerateImage with the universal fallback applied.
func (g *GeminiGateway) imageOrPlaceholder(ctx context.Context, hint string) string {
	url, err := g.GenerateImage(ctx, hint)
	if err != nil {
		return entities.PlaceholderImageURL
	}
	return url
}

// generateJSON runs a JSON-mode text generation and decodes the result.
func (g *GeminiGateway) generateJSON(ctx context.Context, prompt string, out any) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}

	model := g.client.GenerativeModel(g.textModel)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return err
	}

	text, err := responseText(resp)
	if err != nil {
		return err
	}
	return decodeJSON(text, out)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty model response")
	}
	return sb.String(), nil
}

// decodeJSON tolerates models that wrap JSON in markdown fences despite the
// JSON response mode.
func decodeJSON(text string, out any) error {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}

func blobDataURI(blob genai.Blob) string {
	mime := blob.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(blob.Data)
}
