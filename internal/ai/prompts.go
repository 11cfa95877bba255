package ai

import (
	"fmt"
	"strings"
)

// The application generates traditional Spanish cuisine; prompts and all
// generated text are in Spanish, image hints in English.

func recipePrompt(input GenerateRecipeInput) string {
	var constraints []string
	if input.Vegetarian {
		constraints = append(constraints, "La receta debe ser vegetariana.")
	}
	if input.GlutenFree {
		constraints = append(constraints, "La receta debe ser sin gluten.")
	}
	if input.AirFryer {
		constraints = append(constraints, "La receta debe prepararse en una freidora de aire.")
	}

	return fmt.Sprintf(`Eres un chef español de gran talento. Genera una receta tradicional española basada en los ingredientes proporcionados. La receta completa debe estar en español, con instrucciones paso a paso, una lista de ingredientes con cantidades y el tiempo de cocción estimado. Sugiere ingredientes adicionales que podrían mejorar la receta. %s

Ingredientes: %s

La salida debe ser un objeto JSON con las claves recipeName, ingredientsList, instructions, estimatedCookingTime, additionalSuggestedIngredients, nutritionalInformation e imageHint (una pista de 2 palabras en inglés para generar una imagen del plato). Todo el texto excepto imageHint debe estar en español.`,
		strings.Join(constraints, " "), input.Ingredients)
}

func categoryRecipesPrompt(category string, n int) string {
	return fmt.Sprintf(`Eres un chef español de gran talento. Genera %d recetas tradicionales españolas representativas de la categoría "%s". Cada receta debe estar completa y en español.

La salida debe ser un array JSON; cada elemento es un objeto con las claves recipeName, ingredientsList, instructions, estimatedCookingTime, additionalSuggestedIngredients, nutritionalInformation e imageHint (pista de 2 palabras en inglés). Todo el texto excepto imageHint debe estar en español.`, n, category)
}

func categoriesPrompt(n int) string {
	return fmt.Sprintf(`Genera una lista de %d categorías de comida española diversas y atractivas. Para cada categoría, proporciona un nombre en español, un slug amigable para URL y una pista de 2 palabras en inglés para generar una imagen.

Ejemplo de formato de salida:
[
  { "name": "Tapas Clásicas", "slug": "tapas-clasicas", "imageHint": "spanish tapas" },
  { "name": "Paellas y Arroces", "slug": "paellas-arroces", "imageHint": "seafood paella" }
]

La salida DEBE ser un array JSON válido.`, n)
}

func missingIngredientsPrompt(recipe, available string) string {
	return fmt.Sprintf(`Given the following recipe and available ingredients, suggest a short list of missing ingredients that would significantly improve or complete the recipe. The ingredients should be common in typical Spanish cuisine. Return a JSON object with a single key "missingIngredients" holding a comma separated list. Do not include quantities.

Recipe: %s

Available Ingredients: %s`, recipe, available)
}

func searchTermsPrompt(query string) string {
	return fmt.Sprintf(`Eres un asistente útil para una aplicación de recetas. Basado en la consulta de búsqueda parcial del usuario, proporciona 5 sugerencias de búsqueda relevantes. Las sugerencias pueden ser nombres de recetas o ingredientes. La consulta está en español. Proporciona las sugerencias en español.

Consulta del usuario: %s

La salida debe ser un objeto JSON con una clave "suggestions" que contiene un array de cadenas.`, query)
}

func imagePrompt(hint string) string {
	return fmt.Sprintf("a delicious professional photo of %s, spanish cuisine style", hint)
}
