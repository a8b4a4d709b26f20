package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/recipe-service/backend/config"
	"github.com/pageza/recipe-service/backend/internal/logging"
	"github.com/pageza/recipe-service/backend/internal/service"
	"github.com/pageza/recipe-service/backend/internal/store"
	"github.com/pageza/recipe-service/backend/internal/types"
)

var defaultRecipes = []types.RecipeRequest{
	{
		Name:                    "Scrambled Eggs",
		Description:             "4 eggs, salt, pepper",
		ImagePath:               "../images/scrambled_eggs.jpg",
		IngredientIDs:           []int{100001, 100002, 100003},
		IngredientAmountsInGram: []int{50, 1400, 360},
	},
	{
		Name:                    "Porridge",
		Description:             "Oats simmered in milk with a pinch of salt",
		ImagePath:               "../images/porridge.jpg",
		IngredientIDs:           []int{100010, 100011, 100002},
		IngredientAmountsInGram: []int{80, 250, 1},
	},
	{
		Name:                    "Tomato Salad",
		Description:             "Tomatoes, red onion, olive oil",
		ImagePath:               "../images/tomato_salad.jpg",
		IngredientIDs:           []int{100020, 100021, 100022},
		IngredientAmountsInGram: []int{300, 40, 15},
	},
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run seeds the configured store and reports each inserted recipe to out
func run(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("seed_recipes", flag.ContinueOnError)
	file := flags.String("file", "", "JSON file with an array of recipes to insert (defaults to a built-in set)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	recipes := defaultRecipes
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", *file, err)
		}
		recipes = nil
		if err := json.Unmarshal(data, &recipes); err != nil {
			return fmt.Errorf("failed to parse %s: %w", *file, err)
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	recipeStore, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open recipe store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := recipeStore.Close(closeCtx); err != nil {
			logger.Warn("failed to close recipe store", zap.Error(err))
		}
	}()

	svc := service.NewRecipeService(recipeStore, cfg.RequestTimeout, logger)

	var created int
	for i := range recipes {
		saved, err := svc.CreateRecipe(ctx, &recipes[i])
		if err != nil {
			logger.Warn("skipping recipe", zap.String("name", recipes[i].Name), zap.Error(err))
			continue
		}
		fmt.Fprintf(out, "Seeded %s (%s)\n", saved.Name, saved.ID)
		created++
	}

	fmt.Fprintf(out, "Seeded %d of %d recipes.\n", created, len(recipes))
	return nil
}
