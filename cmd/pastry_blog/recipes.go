package main

import (
	"fmt"

	"github.com/jonathan/pastry-blog/internal/catalog"
	"github.com/jonathan/pastry-blog/internal/content"
	"github.com/jonathan/pastry-blog/internal/observability"
	"github.com/spf13/cobra"
)

var (
	listCategory   string
	listDifficulty string
	listMaxTime    int
	listSearch     string
	listSort       string
	listPage       int
	listPageSize   int

	scaleServings int
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Browse and scale recipes",
}

var recipesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List published recipes with filters, sorting and pagination",
	Args:  cobra.NoArgs,
	RunE:  runRecipesList,
}

var recipesScaleCmd = &cobra.Command{
	Use:   "scale <slug>",
	Short: "Scale a recipe's ingredients and pan size to a serving count",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipesScale,
}

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search recipes, techniques and science articles",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	flags := recipesListCmd.Flags()
	flags.StringVar(&listCategory, "category", "", "Only recipes in this category")
	flags.StringVar(&listDifficulty, "difficulty", "", "Only recipes of this difficulty (facile, media, difficile, professionale)")
	flags.IntVar(&listMaxTime, "max-time", -1, "Only recipes ready within this many minutes")
	flags.StringVar(&listSearch, "search", "", "Only recipes whose title, excerpt or tags contain this text")
	flags.StringVar(&listSort, "sort", string(catalog.DefaultSort), "Sort: newest, oldest, titleAsc, titleDesc, timeAsc, timeDesc")
	flags.IntVar(&listPage, "page", 1, "Page number")
	flags.IntVar(&listPageSize, "page-size", 0, "Recipes per page (default from config)")

	recipesScaleCmd.Flags().IntVarP(&scaleServings, "servings", "s", 0, "Target servings (required)")
	if err := recipesScaleCmd.MarkFlagRequired("servings"); err != nil {
		panic(fmt.Sprintf("failed to mark servings flag as required: %v", err))
	}

	recipesCmd.AddCommand(recipesListCmd, recipesScaleCmd)
	rootCmd.AddCommand(recipesCmd, searchCmd)
}

func listQuery() catalog.Query {
	criteria := catalog.Criteria{
		Category:   listCategory,
		Difficulty: listDifficulty,
		Search:     listSearch,
	}
	if listMaxTime >= 0 {
		criteria.MaxTimeMinutes = catalog.MaxTime(listMaxTime)
	}

	pageSize := listPageSize
	if pageSize <= 0 {
		pageSize = cfg.PageSize
	}

	return catalog.Query{
		Criteria: criteria,
		Sort:     catalog.ParseSortKey(listSort),
		Page:     listPage,
		PageSize: pageSize,
	}
}

func runRecipesList(cmd *cobra.Command, _ []string) error {
	store, closeStore, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	listing, err := content.NewService(store).Recipes(cmd.Context(), listQuery())
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintRecipeListing(listing)
	return nil
}

func runRecipesScale(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	recipe, scaled, err := content.NewService(store).ScaleRecipe(cmd.Context(), args[0], &scaleServings)
	if err != nil {
		return err
	}
	if recipe == nil {
		return fmt.Errorf("recipe not found: %s", args[0])
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintScaledRecipe(recipe, scaled)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	hits, err := content.NewService(store).WithSearchLimit(cfg.SearchLimit).Search(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintSearchHits(args[0], hits)
	return nil
}
