package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"chef-app/internal/core/pantry"
	"chef-app/internal/core/recipe"
	"chef-app/internal/pkg/common"
	"chef-app/internal/pkg/metrics"
	"chef-app/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func (c *cli) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Rezepte importieren",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "text [file|-]",
		Short: "Rezepttext per KI importieren (ohne Argument von stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}
			data, err := io.ReadAll(r)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			res, err := c.app.Imports.ImportText(cmd.Context(), string(data))
			if err != nil {
				return err
			}
			return c.emit(cmd, res, func(w io.Writer) { fmt.Fprintln(w, res) })
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "video <url>",
		Short: "Rezept aus einem Video-Transkript importieren",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Imports.ImportVideo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.emit(cmd, res, func(w io.Writer) { fmt.Fprintln(w, res) })
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "sheet <zutaten.csv> <anleitungen.csv>",
		Short: "CSV-Export der alten Tabelle übernehmen",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ingredients, err := readCSVFile(args[0], store.ReadLegacyIngredients)
			if err != nil {
				return err
			}
			steps, err := readCSVFile(args[1], store.ReadLegacySteps)
			if err != nil {
				return err
			}

			sum, err := c.app.Store.ImportLegacyRows(cmd.Context(), ingredients, steps)
			if err != nil {
				return err
			}
			metrics.RecipesImported.WithLabelValues(recipe.SourceSheet).Add(float64(sum.Recipes))
			if err := c.app.Catalog.Refresh(cmd.Context()); err != nil {
				return err
			}
			common.LogInfo("舊版試算表已匯入",
				zap.Int("recipes", sum.Recipes),
				zap.Int("ingredients", sum.Ingredients),
				zap.Int("steps", sum.Steps),
			)

			return c.emit(cmd, sum, func(w io.Writer) {
				fmt.Fprintf(w, "%d Rezepte, %d Zutaten, %d Schritte importiert\n", sum.Recipes, sum.Ingredients, sum.Steps)
			})
		},
	})

	return cmd
}

func readCSVFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Alle Rezepte anzeigen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recipes := c.app.Catalog.Recipes()
			return c.emit(cmd, common.NewListResponse(recipes), func(w io.Writer) {
				if len(recipes) == 0 {
					fmt.Fprintln(w, "(keine Rezepte)")
				}
				for _, r := range recipes {
					mark := " "
					if r.Favorite {
						mark = "*"
					}
					fmt.Fprintf(w, "%s %s (%d Zutaten, %d Schritte)\n", mark, r.Name, r.IngredientCount, r.StepCount)
				}
			})
		},
	}
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <recipe>",
		Short: "Zutaten und Anleitung eines Rezepts anzeigen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.app.Catalog.Recipe(args[0])
			if err != nil {
				return err
			}
			view := recipe.BuildCookView(r, recipe.ViewState{}.Select(r.Name).ToggleMode())
			return c.emit(cmd, view, func(w io.Writer) {
				fmt.Fprintf(w, "%s\n\nZutaten:\n", r.Name)
				printList(w, view.Ingredients)
				fmt.Fprintln(w, "\nAnleitung:")
				for i, s := range view.Steps {
					fmt.Fprintf(w, "%d. %s\n", i+1, s)
				}
			})
		},
	}
}

func (c *cli) shoppingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shopping <recipe>...",
		Short: "Einkaufsliste für die gewählten Rezepte",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items := c.app.Catalog.ShoppingList(args)
			return c.emit(cmd, common.NewListResponse(items), func(w io.Writer) {
				if len(items) == 0 {
					fmt.Fprintln(w, "(leer)")
				}
				category := ""
				for _, it := range groupByCategory(items) {
					if it.Category != category {
						category = it.Category
						fmt.Fprintf(w, "%s:\n", category)
					}
					fmt.Fprintf(w, "  - %s\n", shoppingLine(it))
				}
			})
		},
	}
}

// shoppingLine 例如 "3 Stk Zwiebel"，沒有數量時只顯示名稱
func shoppingLine(it pantry.ShoppingItem) string {
	if it.Total == 0 {
		return it.Ingredient
	}
	return strings.Join(strings.Fields(pantry.FormatQuantity(it.Total)+" "+it.Unit+" "+it.Ingredient), " ")
}

// groupByCategory 依分類排序，同分類內保留原順序
func groupByCategory(items []pantry.ShoppingItem) []pantry.ShoppingItem {
	var order []string
	byCat := make(map[string][]pantry.ShoppingItem)
	for _, it := range items {
		if _, ok := byCat[it.Category]; !ok {
			order = append(order, it.Category)
		}
		byCat[it.Category] = append(byCat[it.Category], it)
	}
	out := make([]pantry.ShoppingItem, 0, len(items))
	for _, cat := range order {
		out = append(out, byCat[cat]...)
	}
	return out
}

func (c *cli) cookableCmd() *cobra.Command {
	var noBasics bool
	cmd := &cobra.Command{
		Use:   "cookable <ingredient>...",
		Short: "Rezepte finden, die zu den vorhandenen Zutaten passen",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := c.app.Catalog.Cookable(args, !noBasics)
			return c.emit(cmd, common.NewListResponse(results), func(w io.Writer) {
				if len(results) == 0 {
					fmt.Fprintln(w, "Nichts gefunden.")
				}
				for _, r := range results {
					fmt.Fprintf(w, "%s: %d/%d", r.Recipe, r.MatchCount, r.RequiredCount)
					if len(r.Missing) > 0 {
						fmt.Fprintf(w, " (fehlt: %s)", strings.Join(r.Missing, ", "))
					}
					fmt.Fprintln(w)
				}
			})
		},
	}
	cmd.Flags().BoolVar(&noBasics, "no-basics", false, "basics not counted as available")
	return cmd
}

func (c *cli) basicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "basics",
		Short: "Basis-Zutaten verwalten",
	}

	printBasics := func(cmd *cobra.Command, b pantry.Basics) error {
		names := b.Names()
		return c.emit(cmd, common.NewListResponse(names), func(w io.Writer) { printList(w, names) })
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Basis-Zutaten anzeigen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printBasics(cmd, c.app.Catalog.Basics())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Basis-Zutat hinzufügen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.app.Catalog.AddBasic(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printBasics(cmd, b)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <name>",
		Short: "Basis-Zutat entfernen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.app.Catalog.RemoveBasic(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printBasics(cmd, b)
		},
	})

	return cmd
}

func (c *cli) favoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <recipe>",
		Short: "Favoritenstatus umschalten",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			change, err := c.app.Catalog.ToggleFavorite(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.emit(cmd, change, func(w io.Writer) {
				if change.Favorite {
					fmt.Fprintf(w, "%s ist jetzt ein Favorit\n", change.Recipe)
				} else {
					fmt.Fprintf(w, "%s ist kein Favorit mehr\n", change.Recipe)
				}
			})
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Alle Rezepte als YAML exportieren",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(c.app.Catalog.Export())
			if err != nil {
				return fmt.Errorf("failed to marshal recipes: %w", err)
			}

			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d Rezepte nach %s exportiert\n", len(c.app.Catalog.Recipes()), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
