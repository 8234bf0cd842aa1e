package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/shellsim/pkg/shellsim/catalog"
	"github.com/arthur-debert/shellsim/pkg/shellsim/core"
	"github.com/arthur-debert/shellsim/pkg/shellsim/mastery"
)

func newCatalogCommand(env *cliEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the command reference",
		Long:  "List and search the commands the simulator can describe",
	}

	cmd.AddCommand(newCatalogListCommand(env))
	cmd.AddCommand(newCatalogCategoriesCommand(env))

	return cmd
}

func newCatalogListCommand(env *cliEnv) *cobra.Command {
	var (
		platformName string
		category     string
		search       string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog commands grouped by category",
		Long: `List catalog commands grouped by category. --search matches commands and
descriptions and ignores --category. Commands whose verb you have typed in a
simulated terminal are marked with *.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := catalog.Query{Text: search, Category: category}
			if platformName != "" {
				plat, err := core.ParsePlatform(platformName)
				if err != nil {
					return err
				}
				q.Platform = plat
			}

			entries := catalog.Default().Search(q)
			render := newRenderer(cmd.OutOrStdout(), env.cfg.Color)
			if len(entries) == 0 {
				render.Line("", core.System("no matching commands"))
				return nil
			}

			mastered := env.masteredVerbs()
			for _, cat := range catalog.CategoriesFor(entries) {
				render.Header(cat)
				for _, e := range entries {
					if e.Category != cat {
						continue
					}
					mark := " "
					if mastery.IsMastered(e.Cmd, mastered) {
						mark = "*"
					}
					render.Line("", core.Output(fmt.Sprintf("%s %-32s %-8s %s", mark, e.Cmd, e.Platform, e.Desc)))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&platformName, "platform", "p", "", "only commands for this platform (universal included)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only commands in this category")
	cmd.Flags().StringVarP(&search, "search", "s", "", "match command or description text")

	return cmd
}

func newCatalogCategoriesCommand(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories with command counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			render := newRenderer(cmd.OutOrStdout(), env.cfg.Color)
			entries := catalog.Default().Entries()

			counts := make(map[string]int)
			for _, e := range entries {
				counts[e.Category]++
			}
			for _, cat := range catalog.CategoriesFor(entries) {
				render.Line("", core.Output(fmt.Sprintf("%-24s %3d", cat, counts[cat])))
			}
			return nil
		},
	}
}

// masteredVerbs reads the tracker file without modifying it. Errors yield
// an empty list.
func (e *cliEnv) masteredVerbs() []string {
	path, err := e.cfg.masteryPath()
	if err != nil {
		return nil
	}
	f, err := mastery.Open(path)
	if err != nil {
		e.logger.Debug().Err(err).Msg("mastery progress unavailable")
		return nil
	}
	return f.Mastered()
}
