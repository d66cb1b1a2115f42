package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/brandforge/brandforge/internal/cli"
	"github.com/brandforge/brandforge/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Browse the category catalog",
		Long:  `List and search the business categories available for resolution.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(searchCategoriesCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Long:  `Display the full catalog ordered by popularity, marking categories that already have a generated profile.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat := loadCatalog(ctx, store)

			codes, err := store.ProfileCodes(ctx)
			if err != nil {
				return fmt.Errorf("failed to get profile codes: %w", err)
			}

			printCategoryTable(cat.Records(), codes)
			return nil
		},
	}
}

func searchCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search categories",
		Long:  `Search the catalog by name, group, or keyword.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat := loadCatalog(ctx, store)
			query := strings.Join(args, " ")

			matches := cat.Search(query)
			if len(matches) == 0 {
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("No categories match %q.", query)))
				return nil
			}

			codes, err := store.ProfileCodes(ctx)
			if err != nil {
				return fmt.Errorf("failed to get profile codes: %w", err)
			}

			printCategoryTable(matches, codes)
			return nil
		},
	}
}

func printCategoryTable(records []model.CategoryRecord, profileCodes []string) {
	hasProfile := make(map[string]bool, len(profileCodes))
	for _, code := range profileCodes {
		hasProfile[code] = true
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("Code"),
		headerStyle.Render("Name"),
		headerStyle.Render("Group"),
		headerStyle.Render("Profile"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 8),
		strings.Repeat("-", 28),
		strings.Repeat("-", 20),
		strings.Repeat("-", 7))

	for _, rec := range records {
		mark := ""
		if hasProfile[rec.Code] {
			mark = cli.SuccessStyle.Render(cli.SuccessIcon)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rec.Code, rec.DisplayName, rec.Group, mark)
	}
}
