package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brandforge/brandforge/internal/cli"
	"github.com/brandforge/brandforge/internal/model"
)

func profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage generated content profiles",
		Long:  `Show, list, and pre-generate the per-category marketing content profiles.`,
	}

	cmd.AddCommand(showProfileCmd())
	cmd.AddCommand(listProfilesCmd())
	cmd.AddCommand(generateProfileCmd())

	return cmd
}

func listProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories with a generated profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			codes, err := store.ProfileCodes(ctx)
			if err != nil {
				return fmt.Errorf("failed to list profiles: %w", err)
			}

			if len(codes) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No profiles generated yet. Run 'brandforge resolve' first."))
				return nil
			}

			cat := loadCatalog(ctx, store)
			for _, code := range codes {
				name := ""
				if rec := cat.Get(code); rec != nil {
					name = rec.DisplayName
				}
				fmt.Printf("%s  %s\n", code, name)
			}

			return nil
		},
	}
}

func showProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <code>",
		Short: "Show the content profile for a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			profile, err := store.GetProfile(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load profile: %w", err)
			}
			if profile == nil {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("No profile for %s. Generate one with: brandforge profiles generate %s", args[0], args[0])))
				return nil
			}

			printProfile(profile)
			return nil
		},
	}
}

func generateProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <code>",
		Short: "Generate a content profile ahead of time",
		Long: `Generate and cache the content profile for a category before it is
first resolved. Existing profiles are kept unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			force, _ := cmd.Flags().GetBool("force")
			code := args[0]

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat := loadCatalog(ctx, store)
			rec := cat.Get(code)
			if rec == nil {
				return fmt.Errorf("unknown category code: %s", code)
			}

			if !force {
				existing, getErr := store.GetProfile(ctx, code)
				if getErr == nil && existing != nil {
					fmt.Println(cli.FormatSuccess(fmt.Sprintf("Profile for %s already exists. Use --force to regenerate.", code)))
					return nil
				}
			}

			generator := initGenerator(store)
			if generator == nil {
				return fmt.Errorf("no LLM configured; set llm.api_key to generate profiles")
			}

			progress := cli.NewGenerationProgress(os.Stdout)
			if _, err := generator.Generate(ctx, rec.Code, rec.DisplayName, progress.Update); err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Profile generated for %s (%s).", rec.DisplayName, rec.Code)))
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "regenerate even if a profile already exists")

	return cmd
}

func printProfile(p *model.Profile) {
	fmt.Println(cli.FormatTitle(fmt.Sprintf("%s (%s)", p.DisplayName, p.Code)))
	fmt.Println(cli.SubtleStyle.Render("Generated " + p.GeneratedAt.Format("2006-01-02 15:04")))
	fmt.Println()

	fmt.Println(cli.RenderBox("Research", formatResearch(p.Research)))
	fmt.Println(cli.RenderBox("Customer Psychology", formatPsychology(p.Psychology)))
	fmt.Println(cli.RenderBox("Market Position", formatMarket(p.Market)))
	fmt.Println(cli.RenderBox("Messaging", formatMessaging(p.Messaging)))
	fmt.Println(cli.RenderBox("Campaign Seeds", formatCampaigns(p.Campaigns)))
}

func formatResearch(r model.ResearchInsights) string {
	var sb strings.Builder
	sb.WriteString(r.IndustrySummary)
	sb.WriteString("\n\n")
	sb.WriteString(bulletList("Pain points", r.PainPoints))
	sb.WriteString(bulletList("Buying triggers", r.BuyingTriggers))
	if r.Seasonality != "" {
		sb.WriteString(fmt.Sprintf("Seasonality: %s\n", r.Seasonality))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatPsychology(p model.PsychologyDrivers) string {
	var sb strings.Builder
	sb.WriteString(bulletList("Emotional drivers", p.EmotionalDrivers))
	sb.WriteString(bulletList("Trust factors", p.TrustFactors))
	sb.WriteString(bulletList("Common objections", p.CommonObjections))
	return strings.TrimRight(sb.String(), "\n")
}

func formatMarket(m model.MarketPosition) string {
	var sb strings.Builder
	sb.WriteString(bulletList("Segments", m.Segments))
	sb.WriteString(bulletList("Competitors", m.Competitors))
	sb.WriteString(bulletList("Differentiators", m.Differentiators))
	if m.PriceSensitivity != "" {
		sb.WriteString(fmt.Sprintf("Price sensitivity: %s\n", m.PriceSensitivity))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatMessaging(m model.MessagingKit) string {
	var sb strings.Builder
	sb.WriteString(bulletList("Value props", m.ValueProps))
	sb.WriteString(bulletList("Hooks", m.Hooks))
	sb.WriteString(bulletList("Headlines", m.Headlines))
	sb.WriteString(bulletList("Calls to action", m.CallsToAction))
	if m.Tone != "" {
		sb.WriteString(fmt.Sprintf("Tone: %s\n", m.Tone))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatCampaigns(c model.CampaignSeeds) string {
	var sb strings.Builder
	sb.WriteString(bulletList("Angles", c.Angles))
	sb.WriteString(bulletList("Offers", c.Offers))
	sb.WriteString(bulletList("Audiences", c.Audiences))
	return strings.TrimRight(sb.String(), "\n")
}

func bulletList(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(title + ":\n")
	for _, item := range items {
		sb.WriteString("  • " + item + "\n")
	}
	return sb.String()
}
