// ABOUTME: Subcommands mapping catalog client operations onto the command line
// ABOUTME: Results print as indented JSON; favorites mutate through the synchronizer

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"marketplace-client-api/core/domain"
)

var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "List markets and their categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		markets, err := a.client.ListMarkets(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(markets)
	},
}

var (
	searchMarket   string
	searchCategory string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search listings by text, market and category",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		var market *domain.Market
		if searchMarket != "" {
			market = &domain.Market{Identifiable: domain.Identifiable{ID: searchMarket}}
		}
		var category *domain.Category
		if searchCategory != "" {
			category = &domain.Category{Identifiable: domain.Identifiable{ID: searchCategory}}
		}
		query := ""
		if len(args) > 0 {
			query = args[0]
		}

		result, err := a.client.Search(cmd.Context(), market, category, query)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var nodeByURL bool

var nodeCmd = &cobra.Command{
	Use:   "node <id-or-url>",
	Short: "Fetch a single listing by id or url",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ref := &domain.Node{}
		if nodeByURL {
			ref.URL = args[0]
		} else {
			ref.ID = args[0]
		}

		node, err := a.client.GetNode(cmd.Context(), ref)
		if err != nil {
			return err
		}
		return printJSON(node)
	},
}

var taggedCmd = &cobra.Command{
	Use:   "tagged <tag>",
	Short: "List the listings labeled with a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		result, err := a.client.Tagged(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List the most popular listings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		result, err := a.client.Popular(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently published listings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		result, err := a.client.Recent(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Show the catalog news entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		news, err := a.client.News(cmd.Context())
		if err != nil {
			return err
		}
		if news == nil {
			return errors.New("the catalog has no news entry")
		}
		return printJSON(news)
	},
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Inspect and mutate the user favorites record",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Resolve the current favorite listings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		nodes, err := a.client.UserFavorites(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(nodes)
	},
}

var favoritesFromListCmd = &cobra.Command{
	Use:   "from-list <url>",
	Short: "Resolve the listings named by a shared favorites-list document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		nodes, err := a.client.FavoritesFromList(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(nodes)
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <id>...",
	Short: "Mark listings as favorites",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		return a.favorites.AddFavorites(cmd.Context(), nodeRefs(args))
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <id>...",
	Short: "Unmark favorite listings",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		return a.favorites.RemoveFavorites(cmd.Context(), nodeRefs(args))
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchMarket, "market", "", "market id to scope the search")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "category id to scope the search")
	nodeCmd.Flags().BoolVar(&nodeByURL, "url", false, "treat the argument as a listing url")

	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesFromListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
}

func nodeRefs(ids []string) []*domain.Node {
	out := make([]*domain.Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, &domain.Node{Identifiable: domain.Identifiable{ID: id}})
	}
	return out
}
