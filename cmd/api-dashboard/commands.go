package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/i474232898/api-dashboard/internal/common"
	"github.com/i474232898/api-dashboard/internal/dashboard"
)

// --- fetch ---

type fetchFunc func(ctx context.Context, svc *dashboard.Service, arg string) (dashboard.View, error)

var fetchers = map[string]fetchFunc{
	"stock": func(ctx context.Context, svc *dashboard.Service, arg string) (dashboard.View, error) {
		return svc.SearchStock(ctx, arg)
	},
	"stocks": func(ctx context.Context, svc *dashboard.Service, arg string) (dashboard.View, error) {
		return svc.SearchSymbols(ctx, common.SplitList(arg))
	},
	"trending": func(ctx context.Context, svc *dashboard.Service, _ string) (dashboard.View, error) {
		return svc.LoadTrending(ctx)
	},
	"popular": func(ctx context.Context, svc *dashboard.Service, _ string) (dashboard.View, error) {
		return svc.LoadPopular(ctx)
	},
	"latest": func(ctx context.Context, svc *dashboard.Service, arg string) (dashboard.View, error) {
		return svc.LatestQuote(ctx, arg)
	},
	"weather": func(ctx context.Context, svc *dashboard.Service, arg string) (dashboard.View, error) {
		return svc.FetchWeather(ctx, arg)
	},
	"users": func(ctx context.Context, svc *dashboard.Service, arg string) (dashboard.View, error) {
		return svc.FetchUsers(ctx, arg)
	},
	"country": func(ctx context.Context, svc *dashboard.Service, arg string) (dashboard.View, error) {
		return svc.FetchCountry(ctx, arg)
	},
	"quote": func(ctx context.Context, svc *dashboard.Service, arg string) (dashboard.View, error) {
		return svc.FetchQuote(ctx, arg)
	},
	"joke": func(ctx context.Context, svc *dashboard.Service, _ string) (dashboard.View, error) {
		return svc.FetchJoke(ctx)
	},
	"dogs": func(ctx context.Context, svc *dashboard.Service, arg string) (dashboard.View, error) {
		return svc.FetchDogs(ctx, arg)
	},
}

func fetchNames() []string {
	names := make([]string, 0, len(fetchers))
	for name := range fetchers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <source> [arg]",
	Short: "Run one surface load and print the result",
	Long: `Run one surface load and print the result.

Examples:
  api-dashboard fetch stock AAPL
  api-dashboard fetch weather "New York"
  api-dashboard fetch users 3
  api-dashboard fetch dogs 4 --json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		fn, ok := fetchers[args[0]]
		if !ok {
			return fmt.Errorf("unknown source %q (one of %s)", args[0], strings.Join(fetchNames(), ", "))
		}
		var arg string
		if len(args) == 2 {
			arg = args[1]
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a, err := newApplication(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		view, err := fn(ctx, a.service, arg)
		if perr := printView(cmd.OutOrStdout(), view, asJSON); perr != nil {
			return perr
		}
		if err != nil {
			return fmt.Errorf("%s: %s", args[0], dashboard.Message(err))
		}
		return nil
	},
}

func printView(w io.Writer, view dashboard.View, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	switch view.State {
	case dashboard.StateSuccess:
		_, err := fmt.Fprintf(w, "%s (%s)\n%s\n", view.Surface, view.CountLabel(), view.HTML)
		return err
	case dashboard.StateEmpty, dashboard.StateError:
		_, err := fmt.Fprintf(w, "%s: %s\n", view.Surface, view.Message)
		return err
	}
	return nil
}

// --- key ---

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the marketstack access key",
}

var keySetCmd = &cobra.Command{
	Use:   "set <key>",
	Short: "Save the marketstack access key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a, err := newApplication(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.service.Session().SaveAPIKey(ctx, args[0]); err != nil {
			return fmt.Errorf("%s", dashboard.Message(err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "API key saved")
		return nil
	},
}

func init() {
	fetchCmd.Flags().Bool("json", false, "print the surface view as JSON")
}
