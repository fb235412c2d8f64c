package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gnana997/routejump/pkg/jump"
	"github.com/gnana997/routejump/pkg/route"
)

func (a *app) jumpCmd() *cobra.Command {
	var (
		method string
		open   bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "jump <url>",
		Short: "Resolve a URL to the controller method that handles it",
		Example: `  routejump jump https://app.test/users/42
  routejump jump users/42 --method PUT
  routejump jump /admin/reports --open`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, closeFn, err := a.setup()
			if err != nil {
				return err
			}
			defer closeFn()

			target, err := svc.Jump(cmd.Context(), args[0], a.chooser(method))
			if err != nil {
				return err
			}

			if asJSON {
				if err := a.printJSON(target); err != nil {
					return err
				}
			} else {
				loc := target.Location
				fmt.Fprintf(a.stdout, "%s:%d:%d\t%s\n", loc.File, loc.Line, loc.Column, target.Ref.Action)
				if !loc.NamespaceMatched && len(loc.Candidates) > 1 {
					fmt.Fprintf(a.stderr, "note: no candidate declares %s; using %s (of %d)\n",
						target.Ref.FQN(), loc.RelPath, len(loc.Candidates))
				}
			}

			if open {
				return openInEditor(target.Location.File, int(target.Location.Line), int(target.Location.Column))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&method, "method", "X", "", "HTTP method to use when different methods reach different actions")
	cmd.Flags().BoolVar(&open, "open", false, "Open the file in $VISUAL or $EDITOR at the method")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

// chooser picks how ambiguity is resolved: an explicit method, an
// interactive prompt, or an error listing the methods.
func (a *app) chooser(method string) jump.MethodChooser {
	if strings.TrimSpace(method) != "" || !isTerminalFunc(a.stdin) {
		return jump.FixedMethod(method)
	}
	return jump.MethodChooserFunc(func(_ context.Context, url string, targets []route.Target) (string, error) {
		return promptMethod(a.stdin, a.stderr, url, targets)
	})
}

func (a *app) findCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "find <url>",
		Short: "Show which routes match a URL without locating the source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, closeFn, err := a.setup()
			if err != nil {
				return err
			}
			defer closeFn()

			result, err := svc.Find(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return a.printJSON(result)
			}
			a.printFindResult(result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func (a *app) printFindResult(result *jump.FindResult) {
	res := result.Resolution
	w := a.stdout

	switch res.Outcome {
	case route.OutcomeNoRoute:
		fmt.Fprintf(w, "No route matches %s (%d routes checked).\n", result.URL, result.RouteCount)
		if len(result.Suggestions) > 0 {
			fmt.Fprintln(w, "Did you mean:")
			for _, s := range result.Suggestions {
				fmt.Fprintf(w, "  %-8s %s\t%s\n", strings.Join(s.Methods, "|"), s.URI, s.Action)
			}
		}
		return
	case route.OutcomeNotNavigable:
		fmt.Fprintf(w, "%s matches only closure routes:\n", result.URL)
	default:
		fmt.Fprintf(w, "%s matches:\n", result.URL)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, m := range res.Matches {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t(%s)\n", strings.Join(m.Methods, "|"), m.Route.URI, m.Action, m.Kind)
	}
	tw.Flush()

	if res.Outcome == route.OutcomeAmbiguous {
		fmt.Fprintf(w, "Ambiguous: choose one of %s with --method.\n", strings.Join(res.Methods(), ", "))
	}
}

func (a *app) routesCmd() *cobra.Command {
	var (
		filter string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the project's routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, closeFn, err := a.setup()
			if err != nil {
				return err
			}
			defer closeFn()

			routes, err := svc.Routes(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if asJSON {
				return a.printJSON(routes)
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "METHOD\tURI\tNAME\tACTION")
			for _, r := range routes {
				uri := r.URI
				if r.Domain != "" {
					uri = r.Domain + "/" + strings.TrimPrefix(uri, "/")
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", strings.Join(r.Methods, "|"), uri, r.Name, r.Action)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only show routes whose uri, name or action contains this text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the routes as JSON")
	return cmd
}
