package cli

import (
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matt-dz/foodgram/internal/catalog"
)

const (
	formatCSV  = "csv"
	formatJSON = "json"
)

// fixtureFormat infers the fixture encoding from the extension of a path
// or URL.
func fixtureFormat(source string) (string, error) {
	p := source
	if u, err := url.Parse(source); err == nil && u.Scheme != "" && u.Host != "" {
		p = u.Path
	}
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".csv":
		return formatCSV, nil
	case ".json":
		return formatJSON, nil
	default:
		return "", fmt.Errorf("unsupported fixture extension %q", ext)
	}
}

func newLoadIngredientsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load-ingredients <path|url>",
		Short: "Load ingredients from a CSV or JSON fixture",
		Long: `Load ingredients from a CSV file with name,measurement_unit rows after
a header row, or a JSON array of {"name", "measurement_unit"} objects.
Ingredients that already exist are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := fixtureFormat(args[0])
			if err != nil {
				return err
			}
			return runLoad(cmd, args[0], func(c *catalog.Catalog, r io.Reader) (catalog.LoadResult, error) {
				if format == formatCSV {
					return c.LoadIngredientsCSV(cmd.Context(), r)
				}
				return c.LoadIngredientsJSON(cmd.Context(), r)
			})
		},
	}
}

func newLoadTagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load-tags <path|url>",
		Short: "Load tags from a JSON fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format, err := fixtureFormat(args[0]); err != nil {
				return err
			} else if format != formatJSON {
				return fmt.Errorf("tags can only be loaded from JSON, got %s", format)
			}
			return runLoad(cmd, args[0], func(c *catalog.Catalog, r io.Reader) (catalog.LoadResult, error) {
				return c.LoadTagsJSON(cmd.Context(), r)
			})
		},
	}
}

type loadFunc func(c *catalog.Catalog, r io.Reader) (catalog.LoadResult, error)

func runLoad(cmd *cobra.Command, source string, load loadFunc) error {
	ctx := cmd.Context()
	e, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	f, err := e.Catalog.Open(ctx, source)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	res, err := load(e.Catalog, f)
	if err != nil {
		return fmt.Errorf("loading %s: %w", source, err)
	}
	cmd.Printf("created %d, skipped %d\n", res.Created, res.Skipped)
	return nil
}
