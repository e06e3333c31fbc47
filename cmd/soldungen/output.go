package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"

	"github.com/itchyny/gojq"
	"github.com/urfave/cli/v2"

	"github.com/brojonat/soldungen/client"
	"github.com/brojonat/soldungen/service/config"
	"github.com/brojonat/soldungen/service/labels"
	"github.com/brojonat/soldungen/service/views"
)

// getViews builds the explorer views from the global flags.
func getViews(c *cli.Context) (*views.Views, error) {
	apiKey := c.String("api-key")
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required (set SOLSCAN_API_KEY env var or use --api-key)")
	}

	logger := config.NewLogger(c.App.ErrWriter, c.String("log-level"), "text")

	reg, err := labels.Load(c.String("aliases"))
	if err != nil {
		return nil, err
	}

	api := client.New(client.Config{
		BaseURL:       c.String("base-url"),
		PublicBaseURL: c.String("public-base-url"),
		APIKey:        apiKey,
		HTTPClient:    &http.Client{Timeout: c.Duration("timeout")},
		Logger:        logger,
	})

	return views.New(views.Config{API: api, Labels: reg, Logger: logger}), nil
}

// output writes v as JSON when --json or --jq is set, otherwise as a table.
func output(c *cli.Context, v interface{}, table func(w io.Writer)) error {
	if filter := c.String("jq"); filter != "" {
		return outputJQ(c.App.Writer, filter, v)
	}
	if c.Bool("json") {
		return outputJSON(c.App.Writer, v)
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	table(w)
	return w.Flush()
}

func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputJQ runs filter over the JSON form of v and prints every result.
func outputJQ(w io.Writer, filter string, v interface{}) error {
	query, err := gojq.Parse(filter)
	if err != nil {
		return fmt.Errorf("failed to parse jq filter %q: %w", filter, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return fmt.Errorf("failed to compile jq filter %q: %w", filter, err)
	}

	// gojq only understands plain JSON values
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var input interface{}
	if err := json.Unmarshal(raw, &input); err != nil {
		return err
	}

	iter := code.Run(input)
	for {
		result, ok := iter.Next()
		if !ok {
			return nil
		}
		if err, isErr := result.(error); isErr {
			return fmt.Errorf("jq filter %q: %w", filter, err)
		}
		if err := outputJSON(w, result); err != nil {
			return err
		}
	}
}

// writeSection prints a section's error or empty text, or its rows under header.
func writeSection[R any](w io.Writer, s views.Section[R], header string, row func(io.Writer, R)) {
	switch {
	case s.Err != "":
		fmt.Fprintf(w, "error: %s\n", s.Err)
	case s.IsEmpty():
		fmt.Fprintln(w, s.Empty)
	default:
		fmt.Fprintln(w, header)
		for _, r := range s.Rows {
			row(w, r)
		}
	}
}

// failed joins the error text of failed sections, or nil when all loaded.
func failed(msgs ...string) error {
	var errs []string
	for _, m := range msgs {
		if m != "" {
			errs = append(errs, m)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.New(strings.Join(errs, "; "))
}

// requireArg returns the first positional argument or a usage error.
func requireArg(c *cli.Context, name string) (string, error) {
	if c.NArg() < 1 {
		return "", fmt.Errorf("%s is required", name)
	}
	return c.Args().Get(0), nil
}
