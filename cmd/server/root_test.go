package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/mathieu-neron/tubegate/internal/config"
	"github.com/mathieu-neron/tubegate/internal/model"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "search", "resolve"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered (err=%v)", name, err)
		}
	}
}

func TestResolveCmd_Flags(t *testing.T) {
	cmd := newResolveCmd()
	if got := cmd.Flags().Lookup("type").DefValue; got != "mp4" {
		t.Errorf("--type default = %q, want mp4", got)
	}
	if got := cmd.Flags().Lookup("quality").DefValue; got != "" {
		t.Errorf("--quality default = %q, want empty", got)
	}
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"search"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err == nil {
		t.Fatal("expected an error without a query")
	}
}

func TestBuildServices_WithoutSearchKey(t *testing.T) {
	svcs := buildServices(context.Background(), &config.Config{SearchFetchLimit: 20}, newMetrics())
	if svcs.searchAvailable {
		t.Fatal("search should be unavailable without an API key")
	}
	if _, err := svcs.search.Search(context.Background(), "lofi"); err == nil {
		t.Fatal("expected an upstream error from the disabled provider")
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, model.SearchResponse{Videos: []model.SearchVideo{}}); err != nil {
		t.Fatalf("printJSON: %v", err)
	}
	if got, want := buf.String(), "{\n  \"videos\": []\n}\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
