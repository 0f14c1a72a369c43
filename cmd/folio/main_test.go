package main

import (
	"reflect"
	"testing"

	"folio-cli/internal/cli"
)

func TestRewriteDirectProjectLookupArgs(t *testing.T) {
	t.Parallel()

	subs := subcommandNames(cli.NewRootCmd())

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"folio"},
			want: []string{"folio"},
		},
		{
			name: "direct project id first token",
			in:   []string{"folio", "qa-simrs"},
			want: []string{"folio", "show", "qa-simrs"},
		},
		{
			name: "direct project id after value flag",
			in:   []string{"folio", "--state-dir", "./tmp", "qa-simrs"},
			want: []string{"folio", "--state-dir", "./tmp", "show", "qa-simrs"},
		},
		{
			name: "direct project id after equals flag",
			in:   []string{"folio", "--format=yaml", "qa-simrs"},
			want: []string{"folio", "--format=yaml", "show", "qa-simrs"},
		},
		{
			name: "direct project id after bool flag",
			in:   []string{"folio", "--pretty", "qa-simrs"},
			want: []string{"folio", "--pretty", "show", "qa-simrs"},
		},
		{
			name: "direct project id after double dash",
			in:   []string{"folio", "--", "qa-simrs"},
			want: []string{"folio", "--", "show", "qa-simrs"},
		},
		{
			name: "subcommand not rewritten",
			in:   []string{"folio", "projects", "--tag", "QA"},
			want: []string{"folio", "projects", "--tag", "QA"},
		},
		{
			name: "subcommand after flag not rewritten",
			in:   []string{"folio", "--backend", "file", "theme", "toggle"},
			want: []string{"folio", "--backend", "file", "theme", "toggle"},
		},
		{
			name: "help not rewritten",
			in:   []string{"folio", "help"},
			want: []string{"folio", "help"},
		},
		{
			name: "flags only",
			in:   []string{"folio", "--format", "text"},
			want: []string{"folio", "--format", "text"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectProjectLookupArgs(tt.in, subs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
