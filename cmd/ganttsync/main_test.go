package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectChartOpenArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"ganttsync"},
			want: []string{"ganttsync"},
		},
		{
			name: "direct chart id first token",
			in:   []string{"ganttsync", "chart-abc123"},
			want: []string{"ganttsync", "open", "chart-abc123"},
		},
		{
			name: "direct chart id after value flag",
			in:   []string{"ganttsync", "--dir", "./tmp-test-ws", "chart-abc123"},
			want: []string{"ganttsync", "--dir", "./tmp-test-ws", "open", "chart-abc123"},
		},
		{
			name: "direct chart id after equals flag",
			in:   []string{"ganttsync", "--dir=./tmp-test-ws", "chart-abc123"},
			want: []string{"ganttsync", "--dir=./tmp-test-ws", "open", "chart-abc123"},
		},
		{
			name: "direct chart id after bool flag",
			in:   []string{"ganttsync", "--pretty", "chart-abc123"},
			want: []string{"ganttsync", "--pretty", "open", "chart-abc123"},
		},
		{
			name: "direct chart id after double dash",
			in:   []string{"ganttsync", "--dir", "./tmp-test-ws", "--", "chart-abc123"},
			want: []string{"ganttsync", "--dir", "./tmp-test-ws", "--", "open", "chart-abc123"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"ganttsync", "open", "chart-abc123"},
			want: []string{"ganttsync", "open", "chart-abc123"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"ganttsync", "wat"},
			want: []string{"ganttsync", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectChartOpenArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectChartOpenArgs(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
