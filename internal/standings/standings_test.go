package standings

import (
	"errors"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var testTime = time.Date(2023, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	data, err := os.ReadFile("testdata/standings.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	records, err := Parse(strings.NewReader(string(data)), testTime)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := []Record{
		{Team: "BOS", WinProbability: Some(29.0 / 100), ObservedAt: testTime},
		{Team: "MIL", WinProbability: Some(17.0 / 100), ObservedAt: testTime},
		{Team: "DEN", WinProbability: Some(12.0 / 100), ObservedAt: testTime},
		{Team: "HOU", WinProbability: None(), ObservedAt: testTime},
	}

	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		want    []Record
		wantErr error
	}{
		{
			name:    "no standings table",
			html:    `<table id="other"><tbody><tr data-team="BOS"><td data-col="win_finals">5%</td></tr></tbody></table>`,
			wantErr: ErrTableNotFound,
		},
		{
			name: "empty body",
			html: `<table id="standings-table"><tbody></tbody></table>`,
			want: []Record{},
		},
		{
			name: "rows without thead",
			html: `<table id="standings-table"><tr data-team="LAL"><td data-col="win_finals">3%</td></tr></table>`,
			want: []Record{
				{Team: "LAL", WinProbability: Some(3.0 / 100), ObservedAt: testTime},
			},
		},
		{
			name: "empty cell is missing, not an error",
			html: `<table id="standings-table"><tbody>
				<tr data-team="BOS"><td data-col="win_finals"></td></tr>
				<tr data-team="MIL"><td data-col="win_finals">8%</td></tr>
			</tbody></table>`,
			want: []Record{
				{Team: "BOS", WinProbability: None(), ObservedAt: testTime},
				{Team: "MIL", WinProbability: Some(8.0 / 100), ObservedAt: testTime},
			},
		},
		{
			name: "non-numeric cell is missing",
			html: `<table id="standings-table"><tbody>
				<tr data-team="DET"><td data-col="win_finals">&lt;1%</td></tr>
			</tbody></table>`,
			want: []Record{
				{Team: "DET", WinProbability: None(), ObservedAt: testTime},
			},
		},
		{
			name: "missing team attribute fails",
			html: `<table id="standings-table"><tbody>
				<tr data-team="BOS"><td data-col="win_finals">29%</td></tr>
				<tr><td data-col="win_finals">17%</td></tr>
			</tbody></table>`,
			wantErr: ErrMissingTeam,
		},
		{
			name: "missing win_finals cell fails",
			html: `<table id="standings-table"><tbody>
				<tr data-team="BOS"><td data-col="make_playoffs">99%</td></tr>
			</tbody></table>`,
			wantErr: ErrMissingCell,
		},
		{
			name: "empty team attribute is kept",
			html: `<table id="standings-table"><tbody>
				<tr data-team=""><td data-col="win_finals">1%</td></tr>
			</tbody></table>`,
			want: []Record{
				{Team: "", WinProbability: Some(1.0 / 100), ObservedAt: testTime},
			},
		},
		{
			name: "only the first table body is read",
			html: `<table id="standings-table">
				<tbody><tr data-team="BOS"><td data-col="win_finals">29%</td></tr></tbody>
				<tbody><tr data-team="MIL"><td data-col="win_finals">17%</td></tr></tbody>
			</table>`,
			want: []Record{
				{Team: "BOS", WinProbability: Some(29.0 / 100), ObservedAt: testTime},
			},
		},
		{
			name: "nested cell markup",
			html: `<table id="standings-table"><tbody>
				<tr data-team="PHX"><td data-col="win_finals"><span class="pct"> 6 </span>%</td></tr>
			</tbody></table>`,
			want: []Record{
				{Team: "PHX", WinProbability: Some(6.0 / 100), ObservedAt: testTime},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Parse(strings.NewReader(tt.html), testTime)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				if records != nil {
					t.Errorf("Parse() returned %d records alongside an error", len(records))
				}
				return
			}

			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, records); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_DocumentOrder(t *testing.T) {
	html := `<table id="standings-table"><tbody>
		<tr data-team="ZZZ"><td data-col="win_finals">1%</td></tr>
		<tr data-team="AAA"><td data-col="win_finals">50%</td></tr>
		<tr data-team="MMM"><td data-col="win_finals">10%</td></tr>
	</tbody></table>`

	records, err := Parse(strings.NewReader(html), testTime)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	got := make([]string, 0, len(records))
	for _, r := range records {
		got = append(got, r.Team)
	}
	if diff := cmp.Diff([]string{"ZZZ", "AAA", "MMM"}, got); diff != "" {
		t.Errorf("team order mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		text      string
		want      float64
		wantValid bool
	}{
		{"42%", 42.0 / 100, true},
		{"42", 42.0 / 100, true},
		{" 7% ", 7.0 / 100, true},
		{"0%", 0, true},
		{"100%", 1, true},
		{"0.5%", 0.5 / 100, true},
		{"%%12%", 12.0 / 100, true},
		{"", 0, false},
		{"%", 0, false},
		{"<1%", 0, false},
		{">99%", 0, false},
		{"—", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ParsePercent(tt.text)
			if got.Valid != tt.wantValid {
				t.Fatalf("ParsePercent(%q).Valid = %v, want %v", tt.text, got.Valid, tt.wantValid)
			}
			if tt.wantValid && math.Abs(got.Float64-tt.want) > 1e-12 {
				t.Errorf("ParsePercent(%q) = %v, want %v", tt.text, got.Float64, tt.want)
			}
		})
	}
}

func TestNullFloat_JSON(t *testing.T) {
	tests := []struct {
		name string
		in   NullFloat
		want string
	}{
		{"present", Some(0.25), "0.25"},
		{"missing", None(), "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.in.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("MarshalJSON() = %s, want %s", data, tt.want)
			}

			var back NullFloat
			if err := back.UnmarshalJSON(data); err != nil {
				t.Fatalf("UnmarshalJSON() error: %v", err)
			}
			if back != tt.in {
				t.Errorf("UnmarshalJSON() = %+v, want %+v", back, tt.in)
			}
		})
	}
}

func TestNullFloat_String(t *testing.T) {
	if got := Some(0.125).String(); got != "0.125" {
		t.Errorf("Some(0.125).String() = %q", got)
	}
	if got := None().String(); got != "" {
		t.Errorf("None().String() = %q, want empty", got)
	}
	if v, ok := None().Get(); ok || v != 0 {
		t.Errorf("None().Get() = %v, %v", v, ok)
	}
}
