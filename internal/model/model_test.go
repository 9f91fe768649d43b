package model

import (
	"encoding/json"
	"testing"
)

func TestExperienceDuration(t *testing.T) {
	tests := []struct {
		name string
		exp  Experience
		want string
	}{
		{
			name: "no end month is Present",
			exp:  Experience{StartMonth: March, StartYear: 2021},
			want: "MARCH 2021 - Present",
		},
		{
			name: "present keyword is Present",
			exp:  Experience{StartMonth: March, StartYear: 2021, EndMonth: "present"},
			want: "MARCH 2021 - Present",
		},
		{
			name: "closed range",
			exp:  Experience{StartMonth: January, StartYear: 2020, EndMonth: July, EndYear: 2022},
			want: "JANUARY 2020 - JULY 2022",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.exp.Duration(); got != tt.want {
				t.Errorf("Duration() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExperienceNullEnd(t *testing.T) {
	var e Experience
	body := `{"id":3,"position":"Engineer","company":"Acme","start_month":"MAY","start_year":2019,"end_month":null,"end_year":null,"jobdesk":["a"],"tech":["Go"]}`
	if err := json.Unmarshal([]byte(body), &e); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !e.IsCurrent() {
		t.Errorf("IsCurrent() = false for null end_month")
	}
	if got := e.Duration(); got != "MAY 2019 - Present" {
		t.Errorf("Duration() = %q", got)
	}
}

func TestParseMonth(t *testing.T) {
	if m, ok := ParseMonth("july"); !ok || m != July {
		t.Errorf("ParseMonth(july) = %q, %v", m, ok)
	}
	if _, ok := ParseMonth("present"); ok {
		t.Error("ParseMonth(present) should not be a month")
	}
	if got := len(Months()); got != 12 {
		t.Errorf("len(Months()) = %d, want 12", got)
	}
}

func TestProjectLabels(t *testing.T) {
	p := Project{GitHub: "unavailable"}
	if !p.IsPrivate() {
		t.Error("IsPrivate() = false for github=unavailable")
	}
	if p.HasDemo() {
		t.Error("HasDemo() = true for empty demo")
	}

	p = Project{GitHub: "https://github.com/me/site", Demo: "https://me.dev"}
	if p.IsPrivate() || !p.HasDemo() {
		t.Errorf("IsPrivate()=%v HasDemo()=%v for public project with demo", p.IsPrivate(), p.HasDemo())
	}
}
