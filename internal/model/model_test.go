package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestAvailableYears(t *testing.T) {
	tests := []struct {
		name    string
		created int
		current int
		want    []int
	}{
		{"range", 2020, 2023, []int{2023, 2022, 2021, 2020}},
		{"same year", 2023, 2023, []int{2023}},
		{"missing creation year", 0, 2023, []int{2023}},
		{"future creation year", 2030, 2023, []int{2023}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AvailableYears(tt.created, tt.current)
			if len(got) != len(tt.want) {
				t.Fatalf("AvailableYears(%d, %d) = %v, want %v", tt.created, tt.current, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("AvailableYears(%d, %d)[%d] = %d, want %d", tt.created, tt.current, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestProfileFallbacks(t *testing.T) {
	p := &Profile{Login: "octocat"}

	if got := p.DisplayName(); got != "octocat" {
		t.Errorf("DisplayName() = %q, want login", got)
	}
	if got := p.DisplayBio(); got != DefaultBio {
		t.Errorf("DisplayBio() = %q, want placeholder", got)
	}
	if p.FollowerCount() != 0 || p.FollowingCount() != 0 {
		t.Error("expected zero counts for missing connections")
	}

	p.Name = "The Octocat"
	p.Followers = &CountNode{TotalCount: 12}
	if got := p.DisplayName(); got != "The Octocat" {
		t.Errorf("DisplayName() = %q, want name", got)
	}
	if got := p.FollowerCount(); got != 12 {
		t.Errorf("FollowerCount() = %d, want 12", got)
	}
}

func TestProfileDecode(t *testing.T) {
	raw := `{"login":"octocat","name":"Mona","avatarUrl":"https://a","followers":{"totalCount":3},"following":{"totalCount":4}}`
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.FollowerCount() != 3 || p.FollowingCount() != 4 {
		t.Errorf("counts = %d/%d, want 3/4", p.FollowerCount(), p.FollowingCount())
	}
	if p.AvatarURL != "https://a" {
		t.Errorf("AvatarURL = %q", p.AvatarURL)
	}
}

func TestSplitNameWithOwner(t *testing.T) {
	tests := []struct {
		input   string
		owner   string
		name    string
		wantErr bool
	}{
		{"octocat/hello-world", "octocat", "hello-world", false},
		{"octocat", "", "", true},
		{"/repo", "", "", true},
		{"owner/", "", "", true},
		{"a/b/c", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			owner, name, err := SplitNameWithOwner(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("SplitNameWithOwner(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if owner != tt.owner || name != tt.name {
				t.Errorf("SplitNameWithOwner(%q) = %q, %q", tt.input, owner, name)
			}
		})
	}
}

func TestRepositoryHelpers(t *testing.T) {
	r := Repository{Name: "x", Owner: Owner{Login: "Octocat"}}

	if r.DisplayDescription() != DefaultDescription {
		t.Errorf("DisplayDescription() = %q", r.DisplayDescription())
	}
	if r.IsMultiContributor() {
		t.Error("missing mentionable users should not be multi-contributor")
	}
	r.MentionableUsers = &CountNode{TotalCount: 1}
	if r.IsMultiContributor() {
		t.Error("single mentionable user should not be multi-contributor")
	}
	r.MentionableUsers.TotalCount = 2
	if !r.IsMultiContributor() {
		t.Error("two mentionable users should be multi-contributor")
	}
	if !r.IsOwnedBy("octocat") {
		t.Error("owner comparison should be case-insensitive")
	}
	if r.PrimaryLanguage.DisplayColor() != DefaultLanguageColor {
		t.Error("nil language should use default color")
	}
}

func TestSortByCreatedDescAndTimeline(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	repos := []Repository{
		{ID: "a", CreatedAt: day(2021, time.March, 1)},
		{ID: "b", CreatedAt: day(2023, time.January, 5)},
		{ID: "c", CreatedAt: day(2021, time.July, 9)},
		{ID: "d", CreatedAt: day(2023, time.June, 2)},
	}
	SortByCreatedDesc(repos)

	wantOrder := []string{"d", "b", "c", "a"}
	for i, id := range wantOrder {
		if repos[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, repos[i].ID, id)
		}
	}

	entries := Timeline(repos)
	wantShow := []bool{true, false, true, false}
	for i, e := range entries {
		if e.ShowYear != wantShow[i] {
			t.Errorf("entry %d ShowYear = %v, want %v", i, e.ShowYear, wantShow[i])
		}
	}
	if !entries[3].Last || entries[0].Last {
		t.Error("only the final entry should be marked last")
	}
}

func TestRepositoryDetailAccessors(t *testing.T) {
	raw := `{
		"readme": {"text": "# Hello"},
		"languages": {"edges": [{"node": {"name": "Go"}}, {"node": {"name": "Shell"}}]},
		"repositoryTopics": {"nodes": [{"topic": {"name": "cli"}}]},
		"watchers": {"totalCount": 7},
		"defaultBranchRef": {"name": "main"}
	}`
	var d RepositoryDetail
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.ReadmeText() != "# Hello" {
		t.Errorf("ReadmeText() = %q", d.ReadmeText())
	}
	if langs := d.LanguageNames(); len(langs) != 2 || langs[0] != "Go" {
		t.Errorf("LanguageNames() = %v", langs)
	}
	if topics := d.TopicNames(); len(topics) != 1 || topics[0] != "cli" {
		t.Errorf("TopicNames() = %v", topics)
	}
	if d.DefaultBranch() != "main" {
		t.Errorf("DefaultBranch() = %q", d.DefaultBranch())
	}

	var empty *RepositoryDetail
	if empty.ReadmeText() != "" || empty.LanguageNames() != nil || empty.DefaultBranch() != "" {
		t.Error("nil detail should yield empty values")
	}
}

func TestImpact(t *testing.T) {
	tests := []struct {
		level string
		want  Impact
	}{
		{"High", ImpactHigh},
		{" medium ", ImpactMedium},
		{"Low", ImpactLow},
		{"minor", ImpactLow},
		{"", ImpactNone},
	}
	for _, tt := range tests {
		if got := (AIAnalysis{ImpactLevel: tt.level}).Impact(); got != tt.want {
			t.Errorf("Impact(%q) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestDayTime(t *testing.T) {
	d := Day{Date: "2023-02-14"}
	if got := d.Time(); got.Month() != time.February || got.Day() != 14 {
		t.Errorf("Time() = %v", got)
	}
	if !(Day{Date: "garbage"}).Time().IsZero() {
		t.Error("malformed date should yield zero time")
	}
}
