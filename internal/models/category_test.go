package models

import "testing"

func TestNewCategorySetNormalizes(t *testing.T) {
	set := NewCategorySet([]string{"headset", " cables ", "headset", "", "Anker"})
	want := []string{"Anker", "cables", "headset"}
	if len(set) != len(want) {
		t.Fatalf("expected %d categories, got %v", len(want), set)
	}
	for i, value := range want {
		if set[i] != value {
			t.Fatalf("expected %q at %d, got %v", value, i, set)
		}
	}
}

func TestCategorySetAdd(t *testing.T) {
	set := NewCategorySet([]string{"cables", "headset"})

	updated, err := set.Add("earpod")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !updated.Contains("earpod") {
		t.Fatalf("expected earpod in %v", updated)
	}
	if updated[1] != "earpod" {
		t.Fatalf("expected sorted insert, got %v", updated)
	}
	if set.Contains("earpod") {
		t.Fatal("receiver must not be modified")
	}

	if _, err := set.Add("cables"); err == nil {
		t.Fatal("expected duplicate add to fail")
	}
	if _, err := set.Add("  "); err == nil {
		t.Fatal("expected blank add to fail")
	}
}

func TestCategorySetRename(t *testing.T) {
	set := NewCategorySet([]string{"zulu", "earpod", "cables"})

	updated, err := set.Rename("earpod", "earbuds")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if updated.Contains("earpod") {
		t.Fatalf("old name should be gone: %v", updated)
	}
	count := 0
	for _, value := range updated {
		if value == "earbuds" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected earbuds exactly once, got %v", updated)
	}
	if updated[0] != "cables" || updated[1] != "earbuds" || updated[2] != "zulu" {
		t.Fatalf("expected sorted set, got %v", updated)
	}

	if _, err := set.Rename("missing", "x"); err == nil {
		t.Fatal("expected rename of missing category to fail")
	}
	if _, err := set.Rename("cables", "zulu"); err == nil {
		t.Fatal("expected rename onto existing category to fail")
	}
}

func TestCategorySetRemove(t *testing.T) {
	set := NewCategorySet([]string{"cables", "headset"})

	updated, err := set.Remove("cables")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if updated.Contains("cables") || len(updated) != 1 {
		t.Fatalf("expected only headset, got %v", updated)
	}

	if _, err := set.Remove("missing"); err == nil {
		t.Fatal("expected remove of missing category to fail")
	}
}

func TestParseBlogStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    BlogStatus
		wantErr bool
	}{
		{raw: "draft", want: BlogStatusDraft},
		{raw: " Published ", want: BlogStatusPublished},
		{raw: "", wantErr: true},
		{raw: "archived", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseBlogStatus(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parse %q: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}
