package model

import "testing"

func TestCollectionType_Metadata(t *testing.T) {
	for i, ct := range DefaultTypes() {
		if !ct.IsDefault() {
			t.Errorf("%s.IsDefault() = false, want true", ct)
		}
		if ct.SortOrder() != i {
			t.Errorf("%s.SortOrder() = %d, want %d", ct, ct.SortOrder(), i)
		}
		if ct.DisplayName() == "" || ct.Description() == "" {
			t.Errorf("%s is missing display metadata", ct)
		}
	}

	if Custom.IsDefault() {
		t.Error("Custom.IsDefault() = true, want false")
	}
	if Custom.SortOrder() <= Completed.SortOrder() {
		t.Error("Custom must sort after every default type")
	}
}

func TestParseCollectionType(t *testing.T) {
	for _, s := range []string{"WISHLIST", "CURRENTLY_PLAYING", "COMPLETED", "CUSTOM"} {
		got, err := ParseCollectionType(s)
		if err != nil {
			t.Errorf("ParseCollectionType(%q) error = %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseCollectionType(%q) = %q", s, got)
		}
	}

	if _, err := ParseCollectionType("wishlist"); err == nil {
		t.Error("ParseCollectionType() is case-sensitive, expected error for lower case")
	}
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		from   CollectionType
		want   CollectionType
		wantOK bool
	}{
		{Wishlist, CurrentlyPlaying, true},
		{CurrentlyPlaying, Completed, true},
		{Completed, "", false},
		{Custom, "", false},
	}

	for _, tt := range tests {
		got, ok := NextStatus(tt.from)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("NextStatus(%s) = (%q, %v), want (%q, %v)", tt.from, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name        string
		from, to    CollectionType
		wantConfirm bool
		wantMessage bool
	}{
		{"wishlist to playing", Wishlist, CurrentlyPlaying, true, true},
		{"playing to completed", CurrentlyPlaying, Completed, true, true},
		{"completed back to playing", Completed, CurrentlyPlaying, true, true},
		{"completed back to wishlist uses generic message", Completed, Wishlist, true, false},
		{"custom to custom", Custom, Custom, false, false},
		{"custom to default", Custom, Completed, false, false},
		{"default to custom", Wishlist, Custom, false, false},
		{"same default type", Wishlist, Wishlist, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := Transition(tt.from, tt.to)
			if rule.RequiresConfirmation != tt.wantConfirm {
				t.Errorf("RequiresConfirmation = %v, want %v", rule.RequiresConfirmation, tt.wantConfirm)
			}
			if (rule.Message != "") != tt.wantMessage {
				t.Errorf("Message = %q, want message present = %v", rule.Message, tt.wantMessage)
			}
		})
	}
}
