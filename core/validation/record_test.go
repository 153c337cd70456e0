package validation

import "testing"

func TestEntityKindIsValid(t *testing.T) {
	tests := []struct {
		kind EntityKind
		want bool
	}{
		{kind: KindStudent, want: true},
		{kind: KindTeacher, want: true},
		{kind: EntityKind("staff"), want: false},
		{kind: EntityKind(""), want: false},
	}
	for _, tt := range tests {
		if got := tt.kind.IsValid(); got != tt.want {
			t.Errorf("EntityKind(%q).IsValid() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}
