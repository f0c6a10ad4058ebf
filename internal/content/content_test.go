package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default profile invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	p := Default()
	p.Name = "  "
	p.Contacts = append(p.Contacts, Contact{Label: "broken", URL: "not a link"})

	err := p.Validate()
	if !errors.Is(err, ErrMissingName) {
		t.Errorf("expected ErrMissingName, got %v", err)
	}
	if !errors.Is(err, ErrBadContact) {
		t.Errorf("expected ErrBadContact, got %v", err)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	data := []byte("name: Grace Sample\nskills: [Go, SQL]\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if p.Name != "Grace Sample" {
		t.Errorf("expected name Grace Sample, got %s", p.Name)
	}
	if len(p.Skills) != 2 {
		t.Errorf("expected 2 skills, got %d", len(p.Skills))
	}
	if p.Role != Default().Role {
		t.Errorf("expected default role, got %s", p.Role)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte("skills: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	p := Default()
	p.Hobbies = p.Hobbies[:1]
	if err := Save(path, p); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got.Hobbies) != 1 || got.Hobbies[0].Label != p.Hobbies[0].Label {
		t.Errorf("hobbies not preserved: %+v", got.Hobbies)
	}
}

func TestAvatarGlyph(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "me.jpg")
	if err := os.WriteFile(img, []byte{0xff, 0xd8}, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{"image present", Profile{Name: "ada", Avatar: img}, ""},
		{"image missing", Profile{Name: "ada", Avatar: filepath.Join(dir, "gone.jpg")}, "A"},
		{"no image", Profile{Name: "x", Nickname: "thirdy"}, "T"},
		{"no name", Profile{}, "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.AvatarGlyph(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestPrimary(t *testing.T) {
	if got := Default().Primary(); got != "ada@example.com" {
		t.Errorf("expected mail address, got %q", got)
	}
	p := &Profile{Contacts: []Contact{{Label: "site", URL: "https://example.com"}}}
	if got := p.Primary(); got != "https://example.com" {
		t.Errorf("expected site url, got %q", got)
	}
	if got := (&Profile{}).Primary(); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
