package core

import (
	"io/fs"
	"net/mail"
	"strings"
	"testing"

	appfs "github.com/mwalimu/insight/fs"
)

// The base layouts are _-prefixed, which directory embeds skip; if they go
// missing, every templated message renders empty and silently never sends.
func TestEmbeddedBaseTemplates(t *testing.T) {
	for _, name := range []string{"templates/email/_base.txt", "templates/email/_base.gohtml"} {
		if _, err := fs.Stat(appfs.FS, name); err != nil {
			t.Errorf("%s not embedded: %v", name, err)
		}
	}
}

func TestEmailMessage_Render(t *testing.T) {
	msg := &EmailMessage{
		To:           []mail.Address{{Name: "T", Address: "t@test.cd"}},
		Subject:      "Heads up",
		TemplateName: "insight-alert",
		TemplateData: struct {
			Name            string
			PredictedGPA    float64
			Threshold       float64
			Recommendations []string
		}{
			Name:            "Amina",
			PredictedGPA:    2.1,
			Threshold:       2.5,
			Recommendations: []string{"SQL", "Statistics"},
		},
	}
	if err := msg.Render(); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	if !msg.HasContent() {
		t.Fatal("Render() produced no content")
	}
	for _, content := range []string{msg.TextContent, msg.HTMLContent} {
		if content == "" {
			t.Fatal("Render() left a content part empty")
		}
		for _, want := range []string{"Amina", "2.10", "2.50", "SQL"} {
			if !strings.Contains(content, want) {
				t.Errorf("rendered content missing %q:\n%s", want, content)
			}
		}
	}
}
