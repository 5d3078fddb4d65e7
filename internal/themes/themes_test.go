package themes

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestRegistry(t *testing.T) {
	all := List()
	if len(all) != 2 {
		t.Fatalf("expected 2 themes, got %d", len(all))
	}
	if all[0].ID != "modern" || all[0].Name != "Modern Gradient" {
		t.Errorf("unexpected first theme: %+v", all[0])
	}
	if all[1].ID != "classic" || all[1].Name != "Classic Professional" {
		t.Errorf("unexpected second theme: %+v", all[1])
	}

	ids := IDs()
	if strings.Join(ids, ", ") != "modern, classic" {
		t.Errorf("unexpected ids: %v", ids)
	}

	if _, ok := Get("modern"); !ok {
		t.Error("modern theme should be registered")
	}
	if _, ok := Get("neon"); ok {
		t.Error("unknown theme should not resolve")
	}
}

func TestRenderFillsPlaceholders(t *testing.T) {
	d := Data{
		Topic:         "Monthly Digest",
		Subject:       "What changed in August",
		Body:          "<p>Plenty.</p>",
		RecipientName: "Ada Lovelace",
		AgencyName:    "BrightPixel",
	}

	for _, thm := range List() {
		html := thm.Render(d)
		for _, want := range []string{
			"Monthly Digest",
			"What changed in August",
			"<p>Plenty.</p>",
			"Ada Lovelace",
			"BrightPixel",
			strconv.Itoa(time.Now().Year()),
		} {
			if !strings.Contains(html, want) {
				t.Errorf("theme %s: output missing %q", thm.ID, want)
			}
		}
		if strings.Contains(html, "{recipient_name}") || strings.Contains(html, "{body}") {
			t.Errorf("theme %s: unreplaced placeholder left in output", thm.ID)
		}
	}
}

func TestRenderDefaultsAgencyName(t *testing.T) {
	thm, _ := Get("classic")
	html := thm.Render(Data{Topic: "t", Subject: "s", Body: "b", RecipientName: "n"})
	if !strings.Contains(html, "Digital Marketing Agency") {
		t.Error("empty agency name should fall back to the default")
	}
}

func TestRenderConfirmation(t *testing.T) {
	html := RenderConfirmation("Ada Lovelace", "BrightPixel")
	if !strings.Contains(html, "Ada Lovelace") {
		t.Error("confirmation should greet the customer by name")
	}
	if !strings.Contains(html, "BrightPixel") {
		t.Error("confirmation should carry the agency name")
	}
	if ConfirmationSubject != "Thank You for Your Inquiry!" {
		t.Errorf("unexpected confirmation subject: %q", ConfirmationSubject)
	}
}
