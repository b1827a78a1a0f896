package render

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/user/pagesmith/internal/errors"
	"github.com/user/pagesmith/internal/schema"
	"github.com/user/pagesmith/internal/testutil"
)

func TestRender_DefaultStructure(t *testing.T) {
	tree, err := Render(testutil.ValidPage())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	doc := testutil.ParseHTML(t, tree.Markup())

	expected := map[string]int{
		".render-root":                      1,
		".render-noise":                     1,
		"header.render-topbar":              1,
		".render-topbar a.render-nav-link":  5,
		"section.render-hero":               1,
		".hero-main":                        1,
		".hero-sub":                         2,
		".hero-stats article":               3,
		"section.render-section":            5,
		".section-grid-narrative":           1,
		".narrative-card":                   3,
		".section-grid-strip .media-card":   2,
		".section-grid-model > .media-card": 1,
		".model-secondary-grid .media-card": 1,
		".section-grid-atlas .media-card":   3,
		".section-grid-masonry .media-card": 2,
		".media-placeholder":                1,
		".media-open-trigger":               11,
		".zoom-hint":                        8,
		"footer.render-footer":              1,
		".render-footer-links a":            3,
		".render-footer-copy":               1,
	}
	for sel, count := range expected {
		if got := doc.Find(sel).Length(); got != count {
			t.Errorf("Expected %d of %s, got %d", count, sel, got)
		}
	}

	root := doc.Find(".render-root")
	if theme, _ := root.Attr("data-theme"); theme != "light" {
		t.Errorf("Expected data-theme light, got %q", theme)
	}
	if radius, _ := root.Attr("data-radius"); radius != "md" {
		t.Errorf("Expected data-radius md, got %q", radius)
	}
	if style, _ := root.Attr("style"); style != "--accent: #1f6feb" {
		t.Errorf("Expected accent style, got %q", style)
	}
}

func TestRender_NavLinksTargetSections(t *testing.T) {
	cfg := testutil.ValidPage()
	cfg.Sections[1].IncludeInNav = schema.Bool(false)

	tree := MustRender(cfg)
	doc := testutil.ParseHTML(t, tree.Markup())

	links := doc.Find(".render-nav-link")
	if links.Length() != 4 {
		t.Fatalf("Expected 4 nav links, got %d", links.Length())
	}
	for i := 0; i < links.Length(); i++ {
		href, _ := links.Eq(i).Attr("href")
		id := strings.TrimPrefix(href, "#")
		if doc.Find("section.render-section#"+id).Length() != 1 {
			t.Errorf("Expected nav link %s to target a section", href)
		}
	}
	if text := links.Eq(1).Text(); text != "02 模型阶段" {
		t.Errorf("Expected renumbered label, got %q", text)
	}
}

func TestRender_SanitizesURLs(t *testing.T) {
	tree := MustRender(testutil.HostilePage())
	markup := tree.Markup()

	if strings.Contains(strings.ToLower(markup), "javascript:") {
		t.Error("Expected no javascript: scheme in markup")
	}
	if strings.Contains(markup, "vbscript:") {
		t.Error("Expected no vbscript: scheme in markup")
	}

	doc := testutil.ParseHTML(t, markup)
	links := doc.Find(".render-footer-links a")
	for _, i := range []int{3, 4} {
		if href, _ := links.Eq(i).Attr("href"); href != "#" {
			t.Errorf("Expected rejected link to become #, got %q", href)
		}
	}
	if _, ok := doc.Find(".render-root").Attr("style"); ok {
		t.Error("Expected unsafe accent color to be dropped")
	}
	if doc.Find(".hero-sub .media-placeholder").Length() != 1 {
		t.Error("Expected rejected hero image to render as placeholder")
	}

	strip := doc.Find(".section-grid-strip .media-card")
	if strip.Eq(0).Find(".media-placeholder").Length() != 1 {
		t.Error("Expected rejected card image to render as placeholder")
	}
	if src, _ := strip.Eq(1).Find("img").Attr("src"); src != "data:image/png;base64,AAA" {
		t.Errorf("Expected data image to pass, got %q", src)
	}
	if title := strip.Eq(0).Find("h4").Text(); title != "<b>bold</b>" {
		t.Errorf("Expected title as escaped text, got %q", title)
	}
}

func TestRender_Deterministic(t *testing.T) {
	cfg := testutil.ValidPage()
	first := MustRender(cfg).Markup()
	for i := 0; i < 5; i++ {
		if got := MustRender(cfg).Markup(); got != first {
			t.Fatal("Expected identical markup across renders")
		}
	}
}

func TestRender_Fallbacks(t *testing.T) {
	cfg := testutil.ValidPage()
	cfg.Sections[4].Content = schema.MasonryGalleryContent{Items: []schema.GalleryItem{
		{Image: schema.ImageAsset{Src: "https://example.com/a.png"}},
	}}

	tests := []struct {
		locale   string
		untitled string
	}{
		{"zh-CN", "未命名"},
		{"en", "Untitled"},
	}
	for _, tt := range tests {
		tree, err := New(WithLocale(tt.locale)).Render(cfg)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		doc := testutil.ParseHTML(t, tree.Markup())
		card := doc.Find(".section-grid-masonry .media-card")
		if got := card.Find("h4").Text(); got != tt.untitled {
			t.Errorf("Expected %q fallback, got %q", tt.untitled, got)
		}
		if title, _ := card.Find(".media-open-trigger").Attr("data-viewer-title"); title != tt.untitled {
			t.Errorf("Expected viewer title %q, got %q", tt.untitled, title)
		}
		if card.Find("p").Length() != 0 {
			t.Error("Expected no tag line without tags")
		}
	}
}

func TestRender_LocaleFollowsPage(t *testing.T) {
	tree := MustRender(testutil.MinimalPage())
	if tree.Locale != "en" {
		t.Errorf("Expected en locale from meta.language, got %q", tree.Locale)
	}
	doc := testutil.ParseHTML(t, tree.Markup())
	if label, _ := doc.Find(".render-root").Attr("data-label-close"); label != "Close" {
		t.Errorf("Expected English lightbox label, got %q", label)
	}
}

func TestRender_MissingContent(t *testing.T) {
	cfg := testutil.ValidPage()
	cfg.Sections[2].Content = nil

	_, err := Render(cfg)
	var rerr *errors.RenderError
	if !stderrors.As(err, &rerr) {
		t.Fatalf("Expected RenderError, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected MustRender to panic")
		}
	}()
	MustRender(cfg)
}

func TestViewerImages_MatchesRenderOrder(t *testing.T) {
	tree := MustRender(testutil.ValidPage())
	scanned := ViewerImages(tree.Root)

	if len(scanned) != len(tree.Viewer) {
		t.Fatalf("Expected %d images, got %d", len(tree.Viewer), len(scanned))
	}
	for i := range scanned {
		if scanned[i] != tree.Viewer[i] {
			t.Errorf("Image %d: expected %+v, got %+v", i, tree.Viewer[i], scanned[i])
		}
		if scanned[i].Index != i {
			t.Errorf("Expected index %d, got %d", i, scanned[i].Index)
		}
	}
	if scanned[0].Title != "主图" {
		t.Errorf("Expected hero main image first, got %q", scanned[0].Title)
	}
}

func TestHeroLayout(t *testing.T) {
	item := func(role schema.GalleryRole, title string) schema.HeroGalleryItem {
		return schema.HeroGalleryItem{Role: role, Image: schema.ImageAsset{Src: "/x.png", Title: title}}
	}

	tests := []struct {
		name      string
		gallery   []schema.HeroGalleryItem
		main      string
		secondary []string
	}{
		{
			name:      "main tagged later",
			gallery:   []schema.HeroGalleryItem{item(schema.RoleSecondary, "a"), item(schema.RoleMain, "b"), item(schema.RoleSecondary, "c")},
			main:      "b",
			secondary: []string{"a", "c"},
		},
		{
			name:      "no main uses first",
			gallery:   []schema.HeroGalleryItem{item(schema.RoleSecondary, "a"), item(schema.RoleSecondary, "b")},
			main:      "a",
			secondary: []string{"b"},
		},
		{
			name: "secondary capped",
			gallery: []schema.HeroGalleryItem{
				item(schema.RoleMain, "a"), item(schema.RoleSecondary, "b"),
				item(schema.RoleSecondary, "c"), item(schema.RoleSecondary, "d"),
			},
			main:      "a",
			secondary: []string{"b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			main, secondary := heroLayout(tt.gallery)
			if main.Image.Title != tt.main {
				t.Errorf("Expected main %q, got %q", tt.main, main.Image.Title)
			}
			if len(secondary) != len(tt.secondary) {
				t.Fatalf("Expected %d secondary, got %d", len(tt.secondary), len(secondary))
			}
			for i, s := range tt.secondary {
				if secondary[i].Image.Title != s {
					t.Errorf("Expected secondary %d %q, got %q", i, s, secondary[i].Image.Title)
				}
			}
		})
	}

	if main, secondary := heroLayout(nil); main != nil || secondary != nil {
		t.Error("Expected empty gallery to yield nothing")
	}
}

func TestRender_NarrativeMarkdown(t *testing.T) {
	cfg := testutil.ValidPage()
	cfg.Sections[0].Content = schema.NarrativeContent{Cards: []schema.NarrativeCard{
		{Title: "md", Text: "**bold** and <script>alert(1)</script> [x](javascript:alert(1))"},
	}}

	plain := testutil.ParseHTML(t, MustRender(cfg).Markup())
	if plain.Find(".narrative-card p").Text() != cfg.Sections[0].Content.(schema.NarrativeContent).Cards[0].Text {
		t.Error("Expected plain text by default")
	}

	tree, err := New(WithNarrativeMarkdown(true)).Render(cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	markup := tree.Markup()
	doc := testutil.ParseHTML(t, markup)

	if doc.Find(".narrative-card .narrative-body strong").Text() != "bold" {
		t.Error("Expected Markdown emphasis to render")
	}
	if doc.Find(".narrative-card script").Length() != 0 {
		t.Error("Expected script to be stripped")
	}
	if strings.Contains(markup, "javascript:") {
		t.Error("Expected javascript link to be stripped")
	}
}

func TestStylesheetAndScript(t *testing.T) {
	for _, rule := range []string{".render-root", ".image-modal", ".section-anim.visible", ".static-export .section-anim"} {
		if !strings.Contains(Stylesheet(), rule) {
			t.Errorf("Expected stylesheet to contain %s", rule)
		}
	}
	for _, part := range []string{"IntersectionObserver", "disconnect", ".media-open-trigger", "/ws", "/fragment"} {
		if !strings.Contains(LiveScript(), part) {
			t.Errorf("Expected live script to contain %s", part)
		}
	}
}
