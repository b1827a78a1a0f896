package schema

import "fmt"

// Default returns the compiled-in starter page. Every call returns a fresh value.
func Default() PageConfig {
	return PageConfig{
		Meta: Meta{
			Title:       "建筑展示模板",
			Description: "以配置驱动的单页展示模板",
			Language:    LanguageZhCN,
		},
		Theme: Theme{
			Background:  BackgroundLight,
			AccentColor: "#1f6feb",
			Radius:      RadiusMedium,
		},
		Nav: Nav{
			Brand: "ARCH TEMPLATE",
			Items: []NavItem{
				{ID: "narrative", Label: "01 项目叙述"},
				{ID: "strip", Label: "02 图纸条带"},
				{ID: "models", Label: "03 模型阶段"},
				{ID: "atlas", Label: "04 场地网格"},
				{ID: "masonry", Label: "05 渲染墙"},
			},
		},
		Hero: Hero{
			Eyebrow: "CONFIG DRIVEN",
			Title:   "Schema 驱动页面生成",
			Lead:    "面板只负责编辑配置，预览只读展示渲染输出。",
			Stats: []HeroStat{
				{Value: "5", Label: "SectionKinds"},
				{Value: "1", Label: "单一状态源"},
				{Value: "100%", Label: "配置驱动"},
			},
			Gallery: []HeroGalleryItem{
				{Role: RoleMain, Image: ImageAsset{Src: "https://picsum.photos/seed/template-main/1280/860", Title: "主图"}},
				{Role: RoleSecondary, Image: ImageAsset{Src: "https://picsum.photos/seed/template-sub1/960/640", Title: "副图一"}},
				{Role: RoleSecondary, Image: ImageAsset{Src: "https://picsum.photos/seed/template-sub2/960/640", Title: "副图二"}},
			},
		},
		Footer: Footer{
			Slogan: "让每个人都能快速搭建好看的页面",
			Links: []FooterLink{
				{Label: "回到顶部", Href: "#narrative"},
				{Label: "GitHub", Href: "https://github.com"},
				{Label: "联系我们", Href: "mailto:hello@example.com"},
			},
			Copyright: "保留所有权利",
		},
		Sections: []Section{
			{
				ID:           "narrative",
				Title:        "01 项目叙述",
				Subtitle:     "模板目标和阅读路径",
				IncludeInNav: Bool(true),
				Content: NarrativeContent{Cards: []NarrativeCard{
					{Title: "背景", Text: "面向静态部署场景，快速完成单页展示。"},
					{Title: "策略", Text: "结构化配置驱动内容渲染，避免重复手写页面。"},
					{Title: "收益", Text: "统一风格，便于协作和长期维护。"},
				}},
			},
			{
				ID:           "strip",
				Title:        "02 图纸条带",
				Subtitle:     "横向滚动展示图纸/素材",
				IncludeInNav: Bool(true),
				Content: StripGalleryContent{Items: []GalleryItem{
					{Image: ImageAsset{Src: "https://picsum.photos/seed/strip1/900/640", Title: "图纸 A"}, Tags: []string{"总图"}},
					{Image: ImageAsset{Src: "https://picsum.photos/seed/strip2/900/640", Title: "图纸 B"}, Tags: []string{"平面"}},
				}},
			},
			{
				ID:           "models",
				Title:        "03 模型阶段",
				Subtitle:     "主模型 + 次模型",
				IncludeInNav: Bool(true),
				Content: ModelStageContent{
					Main: GalleryItem{Image: ImageAsset{Src: "https://picsum.photos/seed/modelmain/1200/900", Title: "主模型"}, Tags: []string{"主视角"}},
					Secondary: []GalleryItem{
						{Image: ImageAsset{Src: "https://picsum.photos/seed/model2/900/640", Title: "节点模型"}, Tags: []string{"节点"}},
					},
				},
			},
			{
				ID:           "atlas",
				Title:        "04 场地网格",
				Subtitle:     "图像与占位混排",
				IncludeInNav: Bool(true),
				Content: AtlasGridContent{Items: []AtlasItem{
					{Image: &ImageAsset{Src: "https://picsum.photos/seed/atlas1/1200/900", Title: "主场地"}, Tags: []string{"场地"}},
					{Placeholder: true, Tags: []string{"区位图"}},
					{Image: &ImageAsset{Src: "https://picsum.photos/seed/atlas3/900/640", Title: "样本"}, Tags: []string{"采样"}},
				}},
			},
			{
				ID:           "masonry",
				Title:        "05 渲染墙",
				Subtitle:     "瀑布流收尾展示",
				IncludeInNav: Bool(true),
				Content: MasonryGalleryContent{Items: []GalleryItem{
					{Image: ImageAsset{Src: "https://picsum.photos/seed/ms1/800/1200", Title: "透视一"}, Tags: []string{"入口"}},
					{Image: ImageAsset{Src: "https://picsum.photos/seed/ms2/800/620", Title: "透视二"}, Tags: []string{"中庭"}},
				}},
			},
		},
	}
}

// DefaultContent returns the starter payload for kind
func DefaultContent(kind SectionKind, n int) (SectionContent, error) {
	sample := func(title, tag string) GalleryItem {
		return GalleryItem{
			Image: ImageAsset{Src: fmt.Sprintf("https://picsum.photos/seed/section-%d/900/640", n), Title: title},
			Tags:  []string{tag},
		}
	}

	switch kind {
	case KindNarrative:
		return NarrativeContent{Cards: []NarrativeCard{{Title: "小标题", Text: "请编辑文本内容"}}}, nil
	case KindStripGallery:
		return StripGalleryContent{Items: []GalleryItem{sample("图片", "标签")}}, nil
	case KindModelStage:
		return ModelStageContent{Main: sample("主模型", "主视角")}, nil
	case KindAtlasGrid:
		return AtlasGridContent{Items: []AtlasItem{{Placeholder: true, Tags: []string{"占位"}}}}, nil
	case KindMasonryGallery:
		return MasonryGalleryContent{Items: []GalleryItem{sample("图片", "标签")}}, nil
	default:
		return nil, fmt.Errorf("unknown section kind %q", kind)
	}
}

var defaultSectionTitles = map[SectionKind]string{
	KindNarrative:      "叙述区块",
	KindStripGallery:   "条带画廊",
	KindModelStage:     "模型阶段",
	KindAtlasGrid:      "场地网格",
	KindMasonryGallery: "瀑布画廊",
}

// DefaultSection builds a new section of kind at 1-based position n
func DefaultSection(kind SectionKind, n int) (Section, error) {
	content, err := DefaultContent(kind, n)
	if err != nil {
		return Section{}, err
	}
	return Section{
		ID:           fmt.Sprintf("section-%d", n),
		Title:        fmt.Sprintf("%s %d", defaultSectionTitles[kind], n),
		IncludeInNav: Bool(true),
		Content:      content,
	}, nil
}

// ChangeKind keeps the envelope of s and swaps in the starter payload for kind.
// The section keeps its content when kind is unchanged.
func ChangeKind(s Section, kind SectionKind, n int) (Section, error) {
	if s.Kind() == kind {
		return s.Clone(), nil
	}
	content, err := DefaultContent(kind, n)
	if err != nil {
		return Section{}, err
	}
	out := s.Clone()
	out.Content = content
	return out, nil
}
