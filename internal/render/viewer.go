package render

import (
	"strconv"

	"golang.org/x/net/html"
)

// TriggerClass marks every openable image in the markup. Both the live
// runtime and the export script build their viewer list from it.
const TriggerClass = "media-open-trigger"

// ViewerImage is one entry of the lightbox list
type ViewerImage struct {
	Index int    `json:"index"`
	Src   string `json:"src"`
	Title string `json:"title"`
}

// ViewerImages scans a rendered tree for openable images in document order
func ViewerImages(root *html.Node) []ViewerImage {
	images := []ViewerImage{}
	for _, n := range FindAll(root, TriggerClass) {
		src, _ := Attr(n, "data-viewer-src")
		title, _ := Attr(n, "data-viewer-title")
		index := len(images)
		if v, ok := Attr(n, "data-viewer-index"); ok {
			if parsed, err := strconv.Atoi(v); err == nil {
				index = parsed
			}
		}
		images = append(images, ViewerImage{Index: index, Src: src, Title: title})
	}
	return images
}
