package archivegen

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	imagesSubdir  = "images"
)

// Image describes a processed feature image.
type Image struct {
	Filename string
	Width    int
	Height   int
	Resized  bool
}

// processImage downsizes images wider than maxImageWidth, keeping the
// original format for JPEG and PNG. Anything else, and anything already
// small enough, is returned byte for byte.
func processImage(data []byte, name string) (Image, []byte, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode image config: %w", err)
	}
	meta := Image{Filename: name, Width: cfg.Width, Height: cfg.Height}
	if cfg.Width <= maxImageWidth || (format != "jpeg" && format != "png") {
		return meta, data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	newH := h * maxImageWidth / w
	dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	case "png":
		err = png.Encode(&buf, dst)
	}
	if err != nil {
		return Image{}, nil, fmt.Errorf("encode %s: %w", format, err)
	}
	meta.Width, meta.Height, meta.Resized = maxImageWidth, newH, true
	return meta, buf.Bytes(), nil
}

// leadImages returns the distinct feature images shown at the top of each
// archive page, which is the image of the page's first post.
func leadImages(pages []*ArchivePage) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, p := range pages {
		if len(p.Posts) == 0 || p.Posts[0].Image == nil || p.Posts[0].Image.Feature == "" {
			continue
		}
		name := p.Posts[0].Image.Feature
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// featureImageFiles loads and processes lead images from srcDir. Every
// processed image is reported through done. Missing or undecodable images,
// and names with a ".." segment, are reported through skip and left out.
func featureImageFiles(srcDir string, names []string, done func(Image), skip func(name string, err error)) []File {
	var files []File
	for _, name := range names {
		if hasDotDot(name) {
			skip(name, fmt.Errorf("invalid image name"))
			continue
		}
		clean := path.Clean("/" + filepath.ToSlash(name))
		data, err := os.ReadFile(filepath.Join(srcDir, filepath.FromSlash(clean)))
		if err != nil {
			skip(name, err)
			continue
		}
		meta, out, err := processImage(data, name)
		if err != nil {
			skip(name, err)
			continue
		}
		done(meta)
		files = append(files, File{Path: path.Join("/", imagesSubdir, clean), Data: out})
	}
	return files
}

func hasDotDot(name string) bool {
	for _, seg := range strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == ".." {
			return true
		}
	}
	return false
}
